package queryfilter

import (
	"testing"

	"yomidict/internal/dictentry"
)

func summaries() []dictentry.DictionarySummary {
	return []dictentry.DictionarySummary{
		{Title: "JMdict", Author: "EDRDG", TermCount: 200000, Sequenced: true},
		{Title: "Kanjidic", Author: "EDRDG", TermCount: 0, KanjiCount: 13000},
		{Title: "ExtraEN", Author: "community", TermCount: 500},
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    []string
		wantErr bool
	}{
		{name: "empty expression matches all", expr: "", want: []string{"JMdict", "Kanjidic", "ExtraEN"}},
		{name: "string equality", expr: `author == "EDRDG"`, want: []string{"JMdict", "Kanjidic"}},
		{name: "numeric comparison", expr: "terms > 1000", want: []string{"JMdict"}},
		{name: "bool field", expr: "sequenced", want: []string{"JMdict"}},
		{name: "conjunction", expr: `author == "EDRDG" && kanji > 0`, want: []string{"Kanjidic"}},
		{name: "disjunction", expr: `title == "JMdict" || title == "ExtraEN"`, want: []string{"JMdict", "ExtraEN"}},
		{name: "unknown field is a compile error", expr: "bogus_field == 1", wantErr: true},
		{name: "non-bool expression is a compile error", expr: "terms", wantErr: true},
		{name: "syntax error", expr: "author ==", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(summaries(), tt.expr)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Filter(%q): expected error, got none", tt.expr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Filter(%q): unexpected error: %v", tt.expr, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Filter(%q): got %d results, want %d (%v)", tt.expr, len(got), len(tt.want), got)
			}
			for i, s := range got {
				if s.Title != tt.want[i] {
					t.Fatalf("Filter(%q): result[%d] = %q, want %q", tt.expr, i, s.Title, tt.want[i])
				}
			}
		})
	}
}

func TestCompileRejectsNonBoolExpression(t *testing.T) {
	if _, err := Compile(`title`); err == nil {
		t.Fatalf("expected Compile to reject a non-bool expression")
	}
}
