package kanjivariants

import "testing"

func TestNormalizeConvertsVariantsToParentForm(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"大日本帝國", "大日本帝国"},
		{"舊字", "旧字"},
		{"龍", "竜"},
		{"靜", "静"},
		{"普通の文章です", "普通の文章です"},
	}
	for _, tt := range tests {
		if got := Default().Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := Default()
	once := n.Normalize("大日本帝國")
	twice := n.Normalize(once)
	if once != twice {
		t.Fatalf("Normalize not idempotent: %q vs %q", once, twice)
	}
}

func TestBuildRejectsMalformedJSON(t *testing.T) {
	if _, err := build([]byte("not json"), []byte(`[]`)); err == nil {
		t.Fatal("expected an error for malformed fullList JSON")
	}
	if _, err := build([]byte(`[]`), []byte("not json")); err == nil {
		t.Fatal("expected an error for malformed itaiji JSON")
	}
}
