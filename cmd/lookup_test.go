package main

import (
	"testing"

	"yomidict/internal/dictentry"
	"yomidict/internal/options"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    options.Mode
		wantErr bool
	}{
		{in: "simple", want: options.ModeSimple},
		{in: "Group", want: options.ModeGroup},
		{in: "MERGE", want: options.ModeMerge},
		{in: "split", want: options.ModeSplit},
		{in: "bogus", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseMode(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("parseMode(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseMode(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("parseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMatchType(t *testing.T) {
	tests := []struct {
		in      string
		want    dictentry.MatchType
		wantErr bool
	}{
		{in: "exact", want: dictentry.MatchExact},
		{in: "Prefix", want: dictentry.MatchPrefix},
		{in: "SUFFIX", want: dictentry.MatchSuffix},
		{in: "nope", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseMatchType(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("parseMatchType(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseMatchType(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("parseMatchType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
