package repository

import (
	"testing"
)

func TestEscapeLikePattern(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "alice", "alice"},
		{"percent escaped", "%", `\%`},
		{"underscore escaped", "a_b", `a\_b`},
		{"backslash escaped first", `a\%`, `a\\\%`},
		{"mixed metacharacters", "100%_done", `100\%\_done`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeLikePattern(tt.input); got != tt.want {
				t.Errorf("EscapeLikePattern(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
