package display

import (
	"strings"
	"testing"
)

func TestRule(t *testing.T) {
	rule := Rule("-", 50)
	if len(rule) == 0 || len(rule) > 50 {
		t.Errorf("unexpected rule length %d", len(rule))
	}
	if strings.Trim(rule, "-") != "" {
		t.Errorf("rule should only contain the separator char: %q", rule)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short string unchanged", "abc", 10, "abc"},
		{"exact length unchanged", "abcde", 5, "abcde"},
		{"long string truncated", "abcdefghij", 8, "abcde..."},
		{"tiny max left alone", "abcdefghij", 3, "abcdefghij"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
