package utils

import "testing"

func TestGetMaxWidth(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected int
	}{
		{"Empty", []string{}, 0},
		{"Single Line", []string{"Hello"}, 5},
		{"Multiple Lines", []string{"Hello", "World", "Testing"}, 7},
		{"With ANSI", []string{"\033[31mRed\033[0m", "\033[32mGreen\033[0m"}, 5},
		{"Multibyte", []string{"→ v2"}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetMaxWidth(tt.lines)
			if result != tt.expected {
				t.Errorf("GetMaxWidth(%v) = %d, want %d", tt.lines, result, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("0123456789abc", 5); got != "0123…" {
		t.Errorf("got %q", got)
	}
}
