package utils

import "github.com/genspectrum/sourcewatch/internal/printer"

func GetMaxWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		length := len([]rune(printer.StripANSI(line)))
		if length > maxWidth {
			maxWidth = length
		}
	}
	return maxWidth
}

// Truncate cuts s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
