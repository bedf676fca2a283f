package printer

import "regexp"

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes SGR color sequences, as emitted by the color printer.
func StripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}
