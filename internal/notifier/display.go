package notifier

import (
	"fmt"
	"io"
	"strings"

	"github.com/genspectrum/sourcewatch/internal/printer"
	"github.com/genspectrum/sourcewatch/internal/utils"
)

const (
	borderColor = "\033[38;5;39m"
	resetColor  = "\033[0m"
	padding     = 2
)

// DisplaySummary draws a bordered, centered box with a title and detail lines.
func DisplaySummary(w io.Writer, title string, details ...string) {
	lines := append([]string{title}, details...)

	maxWidth := utils.GetMaxWidth(lines) + padding*2
	topBorder := borderColor + "╭" + strings.Repeat("─", maxWidth) + "╮" + resetColor
	sideBorder := borderColor + "│" + resetColor

	_, _ = fmt.Fprintln(w, topBorder)
	for _, line := range lines {
		width := len([]rune(printer.StripANSI(line)))
		paddingLeft := (maxWidth - width) / 2
		paddingRight := maxWidth - width - paddingLeft
		_, _ = fmt.Fprintf(w, "%s%s%s%s%s\n", sideBorder, strings.Repeat(" ", paddingLeft), line, strings.Repeat(" ", paddingRight), sideBorder)
	}
	_, _ = fmt.Fprintln(w, borderColor+"╰"+strings.Repeat("─", maxWidth)+"╯"+resetColor)
}
