package prompter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type Prompter interface {
	Confirm(question string) (bool, error)
}

type TextPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *TextPrompter {
	return &TextPrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm defaults to no: anything but y/yes, including EOF, declines.
func (p *TextPrompter) Confirm(q string) (bool, error) {
	if _, err := fmt.Fprintf(p.out, "%s [y/N]: ", q); err != nil {
		return false, err
	}

	resp, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	r := strings.ToLower(strings.TrimSpace(resp))
	return r == "y" || r == "yes", nil
}

// StdinIsTerminal reports whether a human can answer a prompt.
func StdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
