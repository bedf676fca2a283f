package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

type Mode int

const (
	Capture Mode = iota
	Stream
	// Detach starts the process and returns without waiting for it.
	Detach
)

func (m Mode) String() string {
	switch m {
	case Capture:
		return "capture"
	case Stream:
		return "stream"
	case Detach:
		return "detach"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

type CommandRunner interface {
	Run(ctx context.Context, timeout time.Duration, mode Mode,
		name string, args ...string) ([]byte, error)
}

// ExecRunner runs real processes. Stdout and Stderr receive the child's output
// in Stream and Detach modes; nil means the console.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(
	parent context.Context,
	timeout time.Duration,
	mode Mode,
	name string,
	args ...string,
) ([]byte, error) {
	if mode == Detach {
		return nil, detach(fileOrNull(r.stdout()), fileOrNull(r.stderr()), name, args...)
	}

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)

	switch mode {
	case Stream:
		cmd.Stdout, cmd.Stderr = r.stdout(), r.stderr()
		return nil, cmd.Run()
	default:
		out, err := cmd.CombinedOutput()
		return out, err
	}
}

// detach is not bound to a context; the child outlives this process.
func detach(stdout, stderr *os.File, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	// a nil *os.File must not end up in the io.Writer fields
	if stdout != nil {
		cmd.Stdout = stdout
	}
	if stderr != nil {
		cmd.Stderr = stderr
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

func (r ExecRunner) stdout() io.Writer {
	if r.Stdout == nil {
		return os.Stdout
	}
	return r.Stdout
}

func (r ExecRunner) stderr() io.Writer {
	if r.Stderr == nil {
		return os.Stderr
	}
	return r.Stderr
}

// fileOrNull maps anything but an *os.File to nil (/dev/null). A released
// child cannot feed an in-process writer.
func fileOrNull(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
