package trigger

import (
	"context"
	"fmt"
	"time"

	"github.com/genspectrum/sourcewatch/internal/logger"
	"github.com/genspectrum/sourcewatch/internal/runner"
)

// Shell launches the import job as "sh -c <command>", like os.system would.
type Shell struct {
	Command string
	Wait    bool
	Timeout time.Duration
	Runner  runner.CommandRunner
}

func New(command string, wait bool, timeout time.Duration, r runner.CommandRunner) *Shell {
	if r == nil {
		r = runner.ExecRunner{}
	}
	return &Shell{
		Command: command,
		Wait:    wait,
		Timeout: timeout,
		Runner:  r,
	}
}

// Fire starts the job. By default it does not wait for it; with Wait the
// command's output is streamed and the call returns when it exits or times out.
func (s *Shell) Fire(ctx context.Context) error {
	mode := runner.Detach
	if s.Wait {
		mode = runner.Stream
	}

	logger.Debug("trigger: sh -c %q (%s)", s.Command, mode)
	if _, err := s.Runner.Run(ctx, s.Timeout, mode, "sh", "-c", s.Command); err != nil {
		return fmt.Errorf("trigger %q: %w", s.Command, err)
	}
	return nil
}
