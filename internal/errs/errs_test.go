package errs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"state", fmt.Errorf("load state: %w", ErrStateUnavailable), ExitStateUnavailable},
		{"transport", fmt.Errorf("head: %w", ErrTransport), ExitTransport},
		{"malformed", fmt.Errorf("decode: %w", ErrMalformedResponse), ExitMalformedResponse},
		{"locked", ErrLocked, ExitLocked},
		{"other", errors.New("boom"), ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestMsg(t *testing.T) {
	got := Msg(InitStateExists, "/tmp/state.json")
	if !strings.Contains(got, "/tmp/state.json") {
		t.Errorf("expected path in message, got: %s", got)
	}

	if got := Msg(Code("UNKNOWN")); got != "UNKNOWN" {
		t.Errorf("unknown code should fall back to its name, got %q", got)
	}
}
