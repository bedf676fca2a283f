package errs

import (
	"errors"
	"fmt"
)

// Failure classes of a detection run. Callers wrap them with %w and match with errors.Is.
var (
	ErrStateUnavailable  = errors.New("state unavailable")
	ErrTransport         = errors.New("transport error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrLocked            = errors.New("another run holds the lock")
)

const (
	ExitOK                = 0
	ExitUsage             = 1
	ExitStateUnavailable  = 2
	ExitTransport         = 3
	ExitMalformedResponse = 4
	ExitLocked            = 5
)

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrStateUnavailable):
		return ExitStateUnavailable
	case errors.Is(err, ErrTransport):
		return ExitTransport
	case errors.Is(err, ErrMalformedResponse):
		return ExitMalformedResponse
	case errors.Is(err, ErrLocked):
		return ExitLocked
	default:
		return ExitUsage
	}
}

type Code string

const (
	InitStateExists      Code = "INIT_STATE_EXISTS"
	InitMissingFields    Code = "INIT_MISSING_FIELDS"
	InitRemoteWithValues Code = "INIT_REMOTE_WITH_VALUES"
	QuietWithVerbose     Code = "QUIET_WITH_VERBOSE"
)

var messages = map[Code]string{
	InitStateExists: `State file already exists: %[1]s

Usage:
  - Keep the current state (recommended):
      sourcewatch status
  - Overwrite it (the next check compares against the new values):
      sourcewatch init ... --force

Reason:
  Overwriting the state can re-trigger an import that already ran.`,

	InitMissingFields: `Missing values: provide the fingerprint or use --from-remote

Examples:
  sourcewatch init --content-length 123 --last-modified "Mon, 02 Jan 2006 15:04:05 GMT"
  sourcewatch init --from-remote

Reason:
  --content-length and --last-modified are both required; --data-version is optional.`,

	InitRemoteWithValues: `Invalid flag combination: cannot combine --from-remote with explicit values

Usage:
  - Seed the state from the current remote values:
      sourcewatch init --from-remote
  - Seed the state with known values:
      sourcewatch init --content-length 123 --last-modified "..." --data-version 42`,

	QuietWithVerbose: `Invalid flag combination: --quiet/--silent cannot be used with -V

Reason:
  -V raises the log level, --quiet and --silent lower it.`,
}

func Msg(code Code, a ...any) string {
	msg := messages[code]
	if msg == "" {
		msg = string(code)
	}
	return fmt.Sprintf(msg, a...)
}
