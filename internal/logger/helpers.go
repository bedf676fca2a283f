package logger

import (
	"io"
	"os"
)

var (
	FlagVerboseCount int    // -V, -VV
	FlagQuiet        bool   // --quiet/-q
	FlagSilent       bool   // --silent/-s
	FlagJSON         bool   // --json, for cron mail and log shippers
	FlagLogFile      string // --log-file
)

func ConfigureLoggerFromFlags() {
	var out io.Writer = os.Stdout
	var level string
	switch {
	case FlagQuiet:
		level = "error"
	case FlagSilent:
		level = "error" // silent = no console output at all, even errors
		out = io.Discard
	default:
		switch FlagVerboseCount {
		case 0:
			level = "info"
		default:
			level = "debug"
		}
	}

	mu.RLock()
	maxSize, maxBackups := cur.FileMaxSizeMB, cur.FileMaxBackups
	mu.RUnlock()

	Configure(Options{
		Level:          level,
		JSON:           FlagJSON,
		Color:          !FlagJSON,
		Out:            out,
		File:           FlagLogFile,
		FileMaxSizeMB:  maxSize,
		FileMaxBackups: maxBackups,
	})
}

// Interactive reports whether human-oriented output (banners, tables) should be printed.
func Interactive() bool {
	return !FlagQuiet && !FlagSilent && !FlagJSON
}
