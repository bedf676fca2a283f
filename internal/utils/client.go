package utils

import (
	"io"

	"github.com/genspectrum/sourcewatch/internal/logger"
)

func Try(f func() error) {
	if err := f(); err != nil {
		logger.Debug("deferred cleanup failed: %v", err)
	}
}

// DrainClose discards what is left of an HTTP body so the connection can be reused.
func DrainClose(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 64<<10))
	Try(rc.Close)
}
