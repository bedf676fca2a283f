package buildinfo

import (
	"fmt"
	"io"
	"runtime"
)

// Set through -ldflags "-X github.com/genspectrum/sourcewatch/internal/buildinfo.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

func PrintVersion(w io.Writer) {
	_, _ = fmt.Fprintln(w, "sourcewatch - LAPIS source change detector")
	_, _ = fmt.Fprintf(w, "  %-12s %s\n", "Version:", Version)
	_, _ = fmt.Fprintf(w, "  %-12s %s\n", "Go Version:", GoVersion)
	_, _ = fmt.Fprintf(w, "  %-12s %s\n", "Git Commit:", Commit)
	_, _ = fmt.Fprintf(w, "  %-12s %s\n", "Built:", Date)
	_, _ = fmt.Fprintf(w, "  %-12s %s/%s\n", "OS/Arch:", runtime.GOOS, runtime.GOARCH)
}

// UserAgent is sent with every outgoing request.
func UserAgent() string {
	return "sourcewatch/" + Version
}
