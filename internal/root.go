package internal

import (
	"context"
	"os"
	"strings"

	"github.com/genspectrum/sourcewatch/internal/buildinfo"
	"github.com/genspectrum/sourcewatch/internal/errs"
	"github.com/genspectrum/sourcewatch/internal/logger"
	"github.com/genspectrum/sourcewatch/internal/middleware"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sourcewatch",
		Short: "Trigger a LAPIS import when the upstream data source changes",
		Long: `Sourcewatch checks a remote data export for changes and starts the LAPIS
import job at most once per data version.

A run compares the export's Content-Length and Last-Modified headers with the
stored state. When they changed, the LAPIS dataVersion decides whether the
previous import already landed: only then is a new job triggered, a
notification posted and the state advanced.

Intended to be run from cron or a systemd timer.`,
		Example: `sourcewatch check
sourcewatch check --dry-run -V
sourcewatch status --remote`,
		Version: buildinfo.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if (logger.FlagQuiet || logger.FlagSilent) && logger.FlagVerboseCount > 0 {
				return middleware.FlagComboError(errs.QuietWithVerbose)
			}
			logger.ConfigureLoggerFromFlags()
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "Config file (default $SOURCEWATCH_CONFIG or ~/.config/sourcewatch/config.yml)")
	pf.CountVarP(&logger.FlagVerboseCount, "verbose", "V", "Increase verbosity (-V debug)")
	pf.BoolVarP(&logger.FlagQuiet, "quiet", "q", false, "Only print errors")
	pf.BoolVarP(&logger.FlagSilent, "silent", "s", false, "Print nothing to the console")
	pf.BoolVar(&logger.FlagJSON, "json", false, "Log as JSON lines")
	pf.StringVar(&logger.FlagLogFile, "log-file", "", "Also append logs to this file (rotated)")

	cmd.SetVersionTemplate("{{.Version}}\n")

	RegisterSubCommands(cmd)

	return cmd
}

func Execute(ctx context.Context) error {
	root := NewRootCmd()

	if os.Getenv("COMP_LINE") != "" ||
		(len(os.Args) > 1 && strings.HasPrefix(os.Args[1], "__complete")) {
		return root.ExecuteContext(ctx)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		logger.Debug("Failed to execute root command: %v", err)
		return err
	}
	return nil
}
