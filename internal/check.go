package internal

import (
	"fmt"

	"github.com/genspectrum/sourcewatch/internal/config"
	"github.com/genspectrum/sourcewatch/internal/detector"
	"github.com/genspectrum/sourcewatch/internal/lock"
	"github.com/genspectrum/sourcewatch/internal/logger"
	"github.com/genspectrum/sourcewatch/internal/middleware"
	"github.com/genspectrum/sourcewatch/internal/notifier"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the data source once and trigger an import if it changed",
		Long: `Check the data source once.

Exit codes:
  0  no change, duplicate pending or import triggered
  1  usage or configuration error
  2  state file missing or unreadable
  3  network or HTTP error
  4  malformed LAPIS response
  5  another run holds the lock (lock.enabled)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}

			dryRun, err := cmd.Flags().GetBool("dry-run")
			if err != nil {
				return err
			}

			restore := logger.With("run_id", uuid.NewString())
			defer restore()

			if cfg.Lock.Enabled {
				guard, err := lock.Acquire(cfg.LockPath())
				if err != nil {
					return err
				}
				defer func() {
					if err := guard.Release(); err != nil {
						logger.Warn("%v", err)
					}
				}()
			}

			rep, err := newDetector(cfg, dryRun).Check(cmd.Context())
			if err != nil {
				return err
			}

			logger.Debug("check finished: %s", rep.Outcome)
			if logger.Interactive() {
				printReport(cmd, rep, dryRun)
			}
			return nil
		},
	}

	cmd.Flags().BoolP("dry-run", "n", false, "Decide only: no trigger, no notification, no state write")
	return cmd
}

func printReport(cmd *cobra.Command, rep detector.Report, dryRun bool) {
	var title string
	switch rep.Outcome {
	case detector.NoChange:
		title = "No new data"
	case detector.DuplicatePending:
		title = "New data, previous import still pending"
	case detector.Triggered:
		title = "Import triggered"
		if dryRun {
			title = "Import would be triggered (dry run)"
		}
	default:
		return
	}

	details := []string{
		fmt.Sprintf("Content-Length: %s", rep.Observed.ContentLength),
		fmt.Sprintf("Last-Modified: %s", rep.Observed.LastModified),
	}
	if rep.Outcome != detector.NoChange {
		details = append(details, fmt.Sprintf("Data version: %s", rep.DataVersion))
	}

	notifier.DisplaySummary(cmd.OutOrStdout(), title, details...)
}
