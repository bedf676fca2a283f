package internal

import (
	"io"

	"github.com/genspectrum/sourcewatch/internal/config"
	"github.com/genspectrum/sourcewatch/internal/detector"
	"github.com/genspectrum/sourcewatch/internal/logger"
	"github.com/genspectrum/sourcewatch/internal/notifier"
	"github.com/genspectrum/sourcewatch/internal/runner"
	"github.com/genspectrum/sourcewatch/internal/service"
	"github.com/genspectrum/sourcewatch/internal/store"
	"github.com/genspectrum/sourcewatch/internal/trigger"
)

type remote struct {
	metadata *service.MetadataFetcher
	versions *service.VersionFetcher
}

func newRemote(cfg *config.Config) remote {
	client := service.NewHTTPClient(cfg.HTTPTimeout)
	return remote{
		metadata: service.NewMetadataFetcher(cfg.ResourceURL, client),
		versions: service.NewVersionFetcher(cfg.VersionInfoURL, client),
	}
}

func newDetector(cfg *config.Config, dryRun bool) *detector.Detector {
	r := newRemote(cfg)
	return detector.New(
		store.NewFS(cfg.StatePath),
		r.metadata,
		r.versions,
		trigger.New(cfg.JobTriggerCommand, cfg.Trigger.Wait, cfg.Trigger.Timeout, jobRunner()),
		notifier.New(notifier.Config{
			WebhookURL: cfg.NotificationWebhookURL,
			Username:   cfg.Notify.Username,
			Channel:    cfg.Notify.Channel,
			Timeout:    cfg.HTTPTimeout,
		}),
		detector.Options{
			DryRun:          dryRun,
			NotifyOnFailure: cfg.Notify.OnFailure,
		},
	)
}

// jobRunner keeps the job's output off the console unless a human is watching:
// with --json, --quiet or --silent stdout belongs to the log stream.
func jobRunner() runner.ExecRunner {
	if logger.Interactive() {
		return runner.ExecRunner{}
	}
	return runner.ExecRunner{Stdout: io.Discard, Stderr: io.Discard}
}
