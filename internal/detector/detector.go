package detector

import (
	"context"
	"fmt"

	"github.com/genspectrum/sourcewatch/internal/logger"
	"github.com/genspectrum/sourcewatch/internal/models"
	"github.com/genspectrum/sourcewatch/internal/store"
)

const (
	MsgDuplicatePending = "New data found, but the previous job has not yet finished (or failed). Nothing to do - bye!"
	MsgTriggered        = "New data found, a LAPIS import job was triggered."
	msgFailurePrefix    = "Source check failed: "
)

type MetadataFetcher interface {
	FetchMetadata(ctx context.Context) (models.Fingerprint, error)
}

type VersionFetcher interface {
	FetchDataVersion(ctx context.Context) (models.DataVersion, error)
}

// JobTrigger starts the downstream import. Its error is logged, never acted on.
type JobTrigger interface {
	Fire(ctx context.Context) error
}

type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type Options struct {
	// DryRun decides and logs only: no job, no webhook post on any path, no state write.
	DryRun bool
	// NotifyOnFailure also reports transport and response errors to the webhook.
	NotifyOnFailure bool
}

// Report is what a single run saw and decided.
type Report struct {
	Outcome     Outcome
	Previous    models.State
	Observed    models.Fingerprint
	DataVersion models.DataVersion
	Saved       bool
}

// Detector decides whether the remote source changed and, at most once per
// data version, triggers the import.
//
// Runs are not mutually excluded: two overlapping runs can both see a change
// and both trigger. Callers serialize runs (cron) or wrap Run in a lock.
type Detector struct {
	store    store.StateStore
	metadata MetadataFetcher
	versions VersionFetcher
	trigger  JobTrigger
	notifier Notifier
	opts     Options
}

func New(st store.StateStore, m MetadataFetcher, v VersionFetcher, t JobTrigger, n Notifier, opts Options) *Detector {
	return &Detector{
		store:    st,
		metadata: m,
		versions: v,
		trigger:  t,
		notifier: n,
		opts:     opts,
	}
}

func (d *Detector) Run(ctx context.Context) (Outcome, error) {
	rep, err := d.Check(ctx)
	return rep.Outcome, err
}

func (d *Detector) Check(ctx context.Context) (Report, error) {
	var rep Report

	state, err := d.store.Load(ctx)
	if err != nil {
		return rep, fmt.Errorf("load state: %w", err)
	}
	rep.Previous = state
	logger.Debug("Stored: Content-Length=%s, Last-Modified=%s, data version=%s",
		state.ContentLength, state.LastModified, state.LapisDataVersion)

	current, err := d.metadata.FetchMetadata(ctx)
	if err != nil {
		return rep, d.fail(ctx, fmt.Errorf("check data source: %w", err))
	}
	rep.Observed = current
	logger.Info("Current: Content-Length=%s, Last-Modified=%s", current.ContentLength, current.LastModified)

	if current.Equal(state.Fingerprint()) {
		rep.Outcome = NoChange
		logger.Info("No new data - bye!")
		return rep, nil
	}

	version, err := d.versions.FetchDataVersion(ctx)
	if err != nil {
		return rep, d.fail(ctx, fmt.Errorf("check data version: %w", err))
	}
	rep.DataVersion = version

	// same version as the last trigger: that import has not landed yet (or failed)
	if version == state.LapisDataVersion {
		rep.Outcome = DuplicatePending
		d.notify(ctx, MsgDuplicatePending)
		return rep, nil
	}

	rep.Outcome = Triggered
	next := models.State{
		ContentLength:    current.ContentLength,
		LastModified:     current.LastModified,
		LapisDataVersion: version,
	}

	if d.opts.DryRun {
		logger.Warn("Dry run: would trigger a new job and store %s / %s / %s",
			next.ContentLength, next.LastModified, next.LapisDataVersion)
		return rep, nil
	}

	logger.Info("New data found, triggering a new job...")
	if err := d.trigger.Fire(ctx); err != nil {
		logger.Warn("Import job trigger failed, state is advanced anyway: %v", err)
	}
	d.notify(ctx, MsgTriggered)

	// the job is already out; record it even if we are being canceled
	if err := d.store.Save(context.WithoutCancel(ctx), next); err != nil {
		return rep, fmt.Errorf("save state: %w", err)
	}
	rep.Saved = true
	logger.Success("State updated")
	return rep, nil
}

func (d *Detector) notify(ctx context.Context, text string) {
	logger.Info("%s", text)
	if d.opts.DryRun {
		logger.Debug("Dry run: notification not sent")
		return
	}
	if err := d.notifier.Notify(ctx, text); err != nil {
		logger.Warn("Notification failed: %v", err)
	}
}

func (d *Detector) fail(ctx context.Context, err error) error {
	if d.opts.NotifyOnFailure && !d.opts.DryRun {
		if nerr := d.notifier.Notify(ctx, msgFailurePrefix+err.Error()); nerr != nil {
			logger.Warn("Failure notification failed: %v", nerr)
		}
	}
	return err
}
