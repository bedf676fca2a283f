package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/genspectrum/sourcewatch/internal/errs"
	"github.com/genspectrum/sourcewatch/internal/models"
	"github.com/genspectrum/sourcewatch/internal/utils"
)

// StateStore persists the single detection snapshot.
type StateStore interface {
	// Load fails with errs.ErrStateUnavailable when the record is missing or malformed.
	Load(ctx context.Context) (models.State, error)

	// Save overwrites the record atomically.
	Save(ctx context.Context, st models.State) error
}

type FS struct {
	path string
}

func NewFS(path string) *FS {
	return &FS{path: path}
}

func (s *FS) Path() string { return s.path }

func (s *FS) Load(ctx context.Context) (models.State, error) {
	if err := ctx.Err(); err != nil {
		return models.State{}, fmt.Errorf("%w: read %s: %w", errs.ErrStateUnavailable, s.path, err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return models.State{}, fmt.Errorf("%w: read %s: %v", errs.ErrStateUnavailable, s.path, err)
	}
	if len(data) == 0 {
		return models.State{}, fmt.Errorf("%w: %s is empty", errs.ErrStateUnavailable, s.path)
	}

	var st models.State
	if err := json.Unmarshal(data, &st); err != nil {
		return models.State{}, fmt.Errorf("%w: decode %s: %v", errs.ErrStateUnavailable, s.path, err)
	}
	return st, nil
}

func (s *FS) Save(ctx context.Context, st models.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := utils.WriteJSONAtomic(s.path, st, 0o644); err != nil {
		return fmt.Errorf("write state %s: %w", s.path, err)
	}
	return nil
}

var ErrStateExists = errors.New("state file already exists")

// Bootstrap writes an initial record. An existing file is only replaced with force.
func Bootstrap(ctx context.Context, s *FS, st models.State, force bool) error {
	ok, err := utils.FileExists(s.path)
	if err != nil {
		return err
	}
	if ok && !force {
		return ErrStateExists
	}
	return s.Save(ctx, st)
}
