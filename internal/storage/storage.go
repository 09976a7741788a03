// Package storage defines persistence contracts for the simulation run
// journal.
//
// The journal records scalar per-generation measurements only. Board grids
// are never persisted; the in-memory generation owned by the driver is the
// single source of simulation state.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested journal record is missing.
var ErrNotFound = errors.New("record not found")

// StepSample records one completed generation transition within a run.
type StepSample struct {
	RunID      string
	Generation int
	Population int
	Elapsed    time.Duration
	Timestamp  time.Time
}

// JournalStore persists step samples grouped by run.
type JournalStore interface {
	// AppendStepSample records one sample.
	AppendStepSample(ctx context.Context, sample StepSample) error
	// StepSamples returns every sample recorded for runID in generation
	// order. It returns ErrNotFound when the run has no samples.
	StepSamples(ctx context.Context, runID string) ([]StepSample, error)
}
