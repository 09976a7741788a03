// Package telemetry journals operational measurements of a simulation run.
package telemetry

import (
	"context"
	"time"

	"github.com/louisbranch/conway.space/internal/storage"
)

// Emitter records step samples to a journal store.
type Emitter struct {
	store storage.JournalStore
	clock func() time.Time
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(store storage.JournalStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// EmitStep records one step sample. It is a no-op when the store is nil, so
// callers never need to guard for a disabled journal.
func (e *Emitter) EmitStep(ctx context.Context, sample storage.StepSample) error {
	if e == nil || e.store == nil {
		return nil
	}
	if sample.Timestamp.IsZero() {
		if e.clock == nil {
			sample.Timestamp = time.Now().UTC()
		} else {
			sample.Timestamp = e.clock().UTC()
		}
	}
	return e.store.AppendStepSample(ctx, sample)
}
