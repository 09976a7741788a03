package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/louisbranch/conway.space/internal/life"
	"github.com/louisbranch/conway.space/internal/sim"
)

func TestRecordJournalsGenerationCompletions(t *testing.T) {
	store := &fakeJournalStore{}
	events := make(chan sim.Event, 8)

	events <- sim.StateChange{Generation: 0, NewState: sim.StateRunning}
	events <- sim.CellsFlipped{Generation: 1, Cells: []life.Cell{{X: 1, Y: 1}}}
	events <- sim.GenerationComplete{Generation: 1, Population: 3, Elapsed: 42 * time.Microsecond}
	close(events)

	Record(context.Background(), "run-1", events, NewEmitter(store))

	if store.count != 1 {
		t.Fatalf("expected 1 journaled sample, got %d", store.count)
	}
	if store.last.RunID != "run-1" {
		t.Fatalf("run id = %q, want %q", store.last.RunID, "run-1")
	}
	if store.last.Generation != 1 {
		t.Fatalf("generation = %d, want 1", store.last.Generation)
	}
	if store.last.Population != 3 {
		t.Fatalf("population = %d, want 3", store.last.Population)
	}
	if store.last.Elapsed != 42*time.Microsecond {
		t.Fatalf("elapsed = %s, want 42µs", store.last.Elapsed)
	}
}

func TestRecordStopsWhenContextEnds(t *testing.T) {
	events := make(chan sim.Event)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		Record(ctx, "run-1", events, NewEmitter(&fakeJournalStore{}))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Record did not return after context cancellation")
	}
}

func TestRecordSurvivesAppendFailures(t *testing.T) {
	store := &fakeJournalStore{err: context.DeadlineExceeded}
	events := make(chan sim.Event, 2)
	events <- sim.GenerationComplete{Generation: 1, Population: 1}
	events <- sim.GenerationComplete{Generation: 2, Population: 1}
	close(events)

	// Both appends fail; Record must drain the stream and return anyway.
	Record(context.Background(), "run-1", events, NewEmitter(store))
}
