package telemetry

import (
	"context"
	"log"

	"github.com/louisbranch/conway.space/internal/sim"
	"github.com/louisbranch/conway.space/internal/storage"
)

// Record consumes runner events and journals one sample per completed
// generation under runID. Other event kinds are ignored. It returns when
// the event stream closes or ctx ends, whichever comes first.
//
// Append failures are logged and skipped; a degraded journal must never
// stall the simulation.
func Record(ctx context.Context, runID string, events <-chan sim.Event, emitter *Emitter) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			complete, ok := event.(sim.GenerationComplete)
			if !ok {
				continue
			}
			err := emitter.EmitStep(ctx, storage.StepSample{
				RunID:      runID,
				Generation: complete.Generation,
				Population: complete.Population,
				Elapsed:    complete.Elapsed,
			})
			if err != nil && ctx.Err() == nil {
				log.Printf("journal generation %d: %v", complete.Generation, err)
			}
		}
	}
}
