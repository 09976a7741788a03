package sim

import (
	"fmt"
	"time"

	"github.com/louisbranch/conway.space/internal/life"
)

// State describes what the runner is doing.
type State int

const (
	StateRunning State = iota
	StatePaused
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Event is a runner notification. Consumers receive events on the channel
// returned by Events.
type Event interface {
	String() string
}

// StateChange reports a transition between runner states. It is sent when
// the run loop starts and every time the runner pauses, resumes or stops.
type StateChange struct {
	Generation int
	NewState   State
}

func (e StateChange) String() string {
	return fmt.Sprintf("generation %d: %s", e.Generation, e.NewState)
}

// GenerationComplete reports one finished board transition along with the
// time the transition took to compute.
type GenerationComplete struct {
	Generation int
	Population int
	Elapsed    time.Duration
}

func (e GenerationComplete) String() string {
	return fmt.Sprintf("generation %d: %d alive in %s", e.Generation, e.Population, e.Elapsed)
}

// CellsFlipped reports the cells whose state changed, either across a
// transition or through a manual edit.
type CellsFlipped struct {
	Generation int
	Cells      []life.Cell
}

func (e CellsFlipped) String() string {
	return fmt.Sprintf("generation %d: %d cells flipped", e.Generation, len(e.Cells))
}
