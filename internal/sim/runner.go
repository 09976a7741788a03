// Package sim drives a board through generations on a fixed tick.
//
// A Runner owns the live generation and is the single serialization point
// for board access: the tick loop, control calls and out-of-band edits all
// funnel through one mutex, so the board itself stays free of locks.
// Snapshots are deep copies and stay valid after the runner moves on.
package sim

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/louisbranch/conway.space/internal/life"
)

// DefaultInterval is the classic quarter-second demo cadence.
const DefaultInterval = 250 * time.Millisecond

// eventBuffer bounds how far event consumers may lag before losing events.
const eventBuffer = 64

// ErrStopped indicates a control call on a runner whose loop has exited.
var ErrStopped = errors.New("runner is stopped")

// ErrNilBoard indicates a reset with no replacement board.
var ErrNilBoard = errors.New("reset board must not be nil")

// ErrInvalidStepCount indicates a manual step request for less than one
// generation.
var ErrInvalidStepCount = errors.New("step count must be positive")

// Status is a point-in-time summary of the runner.
type Status struct {
	State      State
	Generation int
	Population int
	Width      int
	Height     int
}

// Runner advances a board on a fixed interval and serializes all access to
// it. Construct runners with NewRunner.
type Runner struct {
	interval time.Duration

	mu         sync.Mutex
	board      life.Automaton
	generation int
	state      State
	closed     bool

	events chan Event
}

// NewRunner returns a runner owning board, ticking every interval. A zero
// or negative interval falls back to DefaultInterval. The runner starts in
// the running state; ticking begins once Run is called.
func NewRunner(board life.Automaton, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Runner{
		interval: interval,
		board:    board,
		state:    StateRunning,
		events:   make(chan Event, eventBuffer),
	}
}

// Run ticks the simulation until ctx ends, then stops the runner and
// closes its event channel. It must be called at most once.
func (r *Runner) Run(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrStopped
	}
	r.publishLocked(StateChange{Generation: r.generation, NewState: r.state})
	r.mu.Unlock()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.shutdown()
			return nil
		case <-ticker.C:
			r.tick()
		}
	}
}

// Events returns the runner's notification stream. The channel closes when
// the runner stops. Slow consumers lose events rather than stalling the
// simulation.
func (r *Runner) Events() <-chan Event {
	return r.events
}

// Status reports the runner's current state, generation and population.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.statusLocked()
}

// Snapshot copies the live generation. The grid shares no storage with the
// runner, so callers may keep or edit it freely.
func (r *Runner) Snapshot() ([][]bool, Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return life.Export(r.board), r.statusLocked()
}

// Pause suspends automatic ticking. Manual steps and edits stay available
// while paused.
func (r *Runner) Pause() Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateRunning {
		r.state = StatePaused
		r.publishLocked(StateChange{Generation: r.generation, NewState: r.state})
	}

	return r.statusLocked()
}

// Resume restarts automatic ticking after a pause.
func (r *Runner) Resume() Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StatePaused {
		r.state = StateRunning
		r.publishLocked(StateChange{Generation: r.generation, NewState: r.state})
	}

	return r.statusLocked()
}

// StepN advances n generations immediately, regardless of pause state.
func (r *Runner) StepN(n int) (Status, error) {
	if n <= 0 {
		return Status{}, ErrInvalidStepCount
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateStopped {
		return Status{}, ErrStopped
	}
	for i := 0; i < n; i++ {
		r.advanceLocked()
	}

	return r.statusLocked(), nil
}

// Toggle flips a single cell in the live generation. Edits never advance
// the generation counter.
func (r *Runner) Toggle(x, y int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateStopped {
		return ErrStopped
	}
	if err := r.board.Toggle(x, y); err != nil {
		return err
	}
	r.publishLocked(CellsFlipped{Generation: r.generation, Cells: []life.Cell{{X: x, Y: y}}})

	return nil
}

// Reset replaces the live generation with board and zeroes the generation
// counter. The running or paused state is preserved.
func (r *Runner) Reset(board life.Automaton) (Status, error) {
	if board == nil {
		return Status{}, ErrNilBoard
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateStopped {
		return Status{}, ErrStopped
	}
	r.board = board
	r.generation = 0

	return r.statusLocked(), nil
}

func (r *Runner) tick() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRunning {
		return
	}
	r.advanceLocked()
}

// advanceLocked computes the next generation against a single snapshot of
// the current one and publishes the transition.
func (r *Runner) advanceLocked() {
	start := time.Now()
	next := r.board.NextStep()
	flipped := flippedCells(r.board, next)
	elapsed := time.Since(start)

	r.board = next
	r.generation++

	if len(flipped) > 0 {
		r.publishLocked(CellsFlipped{Generation: r.generation, Cells: flipped})
	}
	r.publishLocked(GenerationComplete{
		Generation: r.generation,
		Population: life.Population(next),
		Elapsed:    elapsed,
	})
}

func (r *Runner) shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.state = StateStopped
	r.publishLocked(StateChange{Generation: r.generation, NewState: r.state})
	r.closed = true
	close(r.events)
}

func (r *Runner) publishLocked(e Event) {
	if r.closed {
		return
	}
	select {
	case r.events <- e:
	default:
	}
}

func (r *Runner) statusLocked() Status {
	return Status{
		State:      r.state,
		Generation: r.generation,
		Population: life.Population(r.board),
		Width:      r.board.Width(),
		Height:     r.board.Height(),
	}
}

// flippedCells lists the cells whose state differs between two same-sized
// generations, in row-major order.
func flippedCells(prev, next life.Grid) []life.Cell {
	var cells []life.Cell
	for y := 0; y < prev.Height(); y++ {
		for x := 0; x < prev.Width(); x++ {
			if prev.Alive(x, y) != next.Alive(x, y) {
				cells = append(cells, life.Cell{X: x, Y: y})
			}
		}
	}

	return cells
}
