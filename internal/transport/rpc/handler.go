package rpc

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/conway.space/internal/life/pattern"
	"github.com/louisbranch/conway.space/internal/sim"
)

const tracerName = "github.com/louisbranch/conway.space/internal/transport/rpc"

// Life handles control-plane calls against a runner. Register it with an
// rpc server under ServiceName.
type Life struct {
	runner *sim.Runner
}

// NewLife returns a handler delegating to runner.
func NewLife(runner *sim.Runner) *Life {
	return &Life{runner: runner}
}

// Status reports the runner's state, generation and population.
func (l *Life) Status(args StatusArgs, reply *StatusReply) error {
	span := startSpan(MethodStatus)
	defer span.End()

	reply.Status = wireStatus(l.runner.Status())
	return nil
}

// Snapshot copies the live generation.
func (l *Life) Snapshot(args SnapshotArgs, reply *SnapshotReply) error {
	span := startSpan(MethodSnapshot)
	defer span.End()

	grid, status := l.runner.Snapshot()
	reply.Grid = grid
	reply.Status = wireStatus(status)
	return nil
}

// Toggle flips one cell of the live generation.
func (l *Life) Toggle(args ToggleArgs, reply *ToggleReply) error {
	span := startSpan(MethodToggle,
		attribute.Int("cell.x", args.X),
		attribute.Int("cell.y", args.Y),
	)
	defer span.End()

	if err := l.runner.Toggle(args.X, args.Y); err != nil {
		return spanError(span, err)
	}
	reply.Status = wireStatus(l.runner.Status())
	return nil
}

// Step advances the simulation by args.Turns generations.
func (l *Life) Step(args StepArgs, reply *StepReply) error {
	span := startSpan(MethodStep, attribute.Int("step.turns", args.Turns))
	defer span.End()

	status, err := l.runner.StepN(args.Turns)
	if err != nil {
		return spanError(span, err)
	}
	reply.Status = wireStatus(status)
	return nil
}

// Pause suspends automatic ticking.
func (l *Life) Pause(args PauseArgs, reply *PauseReply) error {
	span := startSpan(MethodPause)
	defer span.End()

	reply.Status = wireStatus(l.runner.Pause())
	return nil
}

// Resume restarts automatic ticking.
func (l *Life) Resume(args ResumeArgs, reply *ResumeReply) error {
	span := startSpan(MethodResume)
	defer span.End()

	reply.Status = wireStatus(l.runner.Resume())
	return nil
}

// Reset replaces the live generation with a fresh board of the requested
// extents, seeded with the named pattern when one is given.
func (l *Life) Reset(args ResetArgs, reply *ResetReply) error {
	span := startSpan(MethodReset,
		attribute.Int("board.width", args.Width),
		attribute.Int("board.height", args.Height),
		attribute.String("board.pattern", args.Pattern),
	)
	defer span.End()

	board, err := pattern.Seed(args.Width, args.Height, args.Pattern)
	if err != nil {
		return spanError(span, err)
	}
	status, err := l.runner.Reset(board)
	if err != nil {
		return spanError(span, err)
	}
	reply.Status = wireStatus(status)
	return nil
}

// startSpan opens a root span for one control-plane call. net/rpc carries
// no caller context, so every call starts its own trace.
func startSpan(method string, attrs ...attribute.KeyValue) trace.Span {
	_, span := otel.Tracer(tracerName).Start(context.Background(), method)
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
	return span
}

// spanError records err on the span and passes it through. net/rpc
// flattens errors to strings on the wire, so the message must stand alone.
func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func wireStatus(status sim.Status) Status {
	return Status{
		State:      status.State.String(),
		Generation: status.Generation,
		Population: status.Population,
		Width:      status.Width,
		Height:     status.Height,
	}
}
