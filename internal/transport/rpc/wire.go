// Package rpc exposes the simulation daemon's control plane over net/rpc.
//
// The wire surface is a thin mapping onto the runner: every call delegates
// to the single serialization point and surfaces core errors verbatim, so
// remote callers see the same taxonomy local callers do.
package rpc

// ServiceName is the receiver name the daemon registers with the rpc server.
const ServiceName = "Life"

// Wire method names for rpc.Client.Call.
const (
	MethodStatus   = "Life.Status"
	MethodSnapshot = "Life.Snapshot"
	MethodToggle   = "Life.Toggle"
	MethodStep     = "Life.Step"
	MethodPause    = "Life.Pause"
	MethodResume   = "Life.Resume"
	MethodReset    = "Life.Reset"
)

// Status summarizes the runner at a point in time.
type Status struct {
	State      string
	Generation int
	Population int
	Width      int
	Height     int
}

// StatusArgs requests a status summary.
type StatusArgs struct{}

// StatusReply carries the runner summary.
type StatusReply struct {
	Status Status
}

// SnapshotArgs requests a copy of the live generation.
type SnapshotArgs struct{}

// SnapshotReply carries a row-major copy of the grid alongside the status
// it was taken at. The grid shares no storage with the daemon.
type SnapshotReply struct {
	Grid   [][]bool
	Status Status
}

// ToggleArgs flips one cell of the live generation.
type ToggleArgs struct {
	X int
	Y int
}

// ToggleReply carries the status after the edit.
type ToggleReply struct {
	Status Status
}

// StepArgs advances the simulation by Turns generations.
type StepArgs struct {
	Turns int
}

// StepReply carries the status after the advance.
type StepReply struct {
	Status Status
}

// PauseArgs suspends automatic ticking.
type PauseArgs struct{}

// PauseReply carries the status after the pause.
type PauseReply struct {
	Status Status
}

// ResumeArgs restarts automatic ticking.
type ResumeArgs struct{}

// ResumeReply carries the status after the resume.
type ResumeReply struct {
	Status Status
}

// ResetArgs replaces the live generation with a fresh board, optionally
// seeded with a named pattern stamped at its center.
type ResetArgs struct {
	Width   int
	Height  int
	Pattern string
}

// ResetReply carries the status of the replacement generation.
type ResetReply struct {
	Status Status
}
