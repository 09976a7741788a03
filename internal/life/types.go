package life

import "errors"

// Cell identifies a single board position by column and row.
type Cell struct {
	X int
	Y int
}

// Grid is the read-only view of a board generation. Renderers and
// serializers consume this interface and never mutate the board.
type Grid interface {
	// Width reports the number of columns.
	Width() int
	// Height reports the number of rows.
	Height() int
	// Alive reports whether the cell at (x, y) is live. Coordinates must
	// be within [0, Width) and [0, Height).
	Alive(x, y int) bool
}

// Automaton is the full board capability: read access, point mutation, and
// generational advance. NextStep returns the successor generation as a new
// value so prior generations stay valid and immutable.
type Automaton interface {
	Grid
	Toggle(x, y int) error
	NextStep() Automaton
}

// ErrInvalidDimensions indicates board extents that are not positive.
var ErrInvalidDimensions = errors.New("board dimensions must be positive")

// ErrMalformedGrid indicates a seed grid with uneven row lengths.
var ErrMalformedGrid = errors.New("grid rows must all have the same length")

// ErrOutOfBounds indicates cell coordinates outside the board extents.
var ErrOutOfBounds = errors.New("cell coordinates are out of bounds")
