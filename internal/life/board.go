package life

// Board is a bounded rectangular grid of cells. The zero value is not
// usable; construct boards with New or FromGrid.
type Board struct {
	width  int
	height int
	cells  [][]bool
}

// New returns an all-dead board with the given extents. It returns
// ErrInvalidDimensions when width or height is not positive.
func New(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Board{
		width:  width,
		height: height,
		cells:  newCells(width, height),
	}, nil
}

// FromGrid returns a board seeded from grid, deriving the extents from the
// row count and the first row's length. The grid is copied in full; the
// board never aliases the caller's backing storage.
//
// It returns ErrInvalidDimensions when grid has no rows or no columns, and
// ErrMalformedGrid when any row length differs from the first row's.
func FromGrid(grid [][]bool) (*Board, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, ErrInvalidDimensions
	}

	width := len(grid[0])
	cells := make([][]bool, len(grid))
	for y, row := range grid {
		if len(row) != width {
			return nil, ErrMalformedGrid
		}
		cells[y] = make([]bool, width)
		copy(cells[y], row)
	}

	return &Board{
		width:  width,
		height: len(grid),
		cells:  cells,
	}, nil
}

// Width reports the number of columns.
func (b *Board) Width() int { return b.width }

// Height reports the number of rows.
func (b *Board) Height() int { return b.height }

// Alive reports whether the cell at (x, y) is live.
func (b *Board) Alive(x, y int) bool { return b.cells[y][x] }

// Toggle flips the cell at (x, y) between live and dead. It is the only
// in-place mutation on a board. Coordinates outside the extents return
// ErrOutOfBounds; they are never clamped or wrapped, since a silently moved
// edit would corrupt the simulation.
func (b *Board) Toggle(x, y int) error {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return ErrOutOfBounds
	}

	b.cells[y][x] = !b.cells[y][x]
	return nil
}

// NextStep computes the next generation and returns it as a new board. The
// receiver is never mutated, so superseded generations can be retained and
// inspected safely.
//
// # Rule
//
// Each cell's fate depends on its live neighbor count n in the current
// generation:
//
//   - a live cell survives when n is 2 or 3, otherwise it dies
//   - a dead cell becomes live exactly when n is 3
//
// # Snapshot Semantics
//
// Every cell is evaluated against the pre-transition grid only. No update
// observes another cell's next-generation value, regardless of evaluation
// order.
//
// # Bounds
//
// The board edge is a hard boundary. Cells beyond it count as dead, so
// corner cells see at most 3 neighbors and edge cells at most 5.
func (b *Board) NextStep() Automaton {
	next := &Board{
		width:  b.width,
		height: b.height,
		cells:  newCells(b.width, b.height),
	}

	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			n := b.neighborCount(x, y)
			if b.cells[y][x] {
				next.cells[y][x] = n == 2 || n == 3
			} else {
				next.cells[y][x] = n == 3
			}
		}
	}

	return next
}

// neighborCount returns the number of live cells in the Moore neighborhood
// of (x, y), excluding the cell itself. The scan range is clamped to the
// board extents rather than wrapping.
func (b *Board) neighborCount(x, y int) int {
	count := 0
	for ny := max(y-1, 0); ny <= min(y+1, b.height-1); ny++ {
		for nx := max(x-1, 0); nx <= min(x+1, b.width-1); nx++ {
			if nx == x && ny == y {
				continue
			}
			if b.cells[ny][nx] {
				count++
			}
		}
	}

	return count
}

func newCells(width, height int) [][]bool {
	cells := make([][]bool, height)
	for y := range cells {
		cells[y] = make([]bool, width)
	}
	return cells
}
