// Package pattern provides a small library of named seed patterns and
// helpers for stamping them onto a board through its public surface.
package pattern

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/louisbranch/conway.space/internal/life"
)

// ErrUnknownPattern indicates a name with no registered pattern.
var ErrUnknownPattern = errors.New("unknown pattern name")

// Pattern is a named set of live cells relative to a top-left origin.
type Pattern struct {
	Name  string
	Cells []life.Cell
}

// Width reports the number of columns the pattern spans.
func (p Pattern) Width() int {
	width := 0
	for _, c := range p.Cells {
		if c.X+1 > width {
			width = c.X + 1
		}
	}

	return width
}

// Height reports the number of rows the pattern spans.
func (p Pattern) Height() int {
	height := 0
	for _, c := range p.Cells {
		if c.Y+1 > height {
			height = c.Y + 1
		}
	}

	return height
}

var (
	// Glider travels one cell down-right every four generations.
	Glider = Pattern{
		Name: "glider",
		Cells: []life.Cell{
			{X: 1, Y: 0},
			{X: 2, Y: 1},
			{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2},
		},
	}

	// Blinker oscillates between a horizontal and a vertical bar.
	Blinker = Pattern{
		Name: "blinker",
		Cells: []life.Cell{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
		},
	}

	// Block is the smallest still life.
	Block = Pattern{
		Name: "block",
		Cells: []life.Cell{
			{X: 0, Y: 0}, {X: 1, Y: 0},
			{X: 0, Y: 1}, {X: 1, Y: 1},
		},
	}

	// Toad oscillates with period two.
	Toad = Pattern{
		Name: "toad",
		Cells: []life.Cell{
			{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
			{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1},
		},
	}
)

var registry = map[string]Pattern{
	Glider.Name:  Glider,
	Blinker.Name: Blinker,
	Block.Name:   Block,
	Toad.Name:    Toad,
}

// Lookup finds a registered pattern by name, ignoring case. It returns
// ErrUnknownPattern when no pattern goes by the given name.
func Lookup(name string) (Pattern, error) {
	p, ok := registry[strings.ToLower(name)]
	if !ok {
		return Pattern{}, fmt.Errorf("%q: %w", name, ErrUnknownPattern)
	}

	return p, nil
}

// Names lists the registered pattern names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Stamp sets the pattern's cells live on a with the pattern origin at
// (x, y). Cells that are already live stay live. The fit is checked up
// front, so a rejected stamp never leaves a partial pattern behind.
func Stamp(a life.Automaton, p Pattern, x, y int) error {
	if x < 0 || y < 0 || x+p.Width() > a.Width() || y+p.Height() > a.Height() {
		return fmt.Errorf("stamp %s at (%d, %d): %w", p.Name, x, y, life.ErrOutOfBounds)
	}

	for _, c := range p.Cells {
		if a.Alive(x+c.X, y+c.Y) {
			continue
		}
		if err := a.Toggle(x+c.X, y+c.Y); err != nil {
			return err
		}
	}

	return nil
}

// Seed builds a board with the named pattern stamped at its center. An
// empty name yields an all-dead board.
func Seed(width, height int, name string) (*life.Board, error) {
	b, err := life.New(width, height)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return b, nil
	}

	p, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if err := Stamp(b, p, (width-p.Width())/2, (height-p.Height())/2); err != nil {
		return nil, err
	}

	return b, nil
}
