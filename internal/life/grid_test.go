package life

import (
	"reflect"
	"testing"
)

func TestPopulation(t *testing.T) {
	b := mustBoard(t, 4, 3, []Cell{{0, 0}, {3, 0}, {1, 2}})

	if got := Population(b); got != 3 {
		t.Errorf("Population() = %d, want 3", got)
	}
}

func TestAliveCells_RowMajorOrder(t *testing.T) {
	// Toggle in scrambled order; AliveCells reports row-major regardless.
	b := mustBoard(t, 4, 3, []Cell{{2, 2}, {0, 0}, {3, 1}, {1, 1}})

	want := []Cell{{0, 0}, {1, 1}, {3, 1}, {2, 2}}
	if got := AliveCells(b); !reflect.DeepEqual(got, want) {
		t.Errorf("AliveCells() = %v, want %v", got, want)
	}
}

func TestAliveCells_EmptyBoard(t *testing.T) {
	b, err := New(3, 3)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := AliveCells(b); got != nil {
		t.Errorf("AliveCells() = %v, want nil", got)
	}
}

func TestExport_RoundTrip(t *testing.T) {
	b := mustBoard(t, 3, 2, []Cell{{1, 0}, {2, 1}})

	grid := Export(b)
	rebuilt, err := FromGrid(grid)
	if err != nil {
		t.Fatalf("FromGrid() error = %v", err)
	}

	if !reflect.DeepEqual(Export(rebuilt), grid) {
		t.Errorf("rebuilt grid = %v, want %v", Export(rebuilt), grid)
	}
}

func TestExport_SharesNoStorage(t *testing.T) {
	b := mustBoard(t, 3, 2, []Cell{{1, 0}})

	grid := Export(b)
	grid[0][1] = false
	grid[1][2] = true

	if !b.Alive(1, 0) {
		t.Error("Alive(1, 0) = false after export mutation, want true")
	}
	if b.Alive(2, 1) {
		t.Error("Alive(2, 1) = true after export mutation, want false")
	}
}
