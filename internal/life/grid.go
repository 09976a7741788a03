package life

// Population returns the number of live cells in g.
func Population(g Grid) int {
	count := 0
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.Alive(x, y) {
				count++
			}
		}
	}

	return count
}

// AliveCells returns the coordinates of every live cell in g, ordered by
// row and then column.
func AliveCells(g Grid) []Cell {
	var cells []Cell
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.Alive(x, y) {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}

	return cells
}

// Export copies g into a row-major boolean grid. The result shares no
// storage with g, so callers may edit it and rebuild a board with FromGrid.
func Export(g Grid) [][]bool {
	grid := make([][]bool, g.Height())
	for y := range grid {
		grid[y] = make([]bool, g.Width())
		for x := range grid[y] {
			grid[y][x] = g.Alive(x, y)
		}
	}

	return grid
}
