// Package life implements a bounded Game of Life board model.
//
// A Board is a fixed-size rectangular grid of binary cells. Toggle flips a
// single cell in place; NextStep derives the following generation as a brand
// new board, leaving the receiver untouched. The grid is bounded: cells
// beyond the extents are permanently dead and never wrap around to the
// opposite edge.
//
// Collaborators should depend on the narrow Grid and Automaton interfaces
// rather than the concrete Board so alternative backends can substitute.
//
// # Error Types
//
//   - ErrInvalidDimensions: board extents must be positive.
//   - ErrMalformedGrid: seed grids must be fully rectangular.
//   - ErrOutOfBounds: cell coordinates must fall inside the extents.
package life
