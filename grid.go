package tilescan

import "fmt"

// MaxCellValue is the largest value a generated cell can hold.
// Generated cells are uniform in [1, MaxCellValue]; zero means empty.
const MaxCellValue = 100

// Grid is a rectangular buffer of cell values stored in a single flat
// allocation, row-major: index = row*cols + col.
//
// A zero cell is empty. The scan phase treats the grid as read-only,
// which is what makes the parallel window scan safe without locking.
type Grid struct {
	rows  int
	cols  int
	cells []uint8
}

// NewGrid creates an all-empty grid with the given dimensions.
// Returns an error wrapping ErrInvalidDimensions if rows or cols is
// not positive.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]uint8, rows*cols),
	}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// At returns the value of cell (row, col).
// Returns 0 for out-of-bounds coordinates.
func (g *Grid) At(row, col int) uint8 {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return 0
	}
	return g.cells[row*g.cols+col]
}

// Set assigns the value of cell (row, col).
// Does nothing for out-of-bounds coordinates.
func (g *Grid) Set(row, col int, v uint8) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.cells[row*g.cols+col] = v
}

// Cells returns the raw cell data in row-major order.
// The returned slice is the grid's backing store, not a copy.
func (g *Grid) Cells() []uint8 {
	return g.cells
}

// CountNonZero returns the number of occupied cells in the whole grid.
func (g *Grid) CountNonZero() int {
	n := 0
	for _, v := range g.cells {
		if v != 0 {
			n++
		}
	}
	return n
}
