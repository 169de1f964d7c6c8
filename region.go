package tilescan

import "fmt"

// Region is an inclusive rectangle of grid cells, addressed the way
// the windows slide: X runs along rows, Y along columns. Cell (i, j)
// is inside when X0 <= i <= X1 and Y0 <= j <= Y1.
type Region struct {
	X0 int
	Y0 int
	X1 int
	Y1 int
}

// Validate checks that the corners are ordered and the region fits
// inside a rows x cols grid. Returns an error wrapping ErrRegionBounds
// otherwise.
func (r Region) Validate(rows, cols int) error {
	if r.X0 < 0 || r.Y0 < 0 || r.X0 > r.X1 || r.Y0 > r.Y1 || r.X1 >= rows || r.Y1 >= cols {
		return fmt.Errorf("%w: (%d,%d)-(%d,%d) in %dx%d",
			ErrRegionBounds, r.X0, r.Y0, r.X1, r.Y1, rows, cols)
	}
	return nil
}

// Contains reports whether cell (row, col) lies inside the region.
func (r Region) Contains(row, col int) bool {
	return row >= r.X0 && row <= r.X1 && col >= r.Y0 && col <= r.Y1
}

// Area returns the number of cells the region covers.
// Meaningful only for validated regions.
func (r Region) Area() int {
	return (r.X1 - r.X0 + 1) * (r.Y1 - r.Y0 + 1)
}
