package tilescan

import "fmt"

// Geometry holds the independent tiling parameters and derives the
// window layout from them. Fill every field and check Validate before
// use; the zero value is not valid.
//
// Tile coordinates follow the window slide: tx indexes bands of rows
// (stepped by StepX, which derives from TileHeight), and ty indexes
// bands of columns (stepped by StepY, which derives from TileWidth).
type Geometry struct {
	// Rows and Cols are the grid dimensions in cells.
	Rows int
	Cols int

	// KernelSize and Stride describe the convolution-style window the
	// tiles mimic. Only their difference enters the layout.
	KernelSize int
	Stride     int

	// TileWidth and TileHeight are the nominal window dimensions.
	// Windows at the right and bottom edges are clamped to the grid
	// and may be smaller.
	TileWidth  int
	TileHeight int
}

// Validate checks every parameter and the derived steps. It returns an
// error wrapping one of the sentinel errors, or nil. A geometry that
// passes Validate can always be scanned without further checks.
func (g Geometry) Validate() error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, g.Rows, g.Cols)
	}
	if g.KernelSize <= 0 || g.Stride <= 0 {
		return fmt.Errorf("%w: kernel %d, stride %d", ErrInvalidKernel, g.KernelSize, g.Stride)
	}
	if g.TileWidth <= 0 || g.TileHeight <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidTile, g.TileWidth, g.TileHeight)
	}
	if g.StepX() <= 0 {
		return fmt.Errorf("%w: tile height %d, overlap %d", ErrNonPositiveStep, g.TileHeight, g.Overlap())
	}
	if g.StepY() <= 0 {
		return fmt.Errorf("%w: tile width %d, overlap %d", ErrNonPositiveStep, g.TileWidth, g.Overlap())
	}
	return nil
}

// Overlap returns the number of cells adjacent windows share.
func (g Geometry) Overlap() int {
	return g.KernelSize - g.Stride
}

// StepX returns the row advance between vertically adjacent windows.
func (g Geometry) StepX() int {
	return g.TileHeight - g.Overlap()
}

// StepY returns the column advance between horizontally adjacent windows.
func (g Geometry) StepY() int {
	return g.TileWidth - g.Overlap()
}

// TilesX returns the number of row bands needed to cover the grid.
func (g Geometry) TilesX() int {
	return (g.Rows + g.StepX() - 1) / g.StepX()
}

// TilesY returns the number of column bands needed to cover the grid.
func (g Geometry) TilesY() int {
	return (g.Cols + g.StepY() - 1) / g.StepY()
}

// TileCount returns the total number of windows.
func (g Geometry) TileCount() int {
	return g.TilesX() * g.TilesY()
}

// Window returns the half-open cell bounds [row0, row1) x [col0, col1)
// of the window at tile coordinates (tx, ty), clamped to the grid.
//
// For tile coordinates inside [0, TilesX) x [0, TilesY) the window is
// never empty. Coordinates outside that range come back degenerate
// (row0 >= row1 or col0 >= col1) with every bound still clamped to the
// grid, never out of bounds.
func (g Geometry) Window(tx, ty int) (row0, col0, row1, col1 int) {
	if tx < 0 || ty < 0 {
		return 0, 0, 0, 0
	}
	row0 = min(tx*g.StepX(), g.Rows)
	col0 = min(ty*g.StepY(), g.Cols)
	row1 = min(row0+g.TileHeight, g.Rows)
	col1 = min(col0+g.TileWidth, g.Cols)
	return row0, col0, row1, col1
}
