// Package tilescan partitions a 2D sparse grid into overlapping
// rectangular windows and reports per-window occupancy.
//
// # Overview
//
// tilescan models the tile-selection pass of a sliding-window
// computation: a grid of cells, mostly zero, is covered by windows of
// a nominal size whose spacing derives from a kernel size and stride.
// Each window is scanned for occupied cells, and windows holding at
// least one become "active". The typical use is deciding which tiles
// of a sparse input are worth feeding to a downstream computation.
//
// # Quick Start
//
//	import "github.com/gogrid/tilescan"
//
//	geom := tilescan.Geometry{
//	    Rows: 30, Cols: 30,
//	    KernelSize: 3, Stride: 1,
//	    TileWidth: 4, TileHeight: 7,
//	}
//
//	grid, err := tilescan.GenerateSeeded(30, 30, tilescan.Region{X0: 12, Y0: 12, X1: 20, Y1: 20}, 42)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	table, err := tilescan.ScanGrid(grid, geom)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tilescan.NewReporter(os.Stdout).Report(table)
//
// # Architecture
//
// The library is organized into:
//   - Public API: Grid, Region, Geometry, Scanner, TileTable, Reporter
//   - Internal: parallel (worker pool for the parallel scan)
//   - Commands: tilescan (report to stdout or a file), tileview
//     (interactive terminal inspector)
//
// # Coordinate System
//
// Grid cells are addressed (row, col) with the origin at the top-left.
// Tile coordinates follow the window slide: tx indexes bands of rows
// and ty indexes bands of columns, so the report order (tx ascending,
// then ty) walks the grid top-to-bottom, left-to-right. Windows at the
// right and bottom edges are clamped to the grid and may be smaller
// than the nominal tile size.
//
// # Concurrency
//
// Scanning is sequential by default. WithParallel distributes windows
// across a worker pool; results are identical either way. Grids are
// read-only during scans, and every table cell has exactly one writer.
package tilescan

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
