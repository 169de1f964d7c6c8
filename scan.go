package tilescan

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gogrid/tilescan/internal/parallel"
)

// Scanner computes per-window occupancy statistics for grids matching
// a fixed Geometry.
//
// Create scanners with NewScanner; the zero value is not usable. A
// sequential scanner needs no cleanup. A parallel scanner owns a
// worker pool and should be closed after use.
type Scanner struct {
	geom   Geometry
	pool   *parallel.WorkerPool
	closed atomic.Bool
}

// NewScanner creates a scanner for the given geometry.
// The geometry is validated up front, so scanning cannot fail on
// layout afterwards.
func NewScanner(geom Geometry, opts ...ScanOption) (*Scanner, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}

	o := defaultScanOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Scanner{geom: geom}
	if o.parallel {
		s.pool = parallel.NewWorkerPool(o.workers)
	}

	workers := 0
	if s.pool != nil {
		workers = s.pool.Workers()
	}
	Logger().Debug("scanner ready",
		"tiles_x", geom.TilesX(),
		"tiles_y", geom.TilesY(),
		"step_x", geom.StepX(),
		"step_y", geom.StepY(),
		"workers", workers)

	return s, nil
}

// Geometry returns the geometry the scanner was created with.
func (s *Scanner) Geometry() Geometry {
	return s.geom
}

// Scan visits every window over grid and returns the filled table.
// The grid dimensions must match the geometry. The grid is only read,
// so the same grid may be scanned concurrently from several scanners.
// Once the scanner is closed, Scan fails with ErrScannerClosed.
//
// Scanning is a pure function of grid and geometry: repeated calls
// return equal tables regardless of the worker count.
func (s *Scanner) Scan(grid *Grid) (*TileTable, error) {
	if s.closed.Load() {
		return nil, ErrScannerClosed
	}
	if grid == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrGridMismatch)
	}
	if grid.rows != s.geom.Rows || grid.cols != s.geom.Cols {
		return nil, fmt.Errorf("%w: grid %dx%d, geometry %dx%d",
			ErrGridMismatch, grid.rows, grid.cols, s.geom.Rows, s.geom.Cols)
	}

	start := time.Now()
	table := newTileTable(s.geom.TilesX(), s.geom.TilesY())

	if s.pool != nil {
		s.scanParallel(grid, table)
	} else {
		s.scanSequential(grid, table)
	}

	Logger().Info("scan complete",
		"tiles", table.TileCount(),
		"active", table.ActiveCount(),
		"elapsed", time.Since(start))

	return table, nil
}

// scanSequential visits windows in row-major order on the calling
// goroutine.
func (s *Scanner) scanSequential(grid *Grid, table *TileTable) {
	for tx := range table.tilesX {
		for ty := range table.tilesY {
			table.set(tx, ty, s.scanWindow(grid, tx, ty))
		}
	}
}

// scanParallel distributes one work item per window across the pool
// and waits for all of them. Each table cell has exactly one writer,
// so no locking is needed beyond the pool's own synchronization.
func (s *Scanner) scanParallel(grid *Grid, table *TileTable) {
	work := make([]func(), 0, table.TileCount())
	for tx := range table.tilesX {
		for ty := range table.tilesY {
			tx, ty := tx, ty // Capture for closure
			work = append(work, func() {
				table.set(tx, ty, s.scanWindow(grid, tx, ty))
			})
		}
	}
	s.pool.ExecuteAll(work)
}

// scanWindow counts the cells of the clamped window at (tx, ty).
func (s *Scanner) scanWindow(grid *Grid, tx, ty int) TileStats {
	row0, col0, row1, col1 := s.geom.Window(tx, ty)

	nonEmpty, empty := 0, 0
	for i := row0; i < row1; i++ {
		base := i * grid.cols
		for j := col0; j < col1; j++ {
			if grid.cells[base+j] != 0 {
				nonEmpty++
			} else {
				empty++
			}
		}
	}

	return TileStats{NonEmpty: nonEmpty, Empty: empty, Active: nonEmpty > 0}
}

// Close releases the worker pool, if any.
// Safe to call on sequential scanners and more than once. Scans after
// Close fail with ErrScannerClosed, sequential or not.
func (s *Scanner) Close() error {
	s.closed.Store(true)
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// ScanGrid is a convenience helper for one-shot use: it derives the
// geometry check from grid, runs a sequential scan, and returns the
// table.
func ScanGrid(grid *Grid, geom Geometry) (*TileTable, error) {
	s, err := NewScanner(geom)
	if err != nil {
		return nil, err
	}
	return s.Scan(grid)
}
