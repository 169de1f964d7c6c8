package tilescan

import (
	"errors"
	"fmt"
	"testing"
)

// referenceScan recomputes the table with plain nested loops, straight
// from the layout formulas. Scanner results are checked against it.
func referenceScan(grid *Grid, geom Geometry) []TileStats {
	stats := make([]TileStats, geom.TileCount())
	for tx := 0; tx < geom.TilesX(); tx++ {
		for ty := 0; ty < geom.TilesY(); ty++ {
			rowStart := tx * geom.StepX()
			colStart := ty * geom.StepY()
			rowEnd := min(rowStart+geom.TileHeight, geom.Rows)
			colEnd := min(colStart+geom.TileWidth, geom.Cols)

			var s TileStats
			for i := rowStart; i < rowEnd; i++ {
				for j := colStart; j < colEnd; j++ {
					if grid.At(i, j) != 0 {
						s.NonEmpty++
					} else {
						s.Empty++
					}
				}
			}
			s.Active = s.NonEmpty > 0
			stats[tx*geom.TilesY()+ty] = s
		}
	}
	return stats
}

func mustScanner(t *testing.T, geom Geometry, opts ...ScanOption) *Scanner {
	t.Helper()
	s, err := NewScanner(geom, opts...)
	if err != nil {
		t.Fatalf("NewScanner() = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustGenerate(t *testing.T, rows, cols int, region Region, seed uint64) *Grid {
	t.Helper()
	g, err := GenerateSeeded(rows, cols, region, seed)
	if err != nil {
		t.Fatalf("GenerateSeeded() = %v", err)
	}
	return g
}

// =============================================================================
// Scanner Construction Tests
// =============================================================================

func TestNewScanner_InvalidGeometry(t *testing.T) {
	geom := canonicalGeometry()
	geom.TileWidth = 2 // overlap 2 swallows the width

	_, err := NewScanner(geom)
	if err == nil {
		t.Fatal("NewScanner() = nil error, want error")
	}
	if !errors.Is(err, ErrNonPositiveStep) {
		t.Errorf("NewScanner() = %v, want errors.Is(ErrNonPositiveStep)", err)
	}
}

func TestScanner_GridMismatch(t *testing.T) {
	s := mustScanner(t, canonicalGeometry())

	small, err := NewGrid(10, 10)
	if err != nil {
		t.Fatalf("NewGrid() = %v", err)
	}

	if _, err := s.Scan(small); !errors.Is(err, ErrGridMismatch) {
		t.Errorf("Scan(10x10 grid) = %v, want errors.Is(ErrGridMismatch)", err)
	}
	if _, err := s.Scan(nil); !errors.Is(err, ErrGridMismatch) {
		t.Errorf("Scan(nil) = %v, want errors.Is(ErrGridMismatch)", err)
	}
}

// =============================================================================
// Scan Semantics Tests
// =============================================================================

func TestScan_CanonicalScenario(t *testing.T) {
	geom := canonicalGeometry()
	grid := mustGenerate(t, 30, 30, canonicalRegion(), 42)
	s := mustScanner(t, geom)

	table, err := s.Scan(grid)
	if err != nil {
		t.Fatalf("Scan() = %v", err)
	}

	if table.TilesX() != 6 || table.TilesY() != 15 {
		t.Fatalf("table = %dx%d windows, want 6x15", table.TilesX(), table.TilesY())
	}

	want := referenceScan(grid, geom)
	for tx := range table.TilesX() {
		for ty := range table.TilesY() {
			if got := table.At(tx, ty); got != want[tx*15+ty] {
				t.Errorf("At(%d, %d) = %+v, want %+v", tx, ty, got, want[tx*15+ty])
			}
		}
	}

	// The occupied block spans rows 12-20 and cols 12-20. Row bands
	// step by 5, so bands 2-4 touch it; column bands step by 2, so
	// bands 5-10 touch it.
	for tx := range table.TilesX() {
		for ty := range table.TilesY() {
			wantActive := tx >= 2 && tx <= 4 && ty >= 5 && ty <= 10
			if got := table.At(tx, ty).Active; got != wantActive {
				t.Errorf("At(%d, %d).Active = %v, want %v", tx, ty, got, wantActive)
			}
		}
	}
	if got := table.ActiveCount(); got != 18 {
		t.Errorf("ActiveCount() = %d, want 18", got)
	}
}

func TestScan_CountsInvariant(t *testing.T) {
	geom := canonicalGeometry()
	grid := mustGenerate(t, 30, 30, canonicalRegion(), 7)
	s := mustScanner(t, geom)

	table, err := s.Scan(grid)
	if err != nil {
		t.Fatalf("Scan() = %v", err)
	}

	for tx := range table.TilesX() {
		for ty := range table.TilesY() {
			row0, col0, row1, col1 := geom.Window(tx, ty)
			area := (row1 - row0) * (col1 - col0)

			st := table.At(tx, ty)
			if st.NonEmpty+st.Empty != area {
				t.Errorf("window (%d, %d): NonEmpty+Empty = %d, want area %d",
					tx, ty, st.NonEmpty+st.Empty, area)
			}
			if st.Active != (st.NonEmpty > 0) {
				t.Errorf("window (%d, %d): Active = %v with NonEmpty = %d",
					tx, ty, st.Active, st.NonEmpty)
			}
			if st.Active != table.Active().IsActive(tx, ty) {
				t.Errorf("window (%d, %d): bitmap disagrees with stats", tx, ty)
			}
		}
	}
}

func TestScan_EmptyGrid(t *testing.T) {
	geom := canonicalGeometry()
	grid, err := NewGrid(30, 30)
	if err != nil {
		t.Fatalf("NewGrid() = %v", err)
	}

	table, err := mustScanner(t, geom).Scan(grid)
	if err != nil {
		t.Fatalf("Scan() = %v", err)
	}

	if table.ActiveCount() != 0 {
		t.Errorf("ActiveCount() = %d, want 0 for an empty grid", table.ActiveCount())
	}
	if !table.Active().IsEmpty() {
		t.Error("Active().IsEmpty() = false, want true")
	}
	for tx := range table.TilesX() {
		for ty := range table.TilesY() {
			if st := table.At(tx, ty); st.NonEmpty != 0 || st.Active {
				t.Errorf("window (%d, %d) = %+v, want inactive all-empty", tx, ty, st)
			}
		}
	}
}

func TestScan_FullGrid(t *testing.T) {
	geom := canonicalGeometry()
	grid := mustGenerate(t, 30, 30, Region{X0: 0, Y0: 0, X1: 29, Y1: 29}, 3)

	table, err := mustScanner(t, geom).Scan(grid)
	if err != nil {
		t.Fatalf("Scan() = %v", err)
	}

	if table.ActiveCount() != table.TileCount() {
		t.Errorf("ActiveCount() = %d, want all %d windows active",
			table.ActiveCount(), table.TileCount())
	}
	for tx := range table.TilesX() {
		for ty := range table.TilesY() {
			if st := table.At(tx, ty); st.Empty != 0 {
				t.Errorf("window (%d, %d).Empty = %d, want 0 on a full grid", tx, ty, st.Empty)
			}
		}
	}
}

func TestScan_Idempotent(t *testing.T) {
	grid := mustGenerate(t, 30, 30, canonicalRegion(), 11)
	s := mustScanner(t, canonicalGeometry())

	a, err := s.Scan(grid)
	if err != nil {
		t.Fatalf("first Scan() = %v", err)
	}
	b, err := s.Scan(grid)
	if err != nil {
		t.Fatalf("second Scan() = %v", err)
	}

	for tx := range a.TilesX() {
		for ty := range a.TilesY() {
			if a.At(tx, ty) != b.At(tx, ty) {
				t.Errorf("window (%d, %d) differs between runs: %+v vs %+v",
					tx, ty, a.At(tx, ty), b.At(tx, ty))
			}
		}
	}
}

// =============================================================================
// Parallel Scan Tests
// =============================================================================

func TestScan_ParallelMatchesSequential(t *testing.T) {
	geom := Geometry{Rows: 97, Cols: 103, KernelSize: 3, Stride: 1, TileWidth: 8, TileHeight: 6}
	grid := mustGenerate(t, 97, 103, Region{X0: 30, Y0: 40, X1: 70, Y1: 90}, 13)

	seqTable, err := mustScanner(t, geom).Scan(grid)
	if err != nil {
		t.Fatalf("sequential Scan() = %v", err)
	}

	for _, workers := range []int{1, 2, 4, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			par := mustScanner(t, geom, WithParallel(workers))

			parTable, err := par.Scan(grid)
			if err != nil {
				t.Fatalf("parallel Scan() = %v", err)
			}

			for tx := range seqTable.TilesX() {
				for ty := range seqTable.TilesY() {
					if seqTable.At(tx, ty) != parTable.At(tx, ty) {
						t.Fatalf("window (%d, %d): parallel %+v, sequential %+v",
							tx, ty, parTable.At(tx, ty), seqTable.At(tx, ty))
					}
				}
			}
			if seqTable.ActiveCount() != parTable.ActiveCount() {
				t.Errorf("ActiveCount: parallel %d, sequential %d",
					parTable.ActiveCount(), seqTable.ActiveCount())
			}
		})
	}
}

func TestScanner_CloseSequential(t *testing.T) {
	s := mustScanner(t, canonicalGeometry())
	if err := s.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
	// Second close must be a no-op.
	if err := s.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
}

func TestScanner_CloseParallel(t *testing.T) {
	s, err := NewScanner(canonicalGeometry(), WithParallel(2))
	if err != nil {
		t.Fatalf("NewScanner() = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
}

func TestScanner_ScanAfterClose(t *testing.T) {
	grid := mustGenerate(t, 30, 30, canonicalRegion(), 42)

	modes := []struct {
		name string
		opts []ScanOption
	}{
		{"sequential", nil},
		{"parallel", []ScanOption{WithParallel(2)}},
	}

	for _, m := range modes {
		t.Run(m.name, func(t *testing.T) {
			s := mustScanner(t, canonicalGeometry(), m.opts...)

			table, err := s.Scan(grid)
			if err != nil {
				t.Fatalf("Scan() before Close = %v", err)
			}
			if got := table.ActiveCount(); got != 18 {
				t.Fatalf("ActiveCount() = %d, want 18", got)
			}

			if err := s.Close(); err != nil {
				t.Fatalf("Close() = %v", err)
			}

			// Must refuse the scan, not hand back a zeroed table.
			table, err = s.Scan(grid)
			if !errors.Is(err, ErrScannerClosed) {
				t.Errorf("Scan() after Close = %v, want errors.Is(ErrScannerClosed)", err)
			}
			if table != nil {
				t.Errorf("Scan() after Close returned a table with %d active windows, want nil",
					table.ActiveCount())
			}
		})
	}
}

// =============================================================================
// Convenience API Tests
// =============================================================================

func TestScanGrid(t *testing.T) {
	geom := canonicalGeometry()
	grid := mustGenerate(t, 30, 30, canonicalRegion(), 42)

	table, err := ScanGrid(grid, geom)
	if err != nil {
		t.Fatalf("ScanGrid() = %v", err)
	}

	want := referenceScan(grid, geom)
	for tx := range table.TilesX() {
		for ty := range table.TilesY() {
			if got := table.At(tx, ty); got != want[tx*geom.TilesY()+ty] {
				t.Errorf("At(%d, %d) = %+v, want %+v", tx, ty, got, want[tx*geom.TilesY()+ty])
			}
		}
	}
}

func TestTileTable_AtOutOfBounds(t *testing.T) {
	grid := mustGenerate(t, 30, 30, canonicalRegion(), 1)
	table, err := mustScanner(t, canonicalGeometry()).Scan(grid)
	if err != nil {
		t.Fatalf("Scan() = %v", err)
	}

	zero := TileStats{}
	coords := [][2]int{{-1, 0}, {0, -1}, {6, 0}, {0, 15}}
	for _, c := range coords {
		if got := table.At(c[0], c[1]); got != zero {
			t.Errorf("At(%d, %d) = %+v, want zero TileStats", c[0], c[1], got)
		}
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkScan(b *testing.B) {
	cases := []struct {
		name string
		geom Geometry
	}{
		{"30x30", canonicalGeometry()},
		{"256x256", Geometry{Rows: 256, Cols: 256, KernelSize: 3, Stride: 1, TileWidth: 16, TileHeight: 16}},
		{"1024x1024", Geometry{Rows: 1024, Cols: 1024, KernelSize: 3, Stride: 1, TileWidth: 32, TileHeight: 32}},
	}

	for _, c := range cases {
		region := Region{X0: c.geom.Rows / 4, Y0: c.geom.Cols / 4, X1: c.geom.Rows / 2, Y1: c.geom.Cols / 2}
		grid, err := GenerateSeeded(c.geom.Rows, c.geom.Cols, region, 1)
		if err != nil {
			b.Fatal(err)
		}

		b.Run("sequential/"+c.name, func(b *testing.B) {
			s, err := NewScanner(c.geom)
			if err != nil {
				b.Fatal(err)
			}
			defer s.Close()

			b.ReportAllocs()
			for b.Loop() {
				if _, err := s.Scan(grid); err != nil {
					b.Fatal(err)
				}
			}
		})

		b.Run("parallel/"+c.name, func(b *testing.B) {
			s, err := NewScanner(c.geom, WithParallel(0))
			if err != nil {
				b.Fatal(err)
			}
			defer s.Close()

			b.ReportAllocs()
			for b.Loop() {
				if _, err := s.Scan(grid); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
