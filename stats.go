package tilescan

// TileStats holds the occupancy counts for a single window.
//
// NonEmpty plus Empty always equals the clamped window area, and
// Active is true exactly when NonEmpty is positive.
type TileStats struct {
	// NonEmpty is the number of occupied cells in the window.
	NonEmpty int

	// Empty is the number of zero cells in the window.
	Empty int

	// Active indicates whether the window holds any occupied cell.
	Active bool
}

// TileTable is the result of a scan: one TileStats per window, stored
// in a flat slice in row-major order (index = tx*tilesY + ty), plus an
// ActiveSet bitmap for counting and ordered traversal of active
// windows.
//
// Thread safety: during a scan each cell is written by exactly one
// goroutine; after the scan returns, the table is read-only.
type TileTable struct {
	tilesX int
	tilesY int
	stats  []TileStats
	active *ActiveSet
}

// newTileTable creates a zeroed table for tilesX x tilesY windows.
func newTileTable(tilesX, tilesY int) *TileTable {
	return &TileTable{
		tilesX: tilesX,
		tilesY: tilesY,
		stats:  make([]TileStats, tilesX*tilesY),
		active: NewActiveSet(tilesX, tilesY),
	}
}

// set stores the stats for the window at (tx, ty) and keeps the active
// bitmap in sync. Coordinates must be in range.
func (t *TileTable) set(tx, ty int, s TileStats) {
	t.stats[tx*t.tilesY+ty] = s
	if s.Active {
		t.active.Mark(tx, ty)
	}
}

// At returns the stats for the window at (tx, ty).
// Returns the zero TileStats for out-of-bounds coordinates.
func (t *TileTable) At(tx, ty int) TileStats {
	if tx < 0 || tx >= t.tilesX || ty < 0 || ty >= t.tilesY {
		return TileStats{}
	}
	return t.stats[tx*t.tilesY+ty]
}

// TilesX returns the number of row bands.
func (t *TileTable) TilesX() int {
	return t.tilesX
}

// TilesY returns the number of column bands.
func (t *TileTable) TilesY() int {
	return t.tilesY
}

// TileCount returns the total number of windows.
func (t *TileTable) TileCount() int {
	return len(t.stats)
}

// ActiveCount returns the number of active windows.
func (t *TileTable) ActiveCount() int {
	return t.active.Count()
}

// Active returns the underlying active bitmap.
func (t *TileTable) Active() *ActiveSet {
	return t.active
}

// ForEachActive calls fn for each active window in row-major order
// (tx ascending, then ty ascending) with its stats.
func (t *TileTable) ForEachActive(fn func(tx, ty int, s TileStats)) {
	t.active.ForEachActive(func(tx, ty int) {
		fn(tx, ty, t.stats[tx*t.tilesY+ty])
	})
}
