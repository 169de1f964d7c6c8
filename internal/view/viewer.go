// Package view implements the interactive terminal inspector for grid
// occupancy scans.
//
// The viewer renders the generated grid one terminal cell per grid
// cell, highlights the window under the cursor, and shows the window's
// counts in a status line. It drives any tcell.Screen, including the
// simulation screen used in tests.
package view

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogrid/tilescan"
)

// Grid placement on the screen. One column margin keeps the left edge
// readable on terminals that clip column zero.
const (
	originX = 1
	originY = 1
)

var (
	styleDefault = tcell.StyleDefault
	styleEmpty   = tcell.StyleDefault.Foreground(tcell.ColorGray)

	// Backdrop for cells lying under at least one active window, so the
	// active footprint reads at a glance.
	bgActive = tcell.NewRGBColor(25, 25, 60)
)

// Viewer renders a generated grid and its scan results on a tcell
// screen, with a movable window cursor for inspecting per-tile counts.
type Viewer struct {
	screen  tcell.Screen
	scanner *tilescan.Scanner
	region  tilescan.Region

	grid  *tilescan.Grid
	table *tilescan.TileTable
	seed  uint64

	curTX int
	curTY int
}

// New creates a viewer on screen for the given layout, generates the
// initial grid from seed, and scans it. The screen must already be
// initialized; the viewer never calls Init or Fini.
func New(screen tcell.Screen, geom tilescan.Geometry, region tilescan.Region, seed uint64) (*Viewer, error) {
	scanner, err := tilescan.NewScanner(geom)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		screen:  screen,
		scanner: scanner,
		region:  region,
	}
	if err := v.reseed(seed); err != nil {
		scanner.Close()
		return nil, err
	}

	return v, nil
}

// reseed regenerates the grid from seed and rescans it.
func (v *Viewer) reseed(seed uint64) error {
	geom := v.scanner.Geometry()

	grid, err := tilescan.Generate(geom.Rows, geom.Cols, v.region, tilescan.NewRand(seed))
	if err != nil {
		return err
	}
	table, err := v.scanner.Scan(grid)
	if err != nil {
		return err
	}

	v.seed = seed
	v.grid = grid
	v.table = table
	return nil
}

// Run draws the initial state and processes events until quit.
func (v *Viewer) Run() error {
	v.draw()
	for {
		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return nil
			}
		case *tcell.EventResize:
			v.screen.Sync()
		}
		v.draw()
	}
}

// Close releases the scanner.
func (v *Viewer) Close() error {
	return v.scanner.Close()
}

// handleKey moves the cursor, reseeds, or quits.
// Returns false when the viewer should exit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		v.moveCursor(-1, 0)
	case tcell.KeyDown:
		v.moveCursor(1, 0)
	case tcell.KeyLeft:
		v.moveCursor(0, -1)
	case tcell.KeyRight:
		v.moveCursor(0, 1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'k':
			v.moveCursor(-1, 0)
		case 'j':
			v.moveCursor(1, 0)
		case 'h':
			v.moveCursor(0, -1)
		case 'l':
			v.moveCursor(0, 1)
		case 'r':
			if err := v.reseed(uint64(time.Now().UnixNano())); err != nil {
				tilescan.Logger().Warn("reseed failed", "err", err)
			}
		}
	}
	return true
}

// moveCursor shifts the window cursor by whole bands, clamped to the
// table bounds. tx follows rows (j/k), ty follows columns (h/l).
func (v *Viewer) moveCursor(dtx, dty int) {
	if tx := v.curTX + dtx; tx >= 0 && tx < v.table.TilesX() {
		v.curTX = tx
	}
	if ty := v.curTY + dty; ty >= 0 && ty < v.table.TilesY() {
		v.curTY = ty
	}
}

// draw repaints the whole screen: grid, cursor overlay, status lines.
func (v *Viewer) draw() {
	v.screen.Clear()
	v.drawGrid()
	v.drawCursorWindow()
	v.drawStatus()
	v.screen.Show()
}

// drawGrid renders one terminal cell per grid cell: a dot for empty
// cells, a block shaded by value for occupied ones. Cells under an
// active window get the active backdrop.
func (v *Viewer) drawGrid() {
	geom := v.scanner.Geometry()
	covered := v.coverage()
	for i := 0; i < geom.Rows; i++ {
		for j := 0; j < geom.Cols; j++ {
			x := originX + j
			y := originY + i

			ch := '·'
			style := styleEmpty
			if val := v.grid.At(i, j); val != 0 {
				// Scale brightness with the cell value
				shade := int32(100 + int(val)*155/tilescan.MaxCellValue)
				ch = '█'
				style = styleDefault.Foreground(tcell.NewRGBColor(shade, shade, shade))
			}
			if covered[i*geom.Cols+j] {
				style = style.Background(bgActive)
			}
			v.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

// coverage flags every cell lying under at least one active window.
func (v *Viewer) coverage() []bool {
	geom := v.scanner.Geometry()
	covered := make([]bool, geom.Rows*geom.Cols)
	v.table.ForEachActive(func(tx, ty int, _ tilescan.TileStats) {
		row0, col0, row1, col1 := geom.Window(tx, ty)
		for i := row0; i < row1; i++ {
			base := i * geom.Cols
			for j := col0; j < col1; j++ {
				covered[base+j] = true
			}
		}
	})
	return covered
}

// drawCursorWindow overlays the cursor window in reverse video.
func (v *Viewer) drawCursorWindow() {
	row0, col0, row1, col1 := v.scanner.Geometry().Window(v.curTX, v.curTY)
	for i := row0; i < row1; i++ {
		for j := col0; j < col1; j++ {
			x := originX + j
			y := originY + i
			ch, comb, style, _ := v.screen.GetContent(x, y)
			v.screen.SetContent(x, y, ch, comb, style.Reverse(true))
		}
	}
}

// drawStatus writes the inspection lines under the grid.
func (v *Viewer) drawStatus() {
	geom := v.scanner.Geometry()
	s := v.table.At(v.curTX, v.curTY)
	row0, col0, row1, col1 := geom.Window(v.curTX, v.curTY)

	state := "empty"
	if s.Active {
		state = "active"
	}

	line := fmt.Sprintf("tile (%d, %d) %s  non-empty %d  empty %d  rows %d-%d  cols %d-%d",
		v.curTX, v.curTY, state, s.NonEmpty, s.Empty, row0, row1-1, col0, col1-1)
	v.drawText(originX, originY+geom.Rows+1, line)

	line = fmt.Sprintf("grid %dx%d  tiles %dx%d  active %d/%d  occupied %d  seed %d",
		geom.Rows, geom.Cols, v.table.TilesX(), v.table.TilesY(),
		v.table.ActiveCount(), v.table.TileCount(), v.grid.CountNonZero(), v.seed)
	v.drawText(originX, originY+geom.Rows+2, line)

	v.drawText(originX, originY+geom.Rows+3, "hjkl/arrows move  r reseed  q quit")
}

// drawText writes an ASCII string starting at (x, y).
func (v *Viewer) drawText(x, y int, text string) {
	for i, r := range text {
		v.screen.SetContent(x+i, y, r, nil, styleDefault)
	}
}
