package tilescan

import (
	"fmt"
	"io"
)

// StatsHeader is the section line written before the per-tile report.
const StatsHeader = "Tile statistics (active tiles and pixel counts):"

// Reporter writes tile statistics as plain text.
// Any io.Writer works as the sink: stdout, a file, or a buffer.
type Reporter struct {
	w io.Writer
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Report writes the section header followed by one line per active
// window in row-major order (tx ascending, then ty ascending):
//
//	Tile (<tx>, <ty>) non-empty: <N>, empty: <M>
//
// Inactive windows are suppressed. A table with no active windows
// still gets the header.
func (r *Reporter) Report(table *TileTable) error {
	if _, err := fmt.Fprintln(r.w, StatsHeader); err != nil {
		return err
	}

	var err error
	table.ForEachActive(func(tx, ty int, s TileStats) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(r.w, "Tile (%d, %d) non-empty: %d, empty: %d\n",
			tx, ty, s.NonEmpty, s.Empty)
	})
	return err
}
