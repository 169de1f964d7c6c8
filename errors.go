package tilescan

import "errors"

// Sentinel errors for grid, geometry, and scan validation.
// All validation failures wrap one of these, so callers can test with
// errors.Is regardless of the detail text.
var (
	// ErrInvalidDimensions is returned when grid rows or columns are
	// zero or negative.
	ErrInvalidDimensions = errors.New("tilescan: grid dimensions must be positive")

	// ErrInvalidKernel is returned when the kernel size or stride is
	// zero or negative.
	ErrInvalidKernel = errors.New("tilescan: kernel size and stride must be positive")

	// ErrInvalidTile is returned when the tile width or height is
	// zero or negative.
	ErrInvalidTile = errors.New("tilescan: tile dimensions must be positive")

	// ErrNonPositiveStep is returned when a tile dimension does not
	// exceed the derived overlap, which would make the window step
	// zero or negative and the tile walk non-terminating.
	ErrNonPositiveStep = errors.New("tilescan: tile dimension must exceed overlap")

	// ErrRegionBounds is returned when the non-empty region does not
	// fit inside the grid, or its corners are inverted.
	ErrRegionBounds = errors.New("tilescan: region outside grid bounds")

	// ErrGridMismatch is returned when a grid is scanned with a
	// geometry derived for different dimensions.
	ErrGridMismatch = errors.New("tilescan: grid dimensions do not match geometry")

	// ErrScannerClosed is returned by Scan once the scanner has been
	// closed.
	ErrScannerClosed = errors.New("tilescan: scanner closed")
)
