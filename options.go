package tilescan

// ScanOption configures a Scanner during creation.
//
// Example:
//
//	// Default sequential scan
//	sc, err := tilescan.NewScanner(geom)
//
//	// Parallel scan across all CPUs
//	sc, err := tilescan.NewScanner(geom, tilescan.WithParallel(0))
type ScanOption func(*scanOptions)

// scanOptions holds optional configuration for Scanner creation.
type scanOptions struct {
	parallel bool
	workers  int
}

// defaultScanOptions returns the default scanner options.
func defaultScanOptions() scanOptions {
	return scanOptions{}
}

// WithParallel makes the scanner process windows on a worker pool
// instead of the calling goroutine. workers <= 0 selects GOMAXPROCS.
//
// The result is identical to a sequential scan; only the schedule
// changes. Close the Scanner to release the pool.
func WithParallel(workers int) ScanOption {
	return func(o *scanOptions) {
		o.parallel = true
		o.workers = workers
	}
}
