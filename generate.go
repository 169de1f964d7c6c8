package tilescan

import "math/rand/v2"

// NewRand returns a deterministic random source for the given seed.
// Two sources created with the same seed produce identical streams.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

// Generate builds a rows x cols grid whose cells inside region hold a
// uniform random value in [1, MaxCellValue] drawn from rng. All other
// cells are zero.
//
// Region cells are filled in row-major order, so a given rng state
// always produces the same grid. The caller owns rng; no package-level
// random state is consulted.
func Generate(rows, cols int, region Region, rng *rand.Rand) (*Grid, error) {
	grid, err := NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}
	if err := region.Validate(rows, cols); err != nil {
		return nil, err
	}

	for i := region.X0; i <= region.X1; i++ {
		base := i * cols
		for j := region.Y0; j <= region.Y1; j++ {
			grid.cells[base+j] = uint8(rng.IntN(MaxCellValue) + 1)
		}
	}

	Logger().Debug("grid generated",
		"rows", rows,
		"cols", cols,
		"occupied", region.Area())

	return grid, nil
}

// GenerateSeeded is a convenience wrapper around Generate that derives
// the random source from seed with NewRand.
func GenerateSeeded(rows, cols int, region Region, seed uint64) (*Grid, error) {
	return Generate(rows, cols, region, NewRand(seed))
}
