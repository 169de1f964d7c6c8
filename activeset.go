package tilescan

import (
	"math/bits"
	"sync/atomic"
)

// ActiveSet tracks which windows hold at least one occupied cell,
// using an atomic bitmap. One bit per window, packed into uint64 words
// in the same row-major order as the table: bit index = tx*tilesY + ty.
//
// All methods are safe for concurrent use without external locking,
// which lets parallel scan workers mark windows directly.
type ActiveSet struct {
	words  []atomic.Uint64
	tilesX int
	tilesY int
}

// NewActiveSet creates a tracker for tilesX x tilesY windows.
// All windows start inactive.
// Returns nil if either count is not positive.
func NewActiveSet(tilesX, tilesY int) *ActiveSet {
	if tilesX <= 0 || tilesY <= 0 {
		return nil
	}

	total := tilesX * tilesY
	numWords := (total + 63) / 64

	return &ActiveSet{
		words:  make([]atomic.Uint64, numWords),
		tilesX: tilesX,
		tilesY: tilesY,
	}
}

// Mark marks the window at (tx, ty) as active.
// This is a lock-free O(1) operation using atomic OR.
// Does nothing if coordinates are out of bounds.
func (s *ActiveSet) Mark(tx, ty int) {
	if tx < 0 || tx >= s.tilesX || ty < 0 || ty >= s.tilesY {
		return
	}
	idx := tx*s.tilesY + ty
	s.words[idx/64].Or(1 << (idx & 63))
}

// IsActive returns true if the window at (tx, ty) is marked active.
// Returns false for out-of-bounds coordinates.
func (s *ActiveSet) IsActive(tx, ty int) bool {
	if tx < 0 || tx >= s.tilesX || ty < 0 || ty >= s.tilesY {
		return false
	}
	idx := tx*s.tilesY + ty
	return s.words[idx/64].Load()&(1<<(idx&63)) != 0
}

// IsEmpty returns true if no window is marked active.
func (s *ActiveSet) IsEmpty() bool {
	for i := range s.words {
		if s.words[i].Load() != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of active windows.
func (s *ActiveSet) Count() int {
	count := 0
	total := s.tilesX * s.tilesY
	fullWords := total / 64

	for i := 0; i < fullWords; i++ {
		count += bits.OnesCount64(s.words[i].Load())
	}

	// Partial last word, masked to the valid bits
	if fullWords < len(s.words) {
		mask := (uint64(1) << (total % 64)) - 1
		count += bits.OnesCount64(s.words[fullWords].Load() & mask)
	}

	return count
}

// ForEachActive calls fn for each active window in row-major order
// (tx ascending, then ty ascending), the order reports are written in.
func (s *ActiveSet) ForEachActive(fn func(tx, ty int)) {
	if fn == nil {
		return
	}

	total := s.tilesX * s.tilesY

	for wordIdx := range s.words {
		word := s.words[wordIdx].Load()

		for word != 0 {
			bitIdx := bits.TrailingZeros64(word)

			idx := wordIdx*64 + bitIdx
			if idx >= total {
				// Beyond valid windows (in the partial last word)
				break
			}

			fn(idx/s.tilesY, idx%s.tilesY)

			word &^= 1 << bitIdx
		}
	}
}

// TilesX returns the number of row bands.
func (s *ActiveSet) TilesX() int {
	return s.tilesX
}

// TilesY returns the number of column bands.
func (s *ActiveSet) TilesY() int {
	return s.tilesY
}
