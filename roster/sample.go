// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"fmt"
	"math/rand/v2"
)

// SampleIDs returns n distinct entries of ids chosen uniformly at random.
// ids itself is not modified. Duplicate entries in ids are treated as distinct
// slots, so callers wanting distinct people must pass a deduplicated slice.
func SampleIDs(rng *rand.Rand, ids []PersonID, n uint64) ([]PersonID, error) {
	positions, err := samplePositions(rng, uint64(len(ids)), n)
	if err != nil {
		return nil, err
	}

	out := make([]PersonID, len(positions))
	for i, pos := range positions {
		out[i] = ids[pos]
	}
	return out, nil
}

// samplePositions draws n distinct values from [0, total) with a partial
// Fisher-Yates shuffle. Swapped slots live in a map so memory is O(n) rather
// than O(total).
func samplePositions(rng *rand.Rand, total, n uint64) ([]uint64, error) {
	if n > total {
		return nil, fmt.Errorf("%w: requested %d of %d", ErrSampleSizeExceedsPopulation, n, total)
	}

	swapped := make(map[uint64]uint64, n)
	slot := func(i uint64) uint64 {
		if v, ok := swapped[i]; ok {
			return v
		}
		return i
	}

	out := make([]uint64, n)
	for i := uint64(0); i < n; i++ {
		j := i + uint64n(rng, total-i)
		out[i] = slot(j)
		swapped[j] = slot(i)
	}
	return out, nil
}

func uint64n(rng *rand.Rand, n uint64) uint64 {
	if rng == nil {
		return rand.Uint64N(n)
	}
	return rng.Uint64N(n)
}
