// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package roster holds a fixed population and the opaque IDs that address it.

# Rosters

A Roster is an ordered list of people built once and never reordered:

	r := roster.FromNames([]string{"Ada", "Brutus", "Cato"})

Every roster carries a UUID identity. A PersonID is a 64-bit position plus that
identity, so an ID issued by one roster is never equal to an ID issued by
another and lookups against the wrong roster fail with ErrForeignID.

Rosters loaded from storage keep their identity with WithID:

	r := roster.New(people, roster.WithID(storedID))

# Sampling

Choice draws one person uniformly at random. Sample draws n distinct people
uniformly over all n-subsets using a partial Fisher-Yates shuffle:

	ids, err := r.Sample(5)
	if errors.Is(err, roster.ErrSampleSizeExceedsPopulation) {
		// n > r.Len()
	}

SampleIDs applies the same draw to an arbitrary slice of IDs, which is how a
petition group is drawn from a motion's electors.

Pass WithRand to make draws reproducible in tests.
*/
package roster
