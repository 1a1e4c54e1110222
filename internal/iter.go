package internal

import (
	"iter"
	"slices"
)

// IterPermutations iterates over every ordering of items, in Heap's
// algorithm order. Each yielded slice is a fresh copy.
func IterPermutations[T any](items []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		perm := slices.Clone(items)
		count := make([]int, len(perm))

		if !yield(slices.Clone(perm)) {
			return
		}

		for n := 1; n < len(perm); {
			if count[n] < n {
				if n%2 == 0 {
					perm[0], perm[n] = perm[n], perm[0]
				} else {
					perm[count[n]], perm[n] = perm[n], perm[count[n]]
				}
				if !yield(slices.Clone(perm)) {
					return // Stop if the consumer stops
				}
				count[n]++
				n = 1
			} else {
				count[n] = 0
				n++
			}
		}
	}
}
