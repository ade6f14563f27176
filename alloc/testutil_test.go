package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// checkInvariants verifies spec.md §8's universal invariants against the
// arena's current state: physical-list walk reaches both sentinels, every
// physical link is reciprocal, sizes sum to N-2, no two adjacent
// non-sentinel cells are both free, and the free-list walk visits exactly
// the free cells the physical walk finds.
func checkInvariants(t testing.TB, a *Arena) {
	t.Helper()

	last := cellIndex(a.n - 1)

	// 1 & 3: forward walk from 0 reaches N-1, indices strictly increasing.
	seen := 0
	prevIdx := cellIndex(0)
	sumSizes := 0
	freeCount := 0
	for b := a.next(cellIndex(0)); ; b = a.next(b) {
		require.Greater(t, int(b), int(prevIdx), "physical indices must strictly increase")

		// 2: reciprocal links.
		require.Equal(t, prevIdx, a.prevIndex(b), "b.prev must equal the index we arrived from")
		prevIdx = b

		if b != last {
			sumSizes += a.sizeOf(b)
		}
		if a.isFree(b) {
			freeCount++
		}

		seen++
		require.LessOrEqual(t, seen, a.n, "physical walk did not terminate at the tail sentinel")
		if b == last {
			break
		}
	}
	require.Equal(t, last, prevIdx)

	// 3: sum of non-sentinel cell sizes equals N-2.
	require.Equal(t, a.n-2, sumSizes)

	// 4: no two adjacent non-sentinel cells are both free.
	for b := a.next(cellIndex(0)); b != last; b = a.next(b) {
		n := a.next(b)
		if n != last && a.isFree(b) {
			require.False(t, a.isFree(n), "cells %d and %d are adjacent and both free", b, n)
		}
	}

	// 8: sentinels never report free.
	require.False(t, a.isFree(0))
	require.False(t, a.isFree(last))

	// 5 & 7: free-list walk visits exactly the free cells found above.
	walked := 0
	for b := a.nextFree(cellIndex(0)); b != 0; b = a.nextFree(b) {
		require.True(t, a.isFree(b), "cell %d is on the free list but not marked free", b)
		walked++
		require.LessOrEqual(t, walked, a.n, "free list walk did not terminate")
	}
	require.Equal(t, freeCount, walked)
}

// newTestArena builds an Arena over a plain heap slice of the given byte
// size, failing the test on construction error.
func newTestArena(t testing.TB, bytes int) *Arena {
	t.Helper()
	a, err := New(make([]byte, bytes))
	require.NoError(t, err)
	return a
}
