package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeNullToZeroIsNoOp(t *testing.T) {
	a := newTestArena(t, 8192)
	assert.Equal(t, Null, a.Resize(Null, 0))
	checkInvariants(t, a)
}

func TestResizeNullToPositiveEqualsAllocate(t *testing.T) {
	a := newTestArena(t, 8192)
	p := a.Resize(Null, 64)
	assert.NotEqual(t, Null, p)
	assert.GreaterOrEqual(t, len(a.Bytes(p)), 64)
	checkInvariants(t, a)
}

func TestResizeToZeroEqualsFree(t *testing.T) {
	a := newTestArena(t, 8192)
	p := a.Allocate(64)
	require.NotEqual(t, Null, p)

	got := a.Resize(p, 0)
	assert.Equal(t, Null, got)
	checkInvariants(t, a)

	// the cell is back on the free list and coalesced with its neighbor.
	free := a.nextFree(0)
	assert.Equal(t, a.n-2, a.sizeOf(free))
}

func TestResizeNearSameReturnsSamePointer(t *testing.T) {
	a := newTestArena(t, 8192)
	p := a.Allocate(60)
	require.NotEqual(t, Null, p)
	current := a.sizeOf(cellOf(p))

	// k == current and k == current-1 both fall in the near-same window.
	exact := current*cellSize - headerOverhead
	got := a.Resize(p, exact)
	assert.Equal(t, p, got)
}

func TestResizeShrinkMergesWithFreeNext(t *testing.T) {
	a := newTestArena(t, 8192)
	// allocated first, so it ends up adjacent to the tail sentinel and
	// directly above (physically after) target.
	above := a.Allocate(200)
	target := a.Allocate(100)
	require.NotEqual(t, Null, above)
	require.NotEqual(t, Null, target)
	a.Free(above) // target's next neighbor is now free

	fillPayload(a, target, 'a')
	newP := a.Resize(target, 20)
	require.Equal(t, target, newP, "shrink merging with a free next neighbor keeps the original pointer")
	checkInvariants(t, a)
	assertPayloadFilled(t, a, newP, 20, 'a')
}

func TestResizeShrinkMergesWithFreePrev(t *testing.T) {
	a := newTestArena(t, 8192)
	// allocated first, so its next neighbor is always the tail sentinel
	// (never free); the cell allocated after it becomes its prev neighbor.
	target := a.Allocate(100)
	below := a.Allocate(200)
	require.NotEqual(t, Null, target)
	require.NotEqual(t, Null, below)
	a.Free(below) // target's prev neighbor is now free, next is still the tail sentinel

	fillPayload(a, target, 'b')
	newP := a.Resize(target, 20)
	require.NotEqual(t, Null, newP)
	checkInvariants(t, a)
	assertPayloadFilled(t, a, newP, 20, 'b')
}

func TestResizeShrinkWithNoFreeNeighborsSplitsOffFreeCell(t *testing.T) {
	a := newTestArena(t, 8192)
	p1 := a.Allocate(100)
	p2 := a.Allocate(200)
	p3 := a.Allocate(50)
	require.NotEqual(t, Null, p1)
	require.NotEqual(t, Null, p2)
	require.NotEqual(t, Null, p3)
	_, _ = p1, p3 // both neighbors of p2 stay used

	fillPayload(a, p2, 'c')
	newP := a.Resize(p2, 20)
	require.Equal(t, p2, newP)
	checkInvariants(t, a)
	assertPayloadFilled(t, a, newP, 20, 'c')
}

func TestResizeGrowFindsLargerCellAndCopiesContents(t *testing.T) {
	a := newTestArena(t, 8192)
	p := a.Allocate(30)
	require.NotEqual(t, Null, p)
	fillPayload(a, p, 'd')

	newP := a.Resize(p, 500)
	require.NotEqual(t, Null, newP)
	checkInvariants(t, a)
	assertPayloadFilled(t, a, newP, 30, 'd')
}

func TestResizeGrowFailureLeavesOriginalBlockUntouched(t *testing.T) {
	a := newTestArena(t, 512)
	p := a.Allocate(30)
	require.NotEqual(t, Null, p)
	fillPayload(a, p, 'e')

	got := a.Resize(p, 10_000)
	assert.Equal(t, Null, got)
	assertPayloadFilled(t, a, p, 30, 'e')
	checkInvariants(t, a)
}

// TestResizeMiddleBlockSeedScenario is seed scenario 5 from spec.md §8.
func TestResizeMiddleBlockSeedScenario(t *testing.T) {
	a := newTestArena(t, 8192)
	p1 := a.Allocate(100)
	p2 := a.Allocate(100)
	p3 := a.Allocate(100)
	require.NotEqual(t, Null, p1)
	require.NotEqual(t, Null, p2)
	require.NotEqual(t, Null, p3)

	fillSeed(a, p2, 456, 100)

	a.Free(p1)
	a.Free(p3)

	freeBefore := freeByteTotal(a)
	newP2 := a.Resize(p2, 50)
	require.NotEqual(t, Null, newP2)

	assert.Greater(t, freeByteTotal(a), freeBefore)
	assertSeedMatches(t, a, newP2, 456, 50)
	checkInvariants(t, a)
}

func fillPayload(a *Arena, p Ptr, b byte) {
	buf := a.Bytes(p)
	for i := range buf {
		buf[i] = b
	}
}

func assertPayloadFilled(t testing.TB, a *Arena, p Ptr, n int, b byte) {
	t.Helper()
	buf := a.Bytes(p)
	require.GreaterOrEqual(t, len(buf), n)
	for i := 0; i < n; i++ {
		require.Equal(t, b, buf[i], "byte %d corrupted", i)
	}
}

// fillSeed deterministically fills n bytes from a small PRNG seeded by
// seed, in the style of the fuzz-loop fill/verify helpers spec.md §8
// describes as reference tooling, not part of the allocator itself.
func fillSeed(a *Arena, p Ptr, seed uint32, n int) {
	buf := a.Bytes(p)
	s := seed
	for i := 0; i < n; i++ {
		s = s*1103515245 + 12345
		buf[i] = byte(s >> 16)
	}
}

func assertSeedMatches(t testing.TB, a *Arena, p Ptr, seed uint32, n int) {
	t.Helper()
	buf := a.Bytes(p)
	require.GreaterOrEqual(t, len(buf), n)
	s := seed
	for i := 0; i < n; i++ {
		s = s*1103515245 + 12345
		require.Equal(t, byte(s>>16), buf[i], "seed byte %d mismatched after resize", i)
	}
}
