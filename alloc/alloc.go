package alloc

// Allocator is the capability this package exposes: allocate, resize and
// free over some backing store. Arena is its one concrete implementation;
// callers that only need the capability, not the arena's internals, should
// depend on this interface rather than *Arena.
type Allocator interface {
	Allocate(size int) Ptr
	Resize(p Ptr, newSize int) Ptr
	Free(p Ptr)
}

var _ Allocator = (*Arena)(nil)

// Allocate reserves size bytes and returns a Ptr to the new payload, or
// Null if size is zero or no free cell is large enough.
//
// When the chosen free cell has more than one cell of slack beyond what is
// needed, the allocation is carved from its tail and the (now-shorter)
// leading remainder stays on the free list untouched. Otherwise the whole
// cell is unfreed and handed out as-is, absorbing any one-cell slack rather
// than leaving behind a free cell too small to ever satisfy a request.
func (a *Arena) Allocate(size int) Ptr {
	if size == 0 {
		return Null
	}
	k := cellsNeeded(size)
	b, ok := a.firstFit(k)
	if !ok {
		return Null
	}
	if a.sizeOf(b) > k+1 {
		tail := a.splitTail(b, k)
		return ptrOf(tail)
	}
	a.unfree(b)
	return ptrOf(b)
}

// Free releases the cell p points into, coalescing it with either
// physically adjacent neighbor that is currently free. A nil Ptr (Null) is
// a no-op. Freeing an already-free cell, or a Ptr not returned by this
// arena, is undefined behavior, exactly as in the reference allocator.
func (a *Arena) Free(p Ptr) {
	if p == Null {
		return
	}
	a.freeCell(cellOf(p))
}

// freeCell is the cell-indexed core of Free, shared with Resize's shrink
// path when it needs to release a split-off remainder.
//
// The merge order matters: next is folded into b first, so that when prev
// is also free it absorbs whatever b has already grown to.
func (a *Arena) freeCell(b cellIndex) {
	next := a.next(b)
	prev := a.prevIndex(b)

	if a.isFree(next) {
		a.unfree(next)
		a.join(b, next)
	}

	if a.isFree(prev) {
		a.join(prev, b)
	} else {
		a.pushFree(b)
	}
}

// Resize changes the size of the allocation p points to, preserving its
// contents up to min(old, new) bytes, and returns the (possibly new) Ptr.
// Dispatch on the combination of p and newSize follows the classic realloc
// contract:
//
//	p == Null, newSize == 0: no-op, returns Null
//	p == Null, newSize >  0: equivalent to Allocate(newSize)
//	p != Null, newSize == 0: equivalent to Free(p), returns Null
//	p != Null, newSize >  0: grow, shrink, or leave in place
//
// A failed grow returns Null and leaves p and its contents untouched.
func (a *Arena) Resize(p Ptr, newSize int) Ptr {
	if p == Null {
		if newSize == 0 {
			return Null
		}
		return a.Allocate(newSize)
	}
	if newSize == 0 {
		a.Free(p)
		return Null
	}

	b := cellOf(p)
	current := a.sizeOf(b)
	k := cellsNeeded(newSize)

	switch {
	case k < current-1:
		return a.resizeShrink(b, k)
	case k > current:
		return a.resizeGrow(b, current, newSize)
	default:
		return p
	}
}

// resizeShrink implements the shrink branch of Resize: k < current-1, so
// giving back the tail (or head) would leave a usable free remainder.
func (a *Arena) resizeShrink(b cellIndex, k int) Ptr {
	next := a.next(b)
	prev := a.prevIndex(b)

	switch {
	case a.isFree(next):
		// Merge the shrunk-away tail with the already-free next neighbor.
		a.unfree(next)
		tail := a.splitHead(b, k)
		a.join(tail, next)
		a.pushFree(tail)
		return ptrOf(b)

	case a.isFree(prev):
		// Shift the kept bytes to the tail of b, then let the (shorter)
		// leading remainder merge into the free neighbor before it.
		bNext := a.next(b)
		newTailIndex := bNext - cellIndex(k)
		dstOff := payloadOffset(newTailIndex)
		srcOff := payloadOffset(b)
		newSizeBytes := k*cellSize - headerOverhead
		copy(a.buf[dstOff:dstOff+newSizeBytes], a.buf[srcOff:srcOff+newSizeBytes])

		tail := a.splitTail(b, k)
		a.join(prev, b)
		return ptrOf(tail)

	default:
		// No free neighbor: split off the tail and let it become its own
		// free cell (it cannot coalesce further, since neither of its new
		// neighbors is free).
		tail := a.splitHead(b, k)
		a.freeCell(tail)
		return ptrOf(b)
	}
}

// resizeGrow implements the grow branch of Resize: k > current, so a
// larger free cell must be found elsewhere in the arena.
func (a *Arena) resizeGrow(b cellIndex, current int, newSize int) Ptr {
	k := cellsNeeded(newSize)
	newCell, ok := a.firstFit(k)
	if !ok {
		return Null
	}

	a.unfree(newCell)
	oldBytes := current*cellSize - headerOverhead
	srcOff := payloadOffset(b)
	dstOff := payloadOffset(newCell)
	copy(a.buf[dstOff:dstOff+oldBytes], a.buf[srcOff:srcOff+oldBytes])

	a.freeCell(b)
	return ptrOf(newCell)
}
