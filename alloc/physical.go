package alloc

// splitHead divides cell b into a leading cell of size k, keeping b's free
// flag, and a trailing used cell starting at index(b)+k. Precondition:
// sizeOf(b) > k >= 1. The free list is untouched; callers that split a free
// cell this way must fix up the free list themselves (or immediately
// unfree the leading remainder).
//
// Returns the index of the new trailing cell.
func (a *Arena) splitHead(b cellIndex, k int) cellIndex {
	b1 := b + cellIndex(k)
	bNext := a.next(b)

	// b1 becomes a used cell; no free bit.
	a.setRawPrev(b1, b&indexMask)
	a.setNext(b1, bNext)

	a.setNext(b, b1)

	// the cell that used to follow b now points back to b1, keeping its
	// own free/used flag untouched.
	a.setPrevIndexFlagged(bNext, b1, a.isFree(bNext))

	return b1
}

// splitTail divides cell b into a leading cell retaining b's free flag and
// a trailing used cell of size k. Precondition: sizeOf(b) > k >= 1. The
// free list is untouched, which is correct exactly when b was free: its
// free-list node still identifies the leading remainder, now shorter but at
// the same index.
//
// Returns the index of the new trailing (used) cell.
func (a *Arena) splitTail(b cellIndex, k int) cellIndex {
	bNext := a.next(b)
	b1 := bNext - cellIndex(k)

	a.setRawPrev(b1, b&indexMask)
	a.setNext(b1, bNext)

	a.setNext(b, b1)

	a.setPrevIndexFlagged(bNext, b1, a.isFree(bNext))

	return b1
}

// join merges the physically adjacent cell b1 into b0, which must satisfy
// next(b0) == index(b1). b0 survives and keeps whatever free/used state it
// already had; b1's index ceases to begin any cell. The free list is not
// touched by join; callers sequence unfree(b1) before join when b1 was
// free, per the free-before-join protocol used throughout this package.
func (a *Arena) join(b0, b1 cellIndex) {
	b1Next := a.next(b1)
	a.setNext(b0, b1Next)
	a.setPrevIndexFlagged(b1Next, b0, a.isFree(b1Next))
}
