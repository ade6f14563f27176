package alloc

// firstFit walks the free list starting at the head sentinel's first free
// cell, returning the first cell whose size is at least k cells. Returns
// (0, false) if no cell is large enough; 0 is never a valid result on
// success since the head sentinel itself is never free.
func (a *Arena) firstFit(k int) (cellIndex, bool) {
	for b := a.nextFree(0); b != 0; b = a.nextFree(b) {
		if a.sizeOf(b) >= k {
			return b, true
		}
	}
	return 0, false
}

// unfree removes a free cell from the free list and clears its free flag,
// turning it into a used cell of the same size. Precondition: b is free.
func (a *Arena) unfree(b cellIndex) {
	prev := a.prevFree(b)
	next := a.nextFree(b)
	a.setNextFree(prev, next)
	a.setPrevFree(next, prev)
	a.setFree(b, false)
}

// pushFree inserts b at the head of the free list and marks it free. Both
// the forward link (head.next_free) and the back-patch on b's new
// successor are updated, so the free list remains a true doubly-linked
// list — the back-patch omission present in early revisions of the
// reference allocator is not reproduced here.
func (a *Arena) pushFree(b cellIndex) {
	head := a.nextFree(0)
	a.setNextFree(b, head)
	a.setPrevFree(b, 0)
	a.setFree(b, true)
	a.setPrevFree(head, b)
	a.setNextFree(0, b)
}
