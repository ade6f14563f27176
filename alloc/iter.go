package alloc

// Iterator walks the used cells of an Arena in physical (index) order,
// skipping free cells and both sentinels, through a HasNext/Next pair over
// the arena's own cell indices.
//
// An Iterator is a read-only snapshot view: any Allocate, Resize, Free or
// Init call on the underlying Arena invalidates it. Restart by calling
// NewIterator again.
type Iterator struct {
	a   *Arena
	cur cellIndex
}

// NewIterator returns an Iterator positioned before the first used cell.
func (a *Arena) NewIterator() *Iterator {
	return &Iterator{a: a, cur: 0}
}

// HasNext reports whether a further used cell remains.
func (it *Iterator) HasNext() bool {
	return it.peekNext() != 0
}

// Next returns the Ptr to the next used cell's payload, advancing past it.
// Returns Null once the tail sentinel is reached.
func (it *Iterator) Next() Ptr {
	n := it.peekNext()
	if n == 0 {
		return Null
	}
	it.cur = n
	return ptrOf(n)
}

// peekNext advances past free cells starting right after it.cur and returns
// the next used, non-sentinel cell, or 0 once only the tail sentinel
// remains (the tail is never free, so it cannot be skipped by the isFree
// check alone — it must be recognized explicitly).
func (it *Iterator) peekNext() cellIndex {
	i := it.a.next(it.cur)
	for i != 0 && !it.a.isTail(i) && it.a.isFree(i) {
		i = it.a.next(i)
	}
	if it.a.isTail(i) {
		return 0
	}
	return i
}
