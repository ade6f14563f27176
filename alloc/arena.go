package alloc

// Ptr is a byte offset into an Arena's backing slice, pointing at the start
// of a used cell's payload. The zero value, Null, represents the absence of
// an allocation — no real payload ever starts at offset 0, since the lowest
// possible payload offset is cell index 1's, at byte 12.
type Ptr int32

// Null is the zero value of Ptr, returned by every operation that the
// reference spec reports as returning a null pointer.
const Null Ptr = 0

// Arena is a fixed-size allocator over a single contiguous byte region. It
// implements Allocator. The zero value is not usable; construct with New.
type Arena struct {
	buf []byte
	n   int // number of cells (N = len(buf) / cellSize)
}

// New wraps buf as an Arena and establishes the initial free-arena state
// (equivalent to calling Init immediately after construction). buf must be
// able to hold at least 4 cells and at most max_cells (0x8000) cells; buf is
// used in place, never copied, and is owned by the Arena for as long as it
// is used.
func New(buf []byte) (*Arena, error) {
	a := &Arena{buf: buf, n: len(buf) / cellSize}
	if a.n <= 3 {
		return nil, ErrArenaTooSmall
	}
	if a.n > maxCells {
		return nil, ErrTooManyCells
	}
	a.Init()
	return a, nil
}

// Adopt wraps buf as an Arena without touching its contents, for the case
// where buf already holds a valid arena image (for example, a
// memory-mapped file reopened from a previous run). The same size limits as
// New apply. Callers that cannot vouch for buf's contents should use New
// instead, since Adopt performs no structural validation beyond size.
func Adopt(buf []byte) (*Arena, error) {
	a := &Arena{buf: buf, n: len(buf) / cellSize}
	if a.n <= 3 {
		return nil, ErrArenaTooSmall
	}
	if a.n > maxCells {
		return nil, ErrTooManyCells
	}
	return a, nil
}

// Init (re)establishes the arena's initial state: a single free cell
// spanning the whole arena between the head and tail sentinels. Calling
// Init discards all outstanding allocations without touching the caller's
// memory beyond the arena's own headers.
func (a *Arena) Init() {
	last := cellIndex(a.n - 1)

	// Cell 0: head sentinel, and head of the free list.
	a.setRawPrev(0, 0)
	a.setNext(0, 1)
	a.setPrevFree(0, 1)
	a.setNextFree(0, 1)

	// Cell 1: the single free cell covering the entire arena.
	a.setRawPrev(1, freeBit|0)
	a.setNext(1, last)
	a.setPrevFree(1, 0)
	a.setNextFree(1, 0)

	// Cell N-1: tail sentinel.
	a.setRawPrev(last, 1)
	a.setNext(last, 0)
}

// CellCount returns N, the number of cells the arena is divided into,
// including both sentinels.
func (a *Arena) CellCount() int {
	return a.n
}

// cellsNeeded returns ceil((bytes + headerOverhead) / cellSize), the number
// of cells required to hold a used block of the given payload size. The
// caller must have already rejected bytes == 0.
func cellsNeeded(bytes int) int {
	return (bytes + headerOverhead + cellSize - 1) / cellSize
}

// Bytes returns the live payload of the cell p points into, sized to its
// current cell capacity (which may exceed the size last requested, since
// the allocator does not separately record requested byte counts). Callers
// that need an exact length should slice the result themselves. Returns nil
// for Null.
func (a *Arena) Bytes(p Ptr) []byte {
	if p == Null {
		return nil
	}
	i := cellOf(p)
	capacity := a.sizeOf(i)*cellSize - headerOverhead
	start := payloadOffset(i)
	return a.buf[start : start+capacity]
}
