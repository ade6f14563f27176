package alloc

import "encoding/binary"

// cellIndex is a 16-bit index into the arena's cell array. The high bit of
// the "prev" field doubles as the free flag, so a valid index never uses
// more than 15 bits (max_cells = 0x8000).
type cellIndex = uint16

const (
	// cellSize is the width of one cell: four 16-bit fields (prev, next,
	// prev_free, next_free). A used cell's header occupies only the first
	// two fields; the remaining four bytes are available as payload.
	cellSize = 8

	// headerOverhead is the size of a used cell's header (prev + next).
	headerOverhead = 4

	// freeBit is the high bit of the "prev" field, set when a cell is free.
	freeBit uint16 = 0x8000

	// indexMask strips the free bit to recover the 15-bit cell index.
	indexMask uint16 = 0x7fff

	// maxCells is the largest arena size (in cells) a 15-bit index can address.
	maxCells = 0x8000
)

// Field byte offsets within one 8-byte cell.
const (
	offPrev      = 0
	offNext      = 2
	offPrevFree  = 4
	offNextFree  = 6
)

// cellOffset returns the byte offset of cell i's header within the arena.
func cellOffset(i cellIndex) int {
	return int(i) * cellSize
}

func (a *Arena) rawPrev(i cellIndex) uint16 {
	off := cellOffset(i) + offPrev
	return binary.BigEndian.Uint16(a.buf[off : off+2])
}

func (a *Arena) setRawPrev(i cellIndex, v uint16) {
	off := cellOffset(i) + offPrev
	binary.BigEndian.PutUint16(a.buf[off:off+2], v)
}

// next returns the raw next-cell index. next == 0 identifies the tail
// sentinel, since no non-sentinel cell ever points back to the head.
func (a *Arena) next(i cellIndex) cellIndex {
	off := cellOffset(i) + offNext
	return binary.BigEndian.Uint16(a.buf[off : off+2])
}

func (a *Arena) setNext(i cellIndex, v cellIndex) {
	off := cellOffset(i) + offNext
	binary.BigEndian.PutUint16(a.buf[off:off+2], v)
}

// prevIndex returns the previous-cell index with the free flag stripped.
func (a *Arena) prevIndex(i cellIndex) cellIndex {
	return a.rawPrev(i) & indexMask
}

// isFree reports whether cell i currently participates in the free list.
func (a *Arena) isFree(i cellIndex) bool {
	return a.rawPrev(i)&freeBit != 0
}

// setPrevIndex rewrites the previous-cell index while preserving the free
// flag already present on the cell.
func (a *Arena) setPrevIndex(i cellIndex, prev cellIndex) {
	a.setRawPrev(i, (a.rawPrev(i)&freeBit)|(prev&indexMask))
}

// setPrevIndexFlagged rewrites both the previous-cell index and the free
// flag in one step. Used when a neighbor's free/used status must follow a
// join.
func (a *Arena) setPrevIndexFlagged(i cellIndex, prev cellIndex, free bool) {
	v := prev & indexMask
	if free {
		v |= freeBit
	}
	a.setRawPrev(i, v)
}

// setFree flips the free flag on cell i without touching its index fields.
func (a *Arena) setFree(i cellIndex, free bool) {
	if free {
		a.setRawPrev(i, a.rawPrev(i)|freeBit)
	} else {
		a.setRawPrev(i, a.rawPrev(i)&indexMask)
	}
}

func (a *Arena) prevFree(i cellIndex) cellIndex {
	off := cellOffset(i) + offPrevFree
	return binary.BigEndian.Uint16(a.buf[off : off+2])
}

func (a *Arena) setPrevFree(i cellIndex, v cellIndex) {
	off := cellOffset(i) + offPrevFree
	binary.BigEndian.PutUint16(a.buf[off:off+2], v)
}

func (a *Arena) nextFree(i cellIndex) cellIndex {
	off := cellOffset(i) + offNextFree
	return binary.BigEndian.Uint16(a.buf[off : off+2])
}

func (a *Arena) setNextFree(i cellIndex, v cellIndex) {
	off := cellOffset(i) + offNextFree
	binary.BigEndian.PutUint16(a.buf[off:off+2], v)
}

// isTail reports whether i is the tail sentinel.
func (a *Arena) isTail(i cellIndex) bool {
	return a.next(i) == 0
}

// sizeOf returns the size of cell i in cells. By convention the tail
// sentinel reports 0 ("not further extensible") even though it occupies one
// cell; callers must special-case isTail rather than trust size alone.
func (a *Arena) sizeOf(i cellIndex) int {
	if a.isTail(i) {
		return 0
	}
	return int(a.next(i)) - int(i)
}

// payloadOffset returns the byte offset of cell i's payload (immediately
// after the used-header fields).
func payloadOffset(i cellIndex) int {
	return cellOffset(i) + headerOverhead
}

// cellOf recovers the owning cell index from a Ptr returned by Allocate or
// Resize.
func cellOf(p Ptr) cellIndex {
	return cellIndex((int(p) - headerOverhead) / cellSize)
}

// ptrOf returns the Ptr for cell i's payload.
func ptrOf(i cellIndex) Ptr {
	return Ptr(payloadOffset(i))
}
