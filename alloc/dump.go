package alloc

import (
	"fmt"
	"io"
)

// Dump writes a human-readable listing of every cell to w: its physical
// neighbors, free-list neighbors when free, and size in bytes. The format
// is not part of this package's API contract and may change.
func (a *Arena) Dump(w io.Writer) {
	b := cellIndex(0)
	for {
		size := a.sizeOf(b) * cellSize
		switch {
		case b == 0:
			fmt.Fprintf(w, " %04d: [%04d,%04d] free-list head [%04d,%04d]\n",
				b, a.prevIndex(b), a.next(b), a.prevFree(b), a.nextFree(b))
		case a.isFree(b):
			fmt.Fprintf(w, "*%04d: [%04d,%04d] [%04d,%04d] %d bytes free\n",
				b, a.prevIndex(b), a.next(b), a.prevFree(b), a.nextFree(b), size)
		default:
			fmt.Fprintf(w, " %04d: [%04d,%04d] %d bytes used\n",
				b, a.prevIndex(b), a.next(b), size)
		}

		if a.isTail(b) {
			break
		}
		b = a.next(b)
	}
}
