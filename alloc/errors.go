package alloc

import "errors"

var (
	// ErrArenaTooSmall indicates the backing slice passed to New cannot hold
	// at least 4 cells (2 sentinels plus a minimum of 2 usable cells).
	ErrArenaTooSmall = errors.New("alloc: arena must hold at least 4 cells")

	// ErrTooManyCells indicates the backing slice is larger than 0x8000
	// cells, which would overflow the 15-bit cell index encoded in a header.
	ErrTooManyCells = errors.New("alloc: arena exceeds max_cells (0x8000 cells)")
)
