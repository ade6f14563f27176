// Package mmapstore backs an Arena with a memory-mapped file instead of a
// plain heap slice, so the byte region an arena manages can outlive the
// process. It plays the role file.FileMgr plays for kite-db's Page/Block
// layer, but hands the mapped bytes directly to alloc.New (or alloc.Adopt,
// for a file that already has contents) rather than copying them through
// Read/Write calls.
package mmapstore

import (
	"errors"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/naveen246/kitealloc/alloc"
)

// ErrMapFailed wraps any error returned by the underlying mmap syscall or by
// the file operations needed to size the backing file before mapping it.
var ErrMapFailed = errors.New("mmapstore: failed to map file")

// Store owns a memory-mapped file and the Arena built over it. Closing a
// Store unmaps the file and releases its descriptor; the Arena must not be
// used afterward.
type Store struct {
	file *os.File
	mm   mmap.MMap
	a    *alloc.Arena
}

// Open maps path into memory and constructs an Arena over its first size
// bytes. If the file does not exist, or exists but is smaller than size, it
// is created/extended and zero-filled up to size first. An empty file gets a
// fresh arena from alloc.New; a file that already had contents is wrapped
// with alloc.Adopt, keeping its existing arena image. If the file is already
// larger than size, the whole file is mapped but only the first size bytes
// are used for the arena.
//
// Open mirrors file.FileMgr's "create the directory if new" pattern: the
// caller decides the path up front, and Open takes care of making sure the
// backing bytes actually exist on disk before the OS maps them.
func Open(path string, size int) (*Store, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrMapFailed, path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: stat %s: %v", ErrMapFailed, path, err)
	}
	if info.Size() < int64(size) {
		if err := file.Truncate(int64(size)); err != nil {
			file.Close()
			return nil, fmt.Errorf("%w: truncate %s: %v", ErrMapFailed, path, err)
		}
	}

	mm, err := mmap.Map(file, mmap.RDWR, 0)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: %v", ErrMapFailed, err)
	}

	buf := []byte(mm)
	if size < len(buf) {
		buf = buf[:size]
	}

	isFresh := info.Size() == 0
	var a *alloc.Arena
	if isFresh {
		a, err = alloc.New(buf)
	} else {
		a, err = alloc.Adopt(buf)
	}
	if err != nil {
		mm.Unmap()
		file.Close()
		return nil, err
	}

	return &Store{file: file, mm: mm, a: a}, nil
}

// Arena returns the Store's backing Arena.
func (s *Store) Arena() *alloc.Arena {
	return s.a
}

// Flush writes the mapped region back to disk. On most platforms the kernel
// does this lazily anyway, but callers that need a durability point (before
// reporting a transaction committed, say) can force it explicitly.
func (s *Store) Flush() error {
	if err := s.mm.Flush(); err != nil {
		return fmt.Errorf("mmapstore: flush: %w", err)
	}
	return nil
}

// Close unmaps the file and closes its descriptor. The Store's Arena must
// not be used after Close returns.
func (s *Store) Close() error {
	if err := s.mm.Unmap(); err != nil {
		s.file.Close()
		return fmt.Errorf("mmapstore: unmap: %w", err)
	}
	return s.file.Close()
}
