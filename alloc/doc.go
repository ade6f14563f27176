// Package alloc implements a fixed-arena general-purpose memory allocator.
//
// # Overview
//
// An Arena manages a single contiguous []byte supplied by the caller at
// construction time and provides allocate / resize / free over that region.
// There is no growth and no system allocator involved: once the backing
// slice is full, further allocations fail by returning a zero Ptr.
//
// The region is divided into fixed-size 8-byte cells. Every cell carries a
// header encoding its neighbors in two doubly-linked lists:
//
//   - the physical list, in index order, covering every cell from the head
//     sentinel (index 0) to the tail sentinel (index N-1)
//   - the free list, threading together only the cells currently available
//     for allocation, rooted at the head sentinel
//
// A single bit (the high bit of the "prev" field) disambiguates which of
// the two header shapes, used or free, a given cell currently holds.
//
// # Usage
//
//	a, err := alloc.New(make([]byte, 8192))
//	if err != nil {
//	    return err
//	}
//	p := a.Allocate(64)
//	if p == alloc.Null {
//	    return errors.New("arena out of space")
//	}
//	copy(a.Bytes(p), payload)
//	p = a.Resize(p, 128)
//	a.Free(p)
//
// # Thread Safety
//
// An Arena is not safe for concurrent use. Callers that need to share one
// across goroutines must serialize access externally or hand out disjoint
// arenas per goroutine. The pool package's lock covers only registering and
// looking up arenas, not their Allocate, Resize or Free calls.
//
// # Related Packages
//
//   - github.com/naveen246/kitealloc/mmapstore: back an Arena with a
//     memory-mapped file instead of a heap slice
//   - github.com/naveen246/kitealloc/pool: a registry of several named
//     arenas in one process, guarded by a single registration lock
package alloc
