package memory

import "unsafe"

// sentinelAddr returns the stable address of free-list class idx's
// sentinel, usable interchangeably with a block address by the link
// accessors in block.go.
func (a *Allocator) sentinelAddr(idx int) uintptr {
	return uintptr(unsafe.Pointer(&a.freeLists[idx]))
}

// initFreeLists makes every sentinel point to itself, the empty-ring state.
func (a *Allocator) initFreeLists() {
	for i := range a.freeLists {
		addr := a.sentinelAddr(i)
		a.freeLists[i].next = addr
		a.freeLists[i].prev = addr
	}
}

// freelistIndex picks the smallest size class whose upper bound is >= n:
// class 0 is exactly minBlockSize, class i>0 covers (min*2^(i-1), min*2^i],
// and the last class is open-ended.
func (a *Allocator) freelistIndex(n uint64) int {
	size := uint64(minBlockSize)
	idx := 0
	for n > size && idx < numFreeLists-1 {
		size *= 2
		idx++
	}
	return idx
}

// freelistInsert performs a LIFO push of the block at b (of the given
// size) into the class sentinel's ring, rewriting its header/footer to
// encode a free block.
func (a *Allocator) freelistInsert(b uintptr, size uint64) {
	a.writeMeta(b, 0, size, 0)
	idx := a.freelistIndex(size)
	head := a.sentinelAddr(idx)
	next := a.linkNext(head)
	a.setLinkNext(b, next)
	a.setLinkPrev(b, head)
	a.setLinkPrev(next, b)
	a.setLinkNext(head, b)
}

// freelistRemove unlinks b from whichever class ring it is in and nulls
// its link fields.
func (a *Allocator) freelistRemove(b uintptr) {
	next := a.linkNext(b)
	prev := a.linkPrev(b)
	a.setLinkNext(prev, next)
	a.setLinkPrev(next, prev)
	a.setLinkNext(b, 0)
	a.setLinkPrev(b, 0)
}

// freelistSearch returns the first block with block_size >= req, walking
// classes from freelistIndex(req) onward and each ring head-to-tail
// (insertion-LIFO tie-break), or 0 if no class holds an eligible block.
func (a *Allocator) freelistSearch(req uint64) uintptr {
	start := a.freelistIndex(req)
	for i := start; i < numFreeLists; i++ {
		head := a.sentinelAddr(i)
		for cur := a.linkNext(head); cur != head; cur = a.linkNext(cur) {
			if a.sizeOf(cur) >= req {
				return cur
			}
		}
	}
	return 0
}

// FreeBlockCount reports the number of free-list blocks of the given
// size, or of any size when size == 0. It is the Go-idiomatic substitute
// for walking the free-list head array a test harness would otherwise
// reach into directly. It reports 0 before the heap is bootstrapped.
func (a *Allocator) FreeBlockCount(size uint64) int {
	if !a.bootstrapped {
		return 0
	}
	n := 0
	for i := 0; i < numFreeLists; i++ {
		head := a.sentinelAddr(i)
		for cur := a.linkNext(head); cur != head; cur = a.linkNext(cur) {
			if size == 0 || a.sizeOf(cur) == size {
				n++
			}
		}
	}
	return n
}
