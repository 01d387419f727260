package memory

import "unsafe"

// A freeListHead is both the sentinel of a segregated free-list ring and,
// structurally, a stand-in for a block's link fields: its address is used
// the same way a block's address is, so the ring can be walked without
// special-casing the sentinel.
type freeListHead struct {
	prev, next uintptr
}

// quickListHead is a singly-linked LIFO stack of exact-size blocks.
type quickListHead struct {
	length int
	top    uintptr
}

func readPtr(addr uintptr) uintptr            { return *(*uintptr)(unsafe.Pointer(addr)) }
func writePtr(addr uintptr, v uintptr)        { *(*uintptr)(unsafe.Pointer(addr)) = v }

// sentinelIndex reports whether addr is the address of one of the
// allocator's free-list sentinels, and if so which one.
func (a *Allocator) sentinelIndex(addr uintptr) (int, bool) {
	base := uintptr(unsafe.Pointer(&a.freeLists[0]))
	const sz = unsafe.Sizeof(freeListHead{})
	end := base + sz*numFreeLists
	if addr < base || addr >= end || (addr-base)%sz != 0 {
		return 0, false
	}
	return int((addr - base) / sz), true
}

// linkNext/linkPrev/setLinkNext/setLinkPrev read and write the doubly
// linked free-list pointers. For a real block these live in the first 16
// payload bytes (prev at base+8, next at base+16); for a sentinel they
// are the freeListHead struct fields themselves.
func (a *Allocator) linkNext(addr uintptr) uintptr {
	if idx, ok := a.sentinelIndex(addr); ok {
		return a.freeLists[idx].next
	}
	return readPtr(addr + 16)
}

func (a *Allocator) linkPrev(addr uintptr) uintptr {
	if idx, ok := a.sentinelIndex(addr); ok {
		return a.freeLists[idx].prev
	}
	return readPtr(addr + 8)
}

func (a *Allocator) setLinkNext(addr, v uintptr) {
	if idx, ok := a.sentinelIndex(addr); ok {
		a.freeLists[idx].next = v
		return
	}
	writePtr(addr+16, v)
}

func (a *Allocator) setLinkPrev(addr, v uintptr) {
	if idx, ok := a.sentinelIndex(addr); ok {
		a.freeLists[idx].prev = v
		return
	}
	writePtr(addr+8, v)
}

// quickNext/setQuickNext access the single link field of a quick-list
// block; it shares the same first 8 bytes a free block would use for its
// prev pointer, since the two states never overlap for one block.
func (a *Allocator) quickNext(addr uintptr) uintptr   { return readPtr(addr + 8) }
func (a *Allocator) setQuickNext(addr, v uintptr)     { writePtr(addr+8, v) }

// firstBlock is the address of the first regular (non-prologue) block.
func (a *Allocator) firstBlock() uintptr { return a.memStart + alignPad + prologueSize }

// epilogueAddr is the address of the epilogue's header word.
func (a *Allocator) epilogueAddr() uintptr { return a.memEnd - epilogueSize }

// inRange reports whether b addresses a regular block (not the prologue
// or epilogue).
func (a *Allocator) inRange(b uintptr) bool {
	return b >= a.firstBlock() && b < a.epilogueAddr()
}

// prevOf reads the footer immediately before b and returns the start of
// the preceding block. Undefined (must not be called) when b is the
// first regular block, since the prologue has no footer.
func (a *Allocator) prevOf(b uintptr) uintptr {
	word := a.readWord(b - wordSize)
	_, size, _ := decodeHeader(word)
	return b - uintptr(size)
}

// nextOf returns the start of the block immediately after b.
func (a *Allocator) nextOf(b uintptr) uintptr {
	return b + uintptr(a.sizeOf(b))
}

// leftNeighbor returns the free left neighbor of b, or 0 if none exists
// (b is the first block, or the left neighbor is allocated/prologue).
func (a *Allocator) leftNeighbor(b uintptr) uintptr {
	if b <= a.firstBlock() {
		return 0
	}
	prev := a.prevOf(b)
	if prev < a.firstBlock() || isAllocated(a.headerWord(prev)) {
		return 0
	}
	return prev
}

// rightNeighbor returns the free right neighbor of b, or 0 if none exists
// (b's right neighbor is the epilogue, or is allocated).
func (a *Allocator) rightNeighbor(b uintptr) uintptr {
	next := a.nextOf(b)
	if next >= a.epilogueAddr() || isAllocated(a.headerWord(next)) {
		return 0
	}
	return next
}
