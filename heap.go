package memory

import "unsafe"

// PageProvider is the page-grain memory provider the block-management
// core treats as an external collaborator: it hands back whole pages on
// demand and reports the current heap bounds. Implementations MUST grow
// the heap contiguously — each call to Grow must extend the region
// returned by Start/End, never relocate it, since every address the
// allocator has ever handed out stays live until freed.
type PageProvider interface {
	// Grow appends one page-sized region to the heap and returns its
	// start address, or nil if no more pages can be supplied.
	Grow() unsafe.Pointer
	// Start is the address of the first byte of the heap.
	Start() unsafe.Pointer
	// End is the address one past the last byte currently available.
	End() unsafe.Pointer
}

// bootstrap lazily builds the prologue, initial free block and epilogue
// on first use. Idempotent.
func (a *Allocator) bootstrap() error {
	if a.bootstrapped {
		return nil
	}
	if a.provider == nil {
		p, err := newDefaultProvider(defaultCapacityPages)
		if err != nil {
			return err
		}
		a.provider = p
	}

	a.initFreeLists()

	base := a.provider.Grow()
	if base == nil {
		a.errno = ErrOutOfMemory
		return ErrOutOfMemory
	}

	a.memStart = uintptr(a.provider.Start())
	a.memEnd = uintptr(a.provider.End())

	prologueBase := a.memStart + alignPad
	a.writeMeta(prologueBase, 0, prologueSize, flagThisAllocated)

	freeBase := prologueBase + prologueSize
	freeSize := uint64(a.epilogueAddr() - freeBase)
	a.freelistInsert(freeBase, freeSize)

	a.writeEpilogue()
	a.bootstrapped = true
	return nil
}

// writeEpilogue lays down the header-only epilogue sentinel at the
// current end of the heap. It has no footer.
func (a *Allocator) writeEpilogue() {
	a.writeWord(a.epilogueAddr(), encodeHeader(0, 0, flagThisAllocated))
}

// grow adds whole pages (at least one) until the free block ending at
// the epilogue, old wilderness included, is at least requested bytes,
// absorbing the old epilogue slot
// into a new free block and coalescing it with its left neighbor (the
// wilderness block) each time.
func (a *Allocator) grow(requested uint64) error {
	var total uint64
	for total < requested {
		oldEpilogue := a.epilogueAddr()
		if a.provider.Grow() == nil {
			a.errno = ErrOutOfMemory
			return ErrOutOfMemory
		}

		a.memEnd = uintptr(a.provider.End())
		newEpilogue := a.epilogueAddr()

		size := uint64(newEpilogue - oldEpilogue)
		a.writeMeta(oldEpilogue, 0, size, 0)

		merged := a.coalesce(oldEpilogue)
		total = a.sizeOf(merged)
		a.freelistInsert(merged, total)

		a.writeEpilogue()
	}
	return nil
}
