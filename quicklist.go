package memory

// quicklistIndex maps an exact block size in [minBlockSize,
// maxQuickListBlockSize] to its stack index.
func (a *Allocator) quicklistIndex(size uint64) int {
	return int((size - minBlockSize) / 16)
}

// quickEligible reports whether size is small enough to be cached.
func quickEligible(size uint64) bool {
	return size >= minBlockSize && size <= maxQuickListBlockSize
}

// quickPush caches the block at b (already allocated, of the given exact
// size) for fast reissue, flushing the target stack first if it is at
// capacity.
func (a *Allocator) quickPush(b uintptr, size uint64) {
	idx := a.quicklistIndex(size)
	if a.quickLists[idx].length >= quickListMax {
		a.quickFlush(idx)
	}
	a.writeMeta(b, 0, size, flagThisAllocated|flagInQuickList)
	a.setQuickNext(b, a.quickLists[idx].top)
	a.quickLists[idx].top = b
	a.quickLists[idx].length++
}

// quickPop removes the most recently pushed block from stack idx, or
// returns 0 if the stack is empty. The returned block keeps
// THIS_ALLOCATED set and has IN_QUICK_LIST cleared; the caller rewrites
// its payload field before handing it to the client.
func (a *Allocator) quickPop(idx int) uintptr {
	top := a.quickLists[idx].top
	if top == 0 {
		return 0
	}
	a.quickLists[idx].top = a.quickNext(top)
	a.quickLists[idx].length--
	size := a.sizeOf(top)
	a.setQuickNext(top, 0)
	a.writeMeta(top, 0, size, flagThisAllocated)
	return top
}

// quickFlush empties stack idx, coalescing each entry with its free
// neighbors and inserting the result into the segregated free-list index.
func (a *Allocator) quickFlush(idx int) {
	for a.quickLists[idx].length > 0 {
		b := a.quickPop(idx)
		a.writeMeta(b, 0, a.sizeOf(b), 0)
		merged := a.coalesce(b)
		a.freelistInsert(merged, a.sizeOf(merged))
	}
}

// QuickBlockCount reports the number of quick-list blocks of the given
// size, or of any size when size == 0.
func (a *Allocator) QuickBlockCount(size uint64) int {
	n := 0
	for i := 0; i < numQuickLists; i++ {
		for cur := a.quickLists[i].top; cur != 0; cur = a.quickNext(cur) {
			if size == 0 || a.sizeOf(cur) == size {
				n++
			}
		}
	}
	return n
}
