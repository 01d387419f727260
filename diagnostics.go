package memory

// Fragmentation returns the ratio of allocated payload bytes to
// allocated block bytes across the whole heap, walking it linearly via
// the block cursor without touching any list. Quick-listed blocks are
// excluded, since from the client's view they are not live allocations.
// Returns 0 before the heap is bootstrapped or if nothing is allocated.
func (a *Allocator) Fragmentation() float64 {
	if !a.bootstrapped {
		return 0
	}

	var payloadSum, blockSum uint64
	end := a.epilogueAddr()
	for cur := a.firstBlock(); cur < end; {
		size := a.sizeOf(cur)
		if size == 0 {
			break
		}

		word := a.headerWord(cur)
		if isAllocated(word) && !isInQuickList(word) {
			payloadSum += a.payloadOf(cur)
			blockSum += size
		}

		next := cur + uintptr(size)
		if next >= end {
			break
		}
		cur = next
	}

	if payloadSum == 0 {
		return 0
	}
	return float64(payloadSum) / float64(blockSum)
}

// Utilization returns the ratio of the largest payload total this
// allocator has ever carried at once to the total heap size. Returns 0
// before the heap is bootstrapped.
func (a *Allocator) Utilization() float64 {
	if !a.bootstrapped {
		return 0
	}
	return float64(a.peakPayload) / float64(a.memEnd-a.memStart)
}

// Errno reports the error latched by the last failed growth attempt, or
// nil if none has occurred (or the allocator has since been recreated).
func (a *Allocator) Errno() error { return a.errno }

// Magic reports the XOR mask applied to every stored header/footer word.
func (a *Allocator) Magic() uint64 { return a.magic }

// HeapBounds reports the current size of the heap in bytes (end minus
// start), or 0 before bootstrap. It exists for tests that want to reason
// about heap growth without depending on absolute addresses.
func (a *Allocator) HeapBounds() (size int) {
	if !a.bootstrapped {
		return 0
	}
	return int(a.memEnd - a.memStart)
}
