package memory

// validate implements the full pointer-validation predicate from spec
// §4.10: non-NULL, 16-byte aligned payload pointer, within the
// regular-block region, a sane size, THIS_ALLOCATED set with
// IN_QUICK_LIST clear, and a footer matching the header. p is the payload
// pointer (block base + 8); it is used by both Free (whose failure mode
// is to abort) and Resize (whose failure mode is to return NULL without
// mutating the heap).
//
// The 8-byte pad plus the 32-byte prologue put every block base 8 bytes
// past a 16-byte boundary, so a valid payload pointer is always 16-byte
// aligned and the alignment check is made on p itself.
func (a *Allocator) validate(p uintptr) bool {
	if !a.bootstrapped || p == 0 {
		return false
	}
	if p%alignment != 0 {
		return false
	}

	b := p - wordSize
	if b < a.firstBlock() {
		return false
	}

	size := a.sizeOf(b)
	if size%alignment != 0 || size < minBlockSize {
		return false
	}
	if b+uintptr(size) > a.epilogueAddr() {
		return false
	}

	word := a.headerWord(b)
	if !isAllocated(word) || isInQuickList(word) {
		return false
	}

	return a.readWord(footerAddr(b, size)) == word
}
