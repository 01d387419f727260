package memory

import "unsafe"

// readWord reads the masked 64-bit word stored at addr and unmasks it with
// the allocator's magic. Used for both header and footer words.
func (a *Allocator) readWord(addr uintptr) uint64 {
	return *(*uint64)(unsafe.Pointer(addr)) ^ a.magic
}

// writeWord stores val at addr, masked with the allocator's magic.
func (a *Allocator) writeWord(addr uintptr, val uint64) {
	*(*uint64)(unsafe.Pointer(addr)) = val ^ a.magic
}

// encodeHeader packs (payload, block_size, flags) into one 64-bit word.
func encodeHeader(payload, size, flags uint64) uint64 {
	return payload<<32 | size | (flags & flagMask)
}

// decodeHeader is the inverse of encodeHeader.
func decodeHeader(word uint64) (payload, size, flags uint64) {
	payload = word >> 32
	size = word & 0xFFFFFFFF &^ (alignment - 1)
	flags = word & flagMask
	return
}

func isAllocated(word uint64) bool   { return word&flagThisAllocated != 0 }
func isInQuickList(word uint64) bool { return word&flagInQuickList != 0 }

// footerAddr derives the footer address of a block of the given size
// beginning at base.
func footerAddr(base uintptr, size uint64) uintptr {
	return base + uintptr(size) - wordSize
}

// headerWord reads and decodes the header word of the block at base.
func (a *Allocator) headerWord(base uintptr) uint64 { return a.readWord(base) }

// sizeOf returns the block_size encoded in the header at base.
func (a *Allocator) sizeOf(base uintptr) uint64 {
	_, size, _ := decodeHeader(a.headerWord(base))
	return size
}

// payloadOf returns the payload_bytes encoded in the header at base.
func (a *Allocator) payloadOf(base uintptr) uint64 {
	payload, _, _ := decodeHeader(a.headerWord(base))
	return payload
}

// writeMeta atomically (with respect to other single-threaded calls)
// rewrites both the header and footer of the block at base to encode
// (payload, size, flags). The footer slot is always written, whether or
// not the block is free: per the data model the last 8 bytes of a block
// are reserved for the footer regardless of allocation state.
func (a *Allocator) writeMeta(base uintptr, payload, size, flags uint64) {
	word := encodeHeader(payload, size, flags)
	a.writeWord(base, word)
	a.writeWord(footerAddr(base, size), word)
}

// setFlags rewrites only the flags of the block at base, keeping its
// current size and clearing payload to 0 (for a block that transitions
// between free/allocated/quick states without changing size).
func (a *Allocator) setFlags(base uintptr, flags uint64) {
	size := a.sizeOf(base)
	a.writeMeta(base, 0, size, flags)
}
