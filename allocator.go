package memory

import "unsafe"

// defaultCapacityPages bounds the default mmap-backed provider: 256 MiB
// of reservation, comfortably more than any single test run needs and
// cheap since anonymous pages are never faulted in until the allocator's
// brk cursor reaches them.
const defaultCapacityPages = 1 << 16

// Allocator allocates, frees and resizes memory over a growable,
// page-granular heap. Its zero value is ready for use; the heap and its
// default mmap-backed PageProvider are bootstrapped lazily on first use.
type Allocator struct {
	magic uint64
	errno error

	provider     PageProvider
	bootstrapped bool
	memStart     uintptr
	memEnd       uintptr

	freeLists  [numFreeLists]freeListHead
	quickLists [numQuickLists]quickListHead

	currentPayload uint64
	peakPayload    uint64
}

// Option configures an Allocator constructed with New.
type Option func(*Allocator)

// WithMagic sets the XOR mask applied to every stored header/footer
// word. The default is 0; test harnesses that want to catch accidental
// literal-value assumptions can set a nonzero mask.
func WithMagic(magic uint64) Option {
	return func(a *Allocator) { a.magic = magic }
}

// WithProvider overrides the default mmap-backed PageProvider, e.g. with
// a capacity-bounded fake for exercising out-of-memory behavior.
func WithProvider(p PageProvider) Option {
	return func(a *Allocator) { a.provider = p }
}

// New constructs an Allocator with the given options applied. It is
// equivalent to applying the options to the zero value directly; New
// exists for call sites that prefer functional-option construction.
func New(opts ...Option) *Allocator {
	a := &Allocator{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Close releases the resources backing the allocator's PageProvider, if
// it supports release. It's not necessary to Close an Allocator whose
// process is about to exit.
func (a *Allocator) Close() error {
	if closer, ok := a.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// Allocate reserves size bytes and returns a byte slice over the
// payload, or nil if size is 0. The memory is not initialized. Allocate
// panics for size < 0 (mirroring the allocator's treatment of impossible
// requests, the way a nonsensical slice length would).
func (a *Allocator) Allocate(size int) ([]byte, error) {
	if err := a.bootstrap(); err != nil {
		return nil, err
	}
	if size < 0 {
		panic("memory: invalid allocation size")
	}
	if size == 0 {
		return nil, nil
	}

	payload := uint64(size)
	blockSize := blockSizeFor(payload)

	if quickEligible(blockSize) {
		idx := a.quicklistIndex(blockSize)
		if b := a.quickPop(idx); b != 0 {
			a.writeMeta(b, payload, blockSize, flagThisAllocated)
			a.accountAlloc(payload)
			return a.payloadSlice(b, size), nil
		}
	}

	found := a.freelistSearch(blockSize)
	if found == 0 {
		if err := a.grow(blockSize); err != nil {
			return nil, err
		}
		found = a.freelistSearch(blockSize)
		if found == 0 {
			a.errno = ErrOutOfMemory
			return nil, ErrOutOfMemory
		}
	}

	avail := a.sizeOf(found)
	b := a.split(found, avail, blockSize, payload)

	a.accountAlloc(payload)
	return a.payloadSlice(b, size), nil
}

// Free releases memory acquired from Allocate or Resize. Free aborts
// (panics with a *ContractViolation) if b is nil or does not address a
// currently live, non-quick-listed allocation — freeing is the one
// operation this allocator considers unrecoverable to get wrong, since
// continuing on a corrupted heap is worse than crashing.
func (a *Allocator) Free(b []byte) {
	data := unsafe.SliceData(b)
	if data == nil {
		abort("free of a nil pointer")
	}

	p := uintptr(unsafe.Pointer(data))
	if !a.validate(p) {
		abort("free of pointer %#x failed pointer validation", p)
	}

	base := p - wordSize
	a.currentPayload -= a.payloadOf(base)

	size := a.sizeOf(base)
	if quickEligible(size) {
		a.quickPush(base, size)
		return
	}

	a.writeMeta(base, 0, size, 0)
	merged := a.coalesce(base)
	a.freelistInsert(merged, a.sizeOf(merged))
}

// Resize changes the size of the allocation b refers to. A newSize of 0
// is equivalent to Free(b) and returns nil. If b fails pointer
// validation, Resize returns (nil, nil) without mutating the heap — it
// is client misuse, not a contract violation, so it does not abort.
// Growing always returns a freshly allocated block (the old one is
// freed, becoming quick-listed if it's small enough); shrinking
// resizes in place, splitting off a free remainder when the remainder
// would itself be a legal block.
func (a *Allocator) Resize(b []byte, newSize int) ([]byte, error) {
	if newSize == 0 {
		a.Free(b)
		return nil, nil
	}
	if newSize < 0 {
		panic("memory: invalid resize size")
	}

	data := unsafe.SliceData(b)
	if data == nil {
		return nil, nil
	}
	p := uintptr(unsafe.Pointer(data))
	if !a.validate(p) {
		return nil, nil
	}

	base := p - wordSize
	oldSize := a.sizeOf(base)
	oldPayload := a.payloadOf(base)
	newBlockSize := blockSizeFor(uint64(newSize))

	switch {
	case newBlockSize > oldSize:
		fresh, err := a.Allocate(newSize)
		if err != nil {
			return nil, err
		}

		oldFull := unsafe.Slice((*byte)(unsafe.Pointer(base+wordSize)), int(oldSize)-16)
		copyLen := len(oldFull)
		if copyLen > newSize {
			copyLen = newSize
		}
		copy(fresh, oldFull[:copyLen])

		a.Free(b)
		return fresh, nil

	case oldSize-newBlockSize >= minBlockSize:
		a.currentPayload += uint64(newSize) - oldPayload
		a.writeMeta(base, uint64(newSize), newBlockSize, flagThisAllocated)

		remainder := base + uintptr(newBlockSize)
		a.writeMeta(remainder, 0, oldSize-newBlockSize, 0)
		merged := a.coalesce(remainder)
		a.freelistInsert(merged, a.sizeOf(merged))

		return a.payloadSlice(base, newSize), nil

	default:
		a.currentPayload += uint64(newSize) - oldPayload
		a.writeMeta(base, uint64(newSize), oldSize, flagThisAllocated)
		return a.payloadSlice(base, newSize), nil
	}
}

// accountAlloc folds a successful allocation of payload bytes into the
// running current/peak payload counters.
func (a *Allocator) accountAlloc(payload uint64) {
	a.currentPayload += payload
	if a.currentPayload > a.peakPayload {
		a.peakPayload = a.currentPayload
	}
}

// payloadSlice builds the Go slice a caller sees for the block at base,
// limited to the requested length.
func (a *Allocator) payloadSlice(base uintptr, size int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(base+wordSize)), size)
}
