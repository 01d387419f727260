package memory

import "unsafe"

// boundedProvider is a PageProvider backed by a plain Go slice rather
// than a real mmap, used by tests that need a heap capped at an exact
// number of pages (to force an out-of-memory condition deterministically).
type boundedProvider struct {
	mem   []byte
	base  uintptr
	brk   uintptr
	limit uintptr
}

func newBoundedProvider(capacityPages int) *boundedProvider {
	mem := make([]byte, capacityPages*pageSize+alignment)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(mem)))
	base = (base + alignment - 1) &^ (alignment - 1)
	return &boundedProvider{
		mem:   mem,
		base:  base,
		brk:   base,
		limit: base + uintptr(capacityPages*pageSize),
	}
}

func (p *boundedProvider) Grow() unsafe.Pointer {
	if p.brk+pageSize > p.limit {
		return nil
	}
	grown := p.brk
	p.brk += pageSize
	return unsafe.Pointer(grown)
}

func (p *boundedProvider) Start() unsafe.Pointer { return unsafe.Pointer(p.base) }
func (p *boundedProvider) End() unsafe.Pointer    { return unsafe.Pointer(p.brk) }
