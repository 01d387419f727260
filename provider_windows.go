package memory

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// mmapProvider is the default PageProvider on Windows: a single
// VirtualAlloc reservation, committed up front, with a cursor advanced
// one page at a time. As on the unix side, growth never relocates the
// region — coalescing across a grow requires the old epilogue's address
// to stay valid forever.
type mmapProvider struct {
	base  uintptr
	brk   uintptr
	limit uintptr
}

// newDefaultProvider reserves and commits capacityPages worth of
// read/write memory via VirtualAlloc and returns a provider whose Grow
// advances one page at a time from the start of that reservation.
func newDefaultProvider(capacityPages int) (PageProvider, error) {
	size := uintptr(capacityPages * pageSize)

	addr, err := windows.VirtualAlloc(0, size, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}

	return &mmapProvider{
		base:  addr,
		brk:   addr,
		limit: addr + size,
	}, nil
}

func (p *mmapProvider) Grow() unsafe.Pointer {
	if p.brk+pageSize > p.limit {
		return nil
	}
	grown := p.brk
	p.brk += pageSize
	return unsafe.Pointer(grown)
}

func (p *mmapProvider) Start() unsafe.Pointer { return unsafe.Pointer(p.base) }
func (p *mmapProvider) End() unsafe.Pointer    { return unsafe.Pointer(p.brk) }

// Close releases the entire reservation, including pages never grown into.
func (p *mmapProvider) Close() error {
	return windows.VirtualFree(p.base, 0, windows.MEM_RELEASE)
}
