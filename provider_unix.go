// +build darwin dragonfly freebsd linux openbsd solaris netbsd

package memory

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// mmapProvider is the default PageProvider: one contiguous anonymous
// mapping reserved up front, with a brk-style cursor advanced one page
// at a time. Coalescing depends on the heap never relocating, so unlike
// the teacher's per-size-class mmap pools, growth here never calls mmap
// again after the initial reservation — it only advances within it.
type mmapProvider struct {
	base  uintptr
	brk   uintptr
	limit uintptr
}

// newDefaultProvider reserves capacityPages worth of address space as
// readable and writable anonymous pages (committed lazily by the OS) and returns a provider whose Grow advances one page at a time
// from the start of that reservation.
func newDefaultProvider(capacityPages int) (PageProvider, error) {
	size := capacityPages * pageSize

	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}

	base := uintptr(unsafe.Pointer(&b[0]))
	return &mmapProvider{
		base:  base,
		brk:   base,
		limit: base + uintptr(size),
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

// Close unmaps the entire reservation, including pages never grown into.
func (p *mmapProvider) Close() error {
	b := unsafe.Slice((*byte)(unsafe.Pointer(p.base)), int(p.limit-p.base))
	return unix.Munmap(b)
}
