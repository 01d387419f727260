package memory

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// These scenarios pin down the exact block-size and list-occupancy
// arithmetic for a single-page heap with MAGIC=0, matching the behavior
// asserted by the allocator's original test suite.

func TestScenarioMallocAnInt(t *testing.T) {
	a := New()
	x, err := a.Allocate(int(unsafe.Sizeof(int(0))))
	require.NoError(t, err)
	require.NotNil(t, x)

	require.Equal(t, 0, a.QuickBlockCount(0))
	require.Equal(t, 1, a.FreeBlockCount(0))
	require.Equal(t, 1, a.FreeBlockCount(4016))
	require.NoError(t, a.Errno())
	require.Equal(t, pageSize, a.HeapBounds())
}

func TestScenarioMallocFourPages(t *testing.T) {
	a := New()
	x, err := a.Allocate(16316)
	require.NoError(t, err)
	require.NotNil(t, x)

	require.Equal(t, 0, a.QuickBlockCount(0))
	require.Equal(t, 0, a.FreeBlockCount(0))
	require.NoError(t, a.Errno())
	require.Equal(t, 4*pageSize, a.HeapBounds())
}

func TestScenarioMallocTooLarge(t *testing.T) {
	a := New(WithProvider(newBoundedProvider(37)))
	x, err := a.Allocate(151505)
	require.Error(t, err)
	require.Nil(t, x)

	require.Equal(t, 0, a.QuickBlockCount(0))
	require.Equal(t, 1, a.FreeBlockCount(0))
	require.Equal(t, 1, a.FreeBlockCount(151504))
	require.ErrorIs(t, a.Errno(), ErrOutOfMemory)
}

func TestScenarioFreeQuick(t *testing.T) {
	a := New()
	_, err := a.Allocate(8)
	require.NoError(t, err)
	y, err := a.Allocate(32)
	require.NoError(t, err)
	_, err = a.Allocate(1)
	require.NoError(t, err)

	a.Free(y)

	require.Equal(t, 1, a.QuickBlockCount(48))
	require.Equal(t, 1, a.FreeBlockCount(0))
	require.Equal(t, 1, a.FreeBlockCount(3936))
}

func TestScenarioFreeNoCoalesce(t *testing.T) {
	a := New()
	_, err := a.Allocate(8)
	require.NoError(t, err)
	y, err := a.Allocate(200)
	require.NoError(t, err)
	_, err = a.Allocate(1)
	require.NoError(t, err)

	a.Free(y)

	require.Equal(t, 0, a.QuickBlockCount(0))
	require.Equal(t, 2, a.FreeBlockCount(0))
	require.Equal(t, 1, a.FreeBlockCount(224))
	require.Equal(t, 1, a.FreeBlockCount(3760))
}

func TestScenarioFreeCoalesce(t *testing.T) {
	a := New()
	_, err := a.Allocate(8)
	require.NoError(t, err)
	y, err := a.Allocate(200)
	require.NoError(t, err)
	z, err := a.Allocate(300)
	require.NoError(t, err)
	_, err = a.Allocate(4)
	require.NoError(t, err)

	a.Free(z)
	a.Free(y)

	require.Equal(t, 0, a.QuickBlockCount(0))
	require.Equal(t, 2, a.FreeBlockCount(0))
	require.Equal(t, 1, a.FreeBlockCount(544))
	require.Equal(t, 1, a.FreeBlockCount(3440))
}

func TestScenarioFreelistLIFOOrdering(t *testing.T) {
	a := New()
	sizes := []int{200, 300, 200, 500, 200, 700}
	var blocks [][]byte
	for _, sz := range sizes {
		b, err := a.Allocate(sz)
		require.NoError(t, err)
		blocks = append(blocks, b)
	}
	u, w, y := blocks[0], blocks[2], blocks[4]
	a.Free(u)
	a.Free(w)
	a.Free(y)

	require.Equal(t, 4, a.FreeBlockCount(0))
	require.Equal(t, 3, a.FreeBlockCount(224))
	require.Equal(t, 1, a.FreeBlockCount(1808))

	idx := a.freelistIndex(224)
	head := a.sentinelAddr(idx)
	mostRecent := a.linkNext(head)
	require.Equal(t, uintptr(unsafe.Pointer(unsafe.SliceData(y)))-wordSize, mostRecent)
}

func TestScenarioReallocLargerBlock(t *testing.T) {
	a := New()
	first, err := a.Allocate(int(unsafe.Sizeof(int(0))))
	require.NoError(t, err)
	_, err = a.Allocate(10)
	require.NoError(t, err)

	resized, err := a.Resize(first, 80)
	require.NoError(t, err)
	require.NotNil(t, resized)

	require.Equal(t, 1, a.QuickBlockCount(32))
	require.Equal(t, 1, a.FreeBlockCount(3888))
}

func TestScenarioReallocSmallerSplinter(t *testing.T) {
	a := New()
	p, err := a.Allocate(80)
	require.NoError(t, err)
	data := unsafe.SliceData(p)

	resized, err := a.Resize(p, 64)
	require.NoError(t, err)
	require.Equal(t, data, unsafe.SliceData(resized))

	require.Equal(t, 1, a.FreeBlockCount(3952))
}

func TestScenarioReallocSmallerSplit(t *testing.T) {
	a := New()
	p, err := a.Allocate(64)
	require.NoError(t, err)

	_, err = a.Resize(p, int(unsafe.Sizeof(int(0))))
	require.NoError(t, err)

	require.Equal(t, 1, a.FreeBlockCount(4016))
}

func TestScenarioStudentQuickListTriple(t *testing.T) {
	a := New()
	x, err := a.Allocate(32)
	require.NoError(t, err)
	y, err := a.Allocate(32)
	require.NoError(t, err)
	z, err := a.Allocate(32)
	require.NoError(t, err)

	a.Free(x)
	a.Free(y)
	a.Free(z)

	require.Equal(t, 3, a.QuickBlockCount(0))
	require.Equal(t, 3, a.QuickBlockCount(48))
	require.Equal(t, 1, a.FreeBlockCount(0))
	require.Equal(t, 1, a.FreeBlockCount(3904))
}

func TestScenarioStudentSixSmallAllocations(t *testing.T) {
	a := New()
	for i := 0; i < 6; i++ {
		_, err := a.Allocate(32)
		require.NoError(t, err)
	}

	require.Equal(t, 0, a.QuickBlockCount(0))
	require.Equal(t, 1, a.FreeBlockCount(0))
	require.Equal(t, 1, a.FreeBlockCount(3760))
}
