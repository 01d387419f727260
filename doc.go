// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memory implements a dynamic memory allocator over a growable,
// page-granular heap: segregated free lists with boundary-tag coalescing,
// a small-block quick-list cache for deferred coalescing, and in-place
// resize. The zero value of Allocator is ready to use; the heap is
// bootstrapped lazily on the first call that needs it.
package memory

const (
	// pageSize is the page granularity the backing PageProvider grows by.
	pageSize = 4096

	// alignment all block sizes and addresses are rounded to.
	alignment = 16

	// minBlockSize is the smallest legal block, header+footer+one link pair.
	minBlockSize = 32

	// wordSize is the size of a header or footer word.
	wordSize = 8

	// numFreeLists is the number of segregated free-list size classes.
	numFreeLists = 10

	// numQuickLists is the number of quick-list stacks; stack i holds
	// blocks of exactly minBlockSize+16*i bytes.
	numQuickLists = 10

	// quickListMax is the per-stack capacity before a push triggers a flush.
	quickListMax = 5

	// maxQuickListBlockSize is the largest block size eligible for caching.
	maxQuickListBlockSize = minBlockSize + 16*(numQuickLists-1)

	// prologueSize is the size of the permanent allocated prologue block.
	prologueSize = minBlockSize

	// alignPad is the padding before the prologue so the first block's
	// payload lands on a 16-byte boundary.
	alignPad = 8

	// epilogueSize is the size of the header-only epilogue sentinel.
	epilogueSize = wordSize
)

const (
	flagThisAllocated = 1 << 0
	flagInQuickList    = 1 << 2
	flagMask           = 0xF
)

func roundUp16(n uint64) uint64 { return (n + alignment - 1) &^ (alignment - 1) }

// blockSizeFor computes the block_size for a user request of size bytes:
// round_up16(size+16), floored to minBlockSize.
func blockSizeFor(size uint64) uint64 {
	bs := roundUp16(size + 16)
	if bs < minBlockSize {
		bs = minBlockSize
	}
	return bs
}
