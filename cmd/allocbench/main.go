// Command allocbench runs a small scripted allocate/free sequence
// against the allocator and prints its list occupancy and diagnostic
// ratios. It's a demonstration harness, not a test: correctness lives
// in the package's own test suite.
package main

import (
	"fmt"
	"os"

	memory "github.com/vzheng147/dynamic-memory-allocator"
)

func main() {
	a := memory.New(memory.WithMagic(0x0))

	sizes := []int{8, 200, 300, 4, 16316, 1000, 2000}
	var live [][]byte
	for _, sz := range sizes {
		b, err := a.Allocate(sz)
		if err != nil {
			fmt.Fprintf(os.Stderr, "allocate(%d): %v\n", sz, err)
			continue
		}
		live = append(live, b)
	}

	for i, b := range live {
		if i%2 == 0 {
			a.Free(b)
		}
	}

	fmt.Printf("heap bytes:    %d\n", a.HeapBounds())
	fmt.Printf("free blocks:   %d\n", a.FreeBlockCount(0))
	fmt.Printf("quick blocks:  %d\n", a.QuickBlockCount(0))
	fmt.Printf("fragmentation: %.4f\n", a.Fragmentation())
	fmt.Printf("utilization:   %.4f\n", a.Utilization())

	if err := a.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close: %v\n", err)
		os.Exit(1)
	}
}
