//go:build !unix

package memory

import "fmt"

// MmapAllocator is unavailable on this platform; every request fails.
type MmapAllocator struct{}

func NewMmapAllocator() *MmapAllocator {
	return &MmapAllocator{}
}

func (a *MmapAllocator) Allocate(nrBytes int, alignment int) (Block, error) {
	if nrBytes == 0 {
		return Block{}, nil
	}
	return Block{}, fmt.Errorf("mmap allocation not supported on this platform: %w", ErrAllocationFailure)
}

func (a *MmapAllocator) Deallocate(block Block) {
}

func (a *MmapAllocator) Live() int {
	return 0
}
