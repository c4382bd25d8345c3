//go:build unix

package memory

import (
	"fmt"
	"os"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// MmapAllocator serves each block from its own anonymous private mapping.
// Mappings are page aligned; larger alignments are met by over-mapping.
// Memory is released on Deallocate, so views must not outlive their block.
type MmapAllocator struct {
	live atomic.Int64
}

func NewMmapAllocator() *MmapAllocator {
	return &MmapAllocator{}
}

func (a *MmapAllocator) Allocate(nrBytes int, alignment int) (Block, error) {
	if nrBytes < 0 {
		return Block{}, fmt.Errorf("negative allocation size %d: %w", nrBytes, ErrAllocationFailure)
	}
	if !validAlignment(alignment) {
		return Block{}, fmt.Errorf("alignment %d is not a power of two: %w", alignment, ErrAllocationFailure)
	}
	if nrBytes == 0 {
		return Block{alignment: alignment}, nil
	}

	size := nrBytes
	if alignment > os.Getpagesize() {
		padded, err := paddedSize(nrBytes, alignment)
		if err != nil {
			return Block{}, err
		}
		size = padded
	}

	raw, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		log.Errorf("mmap of %d bytes failed: %v", size, err)
		return Block{}, fmt.Errorf("mmap of %d bytes: %v: %w", size, err, ErrAllocationFailure)
	}

	block, err := NewBlock(raw, nrBytes, alignment)
	if err != nil {
		_ = unix.Munmap(raw)
		return Block{}, err
	}
	a.live.Add(1)
	return block, nil
}

func (a *MmapAllocator) Deallocate(block Block) {
	if len(block.raw) == 0 {
		return
	}
	if err := unix.Munmap(block.raw); err != nil {
		log.Errorf("munmap of %d bytes failed: %v", len(block.raw), err)
		return
	}
	a.live.Add(-1)
}

// Live returns the number of mappings not yet deallocated.
func (a *MmapAllocator) Live() int {
	return int(a.live.Load())
}
