package memory

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ErrAllocationFailure is returned (wrapped) whenever an allocator cannot
// satisfy a request.
var ErrAllocationFailure = errors.New("allocation failure")

// DefaultBaseAlignment is the minimum alignment of image buffers.
const DefaultBaseAlignment = 16

// Allocator hands out and reclaims aligned byte blocks. An alignment of 0 or
// 1 means unaligned; any other value must be a power of two.
//
// Deallocate must only be given blocks produced by the same allocator
// instance, and must treat an empty Block as a no-op.
type Allocator interface {
	Allocate(nrBytes int, alignment int) (Block, error)
	Deallocate(block Block)
}

// AlignedAllocator allocates from the Go heap, over-allocating so the
// returned region can be aligned. Deallocate leaves reclamation to the GC.
type AlignedAllocator struct {
	// MaxBytes rejects larger requests when non-zero.
	MaxBytes int
}

var defaultAllocator = &AlignedAllocator{}

// DefaultAllocator returns the shared heap allocator used when no allocator
// is configured.
func DefaultAllocator() Allocator {
	return defaultAllocator
}

func (a *AlignedAllocator) Allocate(nrBytes int, alignment int) (block Block, err error) {
	if nrBytes < 0 {
		return Block{}, fmt.Errorf("negative allocation size %d: %w", nrBytes, ErrAllocationFailure)
	}
	if !validAlignment(alignment) {
		return Block{}, fmt.Errorf("alignment %d is not a power of two: %w", alignment, ErrAllocationFailure)
	}
	if nrBytes == 0 {
		return Block{alignment: alignment}, nil
	}
	if a.MaxBytes > 0 && nrBytes > a.MaxBytes {
		return Block{}, fmt.Errorf("request of %d bytes exceeds limit of %d: %w", nrBytes, a.MaxBytes, ErrAllocationFailure)
	}

	size, err := paddedSize(nrBytes, alignment)
	if err != nil {
		return Block{}, err
	}

	// make panics on lengths it cannot represent; surface that as a failure
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("heap allocation of %d bytes failed: %v", nrBytes, r)
			block = Block{}
			err = fmt.Errorf("heap allocation of %d bytes: %v: %w", nrBytes, r, ErrAllocationFailure)
		}
	}()

	raw := make([]byte, size)
	return NewBlock(raw, nrBytes, alignment)
}

func (a *AlignedAllocator) Deallocate(block Block) {
}
