package memory

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/kpfaulkner/pixmem/util"
)

// Block is an aligned byte region handed out by an Allocator. The zero
// Block is empty and may be passed to any Allocator's Deallocate.
type Block struct {
	data      []byte // aligned region, len == requested size
	raw       []byte // backing allocation returned to the allocator
	alignment int
}

// NewBlock carves an nrBytes region aligned to alignment out of raw. raw must
// be large enough to hold the region at the first aligned offset; allocators
// typically over-allocate by alignment-1 bytes to guarantee this.
func NewBlock(raw []byte, nrBytes int, alignment int) (Block, error) {
	if nrBytes < 0 {
		return Block{}, fmt.Errorf("negative block size %d: %w", nrBytes, ErrAllocationFailure)
	}
	if !validAlignment(alignment) {
		return Block{}, fmt.Errorf("alignment %d is not a power of two: %w", alignment, ErrAllocationFailure)
	}
	if nrBytes == 0 {
		return Block{raw: raw, alignment: alignment}, nil
	}
	if len(raw) < nrBytes {
		return Block{}, fmt.Errorf("backing buffer of %d bytes cannot hold %d bytes: %w", len(raw), nrBytes, ErrAllocationFailure)
	}

	offset := alignedOffset(uintptr(unsafe.Pointer(unsafe.SliceData(raw))), alignment)
	if offset+nrBytes > len(raw) {
		return Block{}, fmt.Errorf("backing buffer of %d bytes cannot hold %d bytes aligned to %d: %w",
			len(raw), nrBytes, alignment, ErrAllocationFailure)
	}

	return Block{
		data:      raw[offset : offset+nrBytes : offset+nrBytes],
		raw:       raw,
		alignment: alignment,
	}, nil
}

// Data returns the usable, aligned bytes of the block.
func (b Block) Data() []byte {
	return b.data
}

// Raw returns the full backing allocation, including alignment slack.
func (b Block) Raw() []byte {
	return b.raw
}

func (b Block) Len() int {
	return len(b.data)
}

func (b Block) Alignment() int {
	return b.alignment
}

func (b Block) IsEmpty() bool {
	return len(b.data) == 0
}

// Address returns the address of the first usable byte, or 0 for an empty block.
func (b Block) Address() uintptr {
	if len(b.data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(b.data)))
}

func validAlignment(alignment int) bool {
	return alignment == 0 || util.IsPowerOfTwo(alignment)
}

// alignedOffset returns how many bytes past addr the next aligned address lies.
func alignedOffset(addr uintptr, alignment int) int {
	if alignment <= 1 {
		return 0
	}
	return int(util.AlignUp(addr, uintptr(alignment)) - addr)
}

// slack is the number of extra bytes needed to guarantee an aligned region.
func slack(alignment int) int {
	if alignment <= 1 {
		return 0
	}
	return alignment - 1
}

// paddedSize is nrBytes plus the slack needed to align it.
func paddedSize(nrBytes int, alignment int) (int, error) {
	extra := slack(alignment)
	if nrBytes > math.MaxInt-extra {
		return 0, fmt.Errorf("request of %d bytes aligned to %d overflows: %w", nrBytes, alignment, ErrAllocationFailure)
	}
	return nrBytes + extra, nil
}
