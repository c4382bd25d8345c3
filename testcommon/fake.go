package testcommon

import (
	"fmt"

	"github.com/kpfaulkner/pixmem/memory"
)

// SequenceAllocator fills every allocated block with a byte counter starting
// at Start, so tests can tell allocator-initialised memory apart.
type SequenceAllocator struct {
	Start byte
	inner memory.AlignedAllocator
}

func (a *SequenceAllocator) Allocate(nrBytes int, alignment int) (memory.Block, error) {
	block, err := a.inner.Allocate(nrBytes, alignment)
	if err != nil {
		return memory.Block{}, err
	}
	data := block.Data()
	for i := range data {
		data[i] = a.Start + byte(i)
	}
	return block, nil
}

func (a *SequenceAllocator) Deallocate(block memory.Block) {
	a.inner.Deallocate(block)
}

// FailingAllocator lets the first Successes allocations through and fails
// every one after that.
type FailingAllocator struct {
	Successes int
	calls     int
	inner     memory.AlignedAllocator
}

func (a *FailingAllocator) Allocate(nrBytes int, alignment int) (memory.Block, error) {
	a.calls++
	if a.calls > a.Successes {
		return memory.Block{}, fmt.Errorf("allocation %d of %d bytes refused: %w", a.calls, nrBytes, memory.ErrAllocationFailure)
	}
	return a.inner.Allocate(nrBytes, alignment)
}

func (a *FailingAllocator) Deallocate(block memory.Block) {
	a.inner.Deallocate(block)
}
