package testcommon

import (
	"sync"

	"github.com/kpfaulkner/pixmem/memory"
)

// AllocatorRecorder wraps an allocator and records every call. Deallocate
// may arrive from a cleanup goroutine, so reads of the recorded data should
// go through the accessor methods once images can be collected.
type AllocatorRecorder struct {
	Inner memory.Allocator

	AllocateData   []int
	AlignmentData  []int
	DeallocateData []int

	mu sync.Mutex
}

func NewAllocatorRecorder(inner memory.Allocator) *AllocatorRecorder {
	if inner == nil {
		inner = memory.DefaultAllocator()
	}
	return &AllocatorRecorder{Inner: inner}
}

func (r *AllocatorRecorder) Allocate(nrBytes int, alignment int) (memory.Block, error) {
	r.mu.Lock()
	r.AllocateData = append(r.AllocateData, nrBytes)
	r.AlignmentData = append(r.AlignmentData, alignment)
	r.mu.Unlock()
	return r.Inner.Allocate(nrBytes, alignment)
}

func (r *AllocatorRecorder) Deallocate(block memory.Block) {
	r.mu.Lock()
	r.DeallocateData = append(r.DeallocateData, block.Len())
	r.mu.Unlock()
	r.Inner.Deallocate(block)
}

// Deallocations returns a copy of the sizes passed to Deallocate.
func (r *AllocatorRecorder) Deallocations() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.DeallocateData...)
}

// Live is the number of non-empty blocks allocated and not yet released.
func (r *AllocatorRecorder) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	live := 0
	for _, n := range r.AllocateData {
		if n > 0 {
			live++
		}
	}
	for _, n := range r.DeallocateData {
		if n > 0 {
			live--
		}
	}
	return live
}
