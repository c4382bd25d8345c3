package memory

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/pixmem/util"
)

// maxPooledRequest is the largest size class representable as an int.
const maxPooledRequest = math.MaxInt>>1 + 1

// PoolAllocator recycles buffers through a size-class pool. It is safe to
// share between containers and goroutines. Recycled memory is not cleared.
type PoolAllocator struct {
	pool *util.BytePool
}

// NewPoolAllocator creates a pool allocator. Size classes larger than
// maxPooledBytes are allocated directly and never retained; 0 means no limit.
func NewPoolAllocator(maxPooledBytes int) *PoolAllocator {
	return &PoolAllocator{pool: util.NewBytePool(maxPooledBytes)}
}

func (a *PoolAllocator) Allocate(nrBytes int, alignment int) (block Block, err error) {
	if nrBytes < 0 {
		return Block{}, fmt.Errorf("negative allocation size %d: %w", nrBytes, ErrAllocationFailure)
	}
	if !validAlignment(alignment) {
		return Block{}, fmt.Errorf("alignment %d is not a power of two: %w", alignment, ErrAllocationFailure)
	}
	if nrBytes == 0 {
		return Block{alignment: alignment}, nil
	}

	size, err := paddedSize(nrBytes, alignment)
	if err != nil {
		return Block{}, err
	}
	if size > maxPooledRequest {
		return Block{}, fmt.Errorf("request of %d bytes exceeds the largest size class: %w", size, ErrAllocationFailure)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("pooled allocation of %d bytes failed: %v", size, r)
			block = Block{}
			err = fmt.Errorf("pooled allocation of %d bytes: %v: %w", size, r, ErrAllocationFailure)
		}
	}()

	raw := a.pool.Get(size)
	block, err = NewBlock(raw, nrBytes, alignment)
	if err != nil {
		a.pool.Put(raw)
		return Block{}, err
	}
	return block, nil
}

func (a *PoolAllocator) Deallocate(block Block) {
	if cap(block.raw) == 0 {
		return
	}
	a.pool.Put(block.raw)
}

// Metrics returns the pool's hit and miss counts.
func (a *PoolAllocator) Metrics() (hits, misses int64) {
	hits, misses = a.pool.GetMetrics()
	log.Debugf("pool allocator hits %d misses %d", hits, misses)
	return hits, misses
}
