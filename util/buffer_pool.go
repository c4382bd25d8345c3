package util

import (
	"sync"
	"sync/atomic"
)

// BytePool pools byte slices by power-of-two size class to reduce
// allocations when images of similar size are created repeatedly.
type BytePool struct {
	pools map[int]*sync.Pool
	mu    sync.RWMutex

	// MaxPooledBytes bounds the size class that is retained. Zero means no bound.
	MaxPooledBytes int

	// Metrics
	hits   atomic.Int64
	misses atomic.Int64
}

func NewBytePool(maxPooledBytes int) *BytePool {
	return &BytePool{
		pools:          make(map[int]*sync.Pool),
		MaxPooledBytes: maxPooledBytes,
	}
}

// sizeClass returns the smallest power of two >= n.
func sizeClass(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << (FloorLog2(uint64(n-1)) + 1)
}

// Get returns a slice of length n. The capacity is the size class of n.
// Contents are not cleared: callers must not rely on zeroed memory.
func (p *BytePool) Get(n int) []byte {
	if n == 0 {
		return nil
	}

	class := sizeClass(n)

	// Fast path: read lock
	p.mu.RLock()
	pool, exists := p.pools[class]
	p.mu.RUnlock()

	if exists {
		if buf := pool.Get(); buf != nil {
			p.hits.Add(1)
			return (*buf.(*[]byte))[:n]
		}
	} else if p.MaxPooledBytes == 0 || class <= p.MaxPooledBytes {
		// Slow path: create new pool
		p.mu.Lock()
		// Double-check after acquiring write lock
		if _, exists = p.pools[class]; !exists {
			p.pools[class] = &sync.Pool{}
		}
		p.mu.Unlock()
	}

	p.misses.Add(1)
	return make([]byte, n, class)
}

// Put returns a slice obtained from Get to the pool.
func (p *BytePool) Put(buf []byte) {
	if cap(buf) == 0 {
		return
	}

	class := cap(buf)
	if class != sizeClass(class) {
		// not one of ours
		return
	}

	p.mu.RLock()
	pool, exists := p.pools[class]
	p.mu.RUnlock()

	if exists {
		buf = buf[:class]
		pool.Put(&buf)
	}
}

// GetMetrics returns pool usage statistics
func (p *BytePool) GetMetrics() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}
