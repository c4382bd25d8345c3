package memory

import (
	"errors"
	"math"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignedAllocator(t *testing.T) {
	for _, tc := range []struct {
		name      string
		nrBytes   int
		alignment int
	}{
		{name: "unaligned", nrBytes: 100, alignment: 0},
		{name: "byte aligned", nrBytes: 7, alignment: 1},
		{name: "base alignment", nrBytes: 1000, alignment: DefaultBaseAlignment},
		{name: "cache line", nrBytes: 33, alignment: 64},
		{name: "large alignment", nrBytes: 5, alignment: 4096},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := &AlignedAllocator{}
			block, err := a.Allocate(tc.nrBytes, tc.alignment)
			require.NoError(t, err)
			assert.Equal(t, tc.nrBytes, block.Len())
			assert.Equal(t, tc.nrBytes, cap(block.Data()))
			if tc.alignment > 1 {
				assert.Zero(t, block.Address()%uintptr(tc.alignment))
			}
			a.Deallocate(block)
		})
	}
}

func TestAlignedAllocatorFailures(t *testing.T) {
	a := &AlignedAllocator{MaxBytes: 1 << 10}

	_, err := a.Allocate(-1, 16)
	assert.True(t, errors.Is(err, ErrAllocationFailure))

	_, err = a.Allocate(10, 24)
	assert.True(t, errors.Is(err, ErrAllocationFailure))

	_, err = a.Allocate(1<<11, 16)
	assert.True(t, errors.Is(err, ErrAllocationFailure))

	block, err := a.Allocate(0, 16)
	require.NoError(t, err)
	assert.True(t, block.IsEmpty())
	assert.Equal(t, uintptr(0), block.Address())
	a.Deallocate(block)
}

func TestDefaultAllocatorIsShared(t *testing.T) {
	assert.Same(t, DefaultAllocator(), DefaultAllocator())
}

func TestNewBlock(t *testing.T) {
	raw := make([]byte, 64+63)
	block, err := NewBlock(raw, 64, 64)
	require.NoError(t, err)
	assert.Equal(t, 64, block.Len())
	assert.Equal(t, 64, block.Alignment())
	assert.Zero(t, block.Address()%64)
	assert.Len(t, block.Raw(), len(raw))

	_, err = NewBlock(make([]byte, 10), 20, 0)
	assert.True(t, errors.Is(err, ErrAllocationFailure))

	_, err = NewBlock(make([]byte, 10), 5, 3)
	assert.True(t, errors.Is(err, ErrAllocationFailure))
}

func TestPoolAllocatorReuse(t *testing.T) {
	a := NewPoolAllocator(0)

	block, err := a.Allocate(1000, 16)
	require.NoError(t, err)
	assert.Equal(t, 1000, block.Len())
	assert.Zero(t, block.Address()%16)
	a.Deallocate(block)

	block, err = a.Allocate(900, 16)
	require.NoError(t, err)
	assert.Equal(t, 900, block.Len())
	assert.Zero(t, block.Address()%16)

	hits, misses := a.Metrics()
	assert.Equal(t, int64(2), hits+misses)
	assert.GreaterOrEqual(t, misses, int64(1))
	a.Deallocate(block)
	a.Deallocate(Block{})
}

func TestOversizedRequests(t *testing.T) {
	for _, tc := range []struct {
		name      string
		allocator Allocator
		nrBytes   int
		alignment int
	}{
		{name: "aligned, slack overflows", allocator: &AlignedAllocator{}, nrBytes: math.MaxInt - 4, alignment: 16},
		{name: "pool, slack overflows", allocator: NewPoolAllocator(0), nrBytes: math.MaxInt - 4, alignment: 16},
		{name: "pool, beyond largest size class", allocator: NewPoolAllocator(0), nrBytes: math.MaxInt>>1 + 2, alignment: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var block Block
			var err error
			require.NotPanics(t, func() {
				block, err = tc.allocator.Allocate(tc.nrBytes, tc.alignment)
			})
			assert.True(t, errors.Is(err, ErrAllocationFailure), "got %v", err)
			assert.True(t, block.IsEmpty())
		})
	}
}

func TestUnsatisfiableRequests(t *testing.T) {
	if bits.UintSize < 64 {
		t.Skip("needs a request beyond the 64-bit heap limit")
	}
	for _, tc := range []struct {
		name      string
		allocator Allocator
	}{
		{name: "aligned", allocator: &AlignedAllocator{}},
		{name: "pool", allocator: NewPoolAllocator(0)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				_, err = tc.allocator.Allocate(math.MaxInt>>2, 16)
			})
			assert.True(t, errors.Is(err, ErrAllocationFailure), "got %v", err)
		})
	}
}

func TestPreferredRowAlignment(t *testing.T) {
	alignment := PreferredRowAlignment()
	assert.Contains(t, []int{16, 32, 64}, alignment)
}

func BenchmarkAlignedAllocator(b *testing.B) {
	a := &AlignedAllocator{}
	for i := 0; i < b.N; i++ {
		block, _ := a.Allocate(1920*1080*3, 64)
		a.Deallocate(block)
	}
}

func BenchmarkPoolAllocator(b *testing.B) {
	a := NewPoolAllocator(0)
	for i := 0; i < b.N; i++ {
		block, _ := a.Allocate(1920*1080*3, 64)
		a.Deallocate(block)
	}
}
