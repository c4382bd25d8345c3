package util

import (
	"testing"
)

func TestBytePoolGetPut(t *testing.T) {
	pool := NewBytePool(0)

	buf := pool.Get(1000)
	if len(buf) != 1000 {
		t.Errorf("expected length 1000, got %d", len(buf))
	}
	if cap(buf) != 1024 {
		t.Errorf("expected capacity 1024, got %d", cap(buf))
	}

	pool.Put(buf)

	buf2 := pool.Get(600)
	if len(buf2) != 600 {
		t.Errorf("expected length 600, got %d", len(buf2))
	}
	pool.Put(buf2)

	hits, misses := pool.GetMetrics()
	if hits+misses != 2 {
		t.Errorf("expected 2 pool requests, got %d", hits+misses)
	}
}

func TestBytePoolZeroSize(t *testing.T) {
	pool := NewBytePool(0)

	// Should not panic
	buf := pool.Get(0)
	if buf != nil {
		t.Errorf("expected nil slice for zero size")
	}
	pool.Put(buf)
}

func TestBytePoolIgnoresForeignSlices(t *testing.T) {
	pool := NewBytePool(0)
	pool.Get(512)

	// capacity 300 is not a size class; Put must ignore it
	pool.Put(make([]byte, 300))

	buf := pool.Get(512)
	if cap(buf) != 512 {
		t.Errorf("expected capacity 512, got %d", cap(buf))
	}
}

func TestBytePoolMaxPooledBytes(t *testing.T) {
	pool := NewBytePool(1024)

	buf := pool.Get(4096)
	pool.Put(buf)

	pool.mu.RLock()
	_, exists := pool.pools[4096]
	pool.mu.RUnlock()
	if exists {
		t.Errorf("size class above MaxPooledBytes should not be pooled")
	}
}

func TestSizeClass(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{1, 1},
		{2, 2},
		{3, 4},
		{64, 64},
		{65, 128},
		{1000, 1024},
	}

	for _, tt := range tests {
		result := sizeClass(tt.input)
		if result != tt.expected {
			t.Errorf("sizeClass(%d) = %d; want %d", tt.input, result, tt.expected)
		}
	}
}

func TestConcurrentAccess(t *testing.T) {
	const goroutines = 10
	const iterations = 100

	pool := NewBytePool(0)
	done := make(chan bool, goroutines)

	for g := 0; g < goroutines; g++ {
		go func() {
			for i := 0; i < iterations; i++ {
				buf := pool.Get(4096)
				buf[0] = byte(i)
				pool.Put(buf)
			}
			done <- true
		}()
	}

	for g := 0; g < goroutines; g++ {
		<-done
	}
}

// Benchmarks

func BenchmarkBytePool(b *testing.B) {
	pool := NewBytePool(0)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf := pool.Get(640 * 480 * 3)
		pool.Put(buf)
	}
}

func BenchmarkBytesDirect(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = make([]byte, 640*480*3)
	}
}
