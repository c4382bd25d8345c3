package image

import (
	"runtime"

	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/pixmem/memory"
	"github.com/kpfaulkner/pixmem/options"
	"github.com/kpfaulkner/pixmem/util"
)

// allocation owns one block. A block holding memory is returned to its
// allocator either explicitly or by a cleanup once the allocation becomes
// unreachable, whichever happens first.
type allocation struct {
	block   memory.Block
	cleanup runtime.Cleanup
}

type blockRelease struct {
	block     memory.Block
	allocator memory.Allocator
}

func releaseUnreachable(r blockRelease) {
	log.Debugf("releasing %d bytes of an unreachable image", r.block.Len())
	r.allocator.Deallocate(r.block)
}

// storage is the allocated memory of an owning container.
type storage struct {
	held          *allocation
	allocator     memory.Allocator
	rowAlignment  int
	baseAlignment int
}

func newStorage(opts *options.ImageOptions) storage {
	o := options.NewImageOptions(opts)
	return storage{
		allocator:     o.Allocator,
		rowAlignment:  o.RowAlignment,
		baseAlignment: o.BaseAlignment,
	}
}

func (s *storage) alloc() memory.Allocator {
	if s.allocator == nil {
		s.allocator = memory.DefaultAllocator()
	}
	return s.allocator
}

func (s *storage) block() memory.Block {
	if s.held == nil {
		return memory.Block{}
	}
	return s.held.block
}

func (s *storage) data() []byte {
	return s.block().Data()
}

func (s *storage) options() *options.ImageOptions {
	return &options.ImageOptions{
		RowAlignment:  s.rowAlignment,
		BaseAlignment: s.baseAlignment,
		Allocator:     s.alloc(),
	}
}

// reserve ensures the block holds nrBytes with the first byte aligned to
// alignment. The existing block is kept if it suffices, unless shrinkToFit.
// A new block is obtained before the old one is released, so on failure
// nothing changes.
func (s *storage) reserve(nrBytes int, alignment int, shrinkToFit bool) (bool, error) {
	alignment = util.Max(alignment, s.baseAlignment, memory.DefaultBaseAlignment)
	current := s.block()
	if !shrinkToFit && nrBytes <= current.Len() && (nrBytes == 0 || current.Alignment() >= alignment) {
		return false, nil
	}

	block, err := s.alloc().Allocate(nrBytes, alignment)
	if err != nil {
		return false, err
	}
	log.Debugf("allocated %d bytes aligned to %d, releasing %d", nrBytes, alignment, current.Len())

	old := s.held
	s.held = s.own(block)
	s.drop(old)
	return true, nil
}

// own wraps a freshly allocated block, arming the cleanup if it holds memory.
func (s *storage) own(block memory.Block) *allocation {
	a := &allocation{block: block}
	if holdsMemory(block) {
		a.cleanup = runtime.AddCleanup(a, releaseUnreachable, blockRelease{block: block, allocator: s.alloc()})
	}
	return a
}

// drop returns the memory of a to the allocator and disarms its cleanup.
func (s *storage) drop(a *allocation) {
	if a == nil || !holdsMemory(a.block) {
		return
	}
	a.cleanup.Stop()
	log.Debugf("releasing %d bytes", a.block.Len())
	s.alloc().Deallocate(a.block)
}

func (s *storage) release() {
	s.drop(s.held)
	s.held = nil
}

func holdsMemory(b memory.Block) bool {
	return cap(b.Raw()) > 0
}

// detach hands the block over to a new storage with the same settings.
func (s *storage) detach() storage {
	moved := *s
	s.held = nil
	return moved
}
