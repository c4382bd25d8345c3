package options

import (
	"github.com/kpfaulkner/pixmem/memory"
)

// ImageOptions controls how owning containers lay out and obtain memory.
type ImageOptions struct {
	// RowAlignment pads each row to a multiple of this many bytes. 0 or 1
	// means rows are packed.
	RowAlignment int

	// BaseAlignment is the alignment of the first pixel; never less than
	// memory.DefaultBaseAlignment.
	BaseAlignment int

	Allocator memory.Allocator
}

func NewImageOptions(options *ImageOptions) *ImageOptions {

	opt := &ImageOptions{
		BaseAlignment: memory.DefaultBaseAlignment,
		Allocator:     memory.DefaultAllocator(),
	}
	if options != nil {
		opt.RowAlignment = options.RowAlignment
		if options.BaseAlignment > opt.BaseAlignment {
			opt.BaseAlignment = options.BaseAlignment
		}
		if options.Allocator != nil {
			opt.Allocator = options.Allocator
		}
	}
	return opt
}

// WithAllocator returns a copy of the options using allocator.
func (o ImageOptions) WithAllocator(allocator memory.Allocator) *ImageOptions {
	o.Allocator = allocator
	return &o
}

// WithRowAlignment returns a copy of the options using rowAlignment.
func (o ImageOptions) WithRowAlignment(rowAlignment int) *ImageOptions {
	o.RowAlignment = rowAlignment
	return &o
}
