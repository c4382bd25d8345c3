package image

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/pixmem/memory"
	"github.com/kpfaulkner/pixmem/options"
	"github.com/kpfaulkner/pixmem/pixel"
)

// Image is an owning container of pixels of type P. The zero value is an
// empty image using the default allocator.
type Image[P pixel.Pixel] struct {
	layout TypedLayout
	mem    storage
}

// NewImage allocates an image with the given layout. A zero StrideBytes
// selects the minimal stride for opts.RowAlignment. Pixel contents are
// whatever the allocator provides.
func NewImage[P pixel.Pixel](layout TypedLayout, opts *options.ImageOptions) (*Image[P], error) {
	img := &Image[P]{mem: newStorage(opts)}
	if _, err := img.Reallocate(layout, img.mem.rowAlignment, false); err != nil {
		return nil, err
	}
	return img, nil
}

// resolveTyped validates a typed layout for pixel type P.
func resolveTyped[P pixel.Pixel](layout TypedLayout, rowAlignment int) (UntypedLayout, error) {
	if err := checkPixelType[P](); err != nil {
		return UntypedLayout{}, err
	}
	resolved, err := UntypedLayoutOf[P](layout).resolve(rowAlignment)
	if err != nil {
		return UntypedLayout{}, err
	}
	if bpc := resolved.NrBytesPerChannel; !resolved.IsEmpty() && resolved.StrideBytes%bpc != 0 {
		return UntypedLayout{}, fmt.Errorf("stride %d not a multiple of %d byte samples: %w", resolved.StrideBytes, bpc, ErrLayoutMismatch)
	}
	return resolved, nil
}

// Reallocate changes the image layout. If the new layout fits the current
// buffer and shrinkToFit is false only the metadata is updated and false is
// returned. Otherwise a new buffer is allocated before the old one is
// released, and true is returned. Pixel contents are not preserved. On error
// the image is unchanged.
func (img *Image[P]) Reallocate(layout TypedLayout, rowAlignment int, shrinkToFit bool) (bool, error) {
	resolved, err := resolveTyped[P](layout, rowAlignment)
	if err != nil {
		return false, err
	}

	reallocated, err := img.mem.reserve(resolved.TotalBytes(), rowAlignment, shrinkToFit)
	if err != nil {
		return false, fmt.Errorf("reallocating %s image to %s: %w", pixel.SemanticsOf[P](), resolved.Typed(), err)
	}
	img.layout = resolved.Typed()
	log.Debugf("image reallocated to %s (new buffer %v)", img.layout, reallocated)
	return reallocated, nil
}

// Clear releases the buffer and leaves the image empty.
func (img *Image[P]) Clear() {
	img.mem.release()
	img.layout = TypedLayout{}
}

func (img *Image[P]) Width() int {
	return img.layout.Width
}

func (img *Image[P]) Height() int {
	return img.layout.Height
}

func (img *Image[P]) StrideBytes() int {
	return img.layout.StrideBytes
}

func (img *Image[P]) Layout() TypedLayout {
	return img.layout
}

func (img *Image[P]) IsEmpty() bool {
	return img.layout.IsEmpty()
}

func (img *Image[P]) IsPacked() bool {
	return UntypedLayoutOf[P](img.layout).IsPacked()
}

// Capacity is the number of bytes the current buffer can hold.
func (img *Image[P]) Capacity() int {
	return img.mem.block().Len()
}

func (img *Image[P]) Allocator() memory.Allocator {
	return img.mem.alloc()
}

func (img *Image[P]) Row(y int) []P {
	return typedRow[P](img.typedPlane().row(y), img.layout.Width)
}

func (img *Image[P]) ConstRow(y int) []P {
	return img.Row(y)
}

func (img *Image[P]) At(x, y int) P {
	return *typedPixel[P](img.typedPlane().pixel(x, y))
}

func (img *Image[P]) Set(x, y int, v P) {
	*typedPixel[P](img.typedPlane().pixel(x, y)) = v
}

func (img *Image[P]) typedPlane() plane {
	return plane{
		data:      img.mem.data(),
		layout:    UntypedLayoutOf[P](img.layout),
		semantics: pixel.SemanticsOf[P](),
	}
}

func (img *Image[P]) mutableTypedPlane() plane {
	return img.typedPlane()
}

func (img *Image[P]) reshape(width, height int) error {
	_, err := img.Reallocate(NewTypedLayout(width, height), img.mem.rowAlignment, false)
	return err
}
