package image

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/pixmem/memory"
	"github.com/kpfaulkner/pixmem/options"
	"github.com/kpfaulkner/pixmem/pixel"
)

// DynImage is an owning container whose pixel shape is described at runtime
// by its layout and semantics.
type DynImage struct {
	layout    UntypedLayout
	semantics pixel.Semantics
	mem       storage
}

func NewDynImage(layout UntypedLayout, semantics pixel.Semantics, opts *options.ImageOptions) (*DynImage, error) {
	img := &DynImage{semantics: semantics, mem: newStorage(opts)}
	if _, err := img.Reallocate(layout, img.mem.rowAlignment, semantics, false); err != nil {
		return nil, err
	}
	return img, nil
}

// Reallocate behaves as Image.Reallocate and additionally replaces the
// semantics tag.
func (img *DynImage) Reallocate(layout UntypedLayout, rowAlignment int, semantics pixel.Semantics, shrinkToFit bool) (bool, error) {
	resolved, err := layout.resolve(rowAlignment)
	if err != nil {
		return false, err
	}

	reallocated, err := img.mem.reserve(resolved.TotalBytes(), rowAlignment, shrinkToFit)
	if err != nil {
		return false, fmt.Errorf("reallocating dynamic image to %s: %w", resolved, err)
	}
	img.layout = resolved
	img.semantics = semantics
	log.Debugf("dynamic image reallocated to %s %s (new buffer %v)", img.layout, img.semantics, reallocated)
	return reallocated, nil
}

// Prepare readies the image to receive pixels of the given layout, as a
// decoder would before writing rows.
func (img *DynImage) Prepare(layout UntypedLayout, semantics pixel.Semantics) error {
	_, err := img.Reallocate(layout, img.mem.rowAlignment, semantics, false)
	return err
}

func (img *DynImage) Clear() {
	img.mem.release()
	img.layout = UntypedLayout{}
	img.semantics = pixel.UnknownSemantics
}

func (img *DynImage) Width() int {
	return img.layout.Width
}

func (img *DynImage) Height() int {
	return img.layout.Height
}

func (img *DynImage) StrideBytes() int {
	return img.layout.StrideBytes
}

func (img *DynImage) NrChannels() int {
	return img.layout.NrChannels
}

func (img *DynImage) NrBytesPerChannel() int {
	return img.layout.NrBytesPerChannel
}

func (img *DynImage) Layout() UntypedLayout {
	return img.layout
}

func (img *DynImage) Semantics() pixel.Semantics {
	return img.semantics
}

func (img *DynImage) PixelFormat() pixel.PixelFormat {
	return img.semantics.PixelFormat
}

func (img *DynImage) SampleFormat() pixel.SampleFormat {
	return img.semantics.SampleFormat
}

func (img *DynImage) IsEmpty() bool {
	return img.layout.IsEmpty()
}

func (img *DynImage) IsPacked() bool {
	return img.layout.IsPacked()
}

func (img *DynImage) Capacity() int {
	return img.mem.block().Len()
}

func (img *DynImage) Allocator() memory.Allocator {
	return img.mem.alloc()
}

func (img *DynImage) RowBytes(y int) []byte {
	return img.dynPlane().row(y)
}

func (img *DynImage) ConstRowBytes(y int) []byte {
	return img.RowBytes(y)
}

func (img *DynImage) PixelBytes(x, y int) []byte {
	return img.dynPlane().pixel(x, y)
}

func (img *DynImage) ConstPixelBytes(x, y int) []byte {
	return img.PixelBytes(x, y)
}

func (img *DynImage) dynPlane() plane {
	return plane{data: img.mem.data(), layout: img.layout, semantics: img.semantics}
}

func (img *DynImage) mutableDynPlane() plane {
	return img.dynPlane()
}
