package image

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/pixmem/options"
	"github.com/kpfaulkner/pixmem/pixel"
)

// View returns a mutable view of an image or of another mutable view.
func View[P pixel.Pixel](src MutableImageOrView[P]) MutableImageView[P] {
	return MutableImageView[P]{p: src.mutableTypedPlane()}
}

func ConstView[P pixel.Pixel](src ImageOrView[P]) ConstImageView[P] {
	return ConstImageView[P]{p: src.typedPlane()}
}

// ViewRegion returns a mutable view of region r of src.
func ViewRegion[P pixel.Pixel](src MutableImageOrView[P], r Region) (MutableImageView[P], error) {
	return View[P](src).SubView(r)
}

// Clone copies src into a new image. Rows are packed unless
// opts.RowAlignment is set.
func Clone[P pixel.Pixel](src ImageOrView[P], opts *options.ImageOptions) (*Image[P], error) {
	return clonePlane[P](src.typedPlane(), opts)
}

// CloneRegion copies region r of src into a new image. The region must lie
// within src.
func CloneRegion[P pixel.Pixel](src ImageOrView[P], r Region, opts *options.ImageOptions) (*Image[P], error) {
	sub, err := src.typedPlane().sub(r)
	if err != nil {
		return nil, err
	}
	return clonePlane[P](sub, opts)
}

func clonePlane[P pixel.Pixel](src plane, opts *options.ImageOptions) (*Image[P], error) {
	dst, err := NewImage[P](NewTypedLayout(src.layout.Width, src.layout.Height), opts)
	if err != nil {
		return nil, err
	}
	dst.typedPlane().copyFrom(src)
	return dst, nil
}

// CloneInto copies src into dst. An image destination is reallocated to the
// size of src; a view destination must already have that size.
func CloneInto[P pixel.Pixel](src ImageOrView[P], dst MutableImageOrView[P]) error {
	sp := src.typedPlane()
	if err := dst.reshape(sp.layout.Width, sp.layout.Height); err != nil {
		return err
	}
	dst.mutableTypedPlane().copyFrom(sp)
	return nil
}

// Crop replaces the contents of img with region r. On error img is
// unchanged.
func Crop[P pixel.Pixel](img *Image[P], r Region) error {
	cropped, err := CloneRegion[P](img, r, img.mem.options())
	if err != nil {
		return fmt.Errorf("cropping %s image: %w", img.layout, err)
	}
	log.Debugf("cropped %s to %s", img.layout, r)
	img.Clear()
	*img = *cropped
	return nil
}

// Fill sets every pixel of dst to v.
func Fill[P pixel.Pixel](dst MutableImageOrView[P], v P) {
	dst.mutableTypedPlane().fill(pixelBytesOf(&v))
}

// Allocate resizes img to the width and height of layout. Without
// forceLayout nothing happens when the size already matches. Otherwise the
// row alignment of the existing buffer is kept and the image is
// reallocated; forceLayout always obtains a fresh buffer.
func Allocate[P pixel.Pixel](img *Image[P], layout TypedLayout, forceLayout bool, shrinkToFit bool) (bool, error) {
	if !forceLayout && img.Width() == layout.Width && img.Height() == layout.Height {
		return false, nil
	}
	return img.Reallocate(layout, guessedRowAlignment(img.typedPlane(), img.mem.rowAlignment), shrinkToFit || forceLayout)
}

// guessedRowAlignment infers the row alignment of an allocated plane, or
// falls back for planes without memory.
func guessedRowAlignment(p plane, fallback int) int {
	if len(p.data) == 0 || p.layout.IsEmpty() {
		return fallback
	}
	return GuessRowAlignment(p.address(), p.layout.StrideBytes)
}

// Equal reports whether a and b have the same size and pixel values.
// Padding bytes are ignored.
func Equal[P pixel.Pixel](a, b ImageOrView[P]) bool {
	return a.typedPlane().equal(b.typedPlane())
}
