package image

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/pixmem/options"
	"github.com/kpfaulkner/pixmem/pixel"
)

func DynView(src DynImageOrMutableView) MutableDynImageView {
	return MutableDynImageView{p: src.mutableDynPlane()}
}

func ConstDynView(src DynImageOrView) ConstDynImageView {
	return ConstDynImageView{p: src.dynPlane()}
}

func DynViewRegion(src DynImageOrMutableView, r Region) (MutableDynImageView, error) {
	return DynView(src).SubView(r)
}

// CloneDyn copies src, including its semantics, into a new image.
func CloneDyn(src DynImageOrView, opts *options.ImageOptions) (*DynImage, error) {
	return cloneDynPlane(src.dynPlane(), opts)
}

func CloneDynRegion(src DynImageOrView, r Region, opts *options.ImageOptions) (*DynImage, error) {
	sub, err := src.dynPlane().sub(r)
	if err != nil {
		return nil, err
	}
	return cloneDynPlane(sub, opts)
}

func cloneDynPlane(src plane, opts *options.ImageOptions) (*DynImage, error) {
	l := src.layout
	l.StrideBytes = 0
	dst, err := NewDynImage(l, src.semantics, opts)
	if err != nil {
		return nil, err
	}
	dst.dynPlane().copyFrom(src)
	return dst, nil
}

// CloneDynInto copies src into dst. A *DynImage destination is reallocated;
// a view destination must already have the layout of src.
func CloneDynInto(src DynImageOrView, dst DynImageOrMutableView) error {
	sp := src.dynPlane()
	if v, ok := dst.(*MutableDynImageView); ok && !v.p.layout.IsCompatible(sp.layout) {
		return errViewResize(v.p.layout, sp.layout.Width, sp.layout.Height)
	}
	l := sp.layout
	l.StrideBytes = 0
	if err := dst.Prepare(l, sp.semantics); err != nil {
		return err
	}
	dst.mutableDynPlane().copyFrom(sp)
	return nil
}

func CropDyn(img *DynImage, r Region) error {
	cropped, err := CloneDynRegion(img, r, img.mem.options())
	if err != nil {
		return fmt.Errorf("cropping %s image: %w", img.layout, err)
	}
	log.Debugf("cropped %s to %s", img.layout, r)
	img.Clear()
	*img = *cropped
	return nil
}

// FillDyn sets every pixel of dst to value, which must be exactly one
// pixel's worth of bytes.
func FillDyn(dst DynImageOrMutableView, value []byte) error {
	p := dst.mutableDynPlane()
	if p.layout.IsEmpty() {
		return nil
	}
	if len(value) != p.layout.NrBytesPerPixel() {
		return fmt.Errorf("fill value of %d bytes for %d byte pixels: %w", len(value), p.layout.NrBytesPerPixel(), ErrLayoutMismatch)
	}
	p.fill(value)
	return nil
}

// AllocateDyn is Allocate for untyped images. The size check also covers
// channel count and sample size.
func AllocateDyn(img *DynImage, layout UntypedLayout, semantics pixel.Semantics, forceLayout bool, shrinkToFit bool) (bool, error) {
	if !forceLayout && img.layout.IsCompatible(layout) {
		img.semantics = semantics
		return false, nil
	}
	return img.Reallocate(layout, guessedRowAlignment(img.dynPlane(), img.mem.rowAlignment), semantics, shrinkToFit || forceLayout)
}

// EqualDyn reports whether a and b have compatible layouts and the same
// pixel bytes. Semantics and padding are ignored.
func EqualDyn(a, b DynImageOrView) bool {
	return a.dynPlane().equal(b.dynPlane())
}
