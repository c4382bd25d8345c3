package image

import (
	"fmt"

	"github.com/kpfaulkner/pixmem/pixel"
)

// ConstDynImageView is a read-only, non-owning view of untyped pixel data.
type ConstDynImageView struct {
	p plane
}

// MutableDynImageView is a read-write, non-owning view of untyped pixel data.
type MutableDynImageView struct {
	p plane
}

func NewConstDynImageView(data []byte, layout UntypedLayout, semantics pixel.Semantics) (ConstDynImageView, error) {
	p, err := newPlane(data, layout, semantics, 1)
	if err != nil {
		return ConstDynImageView{}, err
	}
	return ConstDynImageView{p: p}, nil
}

func NewMutableDynImageView(data []byte, layout UntypedLayout, semantics pixel.Semantics) (MutableDynImageView, error) {
	p, err := newPlane(data, layout, semantics, 1)
	if err != nil {
		return MutableDynImageView{}, err
	}
	return MutableDynImageView{p: p}, nil
}

func (v ConstDynImageView) Width() int {
	return v.p.layout.Width
}

func (v ConstDynImageView) Height() int {
	return v.p.layout.Height
}

func (v ConstDynImageView) StrideBytes() int {
	return v.p.layout.StrideBytes
}

func (v ConstDynImageView) Layout() UntypedLayout {
	return v.p.layout
}

func (v ConstDynImageView) Semantics() pixel.Semantics {
	return v.p.semantics
}

func (v ConstDynImageView) IsEmpty() bool {
	return v.p.layout.IsEmpty()
}

func (v ConstDynImageView) IsPacked() bool {
	return v.p.layout.IsPacked()
}

// ConstRowBytes returns the pixel bytes of row y, excluding padding. The
// slice must not be written to.
func (v ConstDynImageView) ConstRowBytes(y int) []byte {
	return v.p.row(y)
}

func (v ConstDynImageView) ConstPixelBytes(x, y int) []byte {
	return v.p.pixel(x, y)
}

func (v ConstDynImageView) SubView(r Region) (ConstDynImageView, error) {
	sub, err := v.p.sub(r)
	if err != nil {
		return ConstDynImageView{}, err
	}
	return ConstDynImageView{p: sub}, nil
}

func (v ConstDynImageView) dynPlane() plane {
	return v.p
}

func (v MutableDynImageView) Width() int {
	return v.p.layout.Width
}

func (v MutableDynImageView) Height() int {
	return v.p.layout.Height
}

func (v MutableDynImageView) StrideBytes() int {
	return v.p.layout.StrideBytes
}

func (v MutableDynImageView) Layout() UntypedLayout {
	return v.p.layout
}

func (v MutableDynImageView) Semantics() pixel.Semantics {
	return v.p.semantics
}

func (v MutableDynImageView) IsEmpty() bool {
	return v.p.layout.IsEmpty()
}

func (v MutableDynImageView) IsPacked() bool {
	return v.p.layout.IsPacked()
}

func (v MutableDynImageView) RowBytes(y int) []byte {
	return v.p.row(y)
}

func (v MutableDynImageView) ConstRowBytes(y int) []byte {
	return v.p.row(y)
}

func (v MutableDynImageView) PixelBytes(x, y int) []byte {
	return v.p.pixel(x, y)
}

func (v MutableDynImageView) ConstPixelBytes(x, y int) []byte {
	return v.p.pixel(x, y)
}

func (v MutableDynImageView) SubView(r Region) (MutableDynImageView, error) {
	sub, err := v.p.sub(r)
	if err != nil {
		return MutableDynImageView{}, err
	}
	return MutableDynImageView{p: sub}, nil
}

func (v MutableDynImageView) Const() ConstDynImageView {
	return ConstDynImageView{p: v.p}
}

// Prepare accepts a layout only if it matches the viewed memory; a view
// cannot be resized. On success the semantics tag is replaced.
func (v *MutableDynImageView) Prepare(layout UntypedLayout, semantics pixel.Semantics) error {
	if !v.p.layout.IsCompatible(layout) {
		return fmt.Errorf("view of %s cannot hold %s: %w", v.p.layout, layout, ErrLayoutMismatch)
	}
	v.p.semantics = semantics
	return nil
}

// Reseat points the view at different memory. On error the view is
// unchanged.
func (v *MutableDynImageView) Reseat(data []byte, layout UntypedLayout, semantics pixel.Semantics) error {
	p, err := newPlane(data, layout, semantics, 1)
	if err != nil {
		return err
	}
	v.p = p
	return nil
}

func (v MutableDynImageView) dynPlane() plane {
	return v.p
}

func (v MutableDynImageView) mutableDynPlane() plane {
	return v.p
}

func errViewResize(l UntypedLayout, width, height int) error {
	return fmt.Errorf("cannot resize %dx%d view to %dx%d: %w", l.Width, l.Height, width, height, ErrInvalidOperationOnView)
}
