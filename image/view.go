package image

import (
	"github.com/kpfaulkner/pixmem/pixel"
)

// ConstImageView is a read-only, non-owning view of pixels of type P. The
// memory it refers to must outlive it.
type ConstImageView[P pixel.Pixel] struct {
	p plane
}

// MutableImageView is a read-write, non-owning view of pixels of type P.
type MutableImageView[P pixel.Pixel] struct {
	p plane
}

func typedViewPlane[P pixel.Pixel](data []byte, layout TypedLayout) (plane, error) {
	if err := checkPixelType[P](); err != nil {
		return plane{}, err
	}
	t := pixel.TraitsOf[P]()
	return newPlane(data, UntypedLayoutOf[P](layout), t.Semantics(), t.NrBytesPerChannel)
}

// NewConstImageView views data with the given layout. A zero StrideBytes
// means packed rows. data must start at the first pixel.
func NewConstImageView[P pixel.Pixel](data []byte, layout TypedLayout) (ConstImageView[P], error) {
	p, err := typedViewPlane[P](data, layout)
	if err != nil {
		return ConstImageView[P]{}, err
	}
	return ConstImageView[P]{p: p}, nil
}

func NewMutableImageView[P pixel.Pixel](data []byte, layout TypedLayout) (MutableImageView[P], error) {
	p, err := typedViewPlane[P](data, layout)
	if err != nil {
		return MutableImageView[P]{}, err
	}
	return MutableImageView[P]{p: p}, nil
}

func (v ConstImageView[P]) Width() int {
	return v.p.layout.Width
}

func (v ConstImageView[P]) Height() int {
	return v.p.layout.Height
}

func (v ConstImageView[P]) StrideBytes() int {
	return v.p.layout.StrideBytes
}

func (v ConstImageView[P]) Layout() TypedLayout {
	return v.p.layout.Typed()
}

func (v ConstImageView[P]) IsEmpty() bool {
	return v.p.layout.IsEmpty()
}

func (v ConstImageView[P]) IsPacked() bool {
	return v.p.layout.IsPacked()
}

// ConstRow returns row y. The slice aliases the viewed memory and must not
// be written to.
func (v ConstImageView[P]) ConstRow(y int) []P {
	return typedRow[P](v.p.row(y), v.p.layout.Width)
}

func (v ConstImageView[P]) At(x, y int) P {
	return *typedPixel[P](v.p.pixel(x, y))
}

// SubView returns a view of region r.
func (v ConstImageView[P]) SubView(r Region) (ConstImageView[P], error) {
	sub, err := v.p.sub(r)
	if err != nil {
		return ConstImageView[P]{}, err
	}
	return ConstImageView[P]{p: sub}, nil
}

func (v ConstImageView[P]) typedPlane() plane {
	return v.p
}

func (v MutableImageView[P]) Width() int {
	return v.p.layout.Width
}

func (v MutableImageView[P]) Height() int {
	return v.p.layout.Height
}

func (v MutableImageView[P]) StrideBytes() int {
	return v.p.layout.StrideBytes
}

func (v MutableImageView[P]) Layout() TypedLayout {
	return v.p.layout.Typed()
}

func (v MutableImageView[P]) IsEmpty() bool {
	return v.p.layout.IsEmpty()
}

func (v MutableImageView[P]) IsPacked() bool {
	return v.p.layout.IsPacked()
}

func (v MutableImageView[P]) Row(y int) []P {
	return typedRow[P](v.p.row(y), v.p.layout.Width)
}

func (v MutableImageView[P]) ConstRow(y int) []P {
	return v.Row(y)
}

func (v MutableImageView[P]) At(x, y int) P {
	return *typedPixel[P](v.p.pixel(x, y))
}

func (v MutableImageView[P]) Set(x, y int, px P) {
	*typedPixel[P](v.p.pixel(x, y)) = px
}

func (v MutableImageView[P]) SubView(r Region) (MutableImageView[P], error) {
	sub, err := v.p.sub(r)
	if err != nil {
		return MutableImageView[P]{}, err
	}
	return MutableImageView[P]{p: sub}, nil
}

// Const returns a read-only view of the same memory.
func (v MutableImageView[P]) Const() ConstImageView[P] {
	return ConstImageView[P]{p: v.p}
}

// Reseat points the view at different memory. On error the view is
// unchanged.
func (v *MutableImageView[P]) Reseat(data []byte, layout TypedLayout) error {
	p, err := typedViewPlane[P](data, layout)
	if err != nil {
		return err
	}
	v.p = p
	return nil
}

func (v MutableImageView[P]) typedPlane() plane {
	return v.p
}

func (v MutableImageView[P]) mutableTypedPlane() plane {
	return v.p
}

func (v MutableImageView[P]) reshape(width, height int) error {
	if width != v.p.layout.Width || height != v.p.layout.Height {
		return errViewResize(v.p.layout, width, height)
	}
	return nil
}
