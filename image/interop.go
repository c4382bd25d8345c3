package image

import (
	"github.com/kpfaulkner/pixmem/pixel"
)

// ImageOrView is implemented by *Image[P], ConstImageView[P] and
// MutableImageView[P] only.
type ImageOrView[P pixel.Pixel] interface {
	Width() int
	Height() int
	Layout() TypedLayout
	At(x, y int) P
	ConstRow(y int) []P
	typedPlane() plane
}

// MutableImageOrView is implemented by *Image[P] and MutableImageView[P] only.
type MutableImageOrView[P pixel.Pixel] interface {
	ImageOrView[P]
	Row(y int) []P
	Set(x, y int, v P)
	mutableTypedPlane() plane
	reshape(width, height int) error
}

// DynImageOrView is implemented by *DynImage, ConstDynImageView and
// MutableDynImageView only.
type DynImageOrView interface {
	Width() int
	Height() int
	Layout() UntypedLayout
	Semantics() pixel.Semantics
	ConstRowBytes(y int) []byte
	dynPlane() plane
}

// DynImageOrMutableView is the target of decoders: *DynImage, which
// reallocates on Prepare, or *MutableDynImageView, which only accepts a
// matching layout.
type DynImageOrMutableView interface {
	DynImageOrView
	RowBytes(y int) []byte
	Prepare(layout UntypedLayout, semantics pixel.Semantics) error
	mutableDynPlane() plane
}

// ToDynView views a typed image or view as untyped, with semantics implied
// by P.
func ToDynView[P pixel.Pixel](src ImageOrView[P]) ConstDynImageView {
	return ConstDynImageView{p: src.typedPlane()}
}

func ToMutableDynView[P pixel.Pixel](src MutableImageOrView[P]) MutableDynImageView {
	return MutableDynImageView{p: src.mutableTypedPlane()}
}

// ToDynImage moves the buffer of img into a new DynImage. img is left empty.
func ToDynImage[P pixel.Pixel](img *Image[P]) *DynImage {
	dyn := &DynImage{
		layout:    UntypedLayoutOf[P](img.layout),
		semantics: pixel.SemanticsOf[P](),
		mem:       img.mem.detach(),
	}
	img.layout = TypedLayout{}
	return dyn
}

// ToImageView views untyped data as pixels of type P, after checking that P
// matches the data.
func ToImageView[P pixel.Pixel](src DynImageOrView) (ConstImageView[P], error) {
	if err := CheckTypedCompatibility[P](src); err != nil {
		return ConstImageView[P]{}, err
	}
	return ConstImageView[P]{p: typedFromDyn[P](src.dynPlane())}, nil
}

func ToMutableImageView[P pixel.Pixel](src DynImageOrMutableView) (MutableImageView[P], error) {
	if err := CheckTypedCompatibility[P](src); err != nil {
		return MutableImageView[P]{}, err
	}
	return MutableImageView[P]{p: typedFromDyn[P](src.mutableDynPlane())}, nil
}

// ToImage moves the buffer of img into a new Image[P]. On success img is
// left empty; on error it is untouched.
func ToImage[P pixel.Pixel](img *DynImage) (*Image[P], error) {
	if err := CheckTypedCompatibility[P](img); err != nil {
		return nil, err
	}
	typed := &Image[P]{
		layout: img.layout.Typed(),
		mem:    img.mem.detach(),
	}
	img.layout = UntypedLayout{}
	img.semantics = pixel.UnknownSemantics
	return typed, nil
}

// typedFromDyn adopts the shape of P for an empty untyped plane.
func typedFromDyn[P pixel.Pixel](p plane) plane {
	t := pixel.TraitsOf[P]()
	p.layout.NrChannels = t.NrChannels
	p.layout.NrBytesPerChannel = t.NrBytesPerChannel
	p.semantics = t.Semantics()
	return p
}
