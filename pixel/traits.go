package pixel

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Element is the per-channel sample type of a pixel.
type Element interface {
	constraints.Integer | constraints.Float
}

// Traits describes the static memory shape and semantics of a pixel type.
type Traits struct {
	NrChannels        int
	NrBytesPerChannel int
	PixelFormat       PixelFormat
	SampleFormat      SampleFormat
}

// NrBytes is the size of one pixel in bytes.
func (t Traits) NrBytes() int {
	return t.NrChannels * t.NrBytesPerChannel
}

func (t Traits) Semantics() Semantics {
	return Semantics{PixelFormat: t.PixelFormat, SampleFormat: t.SampleFormat}
}

// Pixel is implemented by every pixel type usable in a typed image. All
// pixel types are fixed-size arrays of an Element, so a pixel's in-memory
// size is exactly NrChannels*NrBytesPerChannel.
type Pixel interface {
	comparable
	Traits() Traits
}

// TraitsOf returns the traits of pixel type P.
func TraitsOf[P Pixel]() Traits {
	var p P
	return p.Traits()
}

// SemanticsOf returns the semantics tag implied by pixel type P.
func SemanticsOf[P Pixel]() Semantics {
	return TraitsOf[P]().Semantics()
}

// Size returns the in-memory size of pixel type P.
func Size[P Pixel]() int {
	var p P
	return int(unsafe.Sizeof(p))
}

func newTraits[T Element](nrChannels int, format PixelFormat) Traits {
	var zero T
	return Traits{
		NrChannels:        nrChannels,
		NrBytesPerChannel: int(unsafe.Sizeof(zero)),
		PixelFormat:       format,
		SampleFormat:      sampleFormatOf[T](),
	}
}

func sampleFormatOf[T Element]() SampleFormat {
	var one T = 1
	if one/2 != 0 {
		return FloatingPoint
	}
	var zero T
	if zero-1 < zero {
		return SignedInteger
	}
	return UnsignedInteger
}
