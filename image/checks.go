package image

import (
	"fmt"
	"unsafe"

	"github.com/kpfaulkner/pixmem/pixel"
)

// checkPixelType fails unless the memory of P is exactly what its traits
// describe: NrChannels samples of NrBytesPerChannel bytes, aligned to no
// more than one sample. Rows are reinterpreted as []P on that basis.
func checkPixelType[P pixel.Pixel]() error {
	var zero P
	t := zero.Traits()
	size := pixel.Size[P]()
	if t.NrChannels <= 0 || t.NrBytesPerChannel <= 0 || size != t.NrBytes() {
		return fmt.Errorf("pixel type %T occupies %d bytes but describes %d channels of %d bytes: %w",
			zero, size, t.NrChannels, t.NrBytesPerChannel, ErrTypeMismatch)
	}
	if align := int(unsafe.Alignof(zero)); align > t.NrBytesPerChannel {
		return fmt.Errorf("pixel type %T needs %d byte alignment, more than its %d byte samples: %w",
			zero, align, t.NrBytesPerChannel, ErrTypeMismatch)
	}
	return nil
}

// CheckTypedCompatibility reports whether src can be accessed as pixels of
// type P. Channel count and sample size must match; pixel and sample format
// must match unless the untyped side leaves them unknown. The data must also
// be aligned for P's samples.
func CheckTypedCompatibility[P pixel.Pixel](src DynImageOrView) error {
	if err := checkPixelType[P](); err != nil {
		return err
	}
	p := src.dynPlane()
	t := pixel.TraitsOf[P]()

	// an empty image that never had a shape converts to any type
	if p.layout.IsEmpty() && p.layout.NrBytesPerPixel() == 0 {
		return nil
	}

	if p.layout.NrChannels != t.NrChannels || p.layout.NrBytesPerChannel != t.NrBytesPerChannel {
		return fmt.Errorf("%d channels of %d bytes cannot be viewed as %s (%d channels of %d bytes): %w",
			p.layout.NrChannels, p.layout.NrBytesPerChannel, t.Semantics(), t.NrChannels, t.NrBytesPerChannel, ErrTypeMismatch)
	}
	if p.semantics.PixelFormat != pixel.FormatUnknown && t.PixelFormat != pixel.FormatUnknown &&
		p.semantics.PixelFormat != t.PixelFormat {
		return fmt.Errorf("pixel format %s cannot be viewed as %s: %w", p.semantics.PixelFormat, t.PixelFormat, ErrTypeMismatch)
	}
	if p.semantics.SampleFormat != pixel.UnknownSample && p.semantics.SampleFormat != t.SampleFormat {
		return fmt.Errorf("sample format %s cannot be viewed as %s: %w", p.semantics.SampleFormat, t.SampleFormat, ErrTypeMismatch)
	}
	return p.checkElementAlignment(t.NrBytesPerChannel)
}

// CheckLayoutCompatible fails with ErrLayoutMismatch unless src has the
// width, height, channel count and sample size of layout. Strides may differ.
func CheckLayoutCompatible(src DynImageOrView, layout UntypedLayout) error {
	if !src.Layout().IsCompatible(layout) {
		return fmt.Errorf("layout %s incompatible with %s: %w", src.Layout(), layout, ErrLayoutMismatch)
	}
	return nil
}
