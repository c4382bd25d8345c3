package image

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/kpfaulkner/pixmem/pixel"
)

// TypedLayout describes the memory shape of an image whose pixel type is
// known statically.
type TypedLayout struct {
	Width       int
	Height      int
	StrideBytes int
}

func NewTypedLayout(width, height int) TypedLayout {
	return TypedLayout{Width: width, Height: height}
}

func (l TypedLayout) IsEmpty() bool {
	return l.Width == 0 || l.Height == 0
}

func (l TypedLayout) TotalBytes() int {
	return l.StrideBytes * l.Height
}

func (l TypedLayout) String() string {
	return fmt.Sprintf("%dx%d stride %d", l.Width, l.Height, l.StrideBytes)
}

// UntypedLayout describes the memory shape of an image whose pixel type is
// only known at runtime.
type UntypedLayout struct {
	Width             int
	Height            int
	NrChannels        int
	NrBytesPerChannel int
	StrideBytes       int
}

func NewUntypedLayout(width, height, nrChannels, nrBytesPerChannel int) UntypedLayout {
	return UntypedLayout{
		Width:             width,
		Height:            height,
		NrChannels:        nrChannels,
		NrBytesPerChannel: nrBytesPerChannel,
	}
}

// UntypedLayoutOf expands a typed layout with the shape of pixel type P.
func UntypedLayoutOf[P pixel.Pixel](l TypedLayout) UntypedLayout {
	t := pixel.TraitsOf[P]()
	return UntypedLayout{
		Width:             l.Width,
		Height:            l.Height,
		NrChannels:        t.NrChannels,
		NrBytesPerChannel: t.NrBytesPerChannel,
		StrideBytes:       l.StrideBytes,
	}
}

func (l UntypedLayout) Typed() TypedLayout {
	return TypedLayout{Width: l.Width, Height: l.Height, StrideBytes: l.StrideBytes}
}

func (l UntypedLayout) NrBytesPerPixel() int {
	return l.NrChannels * l.NrBytesPerChannel
}

// RowBytes is the number of bytes of pixel data in a row, excluding padding.
func (l UntypedLayout) RowBytes() int {
	return l.Width * l.NrBytesPerPixel()
}

func (l UntypedLayout) TotalBytes() int {
	return l.StrideBytes * l.Height
}

func (l UntypedLayout) IsPacked() bool {
	return l.StrideBytes == l.RowBytes()
}

func (l UntypedLayout) IsEmpty() bool {
	return l.Width == 0 || l.Height == 0
}

// IsCompatible reports whether two layouts describe the same pixel grid.
// The stride is ignored.
func (l UntypedLayout) IsCompatible(other UntypedLayout) bool {
	return l.Width == other.Width &&
		l.Height == other.Height &&
		l.NrChannels == other.NrChannels &&
		l.NrBytesPerChannel == other.NrBytesPerChannel
}

func (l UntypedLayout) String() string {
	return fmt.Sprintf("%dx%d %dch %dB stride %d", l.Width, l.Height, l.NrChannels, l.NrBytesPerChannel, l.StrideBytes)
}

// footprint is the number of bytes spanned from the first pixel to the end
// of the last row. Views over sub-regions cover no more than this.
func (l UntypedLayout) footprint() int {
	if l.IsEmpty() {
		return 0
	}
	return l.StrideBytes*(l.Height-1) + l.RowBytes()
}

// resolve validates a requested layout and fills in its stride. A zero
// stride selects the minimal stride for rowAlignment; an explicit stride is
// rounded up to rowAlignment but may not be smaller than a packed row.
func (l UntypedLayout) resolve(rowAlignment int) (UntypedLayout, error) {
	if l.Width < 0 || l.Height < 0 || l.NrChannels < 0 || l.NrBytesPerChannel < 0 || l.StrideBytes < 0 {
		return UntypedLayout{}, fmt.Errorf("negative dimension in layout %s: %w", l, ErrLayoutMismatch)
	}
	if !validRowAlignment(rowAlignment) {
		return UntypedLayout{}, fmt.Errorf("row alignment %d is not a power of two: %w", rowAlignment, ErrLayoutMismatch)
	}
	pixelBytes, ok := mulInt(l.NrChannels, l.NrBytesPerChannel)
	if !ok {
		return UntypedLayout{}, fmt.Errorf("pixel size of layout %s overflows: %w", l, ErrLayoutMismatch)
	}
	if !l.IsEmpty() && pixelBytes == 0 {
		return UntypedLayout{}, fmt.Errorf("layout %s has no bytes per pixel: %w", l, ErrLayoutMismatch)
	}
	rowBytes, ok := mulInt(l.Width, pixelBytes)
	if !ok {
		return UntypedLayout{}, fmt.Errorf("row size of layout %s overflows: %w", l, ErrLayoutMismatch)
	}

	stride := l.StrideBytes
	if stride == 0 {
		stride = rowBytes
	} else if stride < rowBytes {
		return UntypedLayout{}, fmt.Errorf("stride %d below row size %d: %w", l.StrideBytes, rowBytes, ErrLayoutMismatch)
	}
	if rowAlignment > 1 && stride > math.MaxInt-(rowAlignment-1) {
		return UntypedLayout{}, fmt.Errorf("stride %d cannot be aligned to %d: %w", stride, rowAlignment, ErrLayoutMismatch)
	}
	l.StrideBytes = ComputeStrideBytes(stride, rowAlignment)

	if _, ok := mulInt(l.StrideBytes, l.Height); !ok {
		return UntypedLayout{}, fmt.Errorf("total size of layout %s overflows: %w", l, ErrLayoutMismatch)
	}
	return l, nil
}

// mulInt multiplies two non-negative ints, reporting whether the product
// fits in an int.
func mulInt(a, b int) (int, bool) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}
