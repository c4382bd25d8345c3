package image

import (
	"bytes"
	"fmt"
	"unsafe"

	"github.com/kpfaulkner/pixmem/pixel"
)

// plane is the raw memory description shared by containers and views: bytes
// starting at the first pixel, plus the layout and semantics to read them with.
type plane struct {
	data      []byte
	layout    UntypedLayout
	semantics pixel.Semantics
}

// newPlane validates external memory for use as a view. elemSize is the
// alignment the first pixel and stride must honour for typed access.
func newPlane(data []byte, l UntypedLayout, semantics pixel.Semantics, elemSize int) (plane, error) {
	resolved, err := l.resolve(0)
	if err != nil {
		return plane{}, err
	}
	need := resolved.footprint()
	if len(data) < need {
		return plane{}, fmt.Errorf("buffer of %d bytes too small for layout %s: %w", len(data), resolved, ErrOutOfRange)
	}
	p := plane{data: data[:need:need], layout: resolved, semantics: semantics}
	if err := p.checkElementAlignment(elemSize); err != nil {
		return plane{}, err
	}
	return p, nil
}

func (p plane) address() uintptr {
	if len(p.data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(p.data)))
}

// checkElementAlignment fails unless every row start is aligned to elemSize.
func (p plane) checkElementAlignment(elemSize int) error {
	if elemSize <= 1 || p.layout.IsEmpty() {
		return nil
	}
	if p.address()%uintptr(elemSize) != 0 {
		return fmt.Errorf("first pixel at %#x not aligned to %d bytes: %w", p.address(), elemSize, ErrLayoutMismatch)
	}
	if p.layout.StrideBytes%elemSize != 0 {
		return fmt.Errorf("stride %d not a multiple of %d bytes: %w", p.layout.StrideBytes, elemSize, ErrLayoutMismatch)
	}
	return nil
}

func (p plane) row(y int) []byte {
	assertRow(p.layout, y)
	start := y * p.layout.StrideBytes
	end := start + p.layout.RowBytes()
	return p.data[start:end:end]
}

func (p plane) pixel(x, y int) []byte {
	assertPixel(p.layout, x, y)
	n := p.layout.NrBytesPerPixel()
	start := y*p.layout.StrideBytes + x*n
	return p.data[start : start+n : start+n]
}

// sub returns the plane covering region r.
func (p plane) sub(r Region) (plane, error) {
	if err := r.check(p.layout); err != nil {
		return plane{}, err
	}
	l := p.layout
	l.Width, l.Height = r.Width, r.Height
	if l.IsEmpty() {
		return plane{layout: l, semantics: p.semantics}, nil
	}
	start := r.Y0*p.layout.StrideBytes + r.X0*p.layout.NrBytesPerPixel()
	end := start + l.footprint()
	return plane{data: p.data[start:end:end], layout: l, semantics: p.semantics}, nil
}

// copyFrom copies the pixels of src row by row. Layouts must be compatible.
func (p plane) copyFrom(src plane) {
	if p.layout.IsEmpty() {
		return
	}
	if p.layout.IsPacked() && src.layout.IsPacked() {
		copy(p.data, src.data[:p.layout.footprint()])
		return
	}
	for y := 0; y < p.layout.Height; y++ {
		copy(p.row(y), src.row(y))
	}
}

// fill writes value, one pixel's worth of bytes, into every pixel.
func (p plane) fill(value []byte) {
	if p.layout.IsEmpty() {
		return
	}
	first := p.row(0)
	n := copy(first, value)
	for n < len(first) {
		n += copy(first[n:], first[:n])
	}
	for y := 1; y < p.layout.Height; y++ {
		copy(p.row(y), first)
	}
}

// equal compares pixel bytes, ignoring row padding.
func (p plane) equal(other plane) bool {
	if !p.layout.IsCompatible(other.layout) {
		return false
	}
	for y := 0; y < p.layout.Height; y++ {
		if !bytes.Equal(p.row(y), other.row(y)) {
			return false
		}
	}
	return true
}

// typedRow reinterprets a row of bytes as width pixels.
func typedRow[P pixel.Pixel](row []byte, width int) []P {
	if width == 0 {
		return nil
	}
	return unsafe.Slice((*P)(unsafe.Pointer(unsafe.SliceData(row))), width)
}

func typedPixel[P pixel.Pixel](px []byte) *P {
	return (*P)(unsafe.Pointer(unsafe.SliceData(px)))
}

// pixelBytesOf exposes the memory of a single pixel value.
func pixelBytesOf[P pixel.Pixel](v *P) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}
