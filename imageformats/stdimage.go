package imageformats

import (
	"encoding/binary"
	"errors"
	"fmt"
	stdimage "image"
	"image/color"

	"github.com/kpfaulkner/pixmem/image"
	"github.com/kpfaulkner/pixmem/pixel"
)

var ErrUnsupportedFormat = errors.New("unsupported pixel format")

// channelOrder maps the R, G, B and A outputs to source channel indices.
// Gray images repeat channel 0; -1 marks a missing alpha channel.
func channelOrder(semantics pixel.Semantics, nrChannels int) ([4]int, error) {
	f := semantics.PixelFormat
	switch nrChannels {
	case 1:
		if f == pixel.FormatY || f == pixel.FormatX || f == pixel.FormatUnknown {
			return [4]int{0, 0, 0, -1}, nil
		}
	case 2:
		if f == pixel.FormatYA || f == pixel.FormatXX || f == pixel.FormatUnknown {
			return [4]int{0, 0, 0, 1}, nil
		}
	case 3:
		switch f {
		case pixel.FormatRGB, pixel.FormatXXX, pixel.FormatUnknown:
			return [4]int{0, 1, 2, -1}, nil
		case pixel.FormatBGR:
			return [4]int{2, 1, 0, -1}, nil
		}
	case 4:
		switch f {
		case pixel.FormatRGBA, pixel.FormatXXXX, pixel.FormatUnknown:
			return [4]int{0, 1, 2, 3}, nil
		case pixel.FormatBGRA:
			return [4]int{2, 1, 0, 3}, nil
		case pixel.FormatARGB:
			return [4]int{1, 2, 3, 0}, nil
		case pixel.FormatABGR:
			return [4]int{3, 2, 1, 0}, nil
		}
	}
	return [4]int{}, fmt.Errorf("%d channel %s images: %w", nrChannels, f, ErrUnsupportedFormat)
}

// checkIntegerSamples accepts 8 and 16 bit unsigned samples only.
func checkIntegerSamples(layout image.UntypedLayout, semantics pixel.Semantics) error {
	if semantics.SampleFormat != pixel.UnsignedInteger && semantics.SampleFormat != pixel.UnknownSample {
		return fmt.Errorf("%s samples: %w", semantics.SampleFormat, ErrUnsupportedFormat)
	}
	if layout.NrBytesPerChannel != 1 && layout.NrBytesPerChannel != 2 {
		return fmt.Errorf("%d byte samples: %w", layout.NrBytesPerChannel, ErrUnsupportedFormat)
	}
	return nil
}

// sample reads channel c of pixel x from a row of native-endian samples.
func sample(row []byte, x, c int, layout image.UntypedLayout) uint16 {
	i := x*layout.NrChannels + c
	if layout.NrBytesPerChannel == 1 {
		return uint16(row[i])
	}
	return binary.NativeEndian.Uint16(row[2*i:])
}

// ToStdImage copies src into a standard library image: Gray or Gray16 for
// single channel data, CMYK for 8 bit CMYK, NRGBA or NRGBA64 otherwise.
func ToStdImage(src image.DynImageOrView) (stdimage.Image, error) {
	layout := src.Layout()
	semantics := src.Semantics()
	if err := checkIntegerSamples(layout, semantics); err != nil {
		return nil, err
	}
	rect := stdimage.Rect(0, 0, layout.Width, layout.Height)

	if semantics.PixelFormat == pixel.FormatCMYK && layout.NrBytesPerChannel == 1 {
		dst := stdimage.NewCMYK(rect)
		for y := 0; y < layout.Height; y++ {
			copy(dst.Pix[y*dst.Stride:], src.ConstRowBytes(y))
		}
		return dst, nil
	}

	order, err := channelOrder(semantics, layout.NrChannels)
	if err != nil {
		return nil, err
	}

	switch {
	case layout.NrChannels == 1 && layout.NrBytesPerChannel == 1:
		dst := stdimage.NewGray(rect)
		for y := 0; y < layout.Height; y++ {
			copy(dst.Pix[y*dst.Stride:], src.ConstRowBytes(y))
		}
		return dst, nil
	case layout.NrChannels == 1:
		dst := stdimage.NewGray16(rect)
		for y := 0; y < layout.Height; y++ {
			row := src.ConstRowBytes(y)
			for x := 0; x < layout.Width; x++ {
				binary.BigEndian.PutUint16(dst.Pix[y*dst.Stride+2*x:], sample(row, x, 0, layout))
			}
		}
		return dst, nil
	case layout.NrBytesPerChannel == 1:
		dst := stdimage.NewNRGBA(rect)
		for y := 0; y < layout.Height; y++ {
			row := src.ConstRowBytes(y)
			for x := 0; x < layout.Width; x++ {
				px := dst.Pix[y*dst.Stride+4*x:]
				for c, from := range order {
					if from < 0 {
						px[c] = 0xFF
						continue
					}
					px[c] = uint8(sample(row, x, from, layout))
				}
			}
		}
		return dst, nil
	default:
		dst := stdimage.NewNRGBA64(rect)
		for y := 0; y < layout.Height; y++ {
			row := src.ConstRowBytes(y)
			for x := 0; x < layout.Width; x++ {
				px := dst.Pix[y*dst.Stride+8*x:]
				for c, from := range order {
					v := uint16(0xFFFF)
					if from >= 0 {
						v = sample(row, x, from, layout)
					}
					binary.BigEndian.PutUint16(px[2*c:], v)
				}
			}
		}
		return dst, nil
	}
}

// decoded describes how the pixels of a standard library image are laid
// out once copied into an untyped image.
type decoded struct {
	src       stdimage.Image
	layout    image.UntypedLayout
	semantics pixel.Semantics
}

func describe(src stdimage.Image, messages *MessageLog) decoded {
	b := src.Bounds()
	d := decoded{src: src}
	shape := func(nrChannels, nrBytesPerChannel int, format pixel.PixelFormat) {
		d.layout = image.NewUntypedLayout(b.Dx(), b.Dy(), nrChannels, nrBytesPerChannel)
		d.semantics = pixel.Semantics{PixelFormat: format, SampleFormat: pixel.UnsignedInteger}
	}

	switch s := src.(type) {
	case *stdimage.Gray:
		shape(1, 1, pixel.FormatY)
	case *stdimage.Gray16:
		shape(1, 2, pixel.FormatY)
	case *stdimage.CMYK:
		shape(4, 1, pixel.FormatCMYK)
	case *stdimage.NRGBA:
		shape(4, 1, pixel.FormatRGBA)
	case *stdimage.NRGBA64:
		shape(4, 2, pixel.FormatRGBA)
	case *stdimage.YCbCr:
		shape(3, 1, pixel.FormatRGB)
	case *stdimage.RGBA:
		shape(4, 1, pixel.FormatRGBA)
		if !s.Opaque() {
			messages.Add(Warning, "premultiplied alpha converted to straight alpha")
		}
	case *stdimage.RGBA64:
		shape(4, 2, pixel.FormatRGBA)
		if !s.Opaque() {
			messages.Add(Warning, "premultiplied alpha converted to straight alpha")
		}
	case *stdimage.Paletted:
		if s.Opaque() {
			shape(3, 1, pixel.FormatRGB)
		} else {
			shape(4, 1, pixel.FormatRGBA)
		}
	default:
		shape(4, 2, pixel.FormatRGBA)
		messages.Add(Warning, "%T converted to 16 bit RGBA", src)
	}
	return d
}

// writeRow stores row y of the source image into dst using native-endian
// samples.
func (d decoded) writeRow(dst []byte, y int) {
	b := d.src.Bounds()
	sy := b.Min.Y + y
	w := d.layout.Width

	switch s := d.src.(type) {
	case *stdimage.Gray:
		off := s.PixOffset(b.Min.X, sy)
		copy(dst, s.Pix[off:off+w])
		return
	case *stdimage.CMYK:
		off := s.PixOffset(b.Min.X, sy)
		copy(dst, s.Pix[off:off+4*w])
		return
	case *stdimage.NRGBA:
		off := s.PixOffset(b.Min.X, sy)
		copy(dst, s.Pix[off:off+4*w])
		return
	case *stdimage.Gray16:
		off := s.PixOffset(b.Min.X, sy)
		for i := 0; i < w; i++ {
			binary.NativeEndian.PutUint16(dst[2*i:], binary.BigEndian.Uint16(s.Pix[off+2*i:]))
		}
		return
	case *stdimage.NRGBA64:
		off := s.PixOffset(b.Min.X, sy)
		for i := 0; i < 4*w; i++ {
			binary.NativeEndian.PutUint16(dst[2*i:], binary.BigEndian.Uint16(s.Pix[off+2*i:]))
		}
		return
	case *stdimage.YCbCr:
		for x := 0; x < w; x++ {
			c := s.YCbCrAt(b.Min.X+x, sy)
			dst[3*x], dst[3*x+1], dst[3*x+2] = color.YCbCrToRGB(c.Y, c.Cb, c.Cr)
		}
		return
	}

	n := d.layout.NrChannels
	for x := 0; x < w; x++ {
		c := d.src.At(b.Min.X+x, sy)
		if d.layout.NrBytesPerChannel == 1 {
			px := color.NRGBAModel.Convert(c).(color.NRGBA)
			copy(dst[n*x:n*x+n], []byte{px.R, px.G, px.B, px.A})
			continue
		}
		px := color.NRGBA64Model.Convert(c).(color.NRGBA64)
		for i, v := range []uint16{px.R, px.G, px.B, px.A} {
			binary.NativeEndian.PutUint16(dst[2*(4*x+i):], v)
		}
	}
}
