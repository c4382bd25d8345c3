package imageformats

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/kpfaulkner/pixmem/image"
	"github.com/kpfaulkner/pixmem/pixel"
)

// WritePFM writes 32 bit float gray or RGB images as a Portable FloatMap,
// bottom row first, big endian.
func WritePFM(src image.DynImageOrView, output io.Writer) error {
	layout := src.Layout()
	semantics := src.Semantics()

	if layout.NrBytesPerChannel != 4 ||
		(semantics.SampleFormat != pixel.FloatingPoint && semantics.SampleFormat != pixel.UnknownSample) {
		return fmt.Errorf("PFM needs 32 bit float samples, got %d byte %s: %w",
			layout.NrBytesPerChannel, semantics.SampleFormat, ErrUnsupportedFormat)
	}

	switch layout.NrChannels {
	case 1:
		view, err := image.ToImageView[pixel.X1[float32]](src)
		if err != nil {
			return err
		}
		return writePFMRows(view, "Pf", func(p pixel.X1[float32]) []float32 { return p[:] }, output)
	case 3:
		order, err := channelOrder(semantics, 3)
		if err != nil {
			return err
		}
		view, err := image.ToImageView[pixel.X3[float32]](src)
		if err != nil {
			return err
		}
		return writePFMRows(view, "PF", func(p pixel.X3[float32]) []float32 {
			return []float32{p[order[0]], p[order[1]], p[order[2]]}
		}, output)
	default:
		return fmt.Errorf("PFM cannot hold %d channels: %w", layout.NrChannels, ErrUnsupportedFormat)
	}
}

func writePFMRows[P pixel.Pixel](view image.ConstImageView[P], pf string, samples func(P) []float32, output io.Writer) error {
	header := fmt.Sprintf("%s\n%d %d\n1.0\n", pf, view.Width(), view.Height())
	if _, err := output.Write([]byte(header)); err != nil {
		return err
	}

	var buf bytes.Buffer
	line := make([]float32, 0, view.Width()*3)
	for y := view.Height() - 1; y >= 0; y-- {
		line = line[:0]
		for _, px := range view.ConstRow(y) {
			line = append(line, samples(px)...)
		}
		buf.Reset()
		if err := binary.Write(&buf, binary.BigEndian, line); err != nil {
			return err
		}
		if _, err := output.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
