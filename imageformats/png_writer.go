package imageformats

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/kpfaulkner/pixmem/image"
	"github.com/kpfaulkner/pixmem/pixel"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// WritePNG writes src as PNG. The standard library encoder is not used as
// it cannot embed an ICC profile; when iccProfile is empty an sRGB chunk is
// written instead. Samples must be 8 or 16 bit unsigned integers.
func WritePNG(src image.DynImageOrView, output io.Writer, iccProfile []byte) error {
	layout := src.Layout()
	semantics := src.Semantics()
	if err := checkIntegerSamples(layout, semantics); err != nil {
		return err
	}
	order, err := channelOrder(semantics, layout.NrChannels)
	if err != nil {
		return err
	}

	if _, err := output.Write(pngSignature); err != nil {
		return err
	}
	if err := writeIHDR(layout, output); err != nil {
		return err
	}

	if len(iccProfile) != 0 {
		if err := writeICCP(iccProfile, output); err != nil {
			return err
		}
	} else {
		// rendering intent: relative colorimetric
		if err := writeChunk(output, "sRGB", []byte{0x01}); err != nil {
			return err
		}
	}

	if err := writeIDAT(src, order, output); err != nil {
		return err
	}
	return writeChunk(output, "IEND", nil)
}

// writeChunk writes length, type, data and the CRC over type and data.
func writeChunk(output io.Writer, chunkType string, data []byte) error {
	var buf bytes.Buffer
	buf.WriteString(chunkType)
	buf.Write(data)
	rawBytes := buf.Bytes()

	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(len(data)))
	if _, err := output.Write(b); err != nil {
		return err
	}
	if _, err := output.Write(rawBytes); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(b, crc32.ChecksumIEEE(rawBytes))
	if _, err := output.Write(b); err != nil {
		return err
	}
	return nil
}

func writeICCP(iccProfile []byte, output io.Writer) error {

	var buf bytes.Buffer
	buf.Write([]byte("pixmem"))
	buf.WriteByte(0x00)
	buf.WriteByte(0x00)

	w, err := zlib.NewWriterLevel(&buf, 1)
	if err != nil {
		return err
	}
	if _, err = w.Write(iccProfile); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}
	return writeChunk(output, "iCCP", buf.Bytes())
}

func pngColourMode(nrChannels int) byte {
	switch nrChannels {
	case 1:
		return 0
	case 2:
		return 4
	case 3:
		return 2
	default:
		return 6
	}
}

func writeIHDR(layout image.UntypedLayout, output io.Writer) error {
	if layout.IsEmpty() {
		return fmt.Errorf("PNG cannot hold an empty image: %w", ErrUnsupportedFormat)
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], uint32(layout.Width))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(layout.Height))
	ihdr[8] = byte(8 * layout.NrBytesPerChannel)
	ihdr[9] = pngColourMode(layout.NrChannels)
	ihdr[10] = 0
	ihdr[11] = 0
	ihdr[12] = 0
	return writeChunk(output, "IHDR", ihdr)
}

func writeIDAT(src image.DynImageOrView, order [4]int, output io.Writer) error {
	layout := src.Layout()

	var compressedBytes bytes.Buffer
	w, err := zlib.NewWriterLevel(&compressedBytes, zlib.DefaultCompression)
	if err != nil {
		return err
	}

	// PNG stores gray as one channel, so only the first output of a gray
	// channel order is used.
	outputs := order[:3]
	if layout.NrChannels <= 2 {
		outputs = order[:1]
	}
	if order[3] >= 0 {
		outputs = append(outputs[:len(outputs):len(outputs)], order[3])
	}

	line := make([]byte, 1+layout.Width*len(outputs)*layout.NrBytesPerChannel)
	for y := 0; y < layout.Height; y++ {
		row := src.ConstRowBytes(y)
		i := 1
		for x := 0; x < layout.Width; x++ {
			for _, c := range outputs {
				v := sample(row, x, c, layout)
				if layout.NrBytesPerChannel == 1 {
					line[i] = byte(v)
					i++
					continue
				}
				binary.BigEndian.PutUint16(line[i:], v)
				i += 2
			}
		}
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	return writeChunk(output, "IDAT", compressedBytes.Bytes())
}

// IsPNGWritable reports whether WritePNG accepts images with these
// properties.
func IsPNGWritable(layout image.UntypedLayout, semantics pixel.Semantics) bool {
	if checkIntegerSamples(layout, semantics) != nil {
		return false
	}
	_, err := channelOrder(semantics, layout.NrChannels)
	return err == nil
}
