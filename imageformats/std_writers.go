package imageformats

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/kpfaulkner/pixmem/image"
)

// WriteTIFF writes src as a deflate compressed TIFF.
func WriteTIFF(src image.DynImageOrView, output io.Writer) error {
	std, err := ToStdImage(src)
	if err != nil {
		return err
	}
	return tiff.Encode(output, std, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

// WriteBMP writes src as BMP. 16 bit samples are reduced to 8 bits.
func WriteBMP(src image.DynImageOrView, output io.Writer) error {
	std, err := ToStdImage(src)
	if err != nil {
		return err
	}
	return bmp.Encode(output, std)
}

// Formats lists the names accepted by Write.
var Formats = []string{"png", "pfm", "tiff", "bmp"}

// Write encodes src in the named format.
func Write(src image.DynImageOrView, output io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return WritePNG(src, output, nil)
	case "pfm":
		return WritePFM(src, output)
	case "tif", "tiff":
		return WriteTIFF(src, output)
	case "bmp":
		return WriteBMP(src, output)
	default:
		return fmt.Errorf("output format %q: %w", format, ErrUnsupportedFormat)
	}
}
