package imageformats

import (
	"fmt"
	stdimage "image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/kpfaulkner/pixmem/image"
	"github.com/kpfaulkner/pixmem/options"
	"github.com/kpfaulkner/pixmem/pixel"
)

// ReadImage decodes r into target and returns the name of the detected
// format. The target is prepared with the decoded layout first: a *DynImage
// is reallocated as needed, a view must already have a matching layout.
// Diagnostics are appended to messages, which may be nil.
func ReadImage(r io.Reader, target image.DynImageOrMutableView, messages *MessageLog) (string, error) {
	src, format, err := stdimage.Decode(r)
	if err != nil {
		log.Errorf("unable to decode image : %v", err)
		messages.Add(Error, "decoding failed: %v", err)
		return "", fmt.Errorf("decoding image: %w", err)
	}

	d := describe(src, messages)
	if err := target.Prepare(d.layout, d.semantics); err != nil {
		log.Errorf("unable to prepare target for %s image : %v", format, err)
		messages.Add(Error, "target cannot hold %s image of %s: %v", format, d.layout, err)
		return format, err
	}

	for y := 0; y < d.layout.Height; y++ {
		d.writeRow(target.RowBytes(y), y)
	}
	log.Debugf("decoded %s image %s %s", format, d.layout, d.semantics)
	return format, nil
}

// ReadImageFile decodes the file at path into a new image.
func ReadImageFile(path string, opts *options.ImageOptions, messages *MessageLog) (*image.DynImage, string, error) {
	f, err := os.Open(path)
	if err != nil {
		messages.Add(Error, "opening %s: %v", path, err)
		return nil, "", err
	}
	defer f.Close()

	img, err := image.NewDynImage(image.UntypedLayout{}, pixel.UnknownSemantics, opts)
	if err != nil {
		return nil, "", err
	}
	format, err := ReadImage(f, img, messages)
	if err != nil {
		img.Clear()
		return nil, format, err
	}
	return img, format, nil
}
