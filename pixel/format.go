package pixel

import "fmt"

// PixelFormat is the channel semantics tag carried by untyped images,
// e.g. whether three channels hold RGB or BGR samples.
type PixelFormat uint8

const (
	FormatY PixelFormat = iota // 1-channel grayscale
	FormatX                    // 1-channel, unknown semantics

	FormatYA // grayscale & alpha
	FormatXX // 2-channel, unknown semantics

	FormatRGB
	FormatBGR
	FormatYCbCr
	FormatCIELab
	FormatICCLab
	FormatXXX // 3-channel, unknown semantics

	FormatRGBA
	FormatBGRA
	FormatARGB
	FormatABGR
	FormatCMYK
	FormatYCCK
	FormatXXXX // 4-channel, unknown semantics

	FormatUnknown
	FormatInvalid
)

var pixelFormatNames = [...]string{
	FormatY:       "Y",
	FormatX:       "X",
	FormatYA:      "YA",
	FormatXX:      "XX",
	FormatRGB:     "RGB",
	FormatBGR:     "BGR",
	FormatYCbCr:   "YCbCr",
	FormatCIELab:  "CIELab",
	FormatICCLab:  "ICCLab",
	FormatXXX:     "XXX",
	FormatRGBA:    "RGBA",
	FormatBGRA:    "BGRA",
	FormatARGB:    "ARGB",
	FormatABGR:    "ABGR",
	FormatCMYK:    "CMYK",
	FormatYCCK:    "YCCK",
	FormatXXXX:    "XXXX",
	FormatUnknown: "Unknown",
	FormatInvalid: "Invalid",
}

func (f PixelFormat) String() string {
	if int(f) < len(pixelFormatNames) {
		return pixelFormatNames[f]
	}
	return fmt.Sprintf("PixelFormat(%d)", uint8(f))
}

// NrChannels returns the number of channels implied by the format, or 0 for
// FormatUnknown and FormatInvalid.
func (f PixelFormat) NrChannels() int {
	switch f {
	case FormatY, FormatX:
		return 1
	case FormatYA, FormatXX:
		return 2
	case FormatRGB, FormatBGR, FormatYCbCr, FormatCIELab, FormatICCLab, FormatXXX:
		return 3
	case FormatRGBA, FormatBGRA, FormatARGB, FormatABGR, FormatCMYK, FormatYCCK, FormatXXXX:
		return 4
	default:
		return 0
	}
}

func (f PixelFormat) HasAlpha() bool {
	switch f {
	case FormatYA, FormatRGBA, FormatBGRA, FormatARGB, FormatABGR:
		return true
	default:
		return false
	}
}

// IsKnown reports whether the format says anything about channel semantics.
func (f PixelFormat) IsKnown() bool {
	return f != FormatUnknown && f != FormatInvalid
}

// UnknownFormatFor returns the "unknown semantics" format for a channel count,
// FormatX..FormatXXXX, or FormatUnknown outside 1..4.
func UnknownFormatFor(nrChannels int) PixelFormat {
	switch nrChannels {
	case 1:
		return FormatX
	case 2:
		return FormatXX
	case 3:
		return FormatXXX
	case 4:
		return FormatXXXX
	default:
		return FormatUnknown
	}
}

// SampleFormat is the numeric kind of a single channel sample.
type SampleFormat uint8

const (
	UnsignedInteger SampleFormat = iota
	SignedInteger
	FloatingPoint
	UnknownSample
)

func (s SampleFormat) String() string {
	switch s {
	case UnsignedInteger:
		return "UnsignedInteger"
	case SignedInteger:
		return "SignedInteger"
	case FloatingPoint:
		return "FloatingPoint"
	case UnknownSample:
		return "Unknown"
	default:
		return fmt.Sprintf("SampleFormat(%d)", uint8(s))
	}
}

// Semantics is the interpretation metadata attached to untyped images.
type Semantics struct {
	PixelFormat  PixelFormat
	SampleFormat SampleFormat
}

// UnknownSemantics is the zero-information tag.
var UnknownSemantics = Semantics{PixelFormat: FormatUnknown, SampleFormat: UnknownSample}

func (s Semantics) String() string {
	return fmt.Sprintf("%s/%s", s.PixelFormat, s.SampleFormat)
}
