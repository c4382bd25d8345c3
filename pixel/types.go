package pixel

// Pixel types. The channel order in memory is the order in the type name.

type Y[T Element] [1]T
type YA[T Element] [2]T
type RGB[T Element] [3]T
type BGR[T Element] [3]T
type RGBA[T Element] [4]T
type BGRA[T Element] [4]T

// X1..X4 carry no channel semantics.
type X1[T Element] [1]T
type X2[T Element] [2]T
type X3[T Element] [3]T
type X4[T Element] [4]T

func (Y[T]) Traits() Traits {
	return newTraits[T](1, FormatY)
}

func (YA[T]) Traits() Traits {
	return newTraits[T](2, FormatYA)
}

func (RGB[T]) Traits() Traits {
	return newTraits[T](3, FormatRGB)
}

func (BGR[T]) Traits() Traits {
	return newTraits[T](3, FormatBGR)
}

func (RGBA[T]) Traits() Traits {
	return newTraits[T](4, FormatRGBA)
}

func (BGRA[T]) Traits() Traits {
	return newTraits[T](4, FormatBGRA)
}

func (X1[T]) Traits() Traits {
	return newTraits[T](1, FormatUnknown)
}

func (X2[T]) Traits() Traits {
	return newTraits[T](2, FormatUnknown)
}

func (X3[T]) Traits() Traits {
	return newTraits[T](3, FormatUnknown)
}

func (X4[T]) Traits() Traits {
	return newTraits[T](4, FormatUnknown)
}

// Common instantiations.
type (
	Gray8    = Y[uint8]
	Gray16   = Y[uint16]
	GrayF32  = Y[float32]
	GrayA8   = YA[uint8]
	RGB8     = RGB[uint8]
	RGB16    = RGB[uint16]
	RGBF32   = RGB[float32]
	BGR8     = BGR[uint8]
	RGBA8    = RGBA[uint8]
	RGBA16   = RGBA[uint16]
	RGBAF32  = RGBA[float32]
	BGRA8    = BGRA[uint8]
	Channel8 = X1[uint8]
)
