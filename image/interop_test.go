package image

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpfaulkner/pixmem/options"
	"github.com/kpfaulkner/pixmem/pixel"
)

func TestTypedUntypedRoundTrip(t *testing.T) {
	img, err := NewImage[pixel.RGB8](NewTypedLayout(7, 3), &options.ImageOptions{RowAlignment: 16})
	require.NoError(t, err)
	img.Set(6, 2, pixel.RGB8{1, 2, 3})

	dv := ToDynView[pixel.RGB8](img)
	assert.Equal(t, UntypedLayout{Width: 7, Height: 3, NrChannels: 3, NrBytesPerChannel: 1, StrideBytes: 32}, dv.Layout())
	assert.Equal(t, pixel.Semantics{PixelFormat: pixel.FormatRGB, SampleFormat: pixel.UnsignedInteger}, dv.Semantics())
	assert.Equal(t, []byte{1, 2, 3}, dv.ConstPixelBytes(6, 2))

	tv, err := ToImageView[pixel.RGB8](dv)
	require.NoError(t, err)
	assert.Equal(t, img.Width(), tv.Width())
	assert.Equal(t, img.Height(), tv.Height())
	assert.Equal(t, img.StrideBytes(), tv.StrideBytes())
	assert.Same(t, &img.Row(0)[0], &tv.ConstRow(0)[0])
	assert.Equal(t, pixel.RGB8{1, 2, 3}, tv.At(6, 2))
}

func TestMutableInterop(t *testing.T) {
	img := newGradient(t, 4, 4, nil)

	mdv := ToMutableDynView[pixel.Gray8](img)
	mdv.PixelBytes(3, 3)[0] = 250
	assert.Equal(t, pixel.Gray8{250}, img.At(3, 3))

	tv, err := ToMutableImageView[pixel.Gray8](&mdv)
	require.NoError(t, err)
	tv.Set(0, 0, pixel.Gray8{7})
	assert.Equal(t, pixel.Gray8{7}, img.At(0, 0))

	dyn, err := NewDynImage(NewUntypedLayout(2, 2, 1, 1), pixel.UnknownSemantics, nil)
	require.NoError(t, err)
	dtv, err := ToMutableImageView[pixel.Gray8](dyn)
	require.NoError(t, err)
	Fill[pixel.Gray8](dtv, pixel.Gray8{4})
	assert.Equal(t, []byte{4, 4}, dyn.RowBytes(1))
}

func TestCheckTypedCompatibility(t *testing.T) {
	for _, tc := range []struct {
		name      string
		layout    UntypedLayout
		semantics pixel.Semantics
		check     func(DynImageOrView) error
		err       error
	}{
		{
			name:      "channel count",
			layout:    NewUntypedLayout(4, 4, 1, 1),
			semantics: pixel.UnknownSemantics,
			check:     CheckTypedCompatibility[pixel.RGB8],
			err:       ErrTypeMismatch,
		},
		{
			name:      "sample size",
			layout:    NewUntypedLayout(4, 4, 3, 2),
			semantics: pixel.UnknownSemantics,
			check:     CheckTypedCompatibility[pixel.RGB8],
			err:       ErrTypeMismatch,
		},
		{
			name:      "pixel format",
			layout:    NewUntypedLayout(4, 4, 3, 1),
			semantics: pixel.Semantics{PixelFormat: pixel.FormatBGR, SampleFormat: pixel.UnsignedInteger},
			check:     CheckTypedCompatibility[pixel.RGB8],
			err:       ErrTypeMismatch,
		},
		{
			name:      "unknown pixel format",
			layout:    NewUntypedLayout(4, 4, 3, 1),
			semantics: pixel.Semantics{PixelFormat: pixel.FormatUnknown, SampleFormat: pixel.UnsignedInteger},
			check:     CheckTypedCompatibility[pixel.RGB8],
		},
		{
			name:      "typed side without format",
			layout:    NewUntypedLayout(4, 4, 3, 1),
			semantics: pixel.Semantics{PixelFormat: pixel.FormatBGR, SampleFormat: pixel.UnsignedInteger},
			check:     CheckTypedCompatibility[pixel.X3[uint8]],
		},
		{
			name:      "sample format",
			layout:    NewUntypedLayout(4, 4, 1, 4),
			semantics: pixel.Semantics{PixelFormat: pixel.FormatY, SampleFormat: pixel.FloatingPoint},
			check:     CheckTypedCompatibility[pixel.Y[uint32]],
			err:       ErrTypeMismatch,
		},
		{
			name:      "float samples",
			layout:    NewUntypedLayout(4, 4, 1, 4),
			semantics: pixel.Semantics{PixelFormat: pixel.FormatY, SampleFormat: pixel.FloatingPoint},
			check:     CheckTypedCompatibility[pixel.GrayF32],
		},
		{
			name:      "unknown sample format",
			layout:    NewUntypedLayout(4, 4, 1, 4),
			semantics: pixel.UnknownSemantics,
			check:     CheckTypedCompatibility[pixel.Y[int32]],
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			img, err := NewDynImage(tc.layout, tc.semantics, nil)
			require.NoError(t, err)
			err = tc.check(img)
			if tc.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tc.err), "expected %v, got %v", tc.err, err)
		})
	}
}

func TestToImageViewRejectsWrongChannelCount(t *testing.T) {
	img, err := NewDynImage(NewUntypedLayout(10, 20, 1, 1), pixel.UnknownSemantics, nil)
	require.NoError(t, err)

	_, err = ToImageView[pixel.RGB8](img)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	_, err = ToMutableImageView[pixel.RGB8](img)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	_, err = ToImage[pixel.RGB8](img)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
	assert.Equal(t, 10, img.Width())
}

func TestToImageViewRequiresAlignedSamples(t *testing.T) {
	data := alignedBytes(t, 32)
	v, err := NewConstDynImageView(data[1:], UntypedLayout{Width: 2, Height: 2, NrChannels: 1, NrBytesPerChannel: 2, StrideBytes: 4}, pixel.UnknownSemantics)
	require.NoError(t, err)

	_, err = ToImageView[pixel.Gray16](v)
	assert.True(t, errors.Is(err, ErrLayoutMismatch))

	v, err = NewConstDynImageView(data, UntypedLayout{Width: 2, Height: 2, NrChannels: 1, NrBytesPerChannel: 2, StrideBytes: 5}, pixel.UnknownSemantics)
	require.NoError(t, err)
	_, err = ToImageView[pixel.Gray16](v)
	assert.True(t, errors.Is(err, ErrLayoutMismatch))
}

func TestOwnershipTransfer(t *testing.T) {
	img := newGradient(t, 6, 5, nil)
	capacity := img.Capacity()

	dyn := ToDynImage[pixel.Gray8](img)
	assert.True(t, img.IsEmpty())
	assert.Equal(t, 0, img.Capacity())
	assert.Equal(t, capacity, dyn.Capacity())
	assert.Equal(t, pixel.Semantics{PixelFormat: pixel.FormatY, SampleFormat: pixel.UnsignedInteger}, dyn.Semantics())
	assert.Equal(t, byte(4+6*3), dyn.PixelBytes(4, 3)[0])

	back, err := ToImage[pixel.Gray8](dyn)
	require.NoError(t, err)
	assert.True(t, dyn.IsEmpty())
	assert.Equal(t, 0, dyn.Capacity())
	assert.Equal(t, pixel.Gray8{4 + 6*3}, back.At(4, 3))
	assert.Equal(t, TypedLayout{Width: 6, Height: 5, StrideBytes: 6}, back.Layout())

	var empty DynImage
	typed, err := ToImage[pixel.RGB8](&empty)
	require.NoError(t, err)
	assert.True(t, typed.IsEmpty())
}

func TestCheckLayoutCompatible(t *testing.T) {
	img, err := NewDynImage(NewUntypedLayout(4, 3, 2, 1), pixel.UnknownSemantics, &options.ImageOptions{RowAlignment: 32})
	require.NoError(t, err)

	assert.NoError(t, CheckLayoutCompatible(img, NewUntypedLayout(4, 3, 2, 1)))
	assert.True(t, errors.Is(CheckLayoutCompatible(img, NewUntypedLayout(4, 3, 1, 2)), ErrLayoutMismatch))
	assert.True(t, errors.Is(CheckLayoutCompatible(img, NewUntypedLayout(3, 4, 2, 1)), ErrLayoutMismatch))
}

// mislabelledPixel claims to be one 8-bit sample but occupies eight bytes.
type mislabelledPixel [8]uint8

func (mislabelledPixel) Traits() pixel.Traits {
	return pixel.Traits{NrChannels: 1, NrBytesPerChannel: 1, PixelFormat: pixel.FormatY, SampleFormat: pixel.UnsignedInteger}
}

// overAlignedPixel has the right size for eight 8-bit samples but needs
// 8 byte alignment.
type overAlignedPixel struct {
	v uint64
}

func (overAlignedPixel) Traits() pixel.Traits {
	return pixel.Traits{NrChannels: 8, NrBytesPerChannel: 1, PixelFormat: pixel.FormatUnknown, SampleFormat: pixel.UnsignedInteger}
}

func TestPixelTypeMustMatchItsTraits(t *testing.T) {
	img, err := NewImage[mislabelledPixel](NewTypedLayout(4, 1), nil)
	assert.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)
	assert.Nil(t, img)

	var zero Image[mislabelledPixel]
	_, err = zero.Reallocate(NewTypedLayout(4, 1), 0, false)
	assert.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)
	assert.True(t, zero.IsEmpty())
	assert.Equal(t, 0, zero.Capacity())

	_, err = NewMutableImageView[mislabelledPixel](make([]byte, 64), NewTypedLayout(4, 1))
	assert.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)

	_, err = NewConstImageView[overAlignedPixel](make([]byte, 64), NewTypedLayout(2, 1))
	assert.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)

	dyn, err := NewDynImage(NewUntypedLayout(4, 1, 1, 1), pixel.Semantics{PixelFormat: pixel.FormatY, SampleFormat: pixel.UnsignedInteger}, nil)
	require.NoError(t, err)
	_, err = ToImageView[mislabelledPixel](dyn)
	assert.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)

	typed, err := ToImage[mislabelledPixel](dyn)
	assert.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)
	assert.Nil(t, typed)
	assert.Equal(t, 4, dyn.Width())
	assert.Equal(t, 4, dyn.Capacity())

	empty, err := NewDynImage(UntypedLayout{}, pixel.UnknownSemantics, nil)
	require.NoError(t, err)
	_, err = ToImage[mislabelledPixel](empty)
	assert.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)
}
