package image

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpfaulkner/pixmem/options"
	"github.com/kpfaulkner/pixmem/pixel"
	"github.com/kpfaulkner/pixmem/testcommon"
)

func TestClone(t *testing.T) {
	src, err := NewImage[pixel.RGB8](NewTypedLayout(10, 4), &options.ImageOptions{RowAlignment: 64})
	require.NoError(t, err)
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			src.Set(x, y, pixel.RGB8{uint8(x), uint8(y), uint8(x * y)})
		}
	}

	clone, err := Clone[pixel.RGB8](src, nil)
	require.NoError(t, err)
	assert.Equal(t, 64, src.StrideBytes())
	assert.Equal(t, 30, clone.StrideBytes())
	assert.True(t, Equal[pixel.RGB8](src, clone))

	clone.Set(3, 3, pixel.RGB8{255, 255, 255})
	assert.Equal(t, pixel.RGB8{3, 3, 9}, src.At(3, 3))
	assert.False(t, Equal[pixel.RGB8](src, clone))

	aligned, err := Clone[pixel.RGB8](ConstView[pixel.RGB8](src), &options.ImageOptions{RowAlignment: 32})
	require.NoError(t, err)
	assert.Equal(t, 32, aligned.StrideBytes())
	assert.True(t, Equal[pixel.RGB8](src, aligned))
}

func TestCloneRegion(t *testing.T) {
	src := newGradient(t, 10, 8, nil)

	clone, err := CloneRegion[pixel.Gray8](src, NewRegion(2, 3, 4, 2), nil)
	require.NoError(t, err)
	assert.Equal(t, TypedLayout{Width: 4, Height: 2, StrideBytes: 4}, clone.Layout())
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, pixel.Gray8{uint8(2 + x + 10*(3+y))}, clone.At(x, y))
		}
	}

	_, err = CloneRegion[pixel.Gray8](src, NewRegion(8, 0, 3, 1), nil)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestCloneInto(t *testing.T) {
	src := newGradient(t, 5, 3, nil)

	dst, err := NewImage[pixel.Gray8](NewTypedLayout(1, 1), nil)
	require.NoError(t, err)
	require.NoError(t, CloneInto[pixel.Gray8](src, dst))
	assert.True(t, Equal[pixel.Gray8](src, dst))
	assert.Equal(t, 5, dst.Width())

	other := newGradient(t, 5, 3, &options.ImageOptions{RowAlignment: 16})
	Fill[pixel.Gray8](other, pixel.Gray8{0})
	require.NoError(t, CloneInto[pixel.Gray8](src, View[pixel.Gray8](other)))
	assert.True(t, Equal[pixel.Gray8](src, other))

	small := newGradient(t, 2, 2, nil)
	err = CloneInto[pixel.Gray8](src, View[pixel.Gray8](small))
	assert.True(t, errors.Is(err, ErrInvalidOperationOnView))
	assert.Equal(t, 2, small.Width())
}

func TestCrop(t *testing.T) {
	recorder := testcommon.NewAllocatorRecorder(nil)
	img := newGradient(t, 10, 8, &options.ImageOptions{Allocator: recorder})

	require.NoError(t, Crop(img, NewRegion(2, 3, 4, 2)))
	assert.Equal(t, 4, img.Width())
	assert.Equal(t, 2, img.Height())
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, pixel.Gray8{uint8(2 + x + 10*(3+y))}, img.At(x, y))
		}
	}
	assert.Same(t, recorder, img.Allocator())
	assert.Equal(t, 1, recorder.Live())

	err := Crop(img, NewRegion(0, 0, 5, 1))
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.Equal(t, 4, img.Width())
	assert.Equal(t, pixel.Gray8{32}, img.At(0, 0))
}

func TestFill(t *testing.T) {
	img := newGradient(t, 6, 5, &options.ImageOptions{RowAlignment: 16})

	sub, err := ViewRegion[pixel.Gray8](img, NewRegion(1, 1, 3, 2))
	require.NoError(t, err)
	Fill[pixel.Gray8](sub, pixel.Gray8{255})

	count := 0
	for y := 0; y < img.Height(); y++ {
		for _, px := range img.Row(y) {
			if px == (pixel.Gray8{255}) {
				count++
			}
		}
	}
	assert.Equal(t, 6, count)
	assert.Equal(t, pixel.Gray8{0}, img.At(0, 0))
	assert.Equal(t, pixel.Gray8{4 + 6*1}, img.At(4, 1))

	rgba, err := NewImage[pixel.RGBA16](NewTypedLayout(3, 3), nil)
	require.NoError(t, err)
	Fill[pixel.RGBA16](rgba, pixel.RGBA16{1, 2, 3, 65535})
	assert.Equal(t, pixel.RGBA16{1, 2, 3, 65535}, rgba.At(2, 2))

	var empty Image[pixel.Gray8]
	Fill[pixel.Gray8](&empty, pixel.Gray8{1})
	assert.True(t, empty.IsEmpty())
}

func TestAllocate(t *testing.T) {
	recorder := testcommon.NewAllocatorRecorder(nil)
	img, err := NewImage[pixel.Gray8](NewTypedLayout(10, 10), &options.ImageOptions{Allocator: recorder})
	require.NoError(t, err)

	reallocated, err := Allocate(img, NewTypedLayout(10, 10), false, false)
	require.NoError(t, err)
	assert.False(t, reallocated)
	assert.Len(t, recorder.AllocateData, 1)

	reallocated, err = Allocate(img, NewTypedLayout(10, 10), true, false)
	require.NoError(t, err)
	assert.True(t, reallocated)
	assert.Len(t, recorder.AllocateData, 2)

	reallocated, err = Allocate(img, NewTypedLayout(5, 5), false, false)
	require.NoError(t, err)
	assert.False(t, reallocated)
	assert.Equal(t, 5, img.Width())
	assert.Len(t, recorder.AllocateData, 2)

	reallocated, err = Allocate(img, NewTypedLayout(40, 40), false, false)
	require.NoError(t, err)
	assert.True(t, reallocated)
	assert.Equal(t, 1, recorder.Live())
	assert.Equal(t, 40, img.Width())
}

func TestAllocateKeepsRowAlignment(t *testing.T) {
	img, err := NewImage[pixel.RGB8](NewTypedLayout(10, 10), &options.ImageOptions{RowAlignment: 64})
	require.NoError(t, err)

	_, err = Allocate(img, NewTypedLayout(30, 2), false, false)
	require.NoError(t, err)
	assert.Equal(t, 128, img.StrideBytes())
}

func TestEqual(t *testing.T) {
	var a, b Image[pixel.Gray8]
	assert.True(t, Equal[pixel.Gray8](&a, &b))

	x := newGradient(t, 3, 3, nil)
	y := newGradient(t, 3, 4, nil)
	assert.False(t, Equal[pixel.Gray8](x, y))

	sub, err := ViewRegion[pixel.Gray8](y, NewRegion(0, 0, 3, 3))
	require.NoError(t, err)
	assert.True(t, Equal[pixel.Gray8](x, sub))
}

func TestDynOps(t *testing.T) {
	semantics := pixel.Semantics{PixelFormat: pixel.FormatYA, SampleFormat: pixel.UnsignedInteger}
	src, err := NewDynImage(NewUntypedLayout(5, 4, 2, 1), semantics, &options.ImageOptions{RowAlignment: 16})
	require.NoError(t, err)
	require.NoError(t, FillDyn(src, []byte{10, 20}))
	copy(src.PixelBytes(3, 2), []byte{1, 2})

	clone, err := CloneDyn(src, nil)
	require.NoError(t, err)
	assert.Equal(t, semantics, clone.Semantics())
	assert.Equal(t, 10, clone.StrideBytes())
	assert.True(t, EqualDyn(src, clone))
	if diff := cmp.Diff(src.Layout(), clone.Layout(), cmpopts.IgnoreFields(UntypedLayout{}, "StrideBytes")); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}

	region, err := CloneDynRegion(src, NewRegion(2, 1, 2, 2), nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, region.PixelBytes(1, 1))
	assert.Equal(t, []byte{10, 20}, region.PixelBytes(0, 0))

	err = FillDyn(src, []byte{1, 2, 3})
	assert.True(t, errors.Is(err, ErrLayoutMismatch))

	var empty DynImage
	assert.NoError(t, FillDyn(&empty, nil))

	require.NoError(t, CropDyn(src, NewRegion(3, 2, 2, 2)))
	assert.Equal(t, []byte{1, 2}, src.PixelBytes(0, 0))
	assert.Equal(t, semantics, src.Semantics())
	assert.Equal(t, 16, src.StrideBytes())
}

func TestCloneDynInto(t *testing.T) {
	rgb := pixel.Semantics{PixelFormat: pixel.FormatRGB, SampleFormat: pixel.UnsignedInteger}
	src, err := NewDynImage(NewUntypedLayout(3, 2, 3, 1), rgb, nil)
	require.NoError(t, err)
	require.NoError(t, FillDyn(src, []byte{1, 2, 3}))

	dst, err := NewDynImage(NewUntypedLayout(1, 1, 1, 1), pixel.UnknownSemantics, nil)
	require.NoError(t, err)
	require.NoError(t, CloneDynInto(src, dst))
	assert.True(t, EqualDyn(src, dst))
	assert.Equal(t, rgb, dst.Semantics())

	view, err := NewMutableDynImageView(alignedBytes(t, 18), NewUntypedLayout(3, 2, 3, 1), pixel.UnknownSemantics)
	require.NoError(t, err)
	require.NoError(t, CloneDynInto(src, &view))
	assert.Equal(t, []byte{1, 2, 3}, view.PixelBytes(2, 1))
	assert.Equal(t, rgb, view.Semantics())

	small, err := NewMutableDynImageView(alignedBytes(t, 3), NewUntypedLayout(1, 1, 3, 1), pixel.UnknownSemantics)
	require.NoError(t, err)
	err = CloneDynInto(src, &small)
	assert.True(t, errors.Is(err, ErrInvalidOperationOnView))
}

func TestAllocateDyn(t *testing.T) {
	img, err := NewDynImage(NewUntypedLayout(4, 4, 1, 1), pixel.UnknownSemantics, nil)
	require.NoError(t, err)

	gray := pixel.Semantics{PixelFormat: pixel.FormatY, SampleFormat: pixel.UnsignedInteger}
	reallocated, err := AllocateDyn(img, NewUntypedLayout(4, 4, 1, 1), gray, false, false)
	require.NoError(t, err)
	assert.False(t, reallocated)
	assert.Equal(t, gray, img.Semantics())

	reallocated, err = AllocateDyn(img, NewUntypedLayout(4, 4, 3, 1), gray, false, false)
	require.NoError(t, err)
	assert.True(t, reallocated)
	assert.Equal(t, 3, img.NrChannels())

	reallocated, err = AllocateDyn(img, NewUntypedLayout(4, 4, 3, 1), gray, true, false)
	require.NoError(t, err)
	assert.True(t, reallocated)
}

func BenchmarkClone(b *testing.B) {
	src, _ := NewImage[pixel.RGBA8](NewTypedLayout(1920, 1080), &options.ImageOptions{RowAlignment: 64})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		clone, _ := Clone[pixel.RGBA8](src, nil)
		clone.Clear()
	}
}
