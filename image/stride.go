package image

import (
	"github.com/kpfaulkner/pixmem/util"
)

// MaxGuessedRowAlignment caps the result of GuessRowAlignment.
const MaxGuessedRowAlignment = 128

// ComputeStrideBytes rounds rowBytes up to a multiple of rowAlignment. An
// alignment of 0 or 1 leaves rows packed.
func ComputeStrideBytes(rowBytes int, rowAlignment int) int {
	return util.AlignUp(rowBytes, rowAlignment)
}

// ComputeStride returns the smallest stride holding width pixels of the given
// shape that is a multiple of rowAlignment.
func ComputeStride(width, nrChannels, nrBytesPerChannel, rowAlignment int) int {
	return ComputeStrideBytes(width*nrChannels*nrBytesPerChannel, rowAlignment)
}

// GuessRowAlignment infers the row alignment of existing memory: the largest
// power of two, at most MaxGuessedRowAlignment, dividing both the address of
// the first pixel and the stride.
func GuessRowAlignment(baseAddress uintptr, strideBytes int) int {
	a := util.LargestPowerOfTwoDivisor(uint64(baseAddress), MaxGuessedRowAlignment)
	s := util.LargestPowerOfTwoDivisor(uint64(strideBytes), MaxGuessedRowAlignment)
	return int(util.Min(a, s))
}

func validRowAlignment(rowAlignment int) bool {
	return rowAlignment == 0 || util.IsPowerOfTwo(rowAlignment)
}
