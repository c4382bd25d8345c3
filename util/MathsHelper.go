package util

import (
	"cmp"
	"math/bits"

	"golang.org/x/exp/constraints"
)

func Max[T cmp.Ordered](args ...T) T {
	if len(args) == 0 {
		return *new(T)
	}

	if isNan(args[0]) {
		return args[0]
	}

	max := args[0]
	for _, arg := range args[1:] {

		if isNan(arg) {
			return arg
		}

		if arg > max {
			max = arg
		}
	}
	return max
}

func Min[T cmp.Ordered](args ...T) T {
	if len(args) == 0 {
		return *new(T)
	}

	if isNan(args[0]) {
		return args[0]
	}

	min := args[0]
	for _, arg := range args[1:] {

		if isNan(arg) {
			return arg
		}

		if arg < min {
			min = arg
		}
	}
	return min
}

func isNan[T comparable](arg T) bool {
	return arg != arg
}

// IsPowerOfTwo reports whether x is a positive power of two.
func IsPowerOfTwo[T constraints.Integer](x T) bool {
	return x > 0 && x&(x-1) == 0
}

// AlignUp rounds x up to the next multiple of alignment. Alignments of 0 or 1
// leave x unchanged. alignment need not be a power of two.
func AlignUp[T constraints.Integer](x T, alignment T) T {
	if alignment <= 1 {
		return x
	}
	mod := x % alignment
	if mod == 0 {
		return x
	}
	return x + alignment - mod
}

// LargestPowerOfTwoDivisor returns the largest power of two dividing x,
// capped at limit. Zero is divisible by everything, so it yields limit.
func LargestPowerOfTwoDivisor(x uint64, limit uint64) uint64 {
	if x == 0 {
		return limit
	}
	d := uint64(1) << bits.TrailingZeros64(x)
	return Min(d, limit)
}

// FloorLog2 returns floor(log2(x)) for x > 0, and -1 for x == 0.
func FloorLog2(x uint64) int {
	return 63 - bits.LeadingZeros64(x)
}
