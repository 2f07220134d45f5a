package abi

import "math"

// AlignUp rounds x up to the next multiple of a. a must be a power of two.
func AlignUp(x, a uint32) uint32 {
	if a == 0 {
		return x
	}
	return (x + a - 1) &^ (a - 1)
}

// AlignUpChecked is AlignUp that reports overflow instead of wrapping.
func AlignUpChecked(x, a uint32) (uint32, bool) {
	if a == 0 {
		return x, true
	}
	if x > math.MaxUint32-(a-1) {
		return 0, false
	}
	return AlignUp(x, a), true
}

func SafeAddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}

// IsPowerOfTwo reports whether a is a non-zero power of two.
func IsPowerOfTwo(a uint32) bool {
	return a != 0 && a&(a-1) == 0
}
