package abi

import (
	"math"
	"testing"
)

func TestAlignUp(t *testing.T) {
	tests := []struct {
		x, a, want uint32
	}{
		{0, 1, 0},
		{0, 8, 0},
		{1, 4, 4},
		{4, 4, 4},
		{5, 8, 8},
		{9, 8, 16},
		{7, 2, 8},
		{3, 0, 3},
	}

	for _, tc := range tests {
		if got := AlignUp(tc.x, tc.a); got != tc.want {
			t.Errorf("AlignUp(%d, %d) = %d, want %d", tc.x, tc.a, got, tc.want)
		}
	}
}

func TestAlignUpChecked(t *testing.T) {
	if _, ok := AlignUpChecked(math.MaxUint32, 8); ok {
		t.Error("expected overflow")
	}
	got, ok := AlignUpChecked(13, 4)
	if !ok || got != 16 {
		t.Errorf("AlignUpChecked(13, 4) = %d, %v", got, ok)
	}
}

func TestSafeAddU32(t *testing.T) {
	if _, ok := SafeAddU32(math.MaxUint32, 1); ok {
		t.Error("expected overflow")
	}
	if got, ok := SafeAddU32(2, 3); !ok || got != 5 {
		t.Errorf("SafeAddU32(2, 3) = %d, %v", got, ok)
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, a := range []uint32{1, 2, 4, 8, 1 << 31} {
		if !IsPowerOfTwo(a) {
			t.Errorf("%d should be a power of two", a)
		}
	}
	for _, a := range []uint32{0, 3, 6, 12} {
		if IsPowerOfTwo(a) {
			t.Errorf("%d should not be a power of two", a)
		}
	}
}
