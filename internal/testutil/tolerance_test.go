package testutil

import (
	"math"
	"testing"
)

func TestRequireFinitePasses(t *testing.T) {
	RequireFinite(t, []float64{0, -1.5, math.Pi})
}

func TestRequireSliceNearlyEqual32Passes(t *testing.T) {
	got := []float32{1.0, 2.0, 3.0}
	want := []float32{1.0, 2.0005, 3.0}
	RequireSliceNearlyEqual32(t, got, want, 1e-3)
}

func TestRequireAllZero32Passes(t *testing.T) {
	RequireAllZero32(t, make([]float32, 16))
}
