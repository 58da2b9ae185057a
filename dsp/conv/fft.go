package conv

import (
	algofft "github.com/cwbudde/algo-fft"
)

// toComplex widens a real sample to the matching complex type.
func toComplex[F algofft.Float, C algofft.Complex](v F) C {
	return C(complex(float64(v), 0))
}

// toFloat returns the real part of a complex sample.
func toFloat[F algofft.Float, C algofft.Complex](v C) F {
	return F(real(complex128(v)))
}

// packReal writes src into dst as real-valued complex samples.
// dst and src must have the same length.
func packReal[F algofft.Float, C algofft.Complex](dst []C, src []F) {
	for i, v := range src {
		dst[i] = C(complex(float64(v), 0))
	}
}

// unpackReal writes the real parts of src into dst.
// src must be at least as long as dst; extra samples are ignored.
func unpackReal[F algofft.Float, C algofft.Complex](dst []F, src []C) {
	for i := range dst {
		dst[i] = F(real(complex128(src[i])))
	}
}

// fftEngine binds an FFT plan to a fixed transform size. Forward and
// Inverse cannot fail once the plan exists because every call site passes
// slices of exactly the planned size, so they swallow the plan's error
// returns to keep the per-block hot path free of dead checks.
type fftEngine[C algofft.Complex] struct {
	plan *algofft.Plan[C]
}

// newFFTEngine creates an engine for transforms of the given size,
// which must be a power of two.
func newFFTEngine[C algofft.Complex](size int) (*fftEngine[C], error) {
	plan, err := algofft.NewPlanT[C](size)
	if err != nil {
		return nil, err
	}

	return &fftEngine[C]{plan: plan}, nil
}

// Forward computes the forward transform of src into dst.
// In-place operation (dst == src) is allowed.
func (e *fftEngine[C]) Forward(dst, src []C) {
	_ = e.plan.Forward(dst, src)
}

// Inverse computes the normalized inverse transform of src into dst.
// In-place operation (dst == src) is allowed.
func (e *fftEngine[C]) Inverse(dst, src []C) {
	_ = e.plan.Inverse(dst, src)
}
