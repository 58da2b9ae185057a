package conv

import (
	"errors"
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
)

// Package-level errors.
var (
	ErrEmptyInput       = errors.New("conv: empty input")
	ErrEmptyKernel      = errors.New("conv: empty kernel")
	ErrLengthMismatch   = errors.New("conv: length mismatch")
	ErrInvalidBlockSize = errors.New("conv: invalid block size")
)

// Direct computes the full linear convolution of signal and kernel in the
// time domain. The result has length len(signal)+len(kernel)-1.
//
// Cost is O(N*M), which is only competitive for short kernels. The
// FFT-based engines use it as their correctness reference.
func Direct[F algofft.Float](signal, kernel []F) ([]F, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]F, len(signal)+len(kernel)-1)
	if err := DirectTo(result, signal, kernel); err != nil {
		return nil, err
	}

	return result, nil
}

// DirectTo computes the full linear convolution of signal and kernel into
// result, which must have length len(signal)+len(kernel)-1.
func DirectTo[F algofft.Float](result, signal, kernel []F) error {
	if len(signal) == 0 {
		return ErrEmptyInput
	}
	if len(kernel) == 0 {
		return ErrEmptyKernel
	}

	expected := len(signal) + len(kernel) - 1
	if len(result) != expected {
		return fmt.Errorf("%w: result length %d, want %d", ErrLengthMismatch, len(result), expected)
	}

	clear(result)

	for i, s := range signal {
		for j, k := range kernel {
			result[i+j] += s * k
		}
	}

	return nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
