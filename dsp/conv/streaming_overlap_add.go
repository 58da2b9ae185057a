package conv

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
)

// StreamingOverlapAddT convolves a stream of fixed-size blocks with a fixed
// kernel using the overlap-add method. The tail of each block's convolution
// result is carried into the next block, so a sequence of ProcessBlockTo
// calls produces the same output as convolving the concatenated stream.
//
// The type parameters select precision: [float32, complex64] for render
// paths, [float64, complex128] for analysis.
type StreamingOverlapAddT[F algofft.Float, C algofft.Complex] struct {
	kernelFFT []C

	kernelLen int // original kernel length
	blockSize int // fixed input/output block size
	fftSize   int // nextPowerOf2(blockSize + kernelLen - 1)

	plan *algofft.Plan[C]

	// scratch, preallocated so per-block processing is allocation-free
	inputPadded  []C
	outputPadded []C
	convResult   []F // blockSize + kernelLen - 1 samples

	tail []F // kernelLen - 1 samples carried into the next block
}

// StreamingOverlapAdd is the float64 specialization of StreamingOverlapAddT.
type StreamingOverlapAdd = StreamingOverlapAddT[float64, complex128]

// StreamingOverlapAdd32 is the float32 specialization of StreamingOverlapAddT.
type StreamingOverlapAdd32 = StreamingOverlapAddT[float32, complex64]

// NewStreamingOverlapAddT creates a streaming overlap-add convolver for the
// given kernel. blockSize is the fixed size of input and output blocks.
func NewStreamingOverlapAddT[F algofft.Float, C algofft.Complex](kernel []F, blockSize int) (*StreamingOverlapAddT[F, C], error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: blockSize must be positive, got %d", ErrInvalidBlockSize, blockSize)
	}

	kernelLen := len(kernel)
	fftSize := nextPowerOf2(blockSize + kernelLen - 1)

	plan, err := algofft.NewPlanT[C](fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	soa := &StreamingOverlapAddT[F, C]{
		kernelFFT:    make([]C, fftSize),
		kernelLen:    kernelLen,
		blockSize:    blockSize,
		fftSize:      fftSize,
		plan:         plan,
		inputPadded:  make([]C, fftSize),
		outputPadded: make([]C, fftSize),
		convResult:   make([]F, blockSize+kernelLen-1),
		tail:         make([]F, kernelLen-1),
	}

	kernelPadded := make([]C, fftSize)
	packReal(kernelPadded[:kernelLen], kernel)

	if err := plan.Forward(soa.kernelFFT, kernelPadded); err != nil {
		return nil, fmt.Errorf("conv: failed to compute kernel FFT: %w", err)
	}

	return soa, nil
}

// NewStreamingOverlapAdd creates a float64 streaming overlap-add convolver.
func NewStreamingOverlapAdd(kernel []float64, blockSize int) (*StreamingOverlapAdd, error) {
	return NewStreamingOverlapAddT[float64, complex128](kernel, blockSize)
}

// NewStreamingOverlapAdd32 creates a float32 streaming overlap-add convolver.
func NewStreamingOverlapAdd32(kernel []float32, blockSize int) (*StreamingOverlapAdd32, error) {
	return NewStreamingOverlapAddT[float32, complex64](kernel, blockSize)
}

// ProcessBlock convolves a single block and returns a freshly allocated
// output block. Input and output are both blockSize samples. Use
// ProcessBlockTo on real-time paths.
func (soa *StreamingOverlapAddT[F, C]) ProcessBlock(input []F) ([]F, error) {
	output := make([]F, soa.blockSize)
	if err := soa.ProcessBlockTo(output, input); err != nil {
		return nil, err
	}

	return output, nil
}

// ProcessBlockTo convolves one input block into output. Both slices must
// be blockSize samples. State carried between calls makes consecutive
// blocks seamless. Allocation-free.
func (soa *StreamingOverlapAddT[F, C]) ProcessBlockTo(output, input []F) error {
	if len(input) != soa.blockSize {
		return fmt.Errorf("%w: expected %d input samples, got %d", ErrLengthMismatch, soa.blockSize, len(input))
	}

	if len(output) != soa.blockSize {
		return fmt.Errorf("%w: expected %d output samples, got %d", ErrLengthMismatch, soa.blockSize, len(output))
	}

	// Zero-pad input to FFT size and transform.
	clear(soa.inputPadded)
	packReal(soa.inputPadded[:soa.blockSize], input)

	if err := soa.plan.Forward(soa.inputPadded, soa.inputPadded); err != nil {
		return fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	// Multiply with the kernel spectrum and transform back.
	for i := range soa.outputPadded {
		soa.outputPadded[i] = soa.inputPadded[i] * soa.kernelFFT[i]
	}

	if err := soa.plan.Inverse(soa.outputPadded, soa.outputPadded); err != nil {
		return fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	// The linear convolution of one block is blockSize+kernelLen-1 samples:
	// the first blockSize become output (plus the previous tail), the rest
	// become the next tail.
	unpackReal(soa.convResult, soa.outputPadded)

	for i, t := range soa.tail {
		soa.convResult[i] += t
	}

	copy(output, soa.convResult[:soa.blockSize])
	copy(soa.tail, soa.convResult[soa.blockSize:])

	return nil
}

// Reset clears the overlap state so the next block starts a fresh stream.
func (soa *StreamingOverlapAddT[F, C]) Reset() {
	clear(soa.tail)
}

// BlockSize returns the fixed block size.
func (soa *StreamingOverlapAddT[F, C]) BlockSize() int {
	return soa.blockSize
}

// KernelLen returns the kernel length.
func (soa *StreamingOverlapAddT[F, C]) KernelLen() int {
	return soa.kernelLen
}

// FFTSize returns the internal FFT size.
func (soa *StreamingOverlapAddT[F, C]) FFTSize() int {
	return soa.fftSize
}
