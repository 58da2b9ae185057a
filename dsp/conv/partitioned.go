package conv

import (
	"errors"
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
)

// Errors specific to partitioned convolution.
var (
	ErrInvalidBlockOrder    = errors.New("conv: invalid block order")
	ErrEmptyImpulseResponse = errors.New("conv: empty impulse response")
	ErrStageIndexOutOfRange = errors.New("conv: stage index out of range")
)

// DefaultMaxBlockOrder caps partition sizes at 2^13 = 8192 samples unless
// WithMaxBlockOrder overrides it.
const DefaultMaxBlockOrder = 13

// PartitionedT implements non-uniformly partitioned overlap-add convolution
// for long impulse responses at low latency.
//
// The kernel is split into stages with exponentially increasing partition
// sizes. Small partitions run every latency block and keep the latency low;
// large partitions run rarely (modulo scheduling) and keep the CPU cost
// close to uniform-partition FFT convolution.
//
// Latency is fixed at 2^minBlockOrder samples regardless of how input is
// chunked: ProcessBlock accepts arbitrary chunk lengths and assembles full
// latency blocks internally.
//
// Based on the algorithm from TLowLatencyConvolution32 (DAV_DspConvolution.pas).
type PartitionedT[F algofft.Float, C algofft.Complex] struct {
	// kernel configuration
	kernelLen       int
	kernelLenPadded int

	// latency configuration
	minBlockOrder int
	maxBlockOrder int
	latency       int // = 1 << minBlockOrder

	// ring buffers
	inputBuffer  []F
	outputBuffer []F
	blockPos     int

	stages []*partStage[F, C]
}

// Partitioned is the float64 specialization of PartitionedT.
type Partitioned = PartitionedT[float64, complex128]

// Partitioned32 is the float32 specialization of PartitionedT.
type Partitioned32 = PartitionedT[float32, complex64]

// PartitionedOption configures a partitioned convolver.
type PartitionedOption func(*partitionedConfig) error

type partitionedConfig struct {
	maxBlockOrder int // 0 = unset
}

// WithMaxBlockOrder caps the largest partition at 2^order samples. Higher
// orders reduce CPU cost for long kernels at the price of larger internal
// buffers and burstier stage scheduling. order must be >= 1 and >= the
// convolver's minBlockOrder.
func WithMaxBlockOrder(order int) PartitionedOption {
	return func(cfg *partitionedConfig) error {
		if order < 1 {
			return fmt.Errorf("%w: maxBlockOrder must be >= 1, got %d", ErrInvalidBlockOrder, order)
		}

		cfg.maxBlockOrder = order
		return nil
	}
}

// partStage is a single partition stage.
type partStage[F algofft.Float, C algofft.Complex] struct {
	fftOrder  int
	fftSize   int // = 1 << (fftOrder+1), double the partition size
	partSize  int // = 1 << fftOrder
	outputPos int // offset into output buffer for overlap-add
	latency   int // system latency = 1 << minBlockOrder
	mod       int // current modulo counter
	modAnd    int // (partSize/latency - 1), bitmask for mod

	irSpectra  [][]C
	fft        *fftEngine[C]
	signalBuf  []C // size fftSize, input packing / IFFT scratch
	signalFreq []C // size fftSize, FFT of input
	convTime   []F // size fftSize, IFFT output unpacked
}

// newPartStage creates a stage of 2^irOrder-sample partitions whose kernel
// data starts at startPos in the full kernel. count is the number of kernel
// blocks in the stage.
func newPartStage[F algofft.Float, C algofft.Complex](irOrder, startPos, latency, count int) (*partStage[F, C], error) {
	partSize := 1 << irOrder
	fftSize := 1 << (irOrder + 1) // zero-padded to 2*partSize

	fft, err := newFFTEngine[C](fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: partitioned stage FFT init (order=%d): %w", irOrder, err)
	}

	irSpectra := make([][]C, count)
	for i := range irSpectra {
		irSpectra[i] = make([]C, fftSize)
	}

	return &partStage[F, C]{
		fftOrder:   irOrder,
		fftSize:    fftSize,
		partSize:   partSize,
		outputPos:  startPos,
		latency:    latency,
		mod:        0,
		modAnd:     partSize/latency - 1,
		irSpectra:  irSpectra,
		fft:        fft,
		signalBuf:  make([]C, fftSize),
		signalFreq: make([]C, fftSize),
		convTime:   make([]F, fftSize),
	}, nil
}

// calculateIRSpectra pre-computes the frequency-domain representation of
// each kernel block in this stage. Kernel data for block i starts at
// outputPos + i*partSize in the full kernel slice.
func (s *partStage[F, C]) calculateIRSpectra(kernel []F) {
	for blockIdx := range s.irSpectra {
		clear(s.signalBuf)

		kernelStart := s.outputPos + blockIdx*s.partSize
		kernelEnd := min(kernelStart+s.partSize, len(kernel))

		if kernelStart < len(kernel) {
			// Kernel data goes in the upper partSize samples of the buffer.
			chunk := kernel[kernelStart:kernelEnd]
			packReal(s.signalBuf[s.partSize:s.partSize+len(chunk)], chunk)
		}

		s.fft.Forward(s.irSpectra[blockIdx], s.signalBuf)
	}
}

// process runs the stage for one latency block. inputBuf is the full input
// ring buffer; outputBuf is the full output accumulator.
func (s *partStage[F, C]) process(inputBuf, outputBuf []F) {
	if s.mod != 0 {
		s.mod = (s.mod + 1) & s.modAnd
		return
	}

	// Pack the last fftSize input samples as real-valued complex.
	inputStart := len(inputBuf) - s.fftSize
	clear(s.signalBuf)
	packReal(s.signalBuf, inputBuf[inputStart:])

	s.fft.Forward(s.signalFreq, s.signalBuf)

	// Multiply with each kernel block's spectrum, transform back, and
	// overlap-add into the output accumulator at the block's position.
	for blockIdx, irSpec := range s.irSpectra {
		for i := range s.signalBuf {
			s.signalBuf[i] = s.signalFreq[i] * irSpec[i]
		}

		s.fft.Inverse(s.signalBuf, s.signalBuf)
		unpackReal(s.convTime, s.signalBuf)

		outPos := s.outputPos + s.latency - s.partSize + blockIdx*s.partSize
		if outPos >= 0 && outPos+s.partSize <= len(outputBuf) {
			for i := range s.partSize {
				outputBuf[outPos+i] += s.convTime[i]
			}
		}
	}

	s.mod = (s.mod + 1) & s.modAnd
}

// truncLog2 returns floor(log2(n)) for n >= 1.
func truncLog2(n int) int {
	if n <= 0 {
		return 0
	}

	result := 0
	for n > 1 {
		n >>= 1
		result++
	}

	return result
}

// bitCountToBits returns (2 << n) - 1, i.e. the value with all bits set up to bit n.
func bitCountToBits(n int) int {
	return (2 << n) - 1
}

// NewPartitionedT creates a partitioned convolver with the given impulse
// response kernel.
//
// minBlockOrder controls latency: latency = 2^minBlockOrder samples.
// Typical real-time values are 5-9 (32-512 samples). The maximum partition
// size defaults to max(2^DefaultMaxBlockOrder, latency) and can be tuned
// with WithMaxBlockOrder.
func NewPartitionedT[F algofft.Float, C algofft.Complex](
	kernel []F, minBlockOrder int, opts ...PartitionedOption,
) (*PartitionedT[F, C], error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyImpulseResponse
	}

	if minBlockOrder < 1 {
		return nil, fmt.Errorf("%w: minBlockOrder must be >= 1, got %d", ErrInvalidBlockOrder, minBlockOrder)
	}

	var cfg partitionedConfig
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	maxBlockOrder := cfg.maxBlockOrder
	if maxBlockOrder == 0 {
		maxBlockOrder = max(DefaultMaxBlockOrder, minBlockOrder)
	}

	if maxBlockOrder < minBlockOrder {
		return nil, fmt.Errorf("%w: maxBlockOrder (%d) must be >= minBlockOrder (%d)",
			ErrInvalidBlockOrder, maxBlockOrder, minBlockOrder)
	}

	latency := 1 << minBlockOrder
	minBlockSize := latency

	// Pad kernel length to a multiple of the latency block size.
	kernelLen := len(kernel)
	kernelLenPadded := ((kernelLen + minBlockSize - 1) / minBlockSize) * minBlockSize

	stages, err := partitionKernel[F, C](kernel, kernelLenPadded, minBlockOrder, maxBlockOrder, latency)
	if err != nil {
		return nil, err
	}

	// The input ring must hold the FFT window of the largest stage.
	maxIROrd := stages[len(stages)-1].fftOrder
	inputBufSize := 2 << maxIROrd
	outputHistSize := max(0, kernelLenPadded-latency)

	return &PartitionedT[F, C]{
		kernelLen:       kernelLen,
		kernelLenPadded: kernelLenPadded,
		minBlockOrder:   minBlockOrder,
		maxBlockOrder:   maxBlockOrder,
		latency:         latency,
		inputBuffer:     make([]F, inputBufSize),
		outputBuffer:    make([]F, outputHistSize+latency),
		blockPos:        0,
		stages:          stages,
	}, nil
}

// partitionKernel builds the stage list for the given kernel configuration.
func partitionKernel[F algofft.Float, C algofft.Complex](
	kernel []F, kernelLenPadded, minBlockOrder, maxBlockOrder, latency int,
) ([]*partStage[F, C], error) {
	minBlockSize := 1 << minBlockOrder

	// Determine the effective maximum partition order.
	maxIROrd := truncLog2(kernelLenPadded+minBlockSize) - 1

	// Residual kernel size after the stages below maxIROrd.
	resIRSize := kernelLenPadded - (bitCountToBits(maxIROrd) - bitCountToBits(minBlockOrder-1))

	if resIRSize > 0 && (resIRSize>>maxIROrd)&1 == 0 && maxIROrd > minBlockOrder {
		maxIROrd--
	}

	if maxIROrd > maxBlockOrder {
		maxIROrd = maxBlockOrder
	}

	// Recalculate the residual with the final maxIROrd.
	resIRSize = kernelLenPadded - (bitCountToBits(maxIROrd) - bitCountToBits(minBlockOrder-1))

	var stages []*partStage[F, C]
	startPos := 0

	for order := minBlockOrder; order < maxIROrd; order++ {
		count := 1 + ((resIRSize >> order) & 1)

		stage, err := newPartStage[F, C](order, startPos, latency, count)
		if err != nil {
			return nil, err
		}

		stage.calculateIRSpectra(kernel)
		stages = append(stages, stage)

		startPos += count * (1 << order)
		resIRSize -= (count - 1) * (1 << order)
	}

	// Last (largest) stage takes the remainder.
	count := 1
	if maxIROrd > 0 {
		count = max(1, 1+resIRSize/(1<<maxIROrd))
	}

	stage, err := newPartStage[F, C](maxIROrd, startPos, latency, count)
	if err != nil {
		return nil, err
	}

	stage.calculateIRSpectra(kernel)

	return append(stages, stage), nil
}

// NewPartitioned creates a float64 partitioned convolver.
func NewPartitioned(kernel []float64, minBlockOrder int, opts ...PartitionedOption) (*Partitioned, error) {
	return NewPartitionedT[float64, complex128](kernel, minBlockOrder, opts...)
}

// NewPartitioned32 creates a float32 partitioned convolver.
func NewPartitioned32(kernel []float32, minBlockOrder int, opts ...PartitionedOption) (*Partitioned32, error) {
	return NewPartitionedT[float32, complex64](kernel, minBlockOrder, opts...)
}

// ProcessBlock convolves an arbitrary-length chunk of input samples. The
// output slice must be the same length as input. Output is delayed by
// Latency() samples: the first Latency() output samples of a stream are
// zero, after which the convolved signal follows.
//
// Chunk boundaries do not affect the result; feeding one long slice or
// many short ones produces identical output.
func (p *PartitionedT[F, C]) ProcessBlock(input, output []F) error {
	if len(input) != len(output) {
		return fmt.Errorf("%w: input length %d != output length %d",
			ErrLengthMismatch, len(input), len(output))
	}

	inPos := 0
	remaining := len(input)
	latency := p.latency

	for remaining > 0 {
		// Samples until the next latency-block boundary.
		chunk := min(latency-p.blockPos, remaining)

		// Append chunk to the end of the input ring.
		ibEnd := len(p.inputBuffer)
		copy(p.inputBuffer[ibEnd-latency+p.blockPos:], input[inPos:inPos+chunk])

		// Read already-computed output.
		obStart := p.blockPos
		copy(output[inPos:inPos+chunk], p.outputBuffer[obStart:obStart+chunk])

		p.blockPos += chunk
		inPos += chunk
		remaining -= chunk

		if p.blockPos == latency {
			// Full latency block assembled: advance the output ring and
			// run every stage on the new input.
			outLen := len(p.outputBuffer)
			copy(p.outputBuffer, p.outputBuffer[latency:])
			clear(p.outputBuffer[outLen-latency:])

			for _, s := range p.stages {
				s.process(p.inputBuffer, p.outputBuffer)
			}

			copy(p.inputBuffer, p.inputBuffer[latency:])
			clear(p.inputBuffer[len(p.inputBuffer)-latency:])

			p.blockPos = 0
		}
	}

	return nil
}

// Reset clears all internal state, ready for a fresh signal stream.
func (p *PartitionedT[F, C]) Reset() {
	clear(p.inputBuffer)
	clear(p.outputBuffer)
	p.blockPos = 0

	for _, s := range p.stages {
		s.mod = 0
	}
}

// Latency returns the processing latency in samples (= 2^minBlockOrder).
func (p *PartitionedT[F, C]) Latency() int {
	return p.latency
}

// KernelLen returns the original kernel length.
func (p *PartitionedT[F, C]) KernelLen() int {
	return p.kernelLen
}

// StageCount returns the number of partition stages.
func (p *PartitionedT[F, C]) StageCount() int {
	return len(p.stages)
}

// StageInfo returns the partition size in samples and the number of kernel
// blocks of the stage at index.
func (p *PartitionedT[F, C]) StageInfo(index int) (partSize, blockCount int, err error) {
	if index < 0 || index >= len(p.stages) {
		return 0, 0, fmt.Errorf("%w: index %d, have %d stages",
			ErrStageIndexOutOfRange, index, len(p.stages))
	}

	s := p.stages[index]
	return s.partSize, len(s.irSpectra), nil
}
