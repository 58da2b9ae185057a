package conv

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"testing"
)

// makeImpulseKernel creates a kernel that is a scaled exponential decay.
func makeImpulseKernel(n int) []float64 {
	k := make([]float64, n)
	k[0] = 1.0
	for i := 1; i < n; i++ {
		k[i] = k[i-1] * 0.99
	}
	return k
}

// makePartitionedTestSignal creates a deterministic signal using a fixed-seed generator.
func makePartitionedTestSignal(n int) []float64 {
	rng := rand.New(rand.NewPCG(42, 0))
	sig := make([]float64, n)
	for i := range sig {
		sig[i] = rng.Float64()*2 - 1
	}
	return sig
}

// convolveWithSOA convolves signal with kernel using StreamingOverlapAdd
// with a fixed block size. Returns the full output.
func convolveWithSOA(t *testing.T, kernel, signal []float64, blockSize int) []float64 {
	t.Helper()

	soa, err := NewStreamingOverlapAdd(kernel, blockSize)
	if err != nil {
		t.Fatalf("NewStreamingOverlapAdd: %v", err)
	}

	total := len(signal)
	out := make([]float64, 0, total)

	for i := 0; i < total; i += blockSize {
		end := i + blockSize
		if end > total {
			// Pad last block with zeros.
			block := make([]float64, blockSize)
			copy(block, signal[i:])
			blkOut, err := soa.ProcessBlock(block)
			if err != nil {
				t.Fatalf("SOA ProcessBlock: %v", err)
			}
			out = append(out, blkOut...)
			break
		}

		blkOut, err := soa.ProcessBlock(signal[i:end])
		if err != nil {
			t.Fatalf("SOA ProcessBlock: %v", err)
		}
		out = append(out, blkOut...)
	}

	return out
}

// convolveWithPartitioned convolves signal using a Partitioned convolver.
// It pads input with latency zeros and skips the first latency output
// samples to compensate for the processing delay.
func convolveWithPartitioned(t *testing.T, kernel, signal []float64, minBlockOrder int, opts ...PartitionedOption) []float64 {
	t.Helper()

	pc, err := NewPartitioned(kernel, minBlockOrder, opts...)
	if err != nil {
		t.Fatalf("NewPartitioned: %v", err)
	}

	latency := pc.Latency()

	// Append latency zeros to flush the pipeline.
	padded := make([]float64, len(signal)+latency)
	copy(padded, signal)

	out := make([]float64, len(padded))
	if err := pc.ProcessBlock(padded, out); err != nil {
		t.Fatalf("Partitioned ProcessBlock: %v", err)
	}

	// Skip the first latency samples (the pipeline delay).
	return out[latency:]
}

func TestPartitionedLatency(t *testing.T) {
	kernel := makeImpulseKernel(64)

	for _, order := range []int{4, 5, 6, 7} {
		t.Run(fmt.Sprintf("order%d", order), func(t *testing.T) {
			pc, err := NewPartitioned(kernel, order)
			if err != nil {
				t.Fatalf("NewPartitioned: %v", err)
			}

			want := 1 << order
			if pc.Latency() != want {
				t.Errorf("Latency()=%d, want %d (2^%d)", pc.Latency(), want, order)
			}
		})
	}
}

func TestPartitionedMatchesStreaming(t *testing.T) {
	tests := []struct {
		name          string
		kernelLen     int
		signalLen     int
		minBlockOrder int
		maxBlockOrder int
		tolerance     float64
	}{
		{"kernel64", 64, 512, 4, 10, 1e-7},
		{"kernel256", 256, 1024, 5, 12, 1e-7},
		{"kernel1024", 1024, 4096, 6, 13, 1e-7},
		{"kernel8192", 8192, 16384, 6, 13, 1e-7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kernel := makeImpulseKernel(tc.kernelLen)
			signal := makePartitionedTestSignal(tc.signalLen)
			latency := 1 << tc.minBlockOrder

			// Reference: StreamingOverlapAdd with blockSize = latency.
			soaOut := convolveWithSOA(t, kernel, signal, latency)

			// Under test: partitioned convolution.
			pcOut := convolveWithPartitioned(t, kernel, signal, tc.minBlockOrder, WithMaxBlockOrder(tc.maxBlockOrder))

			// Compare the first len(signal) output samples.
			compareLen := min(len(signal), len(pcOut), len(soaOut))

			maxDiff := 0.0
			for i := range compareLen {
				d := math.Abs(pcOut[i] - soaOut[i])
				if d > maxDiff {
					maxDiff = d
				}
			}

			if maxDiff > tc.tolerance {
				t.Errorf("max diff vs SOA: %e (tolerance %e)", maxDiff, tc.tolerance)
			}
		})
	}
}

func TestPartitionedChunkedEquivalence(t *testing.T) {
	// Output must not depend on how the input stream is chunked.
	kernel := makeImpulseKernel(300)
	signal := makePartitionedTestSignal(1024)

	oneShot, err := NewPartitioned(kernel, 5)
	if err != nil {
		t.Fatalf("NewPartitioned: %v", err)
	}

	want := make([]float64, len(signal))
	if err := oneShot.ProcessBlock(signal, want); err != nil {
		t.Fatalf("one-shot ProcessBlock: %v", err)
	}

	for _, chunkSize := range []int{1, 7, 32, 100} {
		t.Run(fmt.Sprintf("chunk%d", chunkSize), func(t *testing.T) {
			pc, err := NewPartitioned(kernel, 5)
			if err != nil {
				t.Fatalf("NewPartitioned: %v", err)
			}

			got := make([]float64, len(signal))
			for i := 0; i < len(signal); i += chunkSize {
				end := min(i+chunkSize, len(signal))
				if err := pc.ProcessBlock(signal[i:end], got[i:end]); err != nil {
					t.Fatalf("chunked ProcessBlock: %v", err)
				}
			}

			// Chunking changes copy granularity only, never arithmetic,
			// so the outputs are bit-identical.
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("chunk size %d: sample %d differs: %v vs %v", chunkSize, i, got[i], want[i])
				}
			}
		})
	}
}

func TestPartitioned32MatchesDirect(t *testing.T) {
	kernel := make([]float32, 96)
	kernel[0] = 1.0
	for i := 1; i < len(kernel); i++ {
		kernel[i] = kernel[i-1] * 0.9
	}

	rng := rand.New(rand.NewPCG(7, 0))
	signal := make([]float32, 1000)
	for i := range signal {
		signal[i] = float32(rng.Float64()*2 - 1)
	}

	want, err := Direct(signal, kernel)
	if err != nil {
		t.Fatalf("Direct: %v", err)
	}

	pc, err := NewPartitioned32(kernel, 5)
	if err != nil {
		t.Fatalf("NewPartitioned32: %v", err)
	}

	latency := pc.Latency()
	padded := make([]float32, len(signal)+latency)
	copy(padded, signal)

	out := make([]float32, len(padded))
	if err := pc.ProcessBlock(padded, out); err != nil {
		t.Fatalf("ProcessBlock: %v", err)
	}

	maxDiff := 0.0
	for i := range signal {
		d := math.Abs(float64(out[latency+i] - want[i]))
		if d > maxDiff {
			maxDiff = d
		}
	}

	if maxDiff > 1e-3 {
		t.Errorf("max diff vs Direct: %e", maxDiff)
	}
}

func TestPartitionedReset(t *testing.T) {
	kernel := makeImpulseKernel(128)
	signal := makePartitionedTestSignal(512)

	pc, err := NewPartitioned(kernel, 6)
	if err != nil {
		t.Fatalf("NewPartitioned: %v", err)
	}

	out1 := make([]float64, len(signal))
	if err := pc.ProcessBlock(signal, out1); err != nil {
		t.Fatalf("first ProcessBlock: %v", err)
	}

	pc.Reset()

	out2 := make([]float64, len(signal))
	if err := pc.ProcessBlock(signal, out2); err != nil {
		t.Fatalf("second ProcessBlock after Reset: %v", err)
	}

	for i := range out1 {
		if math.Abs(out1[i]-out2[i]) > 1e-12 {
			t.Errorf("after Reset, sample %d differs: %v vs %v", i, out1[i], out2[i])
		}
	}
}

func TestPartitionedErrors(t *testing.T) {
	t.Run("EmptyKernel", func(t *testing.T) {
		_, err := NewPartitioned([]float64{}, 6)
		if !errors.Is(err, ErrEmptyImpulseResponse) {
			t.Errorf("want ErrEmptyImpulseResponse, got %v", err)
		}
	})

	t.Run("MinOrderZero", func(t *testing.T) {
		_, err := NewPartitioned([]float64{1, 2, 3}, 0)
		if !errors.Is(err, ErrInvalidBlockOrder) {
			t.Errorf("want ErrInvalidBlockOrder, got %v", err)
		}
	})

	t.Run("MaxOrderZero", func(t *testing.T) {
		_, err := NewPartitioned([]float64{1, 2, 3}, 6, WithMaxBlockOrder(0))
		if !errors.Is(err, ErrInvalidBlockOrder) {
			t.Errorf("want ErrInvalidBlockOrder, got %v", err)
		}
	})

	t.Run("MaxLessThanMin", func(t *testing.T) {
		_, err := NewPartitioned([]float64{1, 2, 3}, 8, WithMaxBlockOrder(5))
		if !errors.Is(err, ErrInvalidBlockOrder) {
			t.Errorf("want ErrInvalidBlockOrder, got %v", err)
		}
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		pc, err := NewPartitioned([]float64{1, 2, 3, 4}, 2)
		if err != nil {
			t.Fatalf("NewPartitioned: %v", err)
		}
		in := make([]float64, 10)
		out := make([]float64, 8) // different length
		err = pc.ProcessBlock(in, out)
		if !errors.Is(err, ErrLengthMismatch) {
			t.Errorf("want ErrLengthMismatch, got %v", err)
		}
	})
}

func TestPartitionedDefaultMaxBlockOrder(t *testing.T) {
	// A kernel long enough to hit the default cap: partitions must never
	// exceed 2^DefaultMaxBlockOrder samples.
	kernel := makeImpulseKernel(65536)

	pc, err := NewPartitioned(kernel, 6)
	if err != nil {
		t.Fatalf("NewPartitioned: %v", err)
	}

	maxPart := 1 << DefaultMaxBlockOrder
	for i := range pc.StageCount() {
		partSize, _, err := pc.StageInfo(i)
		if err != nil {
			t.Fatalf("StageInfo(%d): %v", i, err)
		}
		if partSize > maxPart {
			t.Errorf("stage %d: partSize=%d exceeds default cap %d", i, partSize, maxPart)
		}
	}

	// A minBlockOrder above the default cap must still be accepted.
	pc2, err := NewPartitioned(makeImpulseKernel(1024), DefaultMaxBlockOrder+1)
	if err != nil {
		t.Fatalf("NewPartitioned with large minBlockOrder: %v", err)
	}
	if pc2.Latency() != 1<<(DefaultMaxBlockOrder+1) {
		t.Errorf("Latency()=%d, want %d", pc2.Latency(), 1<<(DefaultMaxBlockOrder+1))
	}
}

func TestPartitionedStageInfo(t *testing.T) {
	kernel := makeImpulseKernel(1024)

	pc, err := NewPartitioned(kernel, 6)
	if err != nil {
		t.Fatalf("NewPartitioned: %v", err)
	}

	count := pc.StageCount()
	if count == 0 {
		t.Fatal("StageCount() = 0, expected at least one stage")
	}

	// Out of bounds.
	_, _, err = pc.StageInfo(-1)
	if !errors.Is(err, ErrStageIndexOutOfRange) {
		t.Errorf("StageInfo(-1): want ErrStageIndexOutOfRange, got %v", err)
	}

	_, _, err = pc.StageInfo(count)
	if !errors.Is(err, ErrStageIndexOutOfRange) {
		t.Errorf("StageInfo(%d): want ErrStageIndexOutOfRange, got %v", count, err)
	}

	// Valid info.
	for i := range count {
		partSize, blockCount, err := pc.StageInfo(i)
		if err != nil {
			t.Errorf("StageInfo(%d): %v", i, err)
			continue
		}
		if partSize <= 0 {
			t.Errorf("StageInfo(%d): partSize=%d, want >0", i, partSize)
		}
		if blockCount <= 0 {
			t.Errorf("StageInfo(%d): blockCount=%d, want >0", i, blockCount)
		}
	}
}

func TestPartitionedKernelLen(t *testing.T) {
	kernel := makeImpulseKernel(300)
	pc, err := NewPartitioned(kernel, 6)
	if err != nil {
		t.Fatalf("NewPartitioned: %v", err)
	}
	if pc.KernelLen() != len(kernel) {
		t.Errorf("KernelLen()=%d, want %d", pc.KernelLen(), len(kernel))
	}
}

func TestPartitionedDiracDelta(t *testing.T) {
	// A dirac-delta kernel should produce a delayed copy of the input.
	kernel := []float64{1.0}
	signal := makePartitionedTestSignal(256)
	minBlockOrder := 4
	latency := 1 << minBlockOrder

	pc, err := NewPartitioned(kernel, minBlockOrder)
	if err != nil {
		t.Fatalf("NewPartitioned: %v", err)
	}

	// Pad with latency zeros to flush.
	padded := make([]float64, len(signal)+latency)
	copy(padded, signal)
	out := make([]float64, len(padded))

	if err := pc.ProcessBlock(padded, out); err != nil {
		t.Fatalf("ProcessBlock: %v", err)
	}

	// output[latency:latency+len(signal)] should equal signal.
	for i, want := range signal {
		got := out[latency+i]
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("sample %d: got %v, want %v", i, got, want)
		}
	}
}

func BenchmarkPartitioned(b *testing.B) {
	benchCases := []struct {
		name          string
		kernelLen     int
		minBlockOrder int
	}{
		{"kernel4096/latency128", 4096, 7},
		{"kernel32768/latency128", 32768, 7},
	}

	for _, bc := range benchCases {
		b.Run(bc.name+"/f64", func(b *testing.B) {
			kernel := makeImpulseKernel(bc.kernelLen)
			blockSize := 1 << bc.minBlockOrder

			pc, err := NewPartitioned(kernel, bc.minBlockOrder)
			if err != nil {
				b.Fatalf("NewPartitioned: %v", err)
			}

			input := makePartitionedTestSignal(blockSize)
			output := make([]float64, blockSize)

			b.ReportAllocs()
			b.ResetTimer()

			for b.Loop() {
				_ = pc.ProcessBlock(input, output)
			}
		})

		b.Run(bc.name+"/f32", func(b *testing.B) {
			kernel64 := makeImpulseKernel(bc.kernelLen)
			kernel := make([]float32, len(kernel64))
			for i, v := range kernel64 {
				kernel[i] = float32(v)
			}

			blockSize := 1 << bc.minBlockOrder

			pc, err := NewPartitioned32(kernel, bc.minBlockOrder)
			if err != nil {
				b.Fatalf("NewPartitioned32: %v", err)
			}

			input64 := makePartitionedTestSignal(blockSize)
			input := make([]float32, blockSize)
			for i, v := range input64 {
				input[i] = float32(v)
			}
			output := make([]float32, blockSize)

			b.ReportAllocs()
			b.ResetTimer()

			for b.Loop() {
				_ = pc.ProcessBlock(input, output)
			}
		})
	}
}
