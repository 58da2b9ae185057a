package conv

import (
	"errors"
	"math"
	"testing"
)

func TestDirect(t *testing.T) {
	tests := []struct {
		name     string
		signal   []float64
		kernel   []float64
		expected []float64
	}{
		{
			name:     "simple 3x2",
			signal:   []float64{1, 2, 3},
			kernel:   []float64{1, 1},
			expected: []float64{1, 3, 5, 3},
		},
		{
			name:     "identity kernel",
			signal:   []float64{1, 2, 3, 4, 5},
			kernel:   []float64{1},
			expected: []float64{1, 2, 3, 4, 5},
		},
		{
			name:     "delayed impulse",
			signal:   []float64{1, 2, 3, 4, 5},
			kernel:   []float64{0, 0, 1},
			expected: []float64{0, 0, 1, 2, 3, 4, 5},
		},
		{
			name:     "symmetric",
			signal:   []float64{1, 2, 1},
			kernel:   []float64{1, 2, 1},
			expected: []float64{1, 4, 6, 4, 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Direct(tc.signal, tc.kernel)
			if err != nil {
				t.Fatalf("Direct: %v", err)
			}

			if len(got) != len(tc.expected) {
				t.Fatalf("result length %d, want %d", len(got), len(tc.expected))
			}

			for i, want := range tc.expected {
				if math.Abs(got[i]-want) > 1e-12 {
					t.Errorf("sample %d: got %v, want %v", i, got[i], want)
				}
			}
		})
	}
}

func TestDirectCommutative(t *testing.T) {
	a := []float64{0.5, -1, 0.25, 2, -0.75}
	b := []float64{1, 0.5, -0.5}

	ab, err := Direct(a, b)
	if err != nil {
		t.Fatalf("Direct(a, b): %v", err)
	}

	ba, err := Direct(b, a)
	if err != nil {
		t.Fatalf("Direct(b, a): %v", err)
	}

	if len(ab) != len(ba) {
		t.Fatalf("lengths differ: %d vs %d", len(ab), len(ba))
	}

	for i := range ab {
		if math.Abs(ab[i]-ba[i]) > 1e-12 {
			t.Errorf("sample %d: a*b=%v, b*a=%v", i, ab[i], ba[i])
		}
	}
}

func TestDirect32(t *testing.T) {
	signal := []float32{1, 2, 3}
	kernel := []float32{1, 1}
	expected := []float32{1, 3, 5, 3}

	got, err := Direct(signal, kernel)
	if err != nil {
		t.Fatalf("Direct: %v", err)
	}

	for i, want := range expected {
		if got[i] != want {
			t.Errorf("sample %d: got %v, want %v", i, got[i], want)
		}
	}
}

func TestDirectErrors(t *testing.T) {
	t.Run("EmptySignal", func(t *testing.T) {
		_, err := Direct([]float64{}, []float64{1})
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("want ErrEmptyInput, got %v", err)
		}
	})

	t.Run("EmptyKernel", func(t *testing.T) {
		_, err := Direct([]float64{1}, []float64{})
		if !errors.Is(err, ErrEmptyKernel) {
			t.Errorf("want ErrEmptyKernel, got %v", err)
		}
	})

	t.Run("ResultLengthMismatch", func(t *testing.T) {
		result := make([]float64, 3) // want 4
		err := DirectTo(result, []float64{1, 2, 3}, []float64{1, 1})
		if !errors.Is(err, ErrLengthMismatch) {
			t.Errorf("want ErrLengthMismatch, got %v", err)
		}
	})
}

func TestNextPowerOf2(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{1000, 1024},
		{1024, 1024},
		{1025, 2048},
	}

	for _, tc := range tests {
		if got := nextPowerOf2(tc.n); got != tc.want {
			t.Errorf("nextPowerOf2(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}
