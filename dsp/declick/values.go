package declick

import "fmt"

// DefaultFadeSeconds is the length of the ambient declick ramp.
const DefaultFadeSeconds = 0.01

// Values is the ambient declick context: a normalized fade ramp
// precomputed for the stream's sample rate. The graph engine builds one
// Values per stream and hands it to every processor with each block, so
// all declickers fade at the same rate without per-node tables.
type Values struct {
	ramp []float32
}

// NewValues precomputes the ramp for the given sample rate. Non-positive
// sample rates are a configuration mistake and panic.
func NewValues(sampleRate float64) *Values {
	if sampleRate <= 0 {
		panic(fmt.Sprintf("declick: sample rate must be positive: %f", sampleRate))
	}

	n := int(DefaultFadeSeconds*sampleRate + 0.5)
	if n < 1 {
		n = 1
	}

	ramp := make([]float32, n)
	for i := range ramp {
		ramp[i] = float32(i+1) / float32(n)
	}
	return &Values{ramp: ramp}
}

// Len returns the ramp length in frames.
func (v *Values) Len() int {
	return len(v.ramp)
}

// At returns the ramp value at index i, clamping to 0 below the ramp and
// to 1 beyond it.
func (v *Values) At(i int) float32 {
	if i < 0 {
		return 0
	}
	if i >= len(v.ramp) {
		return 1
	}
	return v.ramp[i]
}
