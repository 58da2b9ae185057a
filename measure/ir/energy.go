package ir

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audiograph/dsp/core"
)

// Definition computes the definition D(t) at a given time boundary in ms.
//
//	D(t) = ∫₀ᵗ h²(τ)dτ / ∫₀^∞ h²(τ)dτ
//
// Returns a ratio between 0 and 1.
func (a *Analyzer) Definition(ir []float64, timeMs float64) (float64, error) {
	if err := a.validate(ir); err != nil {
		return 0, err
	}

	if timeMs <= 0 {
		return 0, ErrInvalidTime
	}

	return a.definition(ir, timeMs), nil
}

// definition computes D(t) (unchecked).
func (a *Analyzer) definition(ir []float64, timeMs float64) float64 {
	boundary := int(math.Round(timeMs * 0.001 * a.SampleRate))
	if boundary <= 0 {
		return 0
	}

	if boundary >= len(ir) {
		return 1
	}

	early := vecmath.DotProduct(ir[:boundary], ir[:boundary])
	total := early + vecmath.DotProduct(ir[boundary:], ir[boundary:])

	if total <= 0 {
		return 0
	}

	return early / total
}

// Clarity computes the clarity C(t) at a given time boundary in ms.
//
//	C(t) = 10*log10( ∫₀ᵗ h²(τ)dτ / ∫ₜ^∞ h²(τ)dτ )
//
// Returns the value in dB.
func (a *Analyzer) Clarity(ir []float64, timeMs float64) (float64, error) {
	if err := a.validate(ir); err != nil {
		return 0, err
	}

	if timeMs <= 0 {
		return 0, ErrInvalidTime
	}

	return a.clarity(ir, timeMs), nil
}

// clarity computes C(t) (unchecked).
func (a *Analyzer) clarity(ir []float64, timeMs float64) float64 {
	boundary := int(math.Round(timeMs * 0.001 * a.SampleRate))
	if boundary <= 0 {
		return math.Inf(-1)
	}

	if boundary >= len(ir) {
		return math.Inf(1)
	}

	early := vecmath.DotProduct(ir[:boundary], ir[:boundary])
	late := vecmath.DotProduct(ir[boundary:], ir[boundary:])

	if late <= 0 {
		return math.Inf(1)
	}

	if early <= 0 {
		return math.Inf(-1)
	}

	return core.LinearPowerToDB(early / late)
}

// CenterTime computes the temporal energy centroid of the impulse response.
//
//	Ts = ∫₀^∞ τ·h²(τ)dτ / ∫₀^∞ h²(τ)dτ
//
// Returns the center time in seconds.
func (a *Analyzer) CenterTime(ir []float64) (float64, error) {
	if err := a.validate(ir); err != nil {
		return 0, err
	}

	return a.centerTime(ir), nil
}

// centerTime computes Ts (unchecked).
func (a *Analyzer) centerTime(ir []float64) float64 {
	total := vecmath.DotProduct(ir, ir)
	if total <= 0 {
		return 0
	}

	var weighted float64
	for i, v := range ir {
		weighted += float64(i) / a.SampleRate * v * v
	}

	return weighted / total
}

// FindImpulseStart finds the index of the first sample that exceeds
// a threshold relative to the peak amplitude.
//
// The default threshold is -20 dB below the peak (0.1 of peak amplitude).
// This is useful for trimming pre-delay silence from recorded IRs.
func (a *Analyzer) FindImpulseStart(ir []float64) (int, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	return a.findImpulseStart(ir, 0.1), nil
}

// findImpulseStart finds the first sample above threshold*peak.
func (a *Analyzer) findImpulseStart(ir []float64, thresholdRatio float64) int {
	threshold := vecmath.MaxAbs(ir) * thresholdRatio

	for i, v := range ir {
		if math.Abs(v) >= threshold {
			return i
		}
	}

	return 0
}

// findPeak returns the index of the absolute maximum in the IR. The scan
// stays scalar: the index is needed, not just the value.
func (a *Analyzer) findPeak(ir []float64) int {
	peakIdx := 0
	peakVal := 0.0

	for i, v := range ir {
		av := math.Abs(v)
		if av > peakVal {
			peakVal = av
			peakIdx = i
		}
	}

	return peakIdx
}
