// Package fade provides the crossfade gain laws shared by the mixing and
// declicking primitives.
//
// A Curve maps a normalized fade position t in [0, 1] to complementary
// dry/wet gains (for crossfades) or to a single fade-in gain (for mute and
// unmute ramps). The equal-power law keeps perceived loudness roughly
// constant across the fade and is the default everywhere a curve is
// configurable.
package fade

import (
	"math"

	"github.com/cwbudde/algo-audiograph/dsp/core"
)

// Curve selects a crossfade gain law.
type Curve int

const (
	// EqualPower3dB is the quarter-wave sine/cosine law, -3 dB per leg at
	// the midpoint. Default.
	EqualPower3dB Curve = iota
	// SquareRoot is the square-root law, also equal-power at the midpoint
	// but with a steeper onset.
	SquareRoot
	// Linear is the straight amplitude law, -6 dB per leg at the midpoint.
	Linear
)

// Valid reports whether c is a known curve.
func (c Curve) Valid() bool {
	switch c {
	case EqualPower3dB, SquareRoot, Linear:
		return true
	}
	return false
}

// String returns the curve name.
func (c Curve) String() string {
	switch c {
	case EqualPower3dB:
		return "equal-power-3db"
	case SquareRoot:
		return "square-root"
	case Linear:
		return "linear"
	}
	return "unknown"
}

// Gains returns the complementary dry and wet gains at fade position t.
// t is clamped to [0, 1]; t = 0 is fully dry, t = 1 fully wet.
func (c Curve) Gains(t float32) (dry, wet float32) {
	t = core.Clamp(t, 0, 1)

	switch c {
	case SquareRoot:
		return float32(math.Sqrt(float64(1 - t))), float32(math.Sqrt(float64(t)))
	case Linear:
		return 1 - t, t
	default:
		s, cs := math.Sincos(float64(t) * (math.Pi / 2))
		return float32(cs), float32(s)
	}
}

// Gain returns the single-sided fade-in gain at position t (the wet leg of
// Gains). t = 0 is silence, t = 1 full signal.
func (c Curve) Gain(t float32) float32 {
	t = core.Clamp(t, 0, 1)

	switch c {
	case SquareRoot:
		return float32(math.Sqrt(float64(t)))
	case Linear:
		return t
	default:
		return float32(math.Sin(float64(t) * (math.Pi / 2)))
	}
}
