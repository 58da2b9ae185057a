// Package mix implements latency-aware wet/dry mixing for effect nodes.
// The Engine holds complementary dry and wet gains derived from a Mix
// ratio through a fade curve; both gains move through per-sample smoothers
// so ratio or curve changes never step the output.
package mix

import (
	"fmt"

	"github.com/cwbudde/algo-audiograph/dsp/core"
	"github.com/cwbudde/algo-audiograph/dsp/fade"
	"github.com/cwbudde/algo-audiograph/param"
)

// Mix is the wet fraction of the output in [0, 1].
type Mix float32

const (
	// Dry passes only the unprocessed signal.
	Dry Mix = 0
	// Center blends both legs at the curve's midpoint.
	Center Mix = 0.5
	// Wet passes only the processed signal.
	Wet Mix = 1
)

// Clamped returns the mix limited to [0, 1].
func (m Mix) Clamped() Mix {
	return core.Clamp(m, Dry, Wet)
}

// Engine mixes the dry signal into a wet buffer in place. Construct one
// per node; its smoothers carry state across blocks.
type Engine struct {
	mix   Mix
	curve fade.Curve
	dry   *param.Smoother
	wet   *param.Smoother
}

// NewEngine returns an engine settled at the given mix and curve. Invalid
// curves fall back to fade.EqualPower3dB. A non-positive sample rate is a
// configuration mistake and panics.
func NewEngine(m Mix, curve fade.Curve, sampleRate float64) *Engine {
	if !curve.Valid() {
		curve = fade.EqualPower3dB
	}
	m = m.Clamped()

	dryGain, wetGain := curve.Gains(float32(m))
	dry, err := param.NewSmoother(dryGain, sampleRate)
	if err != nil {
		panic(fmt.Sprintf("mix: %v", err))
	}
	wet, err := param.NewSmoother(wetGain, sampleRate)
	if err != nil {
		panic(fmt.Sprintf("mix: %v", err))
	}

	return &Engine{mix: m, curve: curve, dry: dry, wet: wet}
}

// SetMix retargets the gains for a new ratio and curve. The change ramps
// in over the smoothing time starting with the next processed frame.
// Invalid curves fall back to fade.EqualPower3dB; the ratio is clamped.
func (e *Engine) SetMix(m Mix, curve fade.Curve) {
	if !curve.Valid() {
		curve = fade.EqualPower3dB
	}
	e.mix = m.Clamped()
	e.curve = curve

	dryGain, wetGain := curve.Gains(float32(e.mix))
	e.dry.SetValue(dryGain)
	e.wet.SetValue(wetGain)
}

// Mix returns the current ratio.
func (e *Engine) Mix() Mix {
	return e.mix
}

// Curve returns the current fade curve.
func (e *Engine) Curve() fade.Curve {
	return e.curve
}

// MixDryIntoWetMono overwrites wet[:frames] with the gained sum of both
// legs: wet*wetGain + dry*dryGain.
func (e *Engine) MixDryIntoWetMono(dry, wet []float32, frames int) {
	for i := 0; i < frames; i++ {
		dg := e.dry.Next()
		wg := e.wet.Next()
		wet[i] = wet[i]*wg + dry[i]*dg
	}
}

// MixDryIntoWetStereo is MixDryIntoWetMono for a channel pair; both
// channels see identical gain ramps.
func (e *Engine) MixDryIntoWetStereo(dryL, dryR, wetL, wetR []float32, frames int) {
	for i := 0; i < frames; i++ {
		dg := e.dry.Next()
		wg := e.wet.Next()
		wetL[i] = wetL[i]*wg + dryL[i]*dg
		wetR[i] = wetR[i]*wg + dryR[i]*dg
	}
}

// Reset settles any in-flight gain ramps at their targets.
func (e *Engine) Reset() {
	e.dry.Reset(e.dry.Target())
	e.wet.Reset(e.wet.Target())
}
