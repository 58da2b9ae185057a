// Package declick provides short fades that remove audible discontinuities
// when a signal source is muted, unmuted, or replaced mid-stream.
//
// Declicker is the general boolean-gated fade used for pause and resume.
// Lowpass is a slower, dedicated fade that masks the transient introduced
// by swapping an underlying sound source such as an impulse response.
// Values is the ambient per-sample ramp table shared by every node in a
// graph; the engine constructs it once per stream and passes it to
// processors with each block.
package declick

import "github.com/cwbudde/algo-audiograph/dsp/fade"

// Declicker applies a boolean-gated fade between silence and the full
// signal. A new Declicker is settled enabled (unity passthrough). Fading
// toward the opposite state advances one ramp step per frame; reversing
// mid-fade continues from the current position, so rapid toggles stay
// smooth.
type Declicker struct {
	target bool
	// pos is the ramp cursor in [0, Values.Len()]; settledPos means the
	// fade has fully reached target.
	pos int
}

const settledPos = -1

// NewDeclicker returns a declicker settled in the enabled state.
func NewDeclicker() *Declicker {
	return &Declicker{target: true, pos: settledPos}
}

// FadeToEnabled sets the fade target. If the target changes, a fade
// starts (or reverses) from the current ramp position.
func (d *Declicker) FadeToEnabled(enabled bool, values *Values) {
	if d.target == enabled {
		return
	}

	if d.pos == settledPos {
		if d.target {
			d.pos = values.Len()
		} else {
			d.pos = 0
		}
	}
	d.target = enabled
}

// SettledEnabled reports whether the declicker has fully faded in.
func (d *Declicker) SettledEnabled() bool {
	return d.target && d.pos == settledPos
}

// SettledDisabled reports whether the declicker has fully faded out.
func (d *Declicker) SettledDisabled() bool {
	return !d.target && d.pos == settledPos
}

// Fading reports whether a fade is in progress.
func (d *Declicker) Fading() bool {
	return d.pos != settledPos
}

// Reset settles the declicker immediately in the given state.
func (d *Declicker) Reset(enabled bool) {
	d.target = enabled
	d.pos = settledPos
}

// Process multiplies buffers[ch][from:to] by the fade envelope. depth is
// the gain of the fully enabled state (normally 1); curve shapes the
// ramp. Settled disabled zeroes the range; settled enabled at depth 1
// leaves it untouched.
func (d *Declicker) Process(buffers [][]float32, from, to int, values *Values, depth float32, curve fade.Curve) {
	if d.pos == settledPos {
		if !d.target {
			for _, buf := range buffers {
				for i := from; i < to; i++ {
					buf[i] = 0
				}
			}
			return
		}
		if depth != 1 {
			for _, buf := range buffers {
				for i := from; i < to; i++ {
					buf[i] *= depth
				}
			}
		}
		return
	}

	n := values.Len()
	for i := from; i < to; i++ {
		if d.target {
			if d.pos < n {
				d.pos++
			}
		} else {
			if d.pos > 0 {
				d.pos--
			}
		}

		gain := curve.Gain(values.At(d.pos-1)) * depth
		for _, buf := range buffers {
			buf[i] *= gain
		}
	}

	if (d.target && d.pos >= n) || (!d.target && d.pos <= 0) {
		d.pos = settledPos
	}
}
