package declick

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiograph/dsp/core"
)

// DefaultSwapFadeSeconds is the Lowpass opening time used for source
// swaps.
const DefaultSwapFadeSeconds = 0.2

// startCutoffHz is where the lowpass begins when a fade starts; low
// enough that the first frames are effectively silent.
const startCutoffHz = 20.0

// Lowpass masks the transient of replacing a signal source mid-stream. It
// runs one one-pole lowpass per channel and opens the filter from a
// near-DC cutoff to all-pass over the fade time, so the output rises from
// silence to the full-bandwidth signal instead of splicing abruptly. Once
// fully open it costs nothing per block.
type Lowpass struct {
	state      []float32
	startCoef  float32
	rampFrames int
	frame      int
	active     bool
}

// NewLowpass returns an inactive (fully open) declicker for the given
// channel count. Non-positive sample rate, fade time, or channel count is
// a configuration mistake and panics.
func NewLowpass(sampleRate, fadeSeconds float64, channels int) *Lowpass {
	if sampleRate <= 0 {
		panic(fmt.Sprintf("declick: sample rate must be positive: %f", sampleRate))
	}
	if fadeSeconds <= 0 {
		panic(fmt.Sprintf("declick: fade seconds must be positive: %f", fadeSeconds))
	}
	if channels < 1 {
		panic(fmt.Sprintf("declick: channel count must be at least 1: %d", channels))
	}

	rampFrames := int(fadeSeconds*sampleRate + 0.5)
	if rampFrames < 1 {
		rampFrames = 1
	}

	return &Lowpass{
		state:      make([]float32, channels),
		startCoef:  float32(1 - math.Exp(-2*math.Pi*startCutoffHz/sampleRate)),
		rampFrames: rampFrames,
	}
}

// Begin restarts the fade: filter state clears so the output dips to
// silence and then opens back up over the fade time. Call it at the block
// in which the source was swapped.
func (l *Lowpass) Begin() {
	for i := range l.state {
		l.state[i] = 0
	}
	l.frame = 0
	l.active = true
}

// Active reports whether a fade is still in progress.
func (l *Lowpass) Active() bool {
	return l.active
}

// Process filters buffers[ch][from:to] in place. Inactive declickers
// return immediately, so it is safe to call every block.
func (l *Lowpass) Process(buffers [][]float32, from, to int) {
	if !l.active {
		return
	}

	channels := len(buffers)
	if channels > len(l.state) {
		channels = len(l.state)
	}

	span := 1 - l.startCoef
	for i := from; i < to; i++ {
		u := float32(l.frame) / float32(l.rampFrames)
		if u > 1 {
			u = 1
		}
		coef := l.startCoef + span*u

		for ch := 0; ch < channels; ch++ {
			st := l.state[ch] + coef*(buffers[ch][i]-l.state[ch])
			st = core.FlushDenormals(st)
			l.state[ch] = st
			buffers[ch][i] = st
		}
		l.frame++
	}

	if l.frame >= l.rampFrames {
		l.active = false
	}
}
