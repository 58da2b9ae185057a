package convolution

import (
	"fmt"

	"github.com/cwbudde/algo-audiograph/dsp/buffer"
	"github.com/cwbudde/algo-audiograph/dsp/conv"
	"github.com/cwbudde/algo-audiograph/dsp/declick"
	"github.com/cwbudde/algo-audiograph/dsp/fade"
	"github.com/cwbudde/algo-audiograph/dsp/mix"
	"github.com/cwbudde/algo-audiograph/node"
	"github.com/cwbudde/algo-audiograph/param"
)

// Processor is the render-side state of a convolution node. It is owned by
// the audio thread; the only cross-thread input is the drained patch batch
// handed to Process. All state is allocated by NewProcessor — the
// steady-state render path performs no allocation. The one exception is an
// impulse-response patch, which rebuilds the convolvers while it is
// applied, exactly as swapping the underlying engine requires.
type Processor struct {
	params Params
	cfg    Config

	// convolvers holds one engine slot per channel plane; slots stay nil
	// until an impulse response is loaded.
	convolvers    []*conv.Partitioned32
	minBlockOrder int

	mix         *mix.Engine
	wetGain     *param.Smoother
	wetGainRamp []float32
	dryDelay    *buffer.Channels
	declick     *declick.Declicker
	irDeclick   *declick.Lowpass
}

// NewProcessor builds the processor for params under the given fixed
// configuration and stream. Unsupported channel counts and invalid stream
// descriptions are fatal configuration errors and panic. If params carry
// an impulse response the convolvers are built immediately.
func NewProcessor(params Params, cfg Config, stream node.StreamInfo) *Processor {
	if cfg.Channels < 1 || cfg.Channels > 2 {
		panic(fmt.Sprintf("convolution: channel count must be 1 or 2, got %d", cfg.Channels))
	}
	if cfg.MaxImpulseChannels < 1 || cfg.MaxImpulseChannels > 2 {
		panic(fmt.Sprintf("convolution: max impulse channels must be 1 or 2, got %d", cfg.MaxImpulseChannels))
	}
	if err := stream.Validate(); err != nil {
		panic(fmt.Sprintf("convolution: %v", err))
	}

	slots := cfg.Channels
	if cfg.MaxImpulseChannels > slots {
		slots = cfg.MaxImpulseChannels
	}

	wetGain, err := param.NewSmoother(params.WetGain.Amp(), stream.SampleRate)
	if err != nil {
		panic(fmt.Sprintf("convolution: %v", err))
	}

	p := &Processor{
		params:        params,
		cfg:           cfg,
		convolvers:    make([]*conv.Partitioned32, slots),
		minBlockOrder: blockOrder(stream.MaxBlockFrames),
		mix:           mix.NewEngine(params.Mix, params.FadeCurve, stream.SampleRate),
		wetGain:       wetGain,
		wetGainRamp:   make([]float32, stream.MaxBlockFrames),
		dryDelay:      buffer.NewChannels(cfg.Channels, stream.MaxBlockFrames),
		declick:       declick.NewDeclicker(),
		irDeclick:     declick.NewLowpass(stream.SampleRate, declick.DefaultSwapFadeSeconds, cfg.Channels),
	}

	if params.ImpulseResponse != nil {
		p.rebuildConvolvers()
	}

	return p
}

// Params returns the processor's mirrored parameter record as of the last
// Process call.
func (p *Processor) Params() Params {
	return p.params
}

// Latency returns the node's output delay in frames relative to its input:
// the convolvers' algorithmic latency, which the internal dry delay is
// matched to.
func (p *Processor) Latency() int {
	return 1 << p.minBlockOrder
}

// Process renders one block: inputs and outputs carry exactly the
// configured channel count of frame buffers and must not alias; patches is
// the batch drained from the node's queue, in arrival order.
//
// Patches apply first. Mix, fade-curve, and wet-gain changes retarget
// their smoothers immediately. An impulse-response change stores the
// reference and rebuilds one convolver per channel: each takes its
// matching resource channel, falling back to channel 0 when the resource
// has fewer channels than the node. Resuming unpauses immediately; pausing
// is deferred until this block has rendered, so an audible tail fades
// instead of truncating. Both directions drive the declick fade opposite
// to the requested pause state.
//
// A paused processor clears the outputs and reports StatusSilence without
// advancing any state. Without an impulse response the inputs pass through
// unmodified as StatusBypass. Otherwise each channel is convolved into its
// output, scaled by the smoothed wet gain, and the previous block's input
// (held in the internal delay) is mixed in as the aligned dry signal; the
// declick fades run over the result, and the final output is scanned so
// silent tails report StatusSilence.
func (p *Processor) Process(inputs, outputs [][]float32, patches []Patch, info node.ProcInfo) node.ProcessStatus {
	willPause := false
	irChanged := false

	for _, patch := range patches {
		switch patch.Kind {
		case PatchPaused:
			if patch.Paused {
				willPause = true
			} else {
				p.params.Paused = false
			}
			p.declick.FadeToEnabled(!patch.Paused, info.Declick)
		case PatchMix:
			p.params.Mix = patch.Mix
			p.mix.SetMix(patch.Mix, p.params.FadeCurve)
		case PatchFadeCurve:
			p.params.FadeCurve = patch.FadeCurve
			p.mix.SetMix(p.params.Mix, patch.FadeCurve)
		case PatchImpulseResponse:
			p.params.ImpulseResponse = patch.ImpulseResponse
			irChanged = true
			p.rebuildConvolvers()
		case PatchWetGain:
			p.params.WetGain = patch.WetGain
			p.wetGain.SetValue(patch.WetGain.Amp())
		}
	}

	frames := info.Frames

	if p.params.Paused {
		for _, out := range outputs {
			clear(out[:frames])
		}
		return node.StatusSilence
	}

	if p.params.ImpulseResponse == nil {
		for ch, out := range outputs {
			copy(out[:frames], inputs[ch][:frames])
		}
		return node.StatusBypass
	}

	ramp := p.wetGainRamp[:frames]
	p.wetGain.ProcessIntoBuffer(ramp)

	for ch := range inputs {
		// Cannot fail: input and output spans are both frames long.
		_ = p.convolvers[ch].ProcessBlock(inputs[ch][:frames], outputs[ch][:frames])

		out := outputs[ch]
		for i, g := range ramp {
			out[i] *= g
		}
	}

	// The convolver output corresponds to input consumed one block ago, so
	// the dry leg comes from the delay buffer filled last block.
	switch p.cfg.Channels {
	case 1:
		p.mix.MixDryIntoWetMono(p.dryDelay.Channel(0), outputs[0], frames)
	default:
		p.mix.MixDryIntoWetStereo(p.dryDelay.Channel(0), p.dryDelay.Channel(1), outputs[0], outputs[1], frames)
	}
	p.dryDelay.CopyFrom(inputs, frames)

	p.declick.Process(outputs, 0, frames, info.Declick, 1, fade.EqualPower3dB)

	if irChanged {
		p.irDeclick.Begin()
	}
	p.irDeclick.Process(outputs, 0, frames)

	if willPause {
		p.params.Paused = true
	}

	if node.IsSilent(outputs, frames) {
		return node.StatusSilence
	}
	return node.StatusAudio
}

// rebuildConvolvers builds one engine per node channel from the current
// impulse response. Channels the resource lacks fall back to its channel
// 0; resource channels beyond the configured impulse-channel cap are
// dropped. An unusable impulse response (no samples) is a fatal
// configuration error.
func (p *Processor) rebuildConvolvers() {
	ir := p.params.ImpulseResponse
	if ir == nil {
		return
	}

	for ch := range p.cfg.Channels {
		irCh := ch
		if irCh >= p.cfg.MaxImpulseChannels {
			irCh = p.cfg.MaxImpulseChannels - 1
		}

		kernel := ir.Channel(irCh)
		if kernel == nil {
			kernel = ir.Channel(0)
		}

		eng, err := conv.NewPartitioned32(kernel, p.minBlockOrder)
		if err != nil {
			panic(fmt.Sprintf("convolution: impulse response rejected: %v", err))
		}
		p.convolvers[ch] = eng
	}
}

// blockOrder returns the smallest power-of-two exponent covering
// maxBlockFrames, with a floor of 1.
func blockOrder(maxBlockFrames int) int {
	order := 1
	for 1<<order < maxBlockFrames {
		order++
	}
	return order
}
