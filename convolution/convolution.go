// Package convolution implements an effect node that convolves its input
// with a loaded impulse response, commonly used for reverb.
//
// The node follows the control/render split of the parameter protocol: the
// control side owns a Params record and publishes changes as Patch values
// through a param.Handle; the render-side Processor drains the patches at
// the start of each block and applies them to its mirrored record and
// engines. The wet path runs one low-latency partitioned convolver per
// channel; the dry path is delayed by one block inside the processor so
// both legs stay time-aligned when mixed.
package convolution

import (
	"github.com/cwbudde/algo-audiograph/dsp/fade"
	"github.com/cwbudde/algo-audiograph/dsp/mix"
	"github.com/cwbudde/algo-audiograph/param"
	"github.com/cwbudde/algo-audiograph/sample"
)

// Params is the node's parameter record. Field order is patch order.
type Params struct {
	// Paused freezes the node: outputs clear to silence and no internal
	// state advances, so a convolved tail resumes where it left off.
	// Pausing takes effect at the end of the block in which the patch
	// arrives; resuming takes effect immediately.
	Paused bool
	// Mix is the wet/dry ratio.
	Mix mix.Mix
	// FadeCurve shapes the wet/dry crossfade.
	FadeCurve fade.Curve
	// ImpulseResponse is a shared read-only resource with raw per-channel
	// float access. Nil bypasses the node.
	ImpulseResponse sample.ResourceF32
	// WetGain attenuates the convolved signal. Defaults to -20 dB: the wet
	// signal is typically much louder than the dry input and overwhelms
	// the mix near unity.
	WetGain param.Volume
}

// DefaultParams returns the record a fresh node starts from: unpaused,
// centered mix, equal-power curve, no impulse response, wet gain -20 dB.
func DefaultParams() Params {
	return Params{
		Mix:       mix.Center,
		FadeCurve: fade.EqualPower3dB,
		WetGain:   param.Decibels(-20),
	}
}

// Equal reports whether two records carry identical values. The impulse
// response compares by reference identity, as Diff does.
func (p Params) Equal(other Params) bool {
	return p == other
}

// Diff returns one patch per field that differs from prev, in field
// declaration order. The impulse response compares by reference identity:
// resources are shared read-only values, so two separate loads of the same
// file are distinct parameters.
func (p Params) Diff(prev Params) []Patch {
	var patches []Patch

	if p.Paused != prev.Paused {
		patches = append(patches, Patch{Kind: PatchPaused, Paused: p.Paused})
	}
	if p.Mix != prev.Mix {
		patches = append(patches, Patch{Kind: PatchMix, Mix: p.Mix})
	}
	if p.FadeCurve != prev.FadeCurve {
		patches = append(patches, Patch{Kind: PatchFadeCurve, FadeCurve: p.FadeCurve})
	}
	if p.ImpulseResponse != prev.ImpulseResponse {
		patches = append(patches, Patch{Kind: PatchImpulseResponse, ImpulseResponse: p.ImpulseResponse})
	}
	if p.WetGain != prev.WetGain {
		patches = append(patches, Patch{Kind: PatchWetGain, WetGain: p.WetGain})
	}

	return patches
}

var _ param.Diffable[Params, Patch] = Params{}

// PatchKind names the parameter field a Patch carries.
type PatchKind int

const (
	PatchPaused PatchKind = iota
	PatchMix
	PatchFadeCurve
	PatchImpulseResponse
	PatchWetGain
)

// String returns the patched field's name.
func (k PatchKind) String() string {
	switch k {
	case PatchPaused:
		return "paused"
	case PatchMix:
		return "mix"
	case PatchFadeCurve:
		return "fade-curve"
	case PatchImpulseResponse:
		return "impulse-response"
	case PatchWetGain:
		return "wet-gain"
	}
	return "unknown"
}

// Patch carries the new value of one changed parameter field. Kind selects
// which payload field is meaningful.
type Patch struct {
	Kind            PatchKind
	Paused          bool
	Mix             mix.Mix
	FadeCurve       fade.Curve
	ImpulseResponse sample.ResourceF32
	WetGain         param.Volume
}

// Config fixes the processor's channel layout at node-creation time.
type Config struct {
	// Channels is the node's input and output channel count; 1 or 2.
	Channels int
	// MaxImpulseChannels caps how many distinct impulse-response channels
	// feed convolvers; 1 or 2. Resource channels beyond the cap are
	// dropped.
	MaxImpulseChannels int
}

// DefaultConfig returns the stereo configuration.
func DefaultConfig() Config {
	return Config{Channels: 2, MaxImpulseChannels: 2}
}
