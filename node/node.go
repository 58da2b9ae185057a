// Package node defines the contract between the audio-graph engine and
// the processors it renders: the stream description handed to processor
// factories, the per-block call context, and the status a processor
// reports back. The engine itself (topology, scheduling, device I/O) lives
// outside this module; nodes hold no references back into it.
package node

import (
	"fmt"

	"github.com/cwbudde/algo-audiograph/dsp/declick"
)

// StreamInfo describes the stream a node is instantiated into. It is
// fixed for the lifetime of the processor; a stream reconfiguration
// rebuilds processors.
type StreamInfo struct {
	// SampleRate in Hz.
	SampleRate float64
	// MaxBlockFrames is the largest frame count any Process call will
	// carry. Processors allocate all state against it up front.
	MaxBlockFrames int
}

// Validate reports whether the stream description is usable.
func (s StreamInfo) Validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("node: sample rate must be positive: %f", s.SampleRate)
	}
	if s.MaxBlockFrames < 1 {
		return fmt.Errorf("node: max block frames must be at least 1: %d", s.MaxBlockFrames)
	}
	return nil
}

// ProcInfo carries the per-block context of one Process call.
type ProcInfo struct {
	// Frames in this block; at most StreamInfo.MaxBlockFrames.
	Frames int
	// Declick is the ambient fade ramp shared across the graph.
	Declick *declick.Values
}

// ProcessStatus is the outcome a processor reports for one block.
type ProcessStatus int

const (
	// StatusSilence: every output sample is (effectively) zero; downstream
	// consumers may skip the block.
	StatusSilence ProcessStatus = iota
	// StatusBypass: outputs carry the inputs unmodified.
	StatusBypass
	// StatusAudio: outputs carry processed, non-silent audio.
	StatusAudio
)

// String returns the status name.
func (s ProcessStatus) String() string {
	switch s {
	case StatusSilence:
		return "silence"
	case StatusBypass:
		return "bypass"
	case StatusAudio:
		return "audio"
	}
	return "unknown"
}

// SilenceEpsilon is the magnitude below which a sample counts as silent
// (float32 machine epsilon).
const SilenceEpsilon = 0x1p-23

// IsSilent reports whether the first frames samples of every buffer are
// within SilenceEpsilon of zero. Processors use it to downgrade their
// status to StatusSilence so silent tails propagate cheaply.
func IsSilent(buffers [][]float32, frames int) bool {
	for _, buf := range buffers {
		for _, v := range buf[:frames] {
			if v > SilenceEpsilon || v < -SilenceEpsilon {
				return false
			}
		}
	}
	return true
}
