package sample

import "errors"

// Package-level errors.
var (
	ErrNoChannels     = errors.New("sample: resource must have at least one channel")
	ErrPartialFrame   = errors.New("sample: data length not a multiple of channel count")
	ErrRaggedChannels = errors.New("sample: channels have differing lengths")
	ErrNilBuffer      = errors.New("sample: nil buffer")
)

// Resource is a read-only source of multichannel audio.
//
// Fill writes converted samples into buffers[ch][from:to] for each channel
// the resource has, starting at source frame startFrame. Destination
// buffers beyond the resource's channel count are left untouched; resource
// channels beyond len(buffers) are skipped.
//
// Callers must guarantee startFrame + uint64(to-from) <= Frames(). Violating
// the precondition is a programmer error and fails fatally; Fill performs no
// recovery on the audio path.
type Resource interface {
	// Channels returns the number of channels, always >= 1.
	Channels() int

	// Frames returns the length in single-channel frames.
	Frames() uint64

	// Fill writes converted samples into buffers[ch][from:to] starting at
	// source frame startFrame.
	Fill(buffers [][]float32, from, to int, startFrame uint64)
}

// ResourceF32 is a Resource that additionally grants no-copy access to raw
// float32 channel data. Impulse-response loading requires it.
type ResourceF32 interface {
	Resource

	// Channel returns the full sample slice of one channel, or nil if ch
	// is out of range. Callers must not modify the returned slice.
	Channel(ch int) []float32
}
