package sample

import "fmt"

// DeinterleavedI16 is a Resource over per-channel signed 16-bit PCM slices.
type DeinterleavedI16 struct {
	channels [][]int16
}

// NewDeinterleavedI16 wraps one slice per channel. All channels must have
// the same length.
func NewDeinterleavedI16(channels [][]int16) (*DeinterleavedI16, error) {
	if err := checkDeinterleaved(channels); err != nil {
		return nil, err
	}

	return &DeinterleavedI16{channels: channels}, nil
}

// Channels returns the number of channels.
func (r *DeinterleavedI16) Channels() int { return len(r.channels) }

// Frames returns the length in single-channel frames.
func (r *DeinterleavedI16) Frames() uint64 { return uint64(len(r.channels[0])) }

// Fill writes converted samples into buffers[ch][from:to] starting at
// source frame startFrame.
func (r *DeinterleavedI16) Fill(buffers [][]float32, from, to int, startFrame uint64) {
	FillDeinterleaved(buffers, from, to, startFrame, r.channels, PCMI16ToF32)
}

// DeinterleavedU16 is a Resource over per-channel unsigned 16-bit PCM slices.
type DeinterleavedU16 struct {
	channels [][]uint16
}

// NewDeinterleavedU16 wraps one slice per channel. All channels must have
// the same length.
func NewDeinterleavedU16(channels [][]uint16) (*DeinterleavedU16, error) {
	if err := checkDeinterleaved(channels); err != nil {
		return nil, err
	}

	return &DeinterleavedU16{channels: channels}, nil
}

// Channels returns the number of channels.
func (r *DeinterleavedU16) Channels() int { return len(r.channels) }

// Frames returns the length in single-channel frames.
func (r *DeinterleavedU16) Frames() uint64 { return uint64(len(r.channels[0])) }

// Fill writes converted samples into buffers[ch][from:to] starting at
// source frame startFrame.
func (r *DeinterleavedU16) Fill(buffers [][]float32, from, to int, startFrame uint64) {
	FillDeinterleaved(buffers, from, to, startFrame, r.channels, PCMU16ToF32)
}

// DeinterleavedF32 is a Resource over per-channel float32 slices. It also
// implements ResourceF32: channel data is served without copying, which is
// the form impulse-response loading consumes.
type DeinterleavedF32 struct {
	channels [][]float32
}

// NewDeinterleavedF32 wraps one slice per channel without copying. All
// channels must have the same length.
func NewDeinterleavedF32(channels [][]float32) (*DeinterleavedF32, error) {
	if err := checkDeinterleaved(channels); err != nil {
		return nil, err
	}

	return &DeinterleavedF32{channels: channels}, nil
}

// Channels returns the number of channels.
func (r *DeinterleavedF32) Channels() int { return len(r.channels) }

// Frames returns the length in single-channel frames.
func (r *DeinterleavedF32) Frames() uint64 { return uint64(len(r.channels[0])) }

// Fill writes samples into buffers[ch][from:to] starting at source frame
// startFrame. Float data copies through unchanged.
func (r *DeinterleavedF32) Fill(buffers [][]float32, from, to int, startFrame uint64) {
	start := int(startFrame)
	frames := to - from

	for ch := range min(len(r.channels), len(buffers)) {
		copy(buffers[ch][from:to], r.channels[ch][start:start+frames])
	}
}

// Channel returns the full sample slice of one channel, or nil if ch is out
// of range. The slice is shared, not copied; callers must not modify it.
func (r *DeinterleavedF32) Channel(ch int) []float32 {
	if ch < 0 || ch >= len(r.channels) {
		return nil
	}

	return r.channels[ch]
}

func checkDeinterleaved[T any](channels [][]T) error {
	if len(channels) == 0 {
		return ErrNoChannels
	}

	want := len(channels[0])
	for i, ch := range channels[1:] {
		if len(ch) != want {
			return fmt.Errorf("%w: channel 0 has %d frames, channel %d has %d", ErrRaggedChannels, want, i+1, len(ch))
		}
	}

	return nil
}
