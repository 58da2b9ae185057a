package sample

import "fmt"

// InterleavedI16 is a Resource over frame-major signed 16-bit PCM.
type InterleavedI16 struct {
	data     []int16
	channels int
}

// NewInterleavedI16 wraps interleaved signed 16-bit data. The data length
// must be a multiple of channels.
func NewInterleavedI16(data []int16, channels int) (*InterleavedI16, error) {
	if err := checkInterleaved(len(data), channels); err != nil {
		return nil, err
	}

	return &InterleavedI16{data: data, channels: channels}, nil
}

// Channels returns the number of channels.
func (r *InterleavedI16) Channels() int { return r.channels }

// Frames returns the length in single-channel frames.
func (r *InterleavedI16) Frames() uint64 { return uint64(len(r.data) / r.channels) }

// Fill writes converted samples into buffers[ch][from:to] starting at
// source frame startFrame.
func (r *InterleavedI16) Fill(buffers [][]float32, from, to int, startFrame uint64) {
	FillInterleaved(buffers, from, to, startFrame, r.channels, r.data, PCMI16ToF32)
}

// InterleavedU16 is a Resource over frame-major unsigned 16-bit PCM.
type InterleavedU16 struct {
	data     []uint16
	channels int
}

// NewInterleavedU16 wraps interleaved unsigned 16-bit data. The data length
// must be a multiple of channels.
func NewInterleavedU16(data []uint16, channels int) (*InterleavedU16, error) {
	if err := checkInterleaved(len(data), channels); err != nil {
		return nil, err
	}

	return &InterleavedU16{data: data, channels: channels}, nil
}

// Channels returns the number of channels.
func (r *InterleavedU16) Channels() int { return r.channels }

// Frames returns the length in single-channel frames.
func (r *InterleavedU16) Frames() uint64 { return uint64(len(r.data) / r.channels) }

// Fill writes converted samples into buffers[ch][from:to] starting at
// source frame startFrame.
func (r *InterleavedU16) Fill(buffers [][]float32, from, to int, startFrame uint64) {
	FillInterleaved(buffers, from, to, startFrame, r.channels, r.data, PCMU16ToF32)
}

// InterleavedF32 is a Resource over frame-major float32 samples.
type InterleavedF32 struct {
	data     []float32
	channels int
}

// NewInterleavedF32 wraps interleaved float32 data without copying. The
// data length must be a multiple of channels.
func NewInterleavedF32(data []float32, channels int) (*InterleavedF32, error) {
	if err := checkInterleaved(len(data), channels); err != nil {
		return nil, err
	}

	return &InterleavedF32{data: data, channels: channels}, nil
}

// Channels returns the number of channels.
func (r *InterleavedF32) Channels() int { return r.channels }

// Frames returns the length in single-channel frames.
func (r *InterleavedF32) Frames() uint64 { return uint64(len(r.data) / r.channels) }

// Fill writes samples into buffers[ch][from:to] starting at source frame
// startFrame. Float data copies through unchanged.
func (r *InterleavedF32) Fill(buffers [][]float32, from, to int, startFrame uint64) {
	FillInterleaved(buffers, from, to, startFrame, r.channels, r.data, func(s float32) float32 { return s })
}

func checkInterleaved(dataLen, channels int) error {
	if channels < 1 {
		return ErrNoChannels
	}

	if dataLen%channels != 0 {
		return fmt.Errorf("%w: %d samples across %d channels", ErrPartialFrame, dataLen, channels)
	}

	return nil
}
