package sample

import (
	"github.com/go-audio/audio"
)

// FromIntBuffer adapts a go-audio PCM buffer holding signed 16-bit data
// into a Resource. Sample values outside the int16 range are truncated;
// callers with deeper sources should convert to float first and use
// FromFloat32Buffer.
func FromIntBuffer(buf *audio.IntBuffer) (Resource, error) {
	if buf == nil || buf.Format == nil {
		return nil, ErrNilBuffer
	}

	data := make([]int16, len(buf.Data))
	for i, s := range buf.Data {
		data[i] = int16(s)
	}

	return NewInterleavedI16(data, buf.Format.NumChannels)
}

// FromFloat32Buffer adapts a go-audio float buffer into a Resource without
// copying the sample data.
func FromFloat32Buffer(buf *audio.Float32Buffer) (Resource, error) {
	if buf == nil || buf.Format == nil {
		return nil, ErrNilBuffer
	}

	return NewInterleavedF32(buf.Data, buf.Format.NumChannels)
}
