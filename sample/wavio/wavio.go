// Package wavio loads WAV files into sample resources.
//
// Decoded audio lands in a [sample.DeinterleavedF32] with one slice per
// channel, the layout the convolution node consumes directly. Integer PCM
// is scaled to [-1, 1] by the maximum positive value of the source bit
// depth; 8-bit files are recentred first.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/wav"

	"github.com/cwbudde/algo-audiograph/sample"
)

var (
	// ErrNotWAV reports input the decoder does not recognize as WAV.
	ErrNotWAV = errors.New("wavio: not a valid wav file")

	// ErrEmptyFile reports a valid WAV header with no sample data.
	ErrEmptyFile = errors.New("wavio: file contains no samples")
)

// Info describes the decoded source file.
type Info struct {
	SampleRate     int
	SourceChannels int
	SourceBitDepth int
}

type config struct {
	maxChannels int
	normalize   bool
	targetPeak  float64
}

// Option configures loading.
type Option func(*config) error

// WithMaxChannels keeps only the first n channels of the file, folding a
// multichannel recording down to the capacity of the consumer.
func WithMaxChannels(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("wavio: max channels must be positive, got %d", n)
		}
		c.maxChannels = n
		return nil
	}
}

// WithNormalize scales the decoded resource so its peak absolute sample
// equals targetPeak. All channels share one gain, preserving inter-channel
// balance.
func WithNormalize(targetPeak float64) Option {
	return func(c *config) error {
		if targetPeak <= 0 || math.IsInf(targetPeak, 1) || math.IsNaN(targetPeak) {
			return fmt.Errorf("wavio: target peak must be positive and finite, got %g", targetPeak)
		}
		c.normalize = true
		c.targetPeak = targetPeak
		return nil
	}
}

// LoadFile decodes the WAV file at path. See Load.
func LoadFile(path string, opts ...Option) (*sample.DeinterleavedF32, Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Info{}, err
	}
	defer f.Close()

	return Load(f, opts...)
}

// Load decodes a WAV stream into a per-channel float32 resource plus the
// source format metadata.
func Load(r io.ReadSeeker, opts ...Option) (*sample.DeinterleavedF32, Info, error) {
	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, Info{}, err
		}
	}

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, Info{}, ErrNotWAV
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, Info{}, fmt.Errorf("wavio: decode: %w", err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, Info{}, ErrNotWAV
	}
	if len(buf.Data) == 0 {
		return nil, Info{}, ErrEmptyFile
	}

	bits := buf.SourceBitDepth
	if bits == 0 {
		bits = int(dec.BitDepth)
	}

	info := Info{
		SampleRate:     buf.Format.SampleRate,
		SourceChannels: buf.Format.NumChannels,
		SourceBitDepth: bits,
	}

	keep := info.SourceChannels
	if cfg.maxChannels > 0 && keep > cfg.maxChannels {
		keep = cfg.maxChannels
	}

	offset, scale := pcmScale(bits)
	frames := len(buf.Data) / info.SourceChannels

	channels := make([][]float32, keep)
	for ch := range channels {
		dst := make([]float32, frames)
		for i := range frames {
			dst[i] = float32(buf.Data[i*info.SourceChannels+ch]+float32(offset)) * scale
		}
		channels[ch] = dst
	}

	if cfg.normalize {
		normalizeChannels(channels, cfg.targetPeak)
	}

	res, err := sample.NewDeinterleavedF32(channels)
	if err != nil {
		return nil, Info{}, err
	}

	return res, info, nil
}

// pcmScale returns the additive offset and multiplicative scale taking a
// decoded integer sample to [-1, 1]. 8-bit WAV stores unsigned samples.
func pcmScale(bitDepth int) (offset int, scale float32) {
	switch bitDepth {
	case 8:
		return -128, 1.0 / 127.0
	case 24:
		return 0, 1.0 / 8388607.0
	case 32:
		return 0, 1.0 / 2147483647.0
	default:
		return 0, 1.0 / 32767.0
	}
}

// normalizeChannels applies one shared gain so the loudest sample across
// all channels lands at targetPeak. Silence is left untouched.
func normalizeChannels(channels [][]float32, targetPeak float64) {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return
	}

	scratch := make([]float64, len(channels[0]))

	var peak float64
	for _, ch := range channels {
		for i, s := range ch {
			scratch[i] = float64(s)
		}
		peak = math.Max(peak, vecmath.MaxAbs(scratch))
	}

	if peak == 0 {
		return
	}

	gain := targetPeak / peak
	for _, ch := range channels {
		for i, s := range ch {
			scratch[i] = float64(s)
		}
		vecmath.ScaleBlockInPlace(scratch, gain)
		for i, s := range scratch {
			ch[i] = float32(s)
		}
	}
}
