package ir

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audiograph/sample"
)

// ChannelSamples copies one channel of a loaded resource into float64
// samples for analysis. It rejects missing channels, empty channels and
// all-zero channels, since no decay metric is defined for them.
func ChannelSamples(res sample.ResourceF32, channel int) ([]float64, error) {
	if res == nil {
		return nil, ErrEmptyIR
	}

	data := res.Channel(channel)
	if data == nil {
		return nil, fmt.Errorf("%w: %d of %d", ErrNoChannel, channel, res.Channels())
	}
	if len(data) == 0 {
		return nil, ErrEmptyIR
	}

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}

	if vecmath.MaxAbs(out) == 0 {
		return nil, ErrSilentIR
	}

	return out, nil
}

// AnalyzeResource computes all IR metrics from one channel of a loaded
// resource.
func (a *Analyzer) AnalyzeResource(res sample.ResourceF32, channel int) (Metrics, error) {
	data, err := ChannelSamples(res, channel)
	if err != nil {
		return Metrics{}, err
	}

	return a.Analyze(data)
}
