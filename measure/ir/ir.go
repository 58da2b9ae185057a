package ir

import "errors"

// Errors returned by IR analysis functions.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrSilentIR          = errors.New("ir: impulse response is silent")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrInvalidTime       = errors.New("ir: time must be positive")
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
	ErrNoChannel         = errors.New("ir: no such resource channel")
)

// Metrics holds impulse response analysis results.
type Metrics struct {
	RT60       float64 // reverberation time in seconds (extrapolated from T30 or T20)
	EDT        float64 // early decay time in seconds (0 to -10 dB)
	T20        float64 // RT from -5 to -25 dB slope
	T30        float64 // RT from -5 to -35 dB slope
	C50        float64 // clarity at 50ms in dB
	C80        float64 // clarity at 80ms in dB
	D50        float64 // definition at 50ms (ratio 0-1)
	D80        float64 // definition at 80ms (ratio 0-1)
	CenterTime float64 // energy centroid in seconds
	PeakIndex  int     // sample index of IR peak (absolute maximum)
}

// Analyzer computes IR metrics from impulse response data.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an IR analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// validate rejects analysis input no metric can be computed from.
func (a *Analyzer) validate(ir []float64) error {
	if len(ir) == 0 {
		return ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	return nil
}

// Analyze computes all IR metrics from an impulse response.
// The IR should start near the direct sound arrival.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if err := a.validate(ir); err != nil {
		return Metrics{}, err
	}

	peakIdx := a.findPeak(ir)

	// Compute metrics starting from the peak
	irFromPeak := ir[peakIdx:]

	schroeder := a.schroederIntegral(irFromPeak)

	m := Metrics{
		PeakIndex:  peakIdx,
		CenterTime: a.centerTime(irFromPeak),
		D50:        a.definition(irFromPeak, 50),
		D80:        a.definition(irFromPeak, 80),
		C50:        a.clarity(irFromPeak, 50),
		C80:        a.clarity(irFromPeak, 80),
	}

	// EDT: extrapolate from 0 to -10 dB slope
	m.EDT = a.reverbTime(schroeder, 0, -10)

	// T20: extrapolate from -5 to -25 dB
	m.T20 = a.reverbTime(schroeder, -5, -25)

	// T30: extrapolate from -5 to -35 dB
	m.T30 = a.reverbTime(schroeder, -5, -35)

	// RT60: prefer T30 (more robust), fall back to T20
	if m.T30 > 0 {
		m.RT60 = m.T30
	} else {
		m.RT60 = m.T20
	}

	return m, nil
}

// RT60 computes the reverberation time (time for -60 dB decay).
// Uses T30 extrapolation when possible, falls back to T20.
func (a *Analyzer) RT60(ir []float64) (float64, error) {
	if err := a.validate(ir); err != nil {
		return 0, err
	}

	schroeder := a.schroederIntegral(ir)

	// Try T30 first
	rt := a.reverbTime(schroeder, -5, -35)
	if rt > 0 {
		return rt, nil
	}

	// Fall back to T20
	rt = a.reverbTime(schroeder, -5, -25)
	if rt > 0 {
		return rt, nil
	}

	return 0, ErrNoDecay
}
