package ir

import "github.com/cwbudde/algo-audiograph/dsp/core"

// SchroederIntegral computes the Schroeder backward integration of the
// squared impulse response, returned in dB.
//
// S(t) = 10*log10( ∫_t^∞ h²(τ) dτ / ∫_0^∞ h²(τ) dτ )
//
// This converts the noisy IR energy decay into a smooth decay curve
// suitable for reverberation time estimation.
func (a *Analyzer) SchroederIntegral(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	return a.schroederIntegral(ir), nil
}

// schroederIntegral computes the Schroeder integral (unchecked). The
// backward cumulative sum is inherently sequential, so it stays a scalar
// loop.
func (a *Analyzer) schroederIntegral(ir []float64) []float64 {
	n := len(ir)
	result := make([]float64, n)

	var cumSum float64
	for i := n - 1; i >= 0; i-- {
		cumSum += ir[i] * ir[i]
		result[i] = cumSum
	}

	// Normalize and convert to dB
	totalEnergy := result[0]
	if totalEnergy <= 0 {
		return result
	}

	for i := range result {
		ratio := result[i] / totalEnergy
		if ratio <= 0 {
			result[i] = -200 // floor at -200 dB
		} else {
			result[i] = core.LinearPowerToDB(ratio)
		}
	}

	return result
}

// reverbTime calculates reverberation time by linear regression on the
// Schroeder curve between startDB and endDB, extrapolated to -60 dB.
//
// For EDT: startDB=0, endDB=-10 → extrapolate by factor 6
// For T20: startDB=-5, endDB=-25 → extrapolate by factor 3
// For T30: startDB=-5, endDB=-35 → extrapolate by factor 2
func (a *Analyzer) reverbTime(schroeder []float64, startDB, endDB float64) float64 {
	if len(schroeder) == 0 || a.SampleRate <= 0 {
		return 0
	}

	// Find the sample indices corresponding to startDB and endDB
	startIdx := -1
	endIdx := -1

	for i, v := range schroeder {
		if startIdx < 0 && v <= startDB {
			startIdx = i
		}

		if startIdx >= 0 && v <= endDB {
			endIdx = i
			break
		}
	}

	if startIdx < 0 || endIdx < 0 || endIdx <= startIdx {
		return 0
	}

	// Linear regression on the Schroeder curve in the [startDB, endDB] range
	// y = dB values, x = sample indices
	n := endIdx - startIdx + 1
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXX, sumXY float64

	for i := startIdx; i <= endIdx; i++ {
		x := float64(i - startIdx)
		y := schroeder[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	nf := float64(n)

	denom := nf*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}

	// Slope in dB/sample
	slope := (nf*sumXY - sumX*sumY) / denom

	if slope >= 0 {
		return 0 // no decay
	}

	// Convert slope to dB/second
	slopePerSec := slope * a.SampleRate

	// Extrapolate to -60 dB: RT = -60 / slope_per_sec
	rt := -60.0 / slopePerSec

	if rt < 0 {
		return 0
	}

	return rt
}
