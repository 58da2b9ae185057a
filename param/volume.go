package param

import (
	"fmt"

	"github.com/cwbudde/algo-audiograph/dsp/core"
)

// SilenceFloorDB is the decibel value at and below which a Volume is
// treated as silence.
const SilenceFloorDB = -100.0

// Volume is a gain parameter expressed either as linear amplitude or in
// decibels. Volumes are plain comparable values suitable for parameter
// records; the zero value is unity gain (0 dB).
type Volume struct {
	linear bool
	value  float32
}

// Linear returns a Volume holding a linear amplitude factor.
func Linear(amp float32) Volume {
	return Volume{linear: true, value: amp}
}

// Decibels returns a Volume holding a decibel gain.
func Decibels(db float32) Volume {
	return Volume{value: db}
}

// Amp returns the linear amplitude of the volume. Negative linear values
// clamp to zero; decibel values at or below SilenceFloorDB map to exact
// zero so faded-out parameters produce true silence.
func (v Volume) Amp() float32 {
	if v.linear {
		if v.value < 0 {
			return 0
		}
		return v.value
	}

	if float64(v.value) <= SilenceFloorDB {
		return 0
	}
	return float32(core.DBToLinear(float64(v.value)))
}

// String returns a human-readable form, e.g. "0.50x" or "-20.0 dB".
func (v Volume) String() string {
	if v.linear {
		return fmt.Sprintf("%.2fx", v.value)
	}
	return fmt.Sprintf("%.1f dB", v.value)
}
