package param

import "fmt"

// DefaultSmoothSeconds is the ramp duration used by NewSmoother unless
// overridden with WithSmoothSeconds.
const DefaultSmoothSeconds = 0.005

// Smoother ramps a scalar parameter toward a target value to avoid stepped
// discontinuities in rendered audio. The ramp is linear over a fixed
// duration; once the ramp completes the current value equals the target
// exactly, so a settled smoother adds no per-sample work beyond a copy.
//
// Smoother is not safe for concurrent use; it lives inside processor state
// and is retargeted only during patch application.
type Smoother struct {
	current   float32
	target    float32
	increment float32
	remaining int
	rampLen   int
}

// SmootherOption configures a Smoother.
type SmootherOption func(*smootherConfig) error

type smootherConfig struct {
	smoothSeconds float64
}

// WithSmoothSeconds sets the ramp duration in seconds.
func WithSmoothSeconds(seconds float64) SmootherOption {
	return func(cfg *smootherConfig) error {
		if seconds <= 0 {
			return fmt.Errorf("param: smooth seconds must be positive: %f", seconds)
		}
		cfg.smoothSeconds = seconds
		return nil
	}
}

// NewSmoother returns a Smoother settled at initial for the given sample
// rate.
func NewSmoother(initial float32, sampleRate float64, opts ...SmootherOption) (*Smoother, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("param: sample rate must be positive: %f", sampleRate)
	}

	cfg := smootherConfig{smoothSeconds: DefaultSmoothSeconds}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	rampLen := int(cfg.smoothSeconds*sampleRate + 0.5)
	if rampLen < 1 {
		rampLen = 1
	}

	return &Smoother{
		current: initial,
		target:  initial,
		rampLen: rampLen,
	}, nil
}

// SetValue updates the target. If the target differs from the current
// value a new ramp starts from the current position.
func (s *Smoother) SetValue(target float32) {
	if target == s.target {
		return
	}

	s.target = target
	if target == s.current {
		s.remaining = 0
		return
	}

	s.increment = (target - s.current) / float32(s.rampLen)
	s.remaining = s.rampLen
}

// Value returns the current value.
func (s *Smoother) Value() float32 {
	return s.current
}

// Target returns the target value.
func (s *Smoother) Target() float32 {
	return s.target
}

// IsSmoothing reports whether a ramp is still in progress.
func (s *Smoother) IsSmoothing() bool {
	return s.remaining > 0
}

// Next advances the ramp by one sample and returns the new current value.
// Settled smoothers return the target unchanged.
func (s *Smoother) Next() float32 {
	if s.remaining == 0 {
		return s.current
	}

	s.remaining--
	if s.remaining == 0 {
		s.current = s.target
	} else {
		s.current += s.increment
	}
	return s.current
}

// ProcessIntoBuffer writes one ramp value per frame into buf and settles
// the smoother: after the call the current value equals the target, so the
// next block starts flat unless retargeted again.
func (s *Smoother) ProcessIntoBuffer(buf []float32) {
	for i := range buf {
		buf[i] = s.Next()
	}

	if s.remaining > 0 {
		s.current = s.target
		s.remaining = 0
	}
}

// Reset settles the smoother at value immediately.
func (s *Smoother) Reset(value float32) {
	s.current = value
	s.target = value
	s.remaining = 0
}
