package param

// Smoother ramps linearly from its current value to a target over a fixed
// number of samples. A length of 0 or 1 jumps straight to the target.
type Smoother struct {
	current   float64
	target    float64
	step      float64
	length    int
	remaining int
}

// NewSmoother returns a smoother settled at value with the given ramp length.
func NewSmoother(length int, value float64) *Smoother {
	s := &Smoother{}
	s.SetLength(length)
	s.Reset(value)
	return s
}

// SetLength sets the ramp length in samples. A ramp in progress keeps its
// current step.
func (s *Smoother) SetLength(samples int) {
	if samples < 0 {
		samples = 0
	}

	s.length = samples
}

// Length returns the ramp length in samples.
func (s *Smoother) Length() int { return s.length }

// Reset settles the smoother at value.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.step = 0
	s.remaining = 0
}

// SetTarget starts a ramp from the current value towards target.
func (s *Smoother) SetTarget(target float64) {
	if target == s.target {
		return
	}

	s.target = target
	if s.length <= 1 {
		s.current = target
		s.remaining = 0
		return
	}

	s.step = (target - s.current) / float64(s.length)
	s.remaining = s.length
}

// Active reports whether a ramp is in progress.
func (s *Smoother) Active() bool { return s.remaining > 0 }

// Current returns the value without advancing.
func (s *Smoother) Current() float64 { return s.current }

// Target returns the ramp destination.
func (s *Smoother) Target() float64 { return s.target }

// Next advances one sample and returns the new value.
func (s *Smoother) Next() float64 {
	if s.remaining == 0 {
		return s.current
	}

	s.remaining--
	if s.remaining == 0 {
		s.current = s.target
	} else {
		s.current += s.step
	}

	return s.current
}

// Skip advances n samples at once.
func (s *Smoother) Skip(n int) {
	if n <= 0 || s.remaining == 0 {
		return
	}

	if n >= s.remaining {
		s.current = s.target
		s.remaining = 0
		return
	}

	s.current += s.step * float64(n)
	s.remaining -= n
}
