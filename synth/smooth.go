package synth

// Smoother is a single-pole exponential filter:
//
//	out = out*alpha + in*(1-alpha)
//
// computed in 16.16 fixed point. The step towards the input is rounded
// towards the previous output so the result never overshoots.
type Smoother struct {
	acc  int64 // output << 16
	step int64 // (1-alpha) << 16
}

// NewSmoother returns a filter with smoothing coefficient alpha in [0, 1).
// Larger values smooth more.
func NewSmoother(alpha float64) *Smoother {
	if alpha < 0 {
		alpha = 0
	}
	step := int64((1 - alpha) * (1 << 16))
	if step < 1 {
		step = 1
	}
	if step > 1<<16 {
		step = 1 << 16
	}
	return &Smoother{step: step}
}

// Next feeds one input value and returns the smoothed output.
func (s *Smoother) Next(in int32) int32 {
	s.acc += ((int64(in)<<16 - s.acc) * s.step) >> 16
	return int32((s.acc + 1<<15) >> 16)
}
