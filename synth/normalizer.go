package synth

// Normalizer rescales a raw input range onto an output range. The output range
// may be inverted (outMin > outMax) for controls that are wired in reverse.
type Normalizer struct {
	inMin, inMax   int
	outMin, outMax int
}

// NewNormalizer maps [inMin, inMax] onto [outMin, outMax].
func NewNormalizer(inMin, inMax, outMin, outMax int) Normalizer {
	if inMax < inMin {
		inMin, inMax = inMax, inMin
	}
	return Normalizer{inMin: inMin, inMax: inMax, outMin: outMin, outMax: outMax}
}

// KnobNormalizer maps the full knob range [0, KnobMax] onto [lo, hi].
func KnobNormalizer(lo, hi int) Normalizer {
	return NewNormalizer(0, KnobMax, lo, hi)
}

// Map returns v rescaled into the output range. Inputs outside the input range
// are clamped first, so Map(inMin) == outMin and Map(inMax) == outMax exactly.
func (n Normalizer) Map(v int) int {
	if v < n.inMin {
		v = n.inMin
	}
	if v > n.inMax {
		v = n.inMax
	}
	span := n.inMax - n.inMin
	if span == 0 {
		return n.outMin
	}
	return n.outMin + (v-n.inMin)*(n.outMax-n.outMin)/span
}
