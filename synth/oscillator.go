package synth

// phaseFracBits is the number of fractional bits in the phase accumulator.
// With 8192-cell tables the integer part uses 13 bits, leaving headroom in
// a uint32.
const phaseFracBits = 16

// Oscillator reads a wave table at a fixed update rate using a fixed-point
// phase accumulator. The table is shared, not owned.
type Oscillator struct {
	table *WaveTable
	rate  float64
	freq  float64

	phase uint32 // table index << phaseFracBits
	inc   uint32
	mask  uint32
}

// NewOscillator returns an oscillator reading t, advanced rate times a second.
func NewOscillator(t *WaveTable, rate float64) *Oscillator {
	o := &Oscillator{rate: rate}
	o.table = t
	o.mask = uint32(t.Len())<<phaseFracBits - 1
	return o
}

// SetTable switches the table without touching the phase. Tables of a
// different length keep the same position within the cycle.
func (o *Oscillator) SetTable(t *WaveTable) {
	if t == o.table {
		return
	}
	if t.Len() != o.table.Len() {
		pos := uint64(o.phase) * uint64(t.Len()) / uint64(o.table.Len())
		o.table = t
		o.mask = uint32(t.Len())<<phaseFracBits - 1
		o.phase = uint32(pos) & o.mask
		o.SetFrequency(o.freq)
		return
	}
	o.table = t
}

func (o *Oscillator) Table() *WaveTable { return o.table }

// SetFrequency sets the phase increment to f * len(table) / rate in fixed
// point, so fractional and sub-Hz frequencies are kept.
func (o *Oscillator) SetFrequency(f float64) {
	if f < 0 {
		f = 0
	}
	o.freq = f
	o.inc = uint32(f*float64(o.table.Len())*(1<<phaseFracBits)/o.rate) & o.mask
}

func (o *Oscillator) Frequency() float64 { return o.freq }

// Phase returns the current position in table cells, in [0, len(table)).
func (o *Oscillator) Phase() float64 {
	return float64(o.phase) / (1 << phaseFracBits)
}

// Next returns the cell at the current phase and advances by one step.
func (o *Oscillator) Next() int8 {
	s := o.table.cells[o.phase>>phaseFracBits]
	o.phase = (o.phase + o.inc) & o.mask
	return s
}

// PhMod is Next with the lookup displaced by mod, a fraction of one cycle
// with phaseFracBits fractional bits (65536 is one full cycle). The stored
// phase advances exactly as it would for Next.
func (o *Oscillator) PhMod(mod int32) int8 {
	offset := uint32(int64(mod) * int64(o.table.Len()))
	s := o.table.cells[((o.phase+offset)&o.mask)>>phaseFracBits]
	o.phase = (o.phase + o.inc) & o.mask
	return s
}
