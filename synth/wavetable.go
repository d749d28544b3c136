package synth

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	// TableSize is the number of cells in each table of the waveform bank.
	TableSize = 1024
	// NoiseTableSize is the number of cells in the white noise table.
	NoiseTableSize = 8192
)

// WaveTable is one cycle of a periodic waveform as signed 8-bit cells. Tables
// are never mutated after construction and may be shared between oscillators.
type WaveTable struct {
	name  string
	cells []int8
}

// NewWaveTable copies cells into a new table. The length must be a power of
// two so that phase wrapping can be done with a mask.
func NewWaveTable(name string, cells []int8) *WaveTable {
	n := len(cells)
	if n == 0 || n&(n-1) != 0 {
		panic(fmt.Sprintf("wave table %q: length %d is not a power of 2", name, n))
	}
	c := make([]int8, n)
	copy(c, cells)
	return &WaveTable{name: name, cells: c}
}

func (t *WaveTable) Name() string { return t.name }
func (t *WaveTable) Len() int     { return len(t.cells) }

// At returns cell i modulo the table length.
func (t *WaveTable) At(i int) int8 {
	return t.cells[i&(len(t.cells)-1)]
}

// Waveform indexes a slot of the waveform bank.
type Waveform int

const (
	Sine Waveform = iota
	Triangle
	Saw
	Square
	NumWaveforms
)

var waveformNames = [NumWaveforms]string{
	Sine:     "sine",
	Triangle: "triangle",
	Saw:      "saw",
	Square:   "square",
}

func (w Waveform) String() string {
	if w < 0 || w >= NumWaveforms {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// ParseWaveform returns the waveform with the given name.
func ParseWaveform(s string) (Waveform, bool) {
	for i, name := range waveformNames {
		if name == s {
			return Waveform(i), true
		}
	}
	return 0, false
}

// SelectWaveform quantizes a knob reading into one of the four bank slots.
// Each slot covers an equal share of the knob range.
func SelectWaveform(raw int) Waveform {
	if raw < 0 {
		raw = 0
	}
	w := Waveform(raw * int(NumWaveforms) / (KnobMax + 1))
	if w >= NumWaveforms {
		w = NumWaveforms - 1
	}
	return w
}

// Bank holds the tables selectable for the carrier and the modulator.
type Bank [NumWaveforms]*WaveTable

var (
	sineTable     = buildTable("sine", TableSize, func(x float64) float64 { return math.Sin(2 * math.Pi * x) })
	triangleTable = buildTable("triangle", TableSize, triangle)
	sawTable      = buildTable("saw", TableSize, func(x float64) float64 { return 2*x - 1 })
	squareTable   = buildTable("square", TableSize, square)
	noiseTable    = buildNoise(NoiseTableSize)
)

// DefaultBank returns sine, triangle, saw and square tables of TableSize cells.
func DefaultBank() Bank {
	return Bank{sineTable, triangleTable, sawTable, squareTable}
}

// NoiseTable returns the shared white noise table.
func NoiseTable() *WaveTable { return noiseTable }

func buildTable(name string, n int, fn func(x float64) float64) *WaveTable {
	cells := make([]int8, n)
	for i := range cells {
		cells[i] = toCell(fn(float64(i) / float64(n)))
	}
	return NewWaveTable(name, cells)
}

func triangle(x float64) float64 {
	switch {
	case x < 0.25:
		return 4 * x
	case x < 0.75:
		return 2 - 4*x
	default:
		return 4*x - 4
	}
}

func square(x float64) float64 {
	if x < 0.5 {
		return 1
	}
	return -1
}

// toCell scales v in [-1, 1] to a signed 8-bit cell.
func toCell(v float64) int8 {
	c := math.Round(v * 127)
	if c > 127 {
		c = 127
	}
	if c < -128 {
		c = -128
	}
	return int8(c)
}

// buildNoise fills a table from a fixed seed so that renders are repeatable.
func buildNoise(n int) *WaveTable {
	r := rand.New(rand.NewSource(0x5eed))
	cells := make([]int8, n)
	for i := range cells {
		cells[i] = int8(r.Intn(256) - 128)
	}
	return NewWaveTable("whitenoise", cells)
}

// ResampleTable builds a table of n cells from one cycle of floating point
// samples in [-1, 1], picking the nearest source sample for each cell.
func ResampleTable(name string, cycle []float64, n int) (*WaveTable, error) {
	if len(cycle) == 0 {
		return nil, fmt.Errorf("wave table %q: no samples", name)
	}
	cells := make([]int8, n)
	for i := range cells {
		cells[i] = toCell(cycle[i*len(cycle)/n])
	}
	return NewWaveTable(name, cells), nil
}
