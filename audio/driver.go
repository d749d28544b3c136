package audio

import "github.com/peterzimon/ZFM/synth"

// blockSize is the number of samples between two calls of the tickers. At
// 16384 Hz it is about 2ms.
const blockSize = 32

// Source fills a stereo output buffer.
type Source interface {
	Process([][]float32)
}

// Ticker is advanced once per block of rendered samples.
type Ticker interface {
	Tick(numSamples int)
}

// Driver runs an engine at its audio rate and interleaves control ticks at
// the control rate. The ratio between the two does not have to be integral:
// the driver accumulates controlRate per sample and ticks whenever the
// accumulator passes audioRate.
type Driver struct {
	engine      *synth.Engine
	audioRate   int
	controlRate int
	acc         int
	pending     int // samples left before the next ticker call
	tickers     []Ticker
	gain        float32
}

func NewDriver(e *synth.Engine) *Driver {
	t := e.Tuning()
	return &Driver{
		engine:      e,
		audioRate:   t.AudioRate,
		controlRate: t.ControlRate,
		gain:        1. / 256,
	}
}

func (d *Driver) Engine() *synth.Engine { return d.engine }

// SampleRate is the rate at which Next has to be called.
func (d *Driver) SampleRate() int { return d.audioRate }

func (d *Driver) AddTicker(t Ticker) {
	d.tickers = append(d.tickers, t)
}

// Next renders one sample, running a control tick first when one is due.
func (d *Driver) Next() synth.Sample {
	if d.pending == 0 {
		for _, t := range d.tickers {
			t.Tick(blockSize)
		}
		d.pending = blockSize
	}
	d.pending--

	d.acc += d.controlRate
	if d.acc >= d.audioRate {
		d.acc -= d.audioRate
		d.engine.TickControl()
	}
	return d.engine.RenderSample()
}

// Render fills buf with consecutive samples.
func (d *Driver) Render(buf []synth.Sample) {
	for i := range buf {
		buf[i] = d.Next()
	}
}

// Process renders into a portaudio style buffer, adding the same mono
// signal to every channel. Samples are scaled so the 9-bit output range
// maps to about [-0.6, 0.6].
func (d *Driver) Process(samples [][]float32) {
	if len(samples) == 0 {
		return
	}
	for n := range samples[0] {
		v := float32(d.Next()) * d.gain
		for ch := range samples {
			samples[ch][n] += v
		}
	}
}
