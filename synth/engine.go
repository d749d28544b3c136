// Package synth implements a two-rate FM voice. TickControl samples the
// inputs and derives parameters at the control rate; RenderSample produces
// one output sample at the audio rate from the last published parameters.
package synth

import (
	"math"
	"sync/atomic"
)

// Sample is one output sample. With the reference mix the values stay within
// a signed 9-bit range.
type Sample int16

// Engine owns every oscillator, envelope and filter of the voice. TickControl
// and RenderSample must be called from the same goroutine, or never
// concurrently. Note events may be pushed from any single goroutine.
type Engine struct {
	tuning Tuning
	inputs Inputs
	events *EventQueue
	params atomic.Pointer[ControlParameters]

	// control side
	carrierMap   Normalizer
	intensityMap Normalizer
	speedMap     Normalizer
	noiseMap     Normalizer
	lfo          *Oscillator
	carrierEnv   *Envelope
	noiseEnv     *Envelope
	held         int
	noteFreq     float64
	coarse       bool
	tick         uint64

	// audio side
	bank      Bank
	carrier   *Oscillator
	modulator *Oscillator
	noise     *Oscillator
	smoother  *Smoother
	applied   *ControlParameters
}

// Option configures an Engine.
type Option func(*Engine)

// WithBank replaces the waveform bank.
func WithBank(b Bank) Option {
	return func(e *Engine) {
		for i, t := range b {
			if t != nil {
				e.bank[i] = t
			}
		}
	}
}

// NewEngine builds a voice for tuning t reading from in. It runs one control
// tick so that parameters are published before the first sample.
func NewEngine(t Tuning, in Inputs, opts ...Option) (*Engine, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		tuning:       t,
		inputs:       in,
		events:       NewEventQueue(t.EventQueueSize),
		carrierMap:   KnobNormalizer(t.CarrierFreq.Min, t.CarrierFreq.Max),
		intensityMap: KnobNormalizer(t.Intensity.Min, t.Intensity.Max),
		speedMap:     KnobNormalizer(t.ModSpeed.Min, t.ModSpeed.Max),
		noiseMap:     KnobNormalizer(0, t.MaxNoise),
		carrierEnv:   NewEnvelope(t.CarrierEnvelope, t.ControlRate),
		noiseEnv:     NewEnvelope(t.NoiseEnvelope, t.ControlRate),
		noteFreq:     NoteFrequency(69),
		bank:         DefaultBank(),
		smoother:     NewSmoother(t.Smoothing),
	}
	for _, opt := range opts {
		opt(e)
	}
	rate := float64(t.AudioRate)
	e.carrier = NewOscillator(e.bank[Sine], rate)
	e.modulator = NewOscillator(e.bank[Sine], rate)
	e.noise = NewOscillator(NoiseTable(), rate)
	e.noise.SetFrequency(t.NoiseFreq)
	e.lfo = NewOscillator(sineTable, float64(t.ControlRate))

	e.TickControl()
	return e, nil
}

func (e *Engine) Tuning() Tuning { return e.tuning }

// NoteOn queues a note-on for the next control tick. A velocity of zero is a
// note-off. It returns false if the queue is full.
func (e *Engine) NoteOn(channel, note, velocity uint8) bool {
	kind := NoteOn
	if velocity == 0 {
		kind = NoteOff
	}
	return e.events.Push(Event{Kind: kind, Channel: channel, Note: note, Velocity: velocity})
}

// NoteOff queues a note-off for the next control tick.
func (e *Engine) NoteOff(channel, note, velocity uint8) bool {
	return e.events.Push(Event{Kind: NoteOff, Channel: channel, Note: note, Velocity: velocity})
}

// Params returns a copy of the last published parameters.
func (e *Engine) Params() ControlParameters {
	return *e.params.Load()
}

// TickControl advances the control state by one tick.
func (e *Engine) TickControl() {
	e.events.Drain(e.handle)

	freq := e.noteFreq
	pressed := e.inputs.CoarseMode()
	if pressed {
		freq = float64(e.carrierMap.Map(e.inputs.ReadKnob(CarrierFreqKnob)))
		if !e.coarse {
			e.gateOn()
		}
	} else if e.coarse && e.held == 0 {
		e.gateOff()
	}
	// both envelopes stay in attack for as long as the button is down
	e.carrierEnv.Hold(pressed)
	e.noiseEnv.Hold(pressed)
	e.coarse = pressed

	e.carrierEnv.Update()
	e.noiseEnv.Update()

	knob := func(ch Channel) int { return e.inputs.ReadKnob(ch) }

	intensity := int32(e.intensityMap.Map(knob(ModIntensityKnob)))
	intensity = (intensity * (int32(e.lfo.Next()) + 128)) >> 8
	e.lfo.SetFrequency(float64(e.speedMap.Map(knob(ModSpeedKnob))) / 1000)

	e.tick++
	e.params.Store(&ControlParameters{
		Tick:          e.tick,
		CarrierFreq:   freq,
		ModulatorFreq: freq * float64(e.tuning.ModRatio),
		Intensity:     intensity,
		CarrierWave:   SelectWaveform(knob(CarrierWaveformKnob)),
		ModulatorWave: SelectWaveform(knob(ModWaveformKnob)),
		NoiseVolume:   uint8(e.noiseMap.Map(knob(NoiseLevelKnob))),
		CarrierLevel:  e.carrierEnv.NextLevel(),
		NoiseLevel:    e.noiseEnv.NextLevel(),
		CarrierPhase:  e.carrierEnv.Phase(),
		NoisePhase:    e.noiseEnv.Phase(),
		Active:        e.held > 0 || pressed,
	})
}

func (e *Engine) handle(ev Event) {
	switch ev.Kind {
	case NoteOn:
		e.held++
		e.noteFreq = NoteFrequency(ev.Note)
		e.gateOn()
	case NoteOff:
		if e.held == 0 {
			return
		}
		e.held--
		if e.held == 0 && !e.coarse {
			e.gateOff()
		}
	}
}

func (e *Engine) gateOn() {
	e.carrierEnv.NoteOn()
	e.noiseEnv.NoteOn()
}

func (e *Engine) gateOff() {
	e.carrierEnv.NoteOff()
	e.noiseEnv.NoteOff()
}

// RenderSample produces the next output sample.
func (e *Engine) RenderSample() Sample {
	p := e.params.Load()
	if p != e.applied {
		e.apply(p)
	}
	intensity := e.smoother.Next(p.Intensity)
	modulation := intensity * int32(e.modulator.Next())
	carrier := e.carrier.PhMod(modulation)
	return mix(carrier, p.CarrierLevel, e.noise.Next(), p.NoiseLevel, p.NoiseVolume)
}

func (e *Engine) apply(p *ControlParameters) {
	e.carrier.SetTable(e.bank[p.CarrierWave])
	e.carrier.SetFrequency(p.CarrierFreq)
	e.modulator.SetTable(e.bank[p.ModulatorWave])
	e.modulator.SetFrequency(p.ModulatorFreq)
	e.applied = p
}

// mix scales the carrier and the noise by their levels and shifts the sum
// back down by 8 bits. The envelope is applied after phase modulation.
func mix(carrier int8, carrierLevel uint8, noise int8, noiseLevel, noiseVolume uint8) Sample {
	c := int32(carrier) * int32(carrierLevel)
	n := ((int32(noise) * int32(noiseLevel)) >> 8) * int32(noiseVolume)
	return Sample((c + n) >> 8)
}

// NoteFrequency returns the equal-tempered frequency of a MIDI note, with
// note 69 at 440 Hz.
func NoteFrequency(note uint8) float64 {
	return 440 * math.Pow(2, (float64(note)-69)/12)
}
