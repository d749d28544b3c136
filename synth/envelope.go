package synth

import "fmt"

// EnvelopePhase is the state of an envelope generator.
type EnvelopePhase int

const (
	Idle EnvelopePhase = iota
	Attack
	Decay
	Sustain
	Release
)

func (p EnvelopePhase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Attack:
		return "attack"
	case Decay:
		return "decay"
	case Sustain:
		return "sustain"
	case Release:
		return "release"
	}
	return fmt.Sprintf("EnvelopePhase(%d)", int(p))
}

// EnvelopeConfig sets the levels (0-255) and phase durations of an envelope.
// A zero SustainMs holds the sustain level until note off.
type EnvelopeConfig struct {
	AttackLevel uint8 `yaml:"attack_level"`
	DecayLevel  uint8 `yaml:"decay_level"`
	AttackMs    int   `yaml:"attack_ms"`
	DecayMs     int   `yaml:"decay_ms"`
	SustainMs   int   `yaml:"sustain_ms"`
	ReleaseMs   int   `yaml:"release_ms"`
}

const levelFracBits = 16

// Envelope is a linear ADSR generator stepped once per control tick. Its level
// is held between ticks, so the audio rate reads a staircase.
type Envelope struct {
	attackLevel int32
	decayLevel  int32
	ticks       [Release + 1]int

	phase     EnvelopePhase
	level     int32 // level << levelFracBits
	step      int32
	target    int32
	remaining int
	hold      bool
}

// NewEnvelope converts the configured durations to ticks at controlRate. Every
// ramp lasts at least one tick.
func NewEnvelope(cfg EnvelopeConfig, controlRate int) *Envelope {
	e := &Envelope{
		attackLevel: int32(cfg.AttackLevel),
		decayLevel:  int32(cfg.DecayLevel),
	}
	e.ticks[Attack] = msToTicks(cfg.AttackMs, controlRate, 1)
	e.ticks[Decay] = msToTicks(cfg.DecayMs, controlRate, 1)
	e.ticks[Sustain] = msToTicks(cfg.SustainMs, controlRate, 0)
	e.ticks[Release] = msToTicks(cfg.ReleaseMs, controlRate, 1)
	return e
}

func msToTicks(ms, rate, min int) int {
	n := (ms*rate + 500) / 1000
	if n < min {
		n = min
	}
	return n
}

// Ticks returns the duration of phase p in control ticks.
func (e *Envelope) Ticks(p EnvelopePhase) int {
	if p < Attack || p > Release {
		return 0
	}
	return e.ticks[p]
}

// NoteOn (re)starts the attack from the current level.
func (e *Envelope) NoteOn() {
	e.enter(Attack)
}

// NoteOff starts the release from the current level.
func (e *Envelope) NoteOff() {
	if e.phase != Idle {
		e.enter(Release)
	}
}

// Hold keeps a finished attack at the attack level instead of moving on to
// the decay. Releasing the hold lets the envelope continue on the next tick.
func (e *Envelope) Hold(on bool) {
	e.hold = on
}

// Update advances the envelope by one control tick.
func (e *Envelope) Update() {
	switch e.phase {
	case Idle:
		return
	case Attack:
		if e.hold && e.remaining <= 0 {
			return
		}
	case Sustain:
		if e.ticks[Sustain] == 0 {
			return
		}
	}
	e.level += e.step
	e.remaining--
	if e.remaining > 0 {
		return
	}
	e.level = e.target << levelFracBits
	if e.phase == Attack && e.hold {
		e.step, e.remaining = 0, 0
		return
	}
	switch e.phase {
	case Attack:
		e.enter(Decay)
	case Decay:
		e.enter(Sustain)
	case Sustain:
		e.enter(Release)
	case Release:
		e.enter(Idle)
	}
}

func (e *Envelope) enter(p EnvelopePhase) {
	e.phase = p
	switch p {
	case Idle:
		e.level, e.step, e.target, e.remaining = 0, 0, 0, 0
		return
	case Attack:
		e.target = e.attackLevel
	case Decay, Sustain:
		e.target = e.decayLevel
	case Release:
		e.target = 0
	}
	e.remaining = e.ticks[p]
	e.step = 0
	if e.remaining > 0 {
		e.step = (e.target<<levelFracBits - e.level) / int32(e.remaining)
	}
}

func (e *Envelope) Phase() EnvelopePhase { return e.phase }

// Level returns the level computed at the last control tick.
func (e *Envelope) Level() uint8 {
	return uint8(e.level >> levelFracBits)
}

// NextLevel returns the level for the next audio sample. It is the held
// control-rate level.
func (e *Envelope) NextLevel() uint8 {
	return e.Level()
}
