package synth

// KnobMax is the largest value a knob reading can take.
const KnobMax = 1023

// Channel names a knob input.
type Channel int

const (
	ModWaveformKnob Channel = iota
	ModSpeedKnob
	ModIntensityKnob
	CarrierWaveformKnob
	NoiseLevelKnob
	CarrierFreqKnob
	NumChannels
)

// Inputs is what the control tick samples from the front panel.
type Inputs interface {
	// ReadKnob returns the knob position in [0, KnobMax].
	ReadKnob(ch Channel) int
	// CoarseMode reports whether the coarse button is held.
	CoarseMode() bool
}

// ControlParameters is the state handed from the control tick to the audio
// tick. A new value is built and published whole on every control tick.
type ControlParameters struct {
	Tick uint64

	CarrierFreq   float64
	ModulatorFreq float64
	Intensity     int32 // raw FM intensity, before smoothing

	CarrierWave   Waveform
	ModulatorWave Waveform
	NoiseVolume   uint8

	CarrierLevel uint8
	NoiseLevel   uint8
	CarrierPhase EnvelopePhase
	NoisePhase   EnvelopePhase

	// Active drives the note indicator: a note is held or coarse mode is on.
	Active bool
}
