package audio

import (
	"sync/atomic"

	"github.com/peterzimon/ZFM/synth"
)

// Panel property keys.
const (
	KnobCarrierFreq  = "carrier.freq"
	KnobCarrierWave  = "carrier.wave"
	KnobModWave      = "mod.wave"
	KnobModSpeed     = "mod.speed"
	KnobModIntensity = "mod.intensity"
	KnobNoiseLevel   = "noise.level"
	ButtonCoarse     = "coarse"
)

var knobKeys = [synth.NumChannels]string{
	synth.ModWaveformKnob:     KnobModWave,
	synth.ModSpeedKnob:        KnobModSpeed,
	synth.ModIntensityKnob:    KnobModIntensity,
	synth.CarrierWaveformKnob: KnobCarrierWave,
	synth.NoiseLevelKnob:      KnobNoiseLevel,
	synth.CarrierFreqKnob:     KnobCarrierFreq,
}

// KnobKey returns the property key of a knob channel.
func KnobKey(ch synth.Channel) string { return knobKeys[ch] }

// Panel is the front panel of the instrument: six knobs with values in
// [0, synth.KnobMax] and the coarse button. Values are set through the
// embedded Props from any goroutine and read by the engine on its control
// tick.
type Panel struct {
	*Props
	knobs  [synth.NumChannels]*atomic.Value
	coarse *atomic.Value
}

func NewPanel(props *Props) *Panel {
	p := &Panel{Props: props}
	for ch, key := range knobKeys {
		set := setKnob
		if ch == int(synth.CarrierWaveformKnob) || ch == int(synth.ModWaveformKnob) {
			set = setWave
		}
		p.knobs[ch] = props.MustRegister(key, set, 0)
	}
	p.coarse = props.MustRegister(ButtonCoarse, setBool, false)
	return p
}

func (p *Panel) ReadKnob(ch synth.Channel) int {
	return p.knobs[ch].Load().(int)
}

func (p *Panel) CoarseMode() bool {
	return p.coarse.Load().(bool)
}

// Press and Release operate the coarse button.
func (p *Panel) Press()   { p.coarse.Store(true) }
func (p *Panel) Release() { p.coarse.Store(false) }
