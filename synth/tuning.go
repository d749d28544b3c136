package synth

import (
	"errors"
	"fmt"
)

// ErrInvalidTuning is returned by Tuning.Validate.
var ErrInvalidTuning = errors.New("invalid tuning")

// MaxIntensity bounds the magnitude of the intensity range so the LFO
// scaling stays within int32.
const MaxIntensity = 1 << 20

// Range is an inclusive output range for a knob.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Tuning holds the constants of one synthesizer build.
type Tuning struct {
	AudioRate   int `yaml:"audio_rate"`
	ControlRate int `yaml:"control_rate"`

	CarrierFreq Range `yaml:"carrier_freq"` // Hz
	Intensity   Range `yaml:"intensity"`
	ModSpeed    Range `yaml:"mod_speed"` // milli-Hz

	MaxNoise  int     `yaml:"max_noise"`
	ModRatio  int     `yaml:"mod_ratio"`
	Smoothing float64 `yaml:"smoothing"`
	NoiseFreq float64 `yaml:"noise_freq"`

	CarrierEnvelope EnvelopeConfig `yaml:"carrier_envelope"`
	NoiseEnvelope   EnvelopeConfig `yaml:"noise_envelope"`

	EventQueueSize int `yaml:"event_queue_size"`
}

// DefaultTuning returns the reference tuning.
func DefaultTuning() Tuning {
	return Tuning{
		AudioRate:   16384,
		ControlRate: 512,
		CarrierFreq: Range{22, 880},
		Intensity:   Range{10, 700},
		ModSpeed:    Range{1, 5000},
		MaxNoise:    64,
		ModRatio:    5,
		Smoothing:   0.95,
		NoiseFreq:   440,
		CarrierEnvelope: EnvelopeConfig{
			AttackLevel: 255,
			DecayLevel:  200,
			AttackMs:    20,
			DecayMs:     200,
			ReleaseMs:   300,
		},
		NoiseEnvelope: EnvelopeConfig{
			AttackLevel: 255,
			DecayLevel:  64,
			AttackMs:    5,
			DecayMs:     80,
			ReleaseMs:   100,
		},
		EventQueueSize: 64,
	}
}

// Validate reports the first problem with t.
func (t Tuning) Validate() error {
	switch {
	case t.AudioRate <= 0:
		return fmt.Errorf("%w: audio rate %d", ErrInvalidTuning, t.AudioRate)
	case t.ControlRate <= 0 || t.ControlRate > t.AudioRate:
		return fmt.Errorf("%w: control rate %d must be in (0, %d]", ErrInvalidTuning, t.ControlRate, t.AudioRate)
	case t.CarrierFreq.Min < 0 || t.CarrierFreq.Max < 0:
		return fmt.Errorf("%w: negative carrier frequency range %v", ErrInvalidTuning, t.CarrierFreq)
	case t.ModSpeed.Min < 0 || t.ModSpeed.Max < 0:
		return fmt.Errorf("%w: negative mod speed range %v", ErrInvalidTuning, t.ModSpeed)
	case t.MaxNoise < 0 || t.MaxNoise > 255:
		return fmt.Errorf("%w: max noise %d out of range 0-255", ErrInvalidTuning, t.MaxNoise)
	case t.ModRatio < 0:
		return fmt.Errorf("%w: mod ratio %d", ErrInvalidTuning, t.ModRatio)
	case t.Smoothing < 0 || t.Smoothing >= 1:
		return fmt.Errorf("%w: smoothing %v out of range [0, 1)", ErrInvalidTuning, t.Smoothing)
	case t.NoiseFreq < 0:
		return fmt.Errorf("%w: noise frequency %v", ErrInvalidTuning, t.NoiseFreq)
	case abs(t.Intensity.Min) > MaxIntensity || abs(t.Intensity.Max) > MaxIntensity:
		return fmt.Errorf("%w: intensity range %v exceeds magnitude %d", ErrInvalidTuning, t.Intensity, MaxIntensity)
	case t.EventQueueSize <= 0 || t.EventQueueSize&(t.EventQueueSize-1) != 0:
		return fmt.Errorf("%w: event queue size %d is not a power of 2", ErrInvalidTuning, t.EventQueueSize)
	}
	for _, env := range []EnvelopeConfig{t.CarrierEnvelope, t.NoiseEnvelope} {
		if env.AttackMs < 0 || env.DecayMs < 0 || env.SustainMs < 0 || env.ReleaseMs < 0 {
			return fmt.Errorf("%w: negative envelope time in %+v", ErrInvalidTuning, env)
		}
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
