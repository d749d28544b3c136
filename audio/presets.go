package audio

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownPreset is returned by LoadPreset for names not in the preset table.
var ErrUnknownPreset = errors.New("unknown preset")

type Device interface {
	Set(key string, val interface{}) error
	Get(key string) (interface{}, error)
}

type preset map[string]interface{}

var presets = map[string]preset{
	"init": {
		KnobCarrierFreq:  512,
		KnobCarrierWave:  "sine",
		KnobModWave:      "sine",
		KnobModSpeed:     0,
		KnobModIntensity: 0,
		KnobNoiseLevel:   0,
	},
	"bell": {
		KnobCarrierFreq:  700,
		KnobCarrierWave:  "sine",
		KnobModWave:      "sine",
		KnobModSpeed:     20,
		KnobModIntensity: 300,
		KnobNoiseLevel:   0,
	},
	"growl": {
		KnobCarrierFreq:  120,
		KnobCarrierWave:  "saw",
		KnobModWave:      "square",
		KnobModSpeed:     400,
		KnobModIntensity: 900,
		KnobNoiseLevel:   200,
	},
	"snare": {
		KnobCarrierFreq:  300,
		KnobCarrierWave:  "triangle",
		KnobModWave:      "sine",
		KnobModSpeed:     1023,
		KnobModIntensity: 150,
		KnobNoiseLevel:   1023,
	},
}

// PresetNames returns the names of all presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func LoadPreset(name string, d Device) error {
	p, ok := presets[name]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownPreset, name)
	}
	for k, v := range p {
		if err := d.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}
