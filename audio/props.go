package audio

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/peterzimon/ZFM/synth"
)

// ErrUnknownProperty is returned when a key was never registered.
var ErrUnknownProperty = errors.New("unknown property")

// Props stores device configuration that can be updated without locks. All properties
// should be registered before any reads take place.
type Props struct {
	properties map[string]*atomic.Value
	setters    map[string]setter
}

func NewProps() *Props {
	return &Props{
		properties: make(map[string]*atomic.Value),
		setters:    make(map[string]setter),
	}
}

// Set updates the property with value. The key has to be registered first using Register.
func (p *Props) Set(key string, value interface{}) error {
	prop, ok := p.properties[key]
	if !ok {
		return fmt.Errorf("%w %s", ErrUnknownProperty, key)
	}
	if err := p.setters[key](value, prop); err != nil {
		return fmt.Errorf("set property %s: %w", key, err)
	}
	return nil
}

func (p *Props) Get(key string) (interface{}, error) {
	prop, ok := p.properties[key]
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrUnknownProperty, key)
	}
	return prop.Load(), nil
}

// Keys returns the registered property names in sorted order.
func (p *Props) Keys() []string {
	keys := make([]string, 0, len(p.properties))
	for k := range p.properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Register adds a new property.
func (p *Props) Register(key string, set setter, init interface{}) (*atomic.Value, error) {
	var prop atomic.Value
	p.properties[key] = &prop
	p.setters[key] = set
	return &prop, set(init, &prop)
}

func (p *Props) MustRegister(key string, set setter, init interface{}) *atomic.Value {
	if prop, err := p.Register(key, set, init); err != nil {
		panic(err)
	} else {
		return prop
	}
}

type setter func(val interface{}, dest *atomic.Value) error

var (
	setBPM  = setFloat64(1, 500)
	setKnob = setIntRange(0, synth.KnobMax)
)

func setFloat64(min, max float64) setter {
	return func(v interface{}, dest *atomic.Value) error {
		var f float64
		switch n := v.(type) {
		case float64:
			f = n
		case int:
			f = float64(n)
		default:
			return fmt.Errorf("value is not a float64: %v", v)
		}
		if f < min || f > max {
			return fmt.Errorf("property value is not in valid range %v - %v: %v", min, max, f)
		}
		dest.Store(f)
		return nil
	}
}

func setIntRange(min, max int) setter {
	return func(v interface{}, dest *atomic.Value) error {
		var n int
		switch x := v.(type) {
		case int:
			n = x
		case float64:
			n = int(x)
		default:
			return fmt.Errorf("value is not an int: %v", v)
		}
		if n < min || n > max {
			return fmt.Errorf("property value is not in valid range %v - %v: %v", min, max, n)
		}
		dest.Store(n)
		return nil
	}
}

// setWave accepts a raw knob value or the name of a waveform, which is
// stored as the lowest knob value selecting it.
func setWave(v interface{}, dest *atomic.Value) error {
	switch w := v.(type) {
	case synth.Waveform:
		if w < 0 || w >= synth.NumWaveforms {
			return fmt.Errorf("unknown waveform: %v", w)
		}
		dest.Store(int(w) * (synth.KnobMax + 1) / int(synth.NumWaveforms))
		return nil
	case string:
		parsed, ok := synth.ParseWaveform(w)
		if !ok {
			return fmt.Errorf("unknown waveform: %v", w)
		}
		return setWave(parsed, dest)
	}
	return setKnob(v, dest)
}

func setBool(v interface{}, dest *atomic.Value) error {
	switch b := v.(type) {
	case bool:
		dest.Store(b)
	case int:
		dest.Store(b != 0)
	case string:
		switch b {
		case "on", "true":
			dest.Store(true)
		case "off", "false":
			dest.Store(false)
		default:
			return fmt.Errorf("value is not a bool: %v", v)
		}
	default:
		return fmt.Errorf("value is not a bool: %v", v)
	}
	return nil
}

func setClips(v interface{}, dest *atomic.Value) error {
	if c, ok := v.(map[string]*Clip); ok {
		dest.Store(c)
		return nil
	}
	return fmt.Errorf("value is not a map of clips: %v", v)
}
