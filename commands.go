package main

import (
	"errors"
	"fmt"

	"github.com/peterzimon/ZFM/audio"
	"github.com/peterzimon/ZFM/dub"
	"github.com/peterzimon/ZFM/synth"
)

const (
	defaultVelocity = 100
	// noteGate is the sounding part of a sequenced step.
	noteGate = 0.9
	// beat loops one 4/4 bar of 16th notes
	beatBeats        = 4
	beatStepsPerBeat = 4
)

type command struct {
	dub.Signature
	run func(*env, []dub.Node) (dub.Node, error)
}

var (
	commands []command
	grammar  dub.Grammar
)

// The table is filled in init because help lists it.
func init() {
	// Argument shapes are checked by the grammar, so the commands can
	// assert the node types their signature promises.
	commands = []command{
		{dub.Signature{Name: "set", Args: []dub.Kind{dub.Knob, dub.Value}}, setCommand},
		{dub.Signature{Name: "get", Args: []dub.Kind{dub.Knob}}, getCommand},
		{dub.Signature{Name: "press"}, pressCommand},
		{dub.Signature{Name: "release"}, releaseCommand},
		{dub.Signature{Name: "note", Args: []dub.Kind{dub.Note, dub.Note}, Optional: 1}, noteCommand},
		{dub.Signature{Name: "off", Args: []dub.Kind{dub.Note}}, offCommand},
		{dub.Signature{Name: "play", Args: []dub.Kind{dub.Number, dub.Note}, Variadic: true}, playCommand},
		{dub.Signature{Name: "beat", Args: []dub.Kind{dub.Note, dub.Pattern}}, beatCommand},
		{dub.Signature{Name: "bpm", Args: []dub.Kind{dub.Number}}, bpmCommand},
		{dub.Signature{Name: "stop"}, stopCommand},
		{dub.Signature{Name: "preset", Args: []dub.Kind{dub.Name}}, presetCommand},
		{dub.Signature{Name: "show"}, showCommand},
		{dub.Signature{Name: "help"}, helpCommand},
	}
	sigs := make([]dub.Signature, len(commands))
	for i, cmd := range commands {
		sigs[i] = cmd.Signature
	}
	grammar = dub.NewGrammar(sigs...)
}

func setCommand(env *env, args []dub.Node) (dub.Node, error) {
	key := string(args[0].(dub.Key))
	switch v := args[1].(type) {
	case dub.Int:
		return nil, env.panel.Set(key, int(v))
	case dub.Float:
		return nil, env.panel.Set(key, float64(v))
	case dub.Wave:
		return nil, env.panel.Set(key, synth.Waveform(v))
	case dub.String:
		return nil, env.panel.Set(key, string(v))
	case dub.Identifier:
		return nil, env.panel.Set(key, string(v))
	default:
		return nil, fmt.Errorf("unsupported property type: %v", v)
	}
}

func getCommand(env *env, args []dub.Node) (dub.Node, error) {
	v, err := env.panel.Get(string(args[0].(dub.Key)))
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case int:
		return dub.Int(v), nil
	case bool:
		if v {
			return dub.Identifier("on"), nil
		}
		return dub.Identifier("off"), nil
	default:
		return nil, fmt.Errorf("unsupported property type: %v", v)
	}
}

func pressCommand(env *env, args []dub.Node) (dub.Node, error) {
	env.panel.Press()
	return nil, nil
}

func releaseCommand(env *env, args []dub.Node) (dub.Node, error) {
	env.panel.Release()
	return nil, nil
}

var errQueueFull = errors.New("note queue is full")

func noteCommand(env *env, args []dub.Node) (dub.Node, error) {
	note := args[0].(dub.Int)
	velocity := dub.Int(defaultVelocity)
	if len(args) > 1 {
		velocity = args[1].(dub.Int)
	}
	if !env.notes.NoteOn(0, uint8(note), uint8(velocity)) {
		return nil, errQueueFull
	}
	return nil, nil
}

func offCommand(env *env, args []dub.Node) (dub.Node, error) {
	if !env.notes.NoteOff(0, uint8(args[0].(dub.Int)), 0) {
		return nil, errQueueFull
	}
	return nil, nil
}

// playCommand loops its notes one per beat.
func playCommand(env *env, args []dub.Node) (dub.Node, error) {
	notes := make([]int, len(args)-1)
	for i, arg := range args[1:] {
		notes[i] = int(arg.(dub.Int))
	}
	if err := env.sequencer.Set("bpm", float64(args[0].(dub.Float))); err != nil {
		return nil, err
	}
	return nil, setClip(env, "play", audio.NewNoteClip(noteGate, notes...))
}

// beatCommand loops a note on the 16th steps of a bar picked by a match
// expression.
func beatCommand(env *env, args []dub.Node) (dub.Node, error) {
	note := int(args[0].(dub.Int))
	positions, err := args[1].(dub.MatchExpr).Positions(beatBeats, beatStepsPerBeat)
	if err != nil {
		return nil, err
	}
	clip := audio.NewClip(beatBeats)
	for _, pos := range positions {
		clip.AddNote(pos, note, noteGate/beatStepsPerBeat)
	}
	return nil, setClip(env, fmt.Sprintf("beat-%d", note), clip)
}

func bpmCommand(env *env, args []dub.Node) (dub.Node, error) {
	return nil, env.sequencer.Set("bpm", float64(args[0].(dub.Float)))
}

func stopCommand(env *env, args []dub.Node) (dub.Node, error) {
	return nil, env.sequencer.Set("clips", map[string]*audio.Clip{})
}

func setClip(env *env, name string, clip *audio.Clip) error {
	v, err := env.sequencer.Get("clips")
	if err != nil {
		return err
	}
	old := v.(map[string]*audio.Clip)
	// copy the map so we don't modify it in place.
	clips := make(map[string]*audio.Clip, len(old)+1)
	for k, v := range old {
		clips[k] = v
	}
	clips[name] = clip
	return env.sequencer.Set("clips", clips)
}

func presetCommand(env *env, args []dub.Node) (dub.Node, error) {
	return nil, audio.LoadPreset(string(args[0].(dub.String)), env.panel)
}

func showCommand(env *env, args []dub.Node) (dub.Node, error) {
	renderState(env.engine.Params(), env.panel, env.out)
	return nil, nil
}

func helpCommand(env *env, args []dub.Node) (dub.Node, error) {
	for _, cmd := range commands {
		fmt.Fprintln(env.out, cmd.Signature)
	}
	fmt.Fprintln(env.out, "knobs:", env.panel.Keys())
	fmt.Fprintln(env.out, "waveforms: sine triangle saw square")
	fmt.Fprintln(env.out, "presets:", audio.PresetNames())
	fmt.Fprintln(env.out, "patterns: beat 36 '* every beat, '1,3/2 offbeat 8ths of beats 1 and 3")
	return nil, nil
}
