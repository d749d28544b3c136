package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/peterzimon/ZFM/audio"
	"github.com/peterzimon/ZFM/synth"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zfm",
	Short: "A two-oscillator FM synthesizer with a noise layer",
	Long: `zfm plays a single FM voice: a carrier phase modulated by a second
oscillator at five times its frequency, with an LFO on the modulation depth
and an enveloped noise layer.`,
	SilenceUsage: true,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play through the sound card and open the panel prompt",
	Long: `Play the synthesizer and read panel commands from the prompt.

Examples:
  zfm play --preset bell
  zfm play --midi "IAC Driver Bus 1" --backend oto
  zfm play --table saw=organ.wav`,
	RunE: runPlay,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a note loop to a WAV file",
	Long: `Render the synthesizer offline.

Examples:
  zfm render -o out.wav --notes 60,64,67 --bpm 90
  zfm render -o drone.wav --coarse --seconds 10 --preset growl`,
	RunE: runRender,
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI input ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer audio.CloseMIDI()
		for i, name := range audio.InPorts() {
			fmt.Printf("%d: %s\n", i, name)
		}
		return nil
	},
}

var (
	tuningPath string
	presetName string
	tables     []string

	backend  string
	midiPort string

	outputPath string
	seconds    float64
	notes      []int
	bpm        float64
	coarse     bool
)

func init() {
	rootCmd.AddCommand(playCmd, renderCmd, portsCmd)

	for _, cmd := range []*cobra.Command{playCmd, renderCmd} {
		cmd.Flags().StringVar(&tuningPath, "tuning", "", "YAML tuning file")
		cmd.Flags().StringVarP(&presetName, "preset", "p", "init", "Panel preset")
		cmd.Flags().StringArrayVar(&tables, "table", nil, "Replace a wave slot with a single-cycle WAV (slot=file.wav)")
	}

	playCmd.Flags().StringVarP(&backend, "backend", "b", "portaudio", "Audio output (portaudio, oto)")
	playCmd.Flags().StringVar(&midiPort, "midi", "", "MIDI input port to listen to")

	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "zfm.wav", "Output WAV file")
	renderCmd.Flags().Float64VarP(&seconds, "seconds", "s", 4, "Length in seconds")
	renderCmd.Flags().IntSliceVarP(&notes, "notes", "n", nil, "Notes to loop, one per beat")
	renderCmd.Flags().Float64Var(&bpm, "bpm", 120, "Tempo of the note loop")
	renderCmd.Flags().BoolVar(&coarse, "coarse", false, "Hold the coarse button")
}

type instrument struct {
	engine    *synth.Engine
	panel     *audio.Panel
	driver    *audio.Driver
	sequencer *audio.Sequencer
	notes     *audio.SharedSink
}

func newInstrument() (*instrument, error) {
	tuning, err := loadTuning(tuningPath)
	if err != nil {
		return nil, err
	}
	bank, err := loadTables(tables)
	if err != nil {
		return nil, err
	}
	panel := audio.NewPanel(audio.NewProps())
	if err := audio.LoadPreset(presetName, panel); err != nil {
		return nil, err
	}
	engine, err := synth.NewEngine(tuning, panel, synth.WithBank(bank))
	if err != nil {
		return nil, err
	}
	notes := audio.NewSharedSink(engine)
	driver := audio.NewDriver(engine)
	seq := audio.NewSequencer(audio.NewProps(), notes, driver.SampleRate())
	driver.AddTicker(seq)
	return &instrument{
		engine:    engine,
		panel:     panel,
		driver:    driver,
		sequencer: seq,
		notes:     notes,
	}, nil
}

type output interface {
	Start() error
	Stop() error
}

func openOutput(d *audio.Driver) (output, error) {
	switch backend {
	case "portaudio":
		sink, err := audio.NewSink(d.SampleRate())
		if err != nil {
			return nil, err
		}
		sink.AddSources(d)
		return sink, nil
	case "oto":
		return audio.NewOtoSink(d)
	default:
		return nil, fmt.Errorf("unknown backend: %s", backend)
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	inst, err := newInstrument()
	if err != nil {
		return err
	}

	if midiPort != "" {
		stop, err := audio.ListenMIDI(midiPort, inst.notes)
		if err != nil {
			return err
		}
		defer audio.CloseMIDI()
		defer stop()
	}

	out, err := openOutput(inst.driver)
	if err != nil {
		return fmt.Errorf("open %s output: %w", backend, err)
	}
	if err := out.Start(); err != nil {
		return fmt.Errorf("start %s output: %w", backend, err)
	}
	defer func() {
		if err := out.Stop(); err != nil {
			log.Printf("stop %s output: %v", backend, err)
		}
	}()

	return repl(&env{
		engine:    inst.engine,
		panel:     inst.panel,
		sequencer: inst.sequencer,
		notes:     inst.notes,
		out:       os.Stdout,
	})
}

func checkMIDI(what string, v int) error {
	if v < 0 || v > 127 {
		return fmt.Errorf("%s out of range 0-127: %v", what, v)
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	inst, err := newInstrument()
	if err != nil {
		return err
	}
	if coarse {
		inst.panel.Press()
	}
	if len(notes) > 0 {
		for _, n := range notes {
			if err := checkMIDI("note", n); err != nil {
				return err
			}
		}
		if err := inst.sequencer.Set("bpm", bpm); err != nil {
			return err
		}
		clips := map[string]*audio.Clip{"render": audio.NewNoteClip(noteGate, notes...)}
		if err := inst.sequencer.Set("clips", clips); err != nil {
			return err
		}
	}
	if seconds <= 0 {
		return fmt.Errorf("seconds must be positive: %v", seconds)
	}
	n := int(seconds * float64(inst.driver.SampleRate()))
	if err := audio.RenderWAVFile(outputPath, inst.driver, n); err != nil {
		return err
	}
	log.Printf("rendered %d samples to %s", n, outputPath)
	return nil
}
