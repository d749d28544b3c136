package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/peterzimon/ZFM/audio"
	"github.com/peterzimon/ZFM/synth"
)

// loadTuning reads a YAML tuning file on top of the default tuning. Keys
// missing from the file keep their default value. An empty path returns the
// defaults.
func loadTuning(path string) (synth.Tuning, error) {
	t := synth.DefaultTuning()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return t, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// loadTables reads slot=file.wav arguments into a bank that replaces the named
// slots of the default bank.
func loadTables(args []string) (synth.Bank, error) {
	var bank synth.Bank
	for _, arg := range args {
		slot, file, ok := strings.Cut(arg, "=")
		if !ok {
			return bank, fmt.Errorf("table %q: want slot=file.wav", arg)
		}
		w, ok := synth.ParseWaveform(slot)
		if !ok {
			return bank, fmt.Errorf("table %q: unknown slot %q", arg, slot)
		}
		t, err := audio.LoadWaveTable(file)
		if err != nil {
			return bank, err
		}
		bank[w] = t
	}
	return bank, nil
}
