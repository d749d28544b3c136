package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youpy/go-wav"

	"github.com/peterzimon/ZFM/synth"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTuningDefaults(t *testing.T) {
	tuning, err := loadTuning("")
	require.NoError(t, err)
	assert.Equal(t, synth.DefaultTuning(), tuning)

	tuning, err = loadTuning(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, synth.DefaultTuning(), tuning)
}

func TestLoadTuningOverlay(t *testing.T) {
	path := writeFile(t, "tuning.yaml", `
control_rate: 64
max_noise: 32
carrier_freq:
  max: 440
carrier_envelope:
  release_ms: 1000
`)
	tuning, err := loadTuning(path)
	require.NoError(t, err)

	want := synth.DefaultTuning()
	want.ControlRate = 64
	want.MaxNoise = 32
	want.CarrierFreq.Max = 440
	want.CarrierEnvelope.ReleaseMs = 1000
	assert.Equal(t, want, tuning)
}

func TestLoadTuningErrors(t *testing.T) {
	_, err := loadTuning(writeFile(t, "typo.yaml", "control_rte: 64\n"))
	assert.Error(t, err)

	_, err = loadTuning(writeFile(t, "bad.yaml", "control_rate: 0\n"))
	assert.ErrorIs(t, err, synth.ErrInvalidTuning)

	_, err = loadTuning(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func writeSquareWAV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "square.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	samples := make([]wav.Sample, 64)
	for i := range samples {
		samples[i].Values[0] = 32767
		if i >= 32 {
			samples[i].Values[0] = -32767
		}
	}
	w := wav.NewWriter(f, uint32(len(samples)), 1, 44100, 16)
	require.NoError(t, w.WriteSamples(samples))
	return path
}

func TestLoadTables(t *testing.T) {
	path := writeSquareWAV(t)

	bank, err := loadTables([]string{"saw=" + path})
	require.NoError(t, err)
	assert.Nil(t, bank[synth.Sine])
	require.NotNil(t, bank[synth.Saw])
	assert.Equal(t, int8(127), bank[synth.Saw].At(0))
	assert.Equal(t, int8(-127), bank[synth.Saw].At(synth.TableSize-1))

	_, err = loadTables([]string{"pulse=" + path})
	assert.Error(t, err)
	_, err = loadTables([]string{path})
	assert.Error(t, err)
}
