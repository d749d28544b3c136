package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/peterzimon/ZFM/synth"
	"github.com/youpy/go-wav"
)

const (
	wavBitsPerSample = 16
	// wavShift widens the 9-bit engine output to 16 bits.
	wavShift = 7
)

// RenderWAV renders numSamples mono samples from d into w as a 16-bit WAV
// stream at the driver's sample rate.
func RenderWAV(w io.Writer, d *Driver, numSamples int) error {
	ww := wav.NewWriter(w, uint32(numSamples), 1, uint32(d.SampleRate()), wavBitsPerSample)

	buf := make([]synth.Sample, 1024)
	out := make([]wav.Sample, len(buf))
	for numSamples > 0 {
		n := len(buf)
		if numSamples < n {
			n = numSamples
		}
		d.Render(buf[:n])
		for i, s := range buf[:n] {
			out[i].Values[0] = clamp16(int(s) << wavShift)
		}
		if err := ww.WriteSamples(out[:n]); err != nil {
			return fmt.Errorf("write samples: %w", err)
		}
		numSamples -= n
	}
	return nil
}

// RenderWAVFile is RenderWAV into a new file at path.
func RenderWAVFile(path string, d *Driver, numSamples int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderWAV(f, d, numSamples); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func clamp16(v int) int {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return v
}

type wavReader interface {
	io.Reader
	io.ReaderAt
}

// ReadWaveTable reads a single cycle from the first channel of a WAV stream
// and resamples it to a bank table.
func ReadWaveTable(r wavReader, name string) (*synth.WaveTable, error) {
	wr := wav.NewReader(r)
	var cycle []float64
	for {
		samples, err := wr.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for _, sample := range samples {
			cycle = append(cycle, wr.FloatValue(sample, 0))
		}
	}
	return synth.ResampleTable(name, cycle, synth.TableSize)
}

// LoadWaveTable reads a single-cycle WAV file. The table is named after the
// file.
func LoadWaveTable(file string) (*synth.WaveTable, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadWaveTable(f, file)
	if err != nil {
		return nil, fmt.Errorf("load wave table %s: %w", file, err)
	}
	return t, nil
}
