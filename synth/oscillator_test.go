package synth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOscillatorPhaseAfterNSamples(t *testing.T) {
	const rate = 16384.0
	for _, f := range []float64{0, 0.37, 22, 440, 880, 4400} {
		osc := NewOscillator(sineTable, rate)
		osc.SetFrequency(f)
		const n = 5000
		for i := 0; i < n; i++ {
			osc.Next()
		}
		want := math.Mod(n*f*TableSize/rate, TableSize)
		diff := math.Abs(osc.Phase() - want)
		diff = math.Min(diff, TableSize-diff)
		// each step may be truncated by up to one fixed-point unit
		assert.LessOrEqual(t, diff, float64(n)/(1<<phaseFracBits)+1e-9, "frequency %v", f)
		assert.Less(t, osc.Phase(), float64(TableSize))
		assert.GreaterOrEqual(t, osc.Phase(), 0.0)
	}
}

func TestOscillatorExactIncrement(t *testing.T) {
	osc := NewOscillator(sineTable, 16384)
	osc.SetFrequency(440)
	for i := 0; i < 1000; i++ {
		osc.Next()
	}
	assert.Equal(t, 876.0, osc.Phase())
}

func TestOscillatorSubHertz(t *testing.T) {
	osc := NewOscillator(sineTable, 512)
	osc.SetFrequency(0.001)
	for i := 0; i < 512*100; i++ {
		osc.Next()
	}
	// 100 seconds at 1 mHz is a tenth of a cycle.
	assert.InDelta(t, 102.4, osc.Phase(), 1)
}

func TestOscillatorSetTableKeepsPhase(t *testing.T) {
	osc := NewOscillator(sineTable, 16384)
	osc.SetFrequency(123.4)
	for i := 0; i < 777; i++ {
		osc.Next()
	}
	before := osc.Phase()
	osc.SetTable(sawTable)
	assert.Equal(t, before, osc.Phase())
	assert.Same(t, sawTable, osc.Table())

	osc.SetTable(sawTable)
	assert.Equal(t, before, osc.Phase())
}

func TestOscillatorSetTableOtherLength(t *testing.T) {
	osc := NewOscillator(sineTable, 16384)
	osc.SetFrequency(440)
	for i := 0; i < 100; i++ {
		osc.Next()
	}
	frac := osc.Phase() / TableSize
	osc.SetTable(NoiseTable())
	assert.InDelta(t, frac, osc.Phase()/NoiseTableSize, 1e-6)

	next := NewOscillator(NoiseTable(), 16384)
	next.SetFrequency(440)
	assert.Equal(t, next.inc, osc.inc)
}

func TestPhModDoesNotDisturbPhase(t *testing.T) {
	plain := NewOscillator(sineTable, 16384)
	modded := NewOscillator(sineTable, 16384)
	plain.SetFrequency(330)
	modded.SetFrequency(330)
	mods := []int32{0, 1 << 16, -(1 << 16), 12345, -89600, 89600}
	for i := 0; i < 2000; i++ {
		plain.Next()
		modded.PhMod(mods[i%len(mods)])
		require.Equal(t, plain.Phase(), modded.Phase())
	}
}

func TestPhModOffsets(t *testing.T) {
	a := NewOscillator(sineTable, 16384)
	b := NewOscillator(sineTable, 16384)
	a.SetFrequency(261.6)
	b.SetFrequency(261.6)
	for i := 0; i < 500; i++ {
		// a whole cycle of displacement reads the same cell
		require.Equal(t, a.Next(), b.PhMod(1<<16))
	}

	c := NewOscillator(sineTable, 16384)
	d := NewOscillator(sineTable, 16384)
	for i := 0; i < 500; i++ {
		c.SetFrequency(100)
		d.SetFrequency(100)
		// half a cycle inverts a sine
		assert.InDelta(t, -int(c.Next()), int(d.PhMod(1<<15)), 1)
	}
}
