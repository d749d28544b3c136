package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/peterzimon/ZFM/audio"
	"github.com/peterzimon/ZFM/synth"
)

const barWidth = 16

// renderState prints the last published engine parameters and the panel
// knobs.
func renderState(p synth.ControlParameters, panel *audio.Panel, w io.Writer) {
	led := colorize("○", colorBlack)
	if p.Active {
		led = colorize("●", colorRed)
	}
	fmt.Fprintf(w, "%s  tick %d\n", led, p.Tick)

	fmt.Fprintf(w, "%s %8.2f Hz  %-8s %s %s\n",
		colorize("carrier", colorBlue), p.CarrierFreq, p.CarrierWave,
		bar(int(p.CarrierLevel), 255), p.CarrierPhase)
	fmt.Fprintf(w, "%s %8.2f Hz  %-8s intensity %d\n",
		colorize("mod    ", colorBlue), p.ModulatorFreq, p.ModulatorWave, p.Intensity)
	fmt.Fprintf(w, "%s volume %-5d         %s %s\n",
		colorize("noise  ", colorBlue), p.NoiseVolume,
		bar(int(p.NoiseLevel), 255), p.NoisePhase)

	for ch := synth.Channel(0); ch < synth.NumChannels; ch++ {
		fmt.Fprintf(w, "%s %4d %s\n",
			colorize(fmt.Sprintf("%-13s", audio.KnobKey(ch)), colorMagenta),
			panel.ReadKnob(ch), bar(panel.ReadKnob(ch), synth.KnobMax))
	}
	coarse := "released"
	if panel.CoarseMode() {
		coarse = colorize("pressed", colorGreen)
	}
	fmt.Fprintf(w, "%s %s\n", colorize(fmt.Sprintf("%-13s", audio.ButtonCoarse), colorMagenta), coarse)
}

// bar draws v out of max as a fixed width bar.
func bar(v, max int) string {
	n := v * barWidth / max
	if n > barWidth {
		n = barWidth
	}
	if n < 0 {
		n = 0
	}
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}

const (
	colorBlack = iota + 30
	colorRed
	colorGreen
	colorYellow
	colorBlue
	colorMagenta
)

func colorize(text string, color int) string {
	return fmt.Sprintf("\033[%dm%s\033[0m", color, text)
}
