package audio

import (
	"log"
	"sort"
	"sync/atomic"
)

// Pulses per quarter note
const PPQN = 960

const defaultVelocity = 100

// NoteSink receives note events. It is implemented by synth.Engine.
type NoteSink interface {
	NoteOn(channel, note, velocity uint8) bool
	NoteOff(channel, note, velocity uint8) bool
}

// Clip is a loop of notes. Clips are immutable once handed to a Sequencer.
type Clip struct {
	Length int // in pulses
	notes  []note
}

func NewClip(length float64) *Clip {
	return &Clip{Length: int(length * PPQN)}
}

// AddNote adds a note at position with the given length, both in beats.
func (c *Clip) AddNote(position float64, pitch int, length float64) {
	if pitch < 1 || pitch > 127 || length <= 0 {
		return
	}
	c.notes = append(c.notes, note{
		pos:      int(position * PPQN),
		pitch:    pitch,
		velocity: defaultVelocity,
		length:   int(length * PPQN),
	})
}

// NewNoteClip returns a clip that plays pitches one per beat, each lasting
// gate beats.
func NewNoteClip(gate float64, pitches ...int) *Clip {
	c := NewClip(float64(len(pitches)))
	for i, p := range pitches {
		c.AddNote(float64(i), p, gate)
	}
	return c
}

type note struct {
	pos      int // position of the note measured in PPQN from the start of a clip
	pitch    int // pitch as a midi note number
	velocity int
	length   int // note length in PPQN
}

type sounding struct {
	clip  *Clip
	pitch int
}

// Sequencer plays clips in a loop by sending note events to a NoteSink. It
// is advanced by Tick from the audio goroutine; bpm and clips may be set from
// any goroutine through the embedded Props.
type Sequencer struct {
	*Props
	bpm         *atomic.Value
	clips       *atomic.Value
	sink        NoteSink
	sampleRate  float64
	totalPulses uint64
	frac        float64
	playing     []sounding
	releasing   []sounding // note offs the sink refused
	due         []dueNote
}

func NewSequencer(props *Props, sink NoteSink, sampleRate int) *Sequencer {
	clips := make(map[string]*Clip)
	seq := &Sequencer{
		Props:      props,
		sink:       sink,
		sampleRate: float64(sampleRate),
		clips:      props.MustRegister("clips", setClips, clips),
		bpm:        props.MustRegister("bpm", setBPM, 120.0),
	}
	return seq
}

// Tick advances the sequencer by numSamples and emits every note start and
// end that falls in that span, in order. A note end and a note start at the
// same pulse are sent end first so a repeated pitch retriggers.
func (s *Sequencer) Tick(numSamples int) {
	bpm := s.bpm.Load().(float64)
	clips := s.clips.Load().(map[string]*Clip)

	s.retryReleases()
	s.releaseRemoved(clips)

	// Pulses per buffer are fractional; the remainder is carried to the next
	// call so the clock does not drift.
	s.frac += PPQN * (bpm / 60.) * float64(numSamples) / s.sampleRate
	numPulses := int(s.frac)
	s.frac -= float64(numPulses)
	if numPulses == 0 {
		return
	}

	s.due = s.due[:0]
	for _, clip := range clips {
		if clip.Length <= 0 {
			continue
		}
		pos := int(s.totalPulses % uint64(clip.Length)) // current position within the clip
		for _, n := range clip.notes {
			if off := offset(n.pos+n.length, pos, clip.Length); off < numPulses {
				s.due = append(s.due, dueNote{offset: off, clip: clip, note: n})
			}
			if off := offset(n.pos, pos, clip.Length); off < numPulses {
				s.due = append(s.due, dueNote{offset: off, clip: clip, note: n, start: true})
			}
		}
	}
	sort.SliceStable(s.due, func(i, j int) bool {
		a, b := s.due[i], s.due[j]
		if a.offset != b.offset {
			return a.offset < b.offset
		}
		return !a.start && b.start
	})
	for _, d := range s.due {
		if d.start {
			s.noteOn(d.clip, d.note.pitch, d.note.velocity)
		} else {
			s.noteOff(d.clip, d.note.pitch)
		}
	}
	s.totalPulses += uint64(numPulses)
}

type dueNote struct {
	offset int // pulses from the start of the current span
	clip   *Clip
	note   note
	start  bool
}

// offset returns the distance in pulses from pos forward to p on a loop of
// length l.
func offset(p, pos, l int) int {
	return ((p-pos)%l + l) % l
}

func (s *Sequencer) noteOn(clip *Clip, pitch, velocity int) {
	if !s.sink.NoteOn(0, uint8(pitch), uint8(velocity)) {
		log.Printf("sequencer: event queue full, dropped note on %d", pitch)
		return
	}
	s.playing = append(s.playing, sounding{clip: clip, pitch: pitch})
}

func (s *Sequencer) noteOff(clip *Clip, pitch int) {
	for i, p := range s.playing {
		if p.clip == clip && p.pitch == pitch {
			s.playing = append(s.playing[:i], s.playing[i+1:]...)
			s.release(p)
			return
		}
	}
}

// release sends a note off for p, or queues it for the next tick if the sink
// is full. A queued note off no longer counts as playing, so a new start of
// the same pitch gets its own entry.
func (s *Sequencer) release(p sounding) {
	if !s.sink.NoteOff(0, uint8(p.pitch), 0) {
		log.Printf("sequencer: event queue full, delaying note off %d", p.pitch)
		s.releasing = append(s.releasing, p)
	}
}

func (s *Sequencer) retryReleases() {
	n := 0
	for _, p := range s.releasing {
		if !s.sink.NoteOff(0, uint8(p.pitch), 0) {
			s.releasing[n] = p
			n++
		}
	}
	s.releasing = s.releasing[:n]
}

// releaseRemoved ends the notes of clips that are no longer scheduled.
func (s *Sequencer) releaseRemoved(clips map[string]*Clip) {
	n := 0
	for _, p := range s.playing {
		if scheduled(clips, p.clip) {
			s.playing[n] = p
			n++
			continue
		}
		s.release(p)
	}
	s.playing = s.playing[:n]
}

func scheduled(clips map[string]*Clip, c *Clip) bool {
	for _, clip := range clips {
		if clip == c {
			return true
		}
	}
	return false
}
