package audio

import "sync"

// SharedSink lets several goroutines send notes to a NoteSink that accepts
// a single producer, such as synth.Engine. The prompt, the MIDI listener
// and the sequencer all send through one SharedSink.
type SharedSink struct {
	mu   sync.Mutex
	sink NoteSink
}

func NewSharedSink(sink NoteSink) *SharedSink {
	return &SharedSink{sink: sink}
}

func (s *SharedSink) NoteOn(channel, note, velocity uint8) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink.NoteOn(channel, note, velocity)
}

func (s *SharedSink) NoteOff(channel, note, velocity uint8) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink.NoteOff(channel, note, velocity)
}
