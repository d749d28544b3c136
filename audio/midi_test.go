package audio

import (
	"reflect"
	"testing"

	"gitlab.com/gomidi/midi/v2"
)

func TestHandleMessage(t *testing.T) {
	sink := &testSink{}

	HandleMessage(midi.NoteOn(0, 60, 100), sink)
	HandleMessage(midi.NoteOff(0, 60), sink)
	HandleMessage(midi.NoteOn(1, 64, 90), sink)
	HandleMessage(midi.NoteOn(1, 64, 0), sink)
	HandleMessage(midi.ControlChange(0, 7, 100), sink)

	if want, got := []noteEvent{
		{on: true, pitch: 60},
		{on: false, pitch: 60},
		{on: true, pitch: 64},
		{on: false, pitch: 64},
	}, sink.events; !reflect.DeepEqual(want, got) {
		t.Errorf("wrong events:\nwant: %+v\ngot:  %+v", want, got)
	}
}
