package audio

import (
	"fmt"
	"log"

	"gitlab.com/gomidi/midi/v2"
)

// HandleMessage forwards note messages to sink. Other messages are ignored.
// A note-on with velocity zero arrives as a note end.
func HandleMessage(msg midi.Message, sink NoteSink) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		if !sink.NoteOn(ch, key, vel) {
			log.Printf("midi: event queue full, dropped note on %d", key)
		}
	case msg.GetNoteEnd(&ch, &key):
		if !sink.NoteOff(ch, key, 0) {
			log.Printf("midi: event queue full, dropped note off %d", key)
		}
	}
}

// ListenMIDI forwards note messages from the named input port to sink until
// the returned stop function is called.
func ListenMIDI(port string, sink NoteSink) (stop func(), err error) {
	in, err := midi.FindInPort(port)
	if err != nil {
		return nil, fmt.Errorf("find midi port %q: %w", port, err)
	}
	stop, err = midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		HandleMessage(msg, sink)
	}, midi.HandleError(func(err error) {
		log.Printf("midi: %s: %v", port, err)
	}))
	if err != nil {
		return nil, fmt.Errorf("listen to midi port %q: %w", port, err)
	}
	return stop, nil
}

// InPorts returns the names of the available MIDI input ports.
func InPorts() []string {
	var names []string
	for _, in := range midi.GetInPorts() {
		names = append(names, in.String())
	}
	return names
}

// CloseMIDI releases the MIDI driver.
func CloseMIDI() {
	midi.CloseDriver()
}
