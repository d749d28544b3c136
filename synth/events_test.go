package synth

import (
	"context"
	"runtime"
	"testing"
)

func TestEventQueueFull(t *testing.T) {
	q := NewEventQueue(4)
	for n := 0; n < 4; n++ {
		if !q.Push(Event{Kind: NoteOn, Note: uint8(n)}) {
			t.Fatalf("push %d failed on a queue with free space", n)
		}
	}
	if q.Push(Event{Kind: NoteOn, Note: 4}) {
		t.Errorf("expected push on a full queue to fail")
	}
	if want, got := 4, q.Len(); want != got {
		t.Errorf("wrong length: want %v, got %v", want, got)
	}

	var notes []uint8
	q.Drain(func(ev Event) { notes = append(notes, ev.Note) })
	if want, got := 4, len(notes); want != got {
		t.Fatalf("expected %v events, got %v", want, got)
	}
	for n, note := range notes {
		if want, got := uint8(n), note; want != got {
			t.Errorf("event %d out of order: want note %v, got %v", n, want, got)
		}
	}
	if want, got := 0, q.Len(); want != got {
		t.Errorf("expected empty queue, got %v events", got)
	}
}

func TestEventQueueSizeMustBePowerOfTwo(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic for size 6")
		}
	}()
	NewEventQueue(6)
}

func TestEventQueue(t *testing.T) {
	q := NewEventQueue(64)

	done := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())

	var events []Event
	collect := func(ev Event) { events = append(events, ev) }
	go func() {
		for {
			select {
			case <-ctx.Done():
				q.Drain(collect)
				done <- struct{}{}
				return
			default:
				q.Drain(collect)
				runtime.Gosched()
			}
		}
	}()

	const numEvents = 10_000
	for n := 0; n < numEvents; n++ {
		for !q.Push(Event{Kind: NoteOn, Note: uint8(n % 128), Velocity: uint8(n % 127)}) {
			runtime.Gosched()
		}
	}

	cancel()
	<-done

	if len(events) != numEvents {
		t.Fatalf("wrong number of events: want %v, got %v", numEvents, len(events))
	}
	for n, ev := range events {
		if want, got := uint8(n%128), ev.Note; want != got {
			t.Errorf("discontinuous events at %d: want note %v, got %v", n, want, got)
			break
		}
	}
}
