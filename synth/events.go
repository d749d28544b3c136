package synth

import (
	"sync/atomic"
)

// EventKind distinguishes note events.
type EventKind uint8

const (
	NoteOn EventKind = iota + 1
	NoteOff
)

// Event is a note event from the MIDI side.
type Event struct {
	Kind     EventKind
	Channel  uint8
	Note     uint8
	Velocity uint8
}

// EventQueue is a lock-free single-producer single-consumer queue of note
// events. The consumer is the control tick.
type EventQueue struct {
	events      []Event
	read, write atomic.Uint32
}

// NewEventQueue returns a queue holding up to size events.
func NewEventQueue(size int) *EventQueue {
	if size <= 0 || size&(size-1) != 0 {
		panic("event queue size must be a power of 2")
	}
	return &EventQueue{events: make([]Event, size)}
}

// Push appends ev. It returns false without blocking if the queue is full.
func (q *EventQueue) Push(ev Event) bool {
	write := q.write.Load()
	if write-q.read.Load() == uint32(len(q.events)) {
		return false
	}
	q.events[write%uint32(len(q.events))] = ev
	q.write.Store(write + 1)
	return true
}

// Drain calls f for every queued event in arrival order.
func (q *EventQueue) Drain(f func(Event)) {
	read := q.read.Load()
	write := q.write.Load()
	for read != write {
		f(q.events[read%uint32(len(q.events))])
		read++
	}
	q.read.Store(read)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return int(q.write.Load() - q.read.Load())
}
