package event

import (
	"github.com/lixenwraith/crash-cars/constant"
)

// EventQueue is a bounded FIFO of gameplay events, owned by the loop goroutine
// Systems push during a tick and the router drains once per tick.
// Overflow: pushes beyond capacity are dropped and counted, queued events are kept
type EventQueue struct {
	pending []GameEvent
	spare   []GameEvent
	dropped uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{
		pending: make([]GameEvent, 0, constant.EventQueueSize),
		spare:   make([]GameEvent, 0, constant.EventQueueSize),
	}
}

// Push appends an event, false when the queue is full
func (eq *EventQueue) Push(event GameEvent) bool {
	if len(eq.pending) >= constant.EventQueueSize {
		eq.dropped++
		return false
	}
	eq.pending = append(eq.pending, event)
	return true
}

// Consume returns all pending events in FIFO order and empties the queue
// The returned slice is valid until the next Consume; events pushed while it
// is being read land in the other buffer
func (eq *EventQueue) Consume() []GameEvent {
	if len(eq.pending) == 0 {
		return nil
	}
	out := eq.pending
	eq.pending, eq.spare = eq.spare[:0], out
	return out
}

// Len returns the number of pending events
func (eq *EventQueue) Len() int {
	return len(eq.pending)
}

// Dropped returns the number of events rejected because the queue was full
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped
}
