package input

import (
	"github.com/gdamore/tcell/v2"
)

// Poller is the blocking half of a tcell screen
type Poller interface {
	PollEvent() tcell.Event
}

// EventQueue buffers events from a polling goroutine so the loop can drain them without blocking
type EventQueue struct {
	ch chan tcell.Event
}

// NewEventQueue creates a queue with the given buffer capacity
func NewEventQueue(size int) *EventQueue {
	return &EventQueue{ch: make(chan tcell.Event, size)}
}

// Start launches the polling goroutine
// It exits after forwarding the nil event tcell returns once the screen is finalised
// onPanic runs inside the goroutine before it dies, so the caller can restore the terminal
func (q *EventQueue) Start(p Poller, onPanic func(r any)) {
	go func() {
		defer func() {
			if r := recover(); r != nil && onPanic != nil {
				onPanic(r)
			}
		}()

		for {
			ev := p.PollEvent()
			q.ch <- ev
			if ev == nil {
				return
			}
		}
	}()
}

// Push enqueues an event without blocking, dropping it when the buffer is full
func (q *EventQueue) Push(ev tcell.Event) bool {
	select {
	case q.ch <- ev:
		return true
	default:
		return false
	}
}

// Drain returns every event queued so far, in arrival order, without blocking
func (q *EventQueue) Drain() []tcell.Event {
	var events []tcell.Event
	for {
		select {
		case ev := <-q.ch:
			events = append(events, ev)
		default:
			return events
		}
	}
}
