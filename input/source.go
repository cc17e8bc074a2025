package input

import (
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

// EventPoller is the part of tcell.Screen the source reads from
type EventPoller interface {
	PollEvent() tcell.Event
}

// Source turns terminal events into commands
// A polling goroutine feeds a buffered channel; Poll drains it on the loop thread
type Source struct {
	screen   EventPoller
	keyTable *KeyTable
	commands chan Command

	resized atomic.Bool
	dropped atomic.Uint64

	stopOnce sync.Once
	done     chan struct{}
}

// NewSource creates a source reading from screen; Start launches polling
func NewSource(screen EventPoller, keyTable *KeyTable, bufferSize int) *Source {
	if keyTable == nil {
		keyTable = DefaultKeyTable()
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Source{
		screen:   screen,
		keyTable: keyTable,
		commands: make(chan Command, bufferSize),
		done:     make(chan struct{}),
	}
}

// Start launches the polling goroutine
// It exits when the screen is finalized (PollEvent returns nil) or Stop is called
func (s *Source) Start() {
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case <-s.done:
				return
			default:
			}
			s.Handle(ev)
		}
	}()
}

// Handle classifies a single terminal event
func (s *Source) Handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		cmd := s.keyTable.Lookup(ev)
		if cmd == CommandNone {
			return
		}
		select {
		case s.commands <- cmd:
		default:
			// Loop is not draining; newest commands are lost
			s.dropped.Add(1)
		}
	case *tcell.EventResize:
		s.resized.Store(true)
	}
}

// Poll returns all pending commands without blocking
func (s *Source) Poll() []Command {
	var out []Command
	for {
		select {
		case cmd := <-s.commands:
			out = append(out, cmd)
		default:
			return out
		}
	}
}

// TakeResize reports and clears a pending terminal resize
func (s *Source) TakeResize() bool {
	return s.resized.Swap(false)
}

// Dropped returns the number of commands lost to a full buffer
func (s *Source) Dropped() uint64 {
	return s.dropped.Load()
}

// Stop signals the polling goroutine to exit after its next event
func (s *Source) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}
