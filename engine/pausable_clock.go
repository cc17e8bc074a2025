package engine

import (
	"sync"
	"time"
)

// PausableClock provides game time that stops advancing while paused
// Cooldowns (jump, boost) are measured in game time so pausing does not expire them
type PausableClock struct {
	mu sync.RWMutex

	source    TimeProvider
	realStart time.Time
	gameStart time.Time

	paused          bool
	pauseStart      time.Time
	totalPausedTime time.Duration
}

// NewPausableClock creates a running clock on top of source
func NewPausableClock(source TimeProvider) *PausableClock {
	now := source.Now()
	return &PausableClock{
		source:    source,
		realStart: now,
		gameStart: now,
	}
}

// Now returns current game time
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		// Frozen at the pause point
		return pc.gameStart.Add(pc.pauseStart.Sub(pc.realStart) - pc.totalPausedTime)
	}

	realElapsed := pc.source.Now().Sub(pc.realStart)
	return pc.gameStart.Add(realElapsed - pc.totalPausedTime)
}

// Pause stops game time advancement, no-op if already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = pc.source.Now()
}

// Resume continues game time advancement, no-op if running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.totalPausedTime += pc.source.Now().Sub(pc.pauseStart)
	pc.pauseStart = time.Time{}
	pc.paused = false
}

// Toggle flips pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}
