package engine

import (
	"fmt"
	"time"
)

// gate paces one kind of work (simulation tick or render pass)
// Each pass is bracketed by begin/end; a gate never reports due while a pass is open
type gate struct {
	interval  time.Duration
	lastStart time.Time
	open      bool
	lastCost  time.Duration
	count     uint64
	// rearm clears the deadline once the open pass ends
	rearm bool
}

func (g *gate) due(now time.Time) bool {
	if g.open {
		return false
	}
	return g.lastStart.IsZero() || now.Sub(g.lastStart) >= g.interval
}

// begin anchors the next deadline on the actual start time
// A late pass pushes every later pass back instead of queueing catch-up passes
func (g *gate) begin(now time.Time) {
	g.open = true
	g.lastStart = now
}

func (g *gate) end(now time.Time) {
	if !g.open {
		return
	}
	g.open = false
	g.lastCost = now.Sub(g.lastStart)
	g.count++
	if g.rearm {
		g.rearm = false
		g.lastStart = time.Time{}
	}
}

func (g *gate) reset() {
	if g.open {
		g.rearm = true
		return
	}
	g.lastStart = time.Time{}
}

func (g *gate) deadline() time.Time {
	if g.lastStart.IsZero() {
		return time.Time{}
	}
	return g.lastStart.Add(g.interval)
}

// TimingController decouples simulation cadence from render cadence
// The outer loop polls both gates once per iteration; each runs zero or one pass
type TimingController struct {
	clock TimeProvider

	sim    gate
	render gate

	// simStep is the physics dt per tick, may differ from the tick interval (time scale)
	simStep time.Duration
}

// TimingConfig configures a TimingController
type TimingConfig struct {
	SimInterval    time.Duration // wall time between simulation ticks
	SimStep        time.Duration // simulated time per tick
	RenderInterval time.Duration // wall time between render passes
}

// NewTimingController creates a controller; both gates are due immediately
func NewTimingController(clock TimeProvider, cfg TimingConfig) (*TimingController, error) {
	if cfg.SimInterval <= 0 || cfg.RenderInterval <= 0 || cfg.SimStep <= 0 {
		return nil, fmt.Errorf("timing intervals must be positive: sim=%v step=%v render=%v",
			cfg.SimInterval, cfg.SimStep, cfg.RenderInterval)
	}
	return &TimingController{
		clock:   clock,
		sim:     gate{interval: cfg.SimInterval},
		render:  gate{interval: cfg.RenderInterval},
		simStep: cfg.SimStep,
	}, nil
}

// ShouldSimulate reports whether a simulation tick is due
func (tc *TimingController) ShouldSimulate() bool {
	return tc.sim.due(tc.clock.Now())
}

// BeginSimulate opens a simulation pass
func (tc *TimingController) BeginSimulate() {
	tc.sim.begin(tc.clock.Now())
}

// EndSimulate closes the simulation pass and records its cost
func (tc *TimingController) EndSimulate() {
	tc.sim.end(tc.clock.Now())
}

// ShouldRender reports whether a render pass is due
func (tc *TimingController) ShouldRender() bool {
	return tc.render.due(tc.clock.Now())
}

// BeginRender opens a render pass
func (tc *TimingController) BeginRender() {
	tc.render.begin(tc.clock.Now())
}

// EndRender closes the render pass and records its cost
func (tc *TimingController) EndRender() {
	tc.render.end(tc.clock.Now())
}

// SimStep returns the physics dt for one simulation tick
func (tc *TimingController) SimStep() time.Duration {
	return tc.simStep
}

// UntilNext returns how long the loop may sleep before a gate is due
func (tc *TimingController) UntilNext() time.Duration {
	now := tc.clock.Now()
	next := tc.sim.deadline()
	if r := tc.render.deadline(); r.Before(next) {
		next = r
	}
	d := next.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// TimingStats is a snapshot of gate activity
type TimingStats struct {
	SimTicks       uint64
	RenderPasses   uint64
	SimCost        time.Duration
	RenderCost     time.Duration
	SimInterval    time.Duration
	RenderInterval time.Duration
}

// Stats returns counters and the cost of the last pass of each gate
func (tc *TimingController) Stats() TimingStats {
	return TimingStats{
		SimTicks:       tc.sim.count,
		RenderPasses:   tc.render.count,
		SimCost:        tc.sim.lastCost,
		RenderCost:     tc.render.lastCost,
		SimInterval:    tc.sim.interval,
		RenderInterval: tc.render.interval,
	}
}

// Reset makes both gates due immediately, used when the session resumes
// A pass that is open when Reset is called keeps its cost and becomes due once it ends
func (tc *TimingController) Reset() {
	tc.sim.reset()
	tc.render.reset()
}
