package session

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/crash-cars/constant"
	"github.com/lixenwraith/crash-cars/engine"
	"github.com/lixenwraith/crash-cars/event"
	"github.com/lixenwraith/crash-cars/input"
	"github.com/lixenwraith/crash-cars/status"
	"github.com/lixenwraith/crash-cars/systems"
	"github.com/lixenwraith/crash-cars/vmath"
)

// TickResult reports what a simulation tick did
type TickResult struct {
	Tick   uint64
	Paused bool
	Quit   bool
	Events int
}

// Orchestrator runs the per-tick phase order
// Physics callbacks only record deferred state; every world mutation happens
// in the drain and advance phases after the step returns
type Orchestrator struct {
	registry *engine.Registry
	physics  engine.Physics
	audio    engine.Audio
	input    CommandSource
	clock    *engine.PausableClock
	timing   *engine.TimingController
	queue    *event.EventQueue
	router   *event.Router[*engine.Registry]

	control  *systems.ControlSystem
	chase    *systems.ChasePolicy
	resolver *systems.CollisionResolver
	triggers *systems.TriggerDispatcher

	status *status.Registry
	log    zerolog.Logger

	arenaHalf float64
	tick      uint64

	vehicleCmds []input.Command
}

// Tick runs one simulation tick
// Input is captured even while paused; gameplay phases are skipped until resume
func (o *Orchestrator) Tick() (TickResult, error) {
	o.tick++
	res := TickResult{Tick: o.tick}

	// 1. Input capture and global commands
	res.Quit = o.handleGlobals(o.input.Poll())
	res.Paused = o.clock.IsPaused()

	if res.Paused || res.Quit {
		if res.Paused {
			o.status.Int(status.SimPausedTicks).Add(1)
		}
		res.Events = o.router.DispatchAll(o.registry)
		o.publishCounters()
		return res, nil
	}

	// 2. Human controls
	o.control.Apply(o.vehicleCmds, o.tick)

	// 3. Chase AI
	o.chase.Update(o.tick)

	// 4. Physics step, contact callbacks fire inside
	if err := o.physics.Simulate(o.timing.SimStep()); err != nil {
		return res, fmt.Errorf("tick %d: simulate: %w", o.tick, err)
	}

	// 5. Drain deferred effects
	o.drainKnockback()
	o.drainPowerUps()

	// 6. Snapshot refresh and arena bounds
	o.advanceVehicles()

	// 7. Event dispatch
	res.Events = o.router.DispatchAll(o.registry)

	o.status.Int(status.SimTicks).Add(1)
	o.publishCounters()
	return res, nil
}

// publishCounters copies the callback-side counters into the status registry
func (o *Orchestrator) publishCounters() {
	o.status.Int(status.CollisionDropped).Store(int64(o.resolver.Dropped()))
	o.status.Int(status.TriggerDispatched).Store(int64(o.triggers.Dispatched()))
	o.status.Int(status.TriggerDropped).Store(int64(o.triggers.Dropped()))
	o.status.Int(status.EventsDropped).Store(int64(o.queue.Dropped()))
}

// handleGlobals applies session-wide commands and keeps vehicle commands for phase 2
func (o *Orchestrator) handleGlobals(cmds []input.Command) (quit bool) {
	o.vehicleCmds = o.vehicleCmds[:0]
	for _, cmd := range cmds {
		if !cmd.IsGlobal() {
			o.vehicleCmds = append(o.vehicleCmds, cmd)
			continue
		}
		switch cmd {
		case input.CommandQuit:
			quit = true
		case input.CommandPause:
			o.setPaused(!o.clock.IsPaused())
		case input.CommandMenuConfirm:
			if o.clock.IsPaused() {
				o.setPaused(false)
			}
		case input.CommandMute:
			o.audio.ToggleMute()
			o.volumeChanged()
		case input.CommandVolumeUp:
			o.audio.AdjustVolume(constant.VolumeStep)
			o.volumeChanged()
		case input.CommandVolumeDown:
			o.audio.AdjustVolume(-constant.VolumeStep)
			o.volumeChanged()
		}
	}
	return quit
}

func (o *Orchestrator) setPaused(paused bool) {
	if paused {
		o.clock.Pause()
	} else {
		o.clock.Resume()
		// First tick after resume runs without waiting out the interval
		o.timing.Reset()
	}
	o.status.Bool(status.SessionPaused).Store(paused)
	o.emit(event.EventPauseChanged, &event.PauseChangedPayload{Paused: paused})
}

func (o *Orchestrator) volumeChanged() {
	vol, muted := o.audio.Volume(), o.audio.Muted()
	o.status.Float(status.AudioVolume).Set(vol)
	o.status.Bool(status.AudioMuted).Store(muted)
	o.emit(event.EventVolumeChanged, &event.VolumeChangedPayload{Volume: vol, Muted: muted})
}

// drainKnockback applies and clears every pending knockback impulse
func (o *Orchestrator) drainKnockback() {
	for _, v := range o.registry.Vehicles() {
		impulse, ok := v.TakeKnockback()
		if !ok || v.Eliminated {
			continue
		}
		if err := o.physics.ApplyImpulse(v.Handle, impulse); err != nil {
			o.log.Warn().Err(err).Stringer("vehicle", v.Handle).Msg("knockback not applied")
			continue
		}

		pos := v.Position
		if p, ok := o.physics.Position(v.Handle); ok {
			pos = p
		}
		o.emit(event.EventVehicleHit, &event.VehicleHitPayload{
			Victim:      v.Handle,
			Impulse:     impulse,
			Magnitude:   vmath.Mag(impulse),
			Position:    pos,
			Coefficient: v.CollisionCoefficient,
		})
	}
}

// drainPowerUps destroys each triggered power-up exactly once
func (o *Orchestrator) drainPowerUps() {
	for _, p := range o.registry.PowerUps() {
		if !p.Triggered {
			continue
		}
		if !p.Destroy() {
			p.Triggered = false
			continue
		}
		if err := o.physics.RemoveBody(p.Handle); err != nil {
			o.log.Warn().Err(err).Stringer("powerup", p.Handle).Msg("power-up body not removed")
		}
		o.emit(event.EventPowerUpCollected, &event.PowerUpCollectedPayload{
			PowerUp:  p.Handle,
			Type:     p.Type,
			Position: p.Position,
		})
	}
}

// advanceVehicles refreshes kinematic snapshots and eliminates vehicles past the arena edge
func (o *Orchestrator) advanceVehicles() {
	live := 0
	for _, v := range o.registry.Vehicles() {
		if v.Eliminated {
			continue
		}
		if p, ok := o.physics.Position(v.Handle); ok {
			v.Position = p
		}
		if vel, ok := o.physics.Velocity(v.Handle); ok {
			v.Velocity = vel
		}
		if h, ok := o.physics.Heading(v.Handle); ok {
			v.Heading = h
		}

		if math.Abs(v.Position[0]) >= o.arenaHalf || math.Abs(v.Position[2]) >= o.arenaHalf {
			o.eliminate(v)
			continue
		}
		live++

		if !v.IsAI() {
			o.audio.SetListener(v.Position)
		}
	}
	o.status.Int(status.VehiclesLive).Store(int64(live))
}

func (o *Orchestrator) eliminate(v *engine.Vehicle) {
	v.Eliminated = true
	v.Target = engine.NoHandle
	v.ReachedTarget = false
	if err := o.physics.RemoveBody(v.Handle); err != nil {
		o.log.Warn().Err(err).Stringer("vehicle", v.Handle).Msg("vehicle body not removed")
	}
	o.emit(event.EventVehicleEliminated, &event.VehicleEliminatedPayload{
		Vehicle:  v.Handle,
		Position: v.Position,
	})
}

func (o *Orchestrator) emit(t event.EventType, payload any) {
	ok := o.queue.Push(event.GameEvent{
		Type:      t,
		Payload:   payload,
		Tick:      o.tick,
		Timestamp: o.clock.Now(),
	})
	if !ok {
		o.log.Debug().Stringer("type", t).Uint64("tick", o.tick).Msg("event dropped: queue full")
	}
}

// CurrentTick returns the number of ticks run so far, paused ticks included
func (o *Orchestrator) CurrentTick() uint64 {
	return o.tick
}
