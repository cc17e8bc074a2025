package systems

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/crash-cars/constant"
	"github.com/lixenwraith/crash-cars/engine"
	"github.com/lixenwraith/crash-cars/event"
	"github.com/lixenwraith/crash-cars/input"
	"github.com/lixenwraith/crash-cars/vmath"
)

// Actuator is the physics surface used by player controls
type Actuator interface {
	Driver
	ApplyImpulse(h engine.Handle, impulse vmath.Vec3) error
	ResetBody(h engine.Handle, pos vmath.Vec3, heading float64) error
}

// DefaultControlHold keeps a drive command active between terminal key repeats
const DefaultControlHold = 150 * time.Millisecond

type controlLatch struct {
	throttle   float64
	throttleAt time.Time
	steer      float64
	steerAt    time.Time
	handbrake  time.Time
}

// ControlSystem applies player commands to human-driven vehicles
type ControlSystem struct {
	registry *engine.Registry
	bodies   Actuator
	clock    engine.TimeProvider
	events   EventSink
	log      zerolog.Logger

	// Hold is how long a drive command persists without a repeat
	Hold time.Duration

	latches map[engine.Handle]*controlLatch
}

// NewControlSystem creates a control system reading game time from clock
func NewControlSystem(registry *engine.Registry, bodies Actuator, clock engine.TimeProvider, events EventSink, log zerolog.Logger) *ControlSystem {
	return &ControlSystem{
		registry: registry,
		bodies:   bodies,
		clock:    clock,
		events:   events,
		log:      log.With().Str("system", "control").Logger(),
		Hold:     DefaultControlHold,
		latches:  make(map[engine.Handle]*controlLatch),
	}
}

// Apply processes this tick's vehicle commands for every live human vehicle
func (cs *ControlSystem) Apply(cmds []input.Command, tick uint64) {
	now := cs.clock.Now()
	for _, v := range cs.registry.Vehicles() {
		if v.IsAI() || v.Eliminated {
			continue
		}
		cs.applyVehicle(v, cmds, now, tick)
	}
}

func (cs *ControlSystem) applyVehicle(v *engine.Vehicle, cmds []input.Command, now time.Time, tick uint64) {
	l := cs.latch(v.Handle)

	for _, cmd := range cmds {
		switch cmd {
		case input.CommandAccelerate:
			l.throttle, l.throttleAt = v.Params.Throttle, now
		case input.CommandReverse:
			l.throttle, l.throttleAt = -constant.ReverseFactor*v.Params.Throttle, now
		case input.CommandTurnLeft:
			l.steer, l.steerAt = -constant.TurnFactor, now
		case input.CommandTurnRight:
			l.steer, l.steerAt = constant.TurnFactor, now
		case input.CommandHandbrake:
			l.handbrake = now
		case input.CommandBoost:
			cs.boost(v, now)
		case input.CommandJump:
			cs.jump(v, now)
		case input.CommandReset:
			cs.reset(v, l, tick)
		}
	}

	var c engine.Controls
	if !l.throttleAt.IsZero() && now.Sub(l.throttleAt) <= cs.Hold {
		c.Throttle = l.throttle
	}
	if !l.steerAt.IsZero() && now.Sub(l.steerAt) <= cs.Hold {
		c.Steer = l.steer
	}
	c.Handbrake = !l.handbrake.IsZero() && now.Sub(l.handbrake) <= cs.Hold

	if err := cs.bodies.Drive(v.Handle, c); err != nil {
		cs.log.Debug().Err(err).Stringer("vehicle", v.Handle).Msg("drive failed")
	}
}

// boost applies a forward impulse scaled by the boost multiplier
func (cs *ControlSystem) boost(v *engine.Vehicle, now time.Time) {
	if !v.Params.LastBoost.IsZero() && now.Sub(v.Params.LastBoost) < constant.BoostInterval {
		return
	}
	heading := v.Heading
	if h, ok := cs.bodies.Heading(v.Handle); ok {
		heading = h
	}
	forward := vmath.V3(math.Sin(heading), 0, math.Cos(heading))
	if err := cs.bodies.ApplyImpulse(v.Handle, forward.Mul(constant.BoostImpulse*v.Params.Boost)); err != nil {
		cs.log.Debug().Err(err).Stringer("vehicle", v.Handle).Msg("boost failed")
		return
	}
	v.Params.LastBoost = now
}

// jump applies the vertical impulse, gated by the jump interval
func (cs *ControlSystem) jump(v *engine.Vehicle, now time.Time) {
	if !v.Params.LastJump.IsZero() && now.Sub(v.Params.LastJump) < constant.JumpInterval {
		return
	}
	if err := cs.bodies.ApplyImpulse(v.Handle, vmath.V3(0, v.Params.JumpImpulse, 0)); err != nil {
		cs.log.Debug().Err(err).Stringer("vehicle", v.Handle).Msg("jump failed")
		return
	}
	v.Params.LastJump = now
}

func (cs *ControlSystem) reset(v *engine.Vehicle, l *controlLatch, tick uint64) {
	v.Reset()
	*l = controlLatch{}
	if err := cs.bodies.ResetBody(v.Handle, v.Spawn, v.SpawnHeading()); err != nil {
		cs.log.Warn().Err(err).Stringer("vehicle", v.Handle).Msg("reset failed")
		return
	}
	v.Heading = v.SpawnHeading()
	if cs.events != nil {
		cs.events.Push(event.GameEvent{
			Type:    event.EventVehicleReset,
			Tick:    tick,
			Payload: &event.VehicleResetPayload{Vehicle: v.Handle},
		})
	}
}

func (cs *ControlSystem) latch(h engine.Handle) *controlLatch {
	l, ok := cs.latches[h]
	if !ok {
		l = &controlLatch{}
		cs.latches[h] = l
	}
	return l
}
