package systems

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/crash-cars/constant"
	"github.com/lixenwraith/crash-cars/engine"
)

// TriggerDispatcher applies power-up effects on trigger overlap
// The power-up is only marked; destruction happens in the drain phase
type TriggerDispatcher struct {
	registry *engine.Registry
	log      zerolog.Logger

	dispatched uint64
	dropped    uint64
}

// NewTriggerDispatcher creates a dispatcher
func NewTriggerDispatcher(registry *engine.Registry, log zerolog.Logger) *TriggerDispatcher {
	return &TriggerDispatcher{
		registry: registry,
		log:      log.With().Str("system", "trigger").Logger(),
	}
}

// OnTrigger validates both participants and applies the pickup
func (td *TriggerDispatcher) OnTrigger(trigger, other engine.Handle) {
	p, ok := td.registry.LivePowerUp(trigger)
	if !ok {
		td.dropped++
		td.log.Debug().Stringer("trigger", trigger).Msg("trigger dropped: stale power-up")
		return
	}
	if p.Triggered {
		return
	}
	v, ok := td.registry.LiveVehicle(other)
	if !ok {
		td.dropped++
		td.log.Debug().Stringer("trigger", trigger).Stringer("other", other).Msg("trigger dropped: not a vehicle")
		return
	}

	td.apply(p.Type, v)
	p.Triggered = true
	td.dispatched++

	td.log.Debug().Stringer("powerup", p.Handle).Stringer("type", p.Type).
		Stringer("vehicle", v.Handle).Msg("power-up triggered")
}

func (td *TriggerDispatcher) apply(t engine.PowerUpType, v *engine.Vehicle) {
	switch t {
	case engine.PowerUpBoost:
		v.Params.Boost *= constant.BoostPickupMultiplier
	case engine.PowerUpJump:
		// Zero last-jump makes the next jump available immediately
		v.Params.LastJump = time.Time{}
	case engine.PowerUpDamage, engine.PowerUpHealth:
		// Effect points, no payload
	}
}

// Dispatched returns the number of triggered pickups
func (td *TriggerDispatcher) Dispatched() uint64 {
	return td.dispatched
}

// Dropped returns the number of rejected overlaps
func (td *TriggerDispatcher) Dropped() uint64 {
	return td.dropped
}
