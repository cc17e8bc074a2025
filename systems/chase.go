package systems

import (
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/crash-cars/engine"
	"github.com/lixenwraith/crash-cars/event"
)

// Chaser drives a vehicle toward a target for one tick
type Chaser interface {
	Chase(v, target *engine.Vehicle) error
}

// EventSink receives gameplay events
type EventSink interface {
	// Push reports false when the event was dropped
	Push(ev event.GameEvent) bool
}

// ChasePolicy keeps every AI vehicle pursuing a target
// Target selection is uniform over the live roster excluding self
type ChasePolicy struct {
	registry *engine.Registry
	chaser   Chaser
	rng      *rand.Rand
	events   EventSink
	log      zerolog.Logger

	candidates []engine.Handle
}

// NewChasePolicy creates a policy; rng must not be shared with other goroutines
func NewChasePolicy(registry *engine.Registry, chaser Chaser, rng *rand.Rand, events EventSink, log zerolog.Logger) *ChasePolicy {
	return &ChasePolicy{
		registry: registry,
		chaser:   chaser,
		rng:      rng,
		events:   events,
		log:      log.With().Str("system", "chase").Logger(),
	}
}

// Update retargets where needed and chases, once per simulation tick
func (cp *ChasePolicy) Update(tick uint64) {
	for _, v := range cp.registry.Vehicles() {
		if !v.IsAI() || v.Eliminated {
			continue
		}

		target, live := cp.registry.LiveVehicle(v.Target)
		if !live || v.ReachedTarget {
			v.ReachedTarget = false
			previous := v.Target
			next, ok := cp.pick(v)
			if !ok {
				v.Target = engine.NoHandle
				continue
			}
			v.Target = next
			target, _ = cp.registry.LiveVehicle(next)

			if cp.events != nil {
				cp.events.Push(event.GameEvent{
					Type: event.EventTargetAcquired,
					Tick: tick,
					Payload: &event.TargetAcquiredPayload{
						Pursuer:  v.Handle,
						Target:   next,
						Previous: previous,
					},
				})
			}
		}

		if err := cp.chaser.Chase(v, target); err != nil {
			cp.log.Debug().Err(err).Stringer("vehicle", v.Handle).Msg("chase failed")
		}
	}
}

// pick draws a target uniformly from live vehicles other than v
func (cp *ChasePolicy) pick(v *engine.Vehicle) (engine.Handle, bool) {
	cp.candidates = cp.candidates[:0]
	for _, c := range cp.registry.Vehicles() {
		if c == v || c.Eliminated {
			continue
		}
		cp.candidates = append(cp.candidates, c.Handle)
	}
	if len(cp.candidates) == 0 {
		return engine.NoHandle, false
	}
	return cp.candidates[cp.rng.IntN(len(cp.candidates))], true
}
