package systems

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/crash-cars/constant"
	"github.com/lixenwraith/crash-cars/engine"
	"github.com/lixenwraith/crash-cars/event"
	"github.com/lixenwraith/crash-cars/status"
)

// AudioHandler forwards drained gameplay events to the audio collaborator
type AudioHandler struct {
	audio engine.Audio
}

func NewAudioHandler(audio engine.Audio) *AudioHandler {
	return &AudioHandler{audio: audio}
}

func (h *AudioHandler) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventVehicleHit,
		event.EventPowerUpCollected,
		event.EventPauseChanged,
		event.EventVolumeChanged,
	}
}

func (h *AudioHandler) HandleEvent(_ *engine.Registry, ev event.GameEvent) {
	switch ev.Type {
	case event.EventVehicleHit:
		if p, ok := ev.Payload.(*event.VehicleHitPayload); ok {
			// Base knockback plays at unit strength
			h.audio.PlayCollision(p.Position, p.Magnitude/constant.KnockbackBase)
		}
	case event.EventPowerUpCollected:
		if p, ok := ev.Payload.(*event.PowerUpCollectedPayload); ok {
			h.audio.PlayPickup(p.Type, p.Position)
		}
	case event.EventPauseChanged, event.EventVolumeChanged:
		h.audio.PlayMenu()
	}
}

// LogHandler writes gameplay events to the session log
type LogHandler struct {
	log zerolog.Logger
}

func NewLogHandler(log zerolog.Logger) *LogHandler {
	return &LogHandler{log: log.With().Str("system", "events").Logger()}
}

func (h *LogHandler) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventVehicleHit,
		event.EventPowerUpCollected,
		event.EventVehicleEliminated,
		event.EventVehicleReset,
		event.EventTargetAcquired,
		event.EventPauseChanged,
		event.EventVolumeChanged,
	}
}

func (h *LogHandler) HandleEvent(reg *engine.Registry, ev event.GameEvent) {
	switch p := ev.Payload.(type) {
	case *event.VehicleHitPayload:
		h.log.Debug().Uint64("tick", ev.Tick).Str("victim", name(reg, p.Victim)).
			Float64("magnitude", p.Magnitude).Float64("coefficient", p.Coefficient).Msg("vehicle hit")
	case *event.PowerUpCollectedPayload:
		h.log.Info().Uint64("tick", ev.Tick).Stringer("type", p.Type).Msg("power-up collected")
	case *event.VehicleEliminatedPayload:
		h.log.Info().Uint64("tick", ev.Tick).Str("vehicle", name(reg, p.Vehicle)).
			Float64("x", p.Position[0]).Float64("z", p.Position[2]).Msg("vehicle eliminated")
	case *event.VehicleResetPayload:
		h.log.Info().Uint64("tick", ev.Tick).Str("vehicle", name(reg, p.Vehicle)).Msg("vehicle reset")
	case *event.TargetAcquiredPayload:
		h.log.Debug().Uint64("tick", ev.Tick).Str("pursuer", name(reg, p.Pursuer)).
			Str("target", name(reg, p.Target)).Msg("target acquired")
	case *event.PauseChangedPayload:
		h.log.Info().Bool("paused", p.Paused).Msg("pause toggled")
	case *event.VolumeChangedPayload:
		h.log.Debug().Float64("volume", p.Volume).Bool("muted", p.Muted).Msg("volume changed")
	}
}

func name(reg *engine.Registry, h engine.Handle) string {
	if v, ok := reg.Vehicle(h); ok {
		return v.Name
	}
	return h.String()
}

// MetricsHandler counts gameplay events into the status registry
type MetricsHandler struct {
	hits       *atomic.Int64
	knockback  *status.AtomicFloat
	pickups    *atomic.Int64
	eliminated *atomic.Int64
	retargets  *atomic.Int64
}

func NewMetricsHandler(reg *status.Registry) *MetricsHandler {
	return &MetricsHandler{
		hits:       reg.Int(status.CollisionHits),
		knockback:  reg.Float(status.KnockbackTotal),
		pickups:    reg.Int(status.PowerUpPickups),
		eliminated: reg.Int(status.VehiclesOut),
		retargets:  reg.Int(status.AITargets),
	}
}

func (h *MetricsHandler) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventVehicleHit,
		event.EventPowerUpCollected,
		event.EventVehicleEliminated,
		event.EventTargetAcquired,
	}
}

func (h *MetricsHandler) HandleEvent(_ *engine.Registry, ev event.GameEvent) {
	switch ev.Type {
	case event.EventVehicleHit:
		h.hits.Add(1)
		if p, ok := ev.Payload.(*event.VehicleHitPayload); ok {
			h.knockback.Add(p.Magnitude)
		}
	case event.EventPowerUpCollected:
		h.pickups.Add(1)
	case event.EventVehicleEliminated:
		h.eliminated.Add(1)
	case event.EventTargetAcquired:
		h.retargets.Add(1)
	}
}
