package event

import (
	"github.com/lixenwraith/crash-cars/engine"
	"github.com/lixenwraith/crash-cars/vmath"
)

// VehicleHitPayload describes an applied knockback
type VehicleHitPayload struct {
	Victim      engine.Handle
	Impulse     vmath.Vec3
	Magnitude   float64
	Position    vmath.Vec3
	Coefficient float64 // victim coefficient after the hit
}

// PowerUpCollectedPayload describes a consumed pickup
type PowerUpCollectedPayload struct {
	PowerUp  engine.Handle
	Type     engine.PowerUpType
	Position vmath.Vec3
}

// VehicleEliminatedPayload describes a vehicle leaving the arena
type VehicleEliminatedPayload struct {
	Vehicle  engine.Handle
	Position vmath.Vec3
}

// VehicleResetPayload describes a vehicle returned to spawn
type VehicleResetPayload struct {
	Vehicle engine.Handle
}

// TargetAcquiredPayload describes a chase retarget
type TargetAcquiredPayload struct {
	Pursuer  engine.Handle
	Target   engine.Handle
	Previous engine.Handle
}

// PauseChangedPayload carries the new pause state
type PauseChangedPayload struct {
	Paused bool
}

// VolumeChangedPayload carries the new audio state
type VolumeChangedPayload struct {
	Volume float64
	Muted  bool
}
