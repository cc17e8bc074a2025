package event

import "time"

// EventType represents the type of gameplay event
type EventType int

const (
	// EventVehicleHit signals a knockback was applied to a victim
	// Trigger: Orchestrator drain phase, after the physics step
	// Consumer: AudioHandler, LogHandler, MetricsHandler | Payload: *VehicleHitPayload
	EventVehicleHit EventType = iota

	// EventPowerUpCollected signals a triggered power-up was destroyed
	// Trigger: Orchestrator drain phase | Payload: *PowerUpCollectedPayload
	EventPowerUpCollected

	// EventVehicleEliminated signals a vehicle left the arena
	// Trigger: Orchestrator advance phase | Payload: *VehicleEliminatedPayload
	EventVehicleEliminated

	// EventVehicleReset signals a reset command restored a vehicle to spawn
	// Trigger: ControlSystem | Payload: *VehicleResetPayload
	EventVehicleReset

	// EventTargetAcquired signals the chase policy assigned a new pursuit target
	// Trigger: ChasePolicy | Payload: *TargetAcquiredPayload
	EventTargetAcquired

	// EventPauseChanged signals the session paused or resumed
	// Trigger: Orchestrator input phase | Payload: *PauseChangedPayload
	EventPauseChanged

	// EventVolumeChanged signals a mute toggle or volume step
	// Trigger: Orchestrator input phase | Payload: *VolumeChangedPayload
	EventVolumeChanged
)

// String returns the name of the event type for logs
func (e EventType) String() string {
	switch e {
	case EventVehicleHit:
		return "VehicleHit"
	case EventPowerUpCollected:
		return "PowerUpCollected"
	case EventVehicleEliminated:
		return "VehicleEliminated"
	case EventVehicleReset:
		return "VehicleReset"
	case EventTargetAcquired:
		return "TargetAcquired"
	case EventPauseChanged:
		return "PauseChanged"
	case EventVolumeChanged:
		return "VolumeChanged"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Tick      uint64
	Timestamp time.Time
}
