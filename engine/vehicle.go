package engine

import (
	"time"

	"github.com/lixenwraith/crash-cars/constant"
	"github.com/lixenwraith/crash-cars/vmath"
)

// Controller identifies who drives a vehicle
type Controller uint8

const (
	ControllerHuman Controller = iota
	ControllerAI
)

func (c Controller) String() string {
	if c == ControllerAI {
		return "ai"
	}
	return "human"
}

// VehicleParams holds mutable gameplay tunables
type VehicleParams struct {
	Throttle    float64
	Boost       float64 // boost multiplier, amplified by boost pickups
	JumpImpulse float64

	// Cooldown bookkeeping in game time; zero means never used
	LastJump  time.Time
	LastBoost time.Time
}

// DefaultVehicleParams returns the startup tunables
func DefaultVehicleParams() VehicleParams {
	return VehicleParams{
		Throttle:    constant.ThrottleDefault,
		Boost:       constant.BoostDefault,
		JumpImpulse: constant.JumpImpulse,
	}
}

// Vehicle is the per-vehicle gameplay state
// Kinematic fields are a per-tick snapshot of the physics collaborator's bodies
type Vehicle struct {
	Handle     Handle
	Name       string
	Controller Controller
	Spawn      vmath.Vec3

	// Snapshot, refreshed by the orchestrator after each step
	Position vmath.Vec3
	Velocity vmath.Vec3
	Heading  float64

	CollisionCoefficient float64
	Params               VehicleParams

	// Chase AI
	Target        Handle
	ReachedTarget bool

	Eliminated bool

	// Deferred knockback: written by RecordKnockback, cleared by TakeKnockback
	collided   bool
	forceToAdd vmath.Vec3
}

// NewVehicle creates a vehicle with default tunables at spawn
func NewVehicle(name string, controller Controller, spawn vmath.Vec3) *Vehicle {
	return &Vehicle{
		Name:                 name,
		Controller:           controller,
		Spawn:                spawn,
		Position:             spawn,
		CollisionCoefficient: constant.CollisionCoefficientInitial,
		Params:               DefaultVehicleParams(),
	}
}

// IsAI reports whether the chase policy drives this vehicle
func (v *Vehicle) IsAI() bool {
	return v.Controller == ControllerAI
}

// Collided reports whether a knockback is pending
func (v *Vehicle) Collided() bool {
	return v.collided
}

// PendingForce returns the pending knockback without consuming it
func (v *Vehicle) PendingForce() vmath.Vec3 {
	return v.forceToAdd
}

// RecordKnockback schedules an impulse for the next drain phase
// Several hits within one step accumulate; non-finite impulses are rejected
func (v *Vehicle) RecordKnockback(impulse vmath.Vec3) bool {
	if !vmath.IsFinite(impulse) {
		return false
	}
	sum := v.forceToAdd.Add(impulse)
	if !vmath.IsFinite(sum) {
		return false
	}
	v.forceToAdd = sum
	v.collided = true
	return true
}

// TakeKnockback returns and clears the pending impulse
func (v *Vehicle) TakeKnockback() (vmath.Vec3, bool) {
	if !v.collided {
		return vmath.Zero, false
	}
	f := v.forceToAdd
	v.forceToAdd = vmath.Zero
	v.collided = false
	return f, true
}

// Reset restores spawn-time gameplay state
// Deferred knockback is left to the drain phase, the physics body is reset by the caller
func (v *Vehicle) Reset() {
	v.Position = v.Spawn
	v.Velocity = vmath.Zero
	v.CollisionCoefficient = constant.CollisionCoefficientInitial
	v.Params = DefaultVehicleParams()
	v.Target = NoHandle
	v.ReachedTarget = false
}

// Speed returns the snapshot speed
func (v *Vehicle) Speed() float64 {
	return vmath.Mag(v.Velocity)
}

// SpawnHeading faces the arena center from the spawn point
func (v *Vehicle) SpawnHeading() float64 {
	return vmath.HeadingTo(v.Spawn, vmath.Zero)
}
