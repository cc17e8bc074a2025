package constant

import "time"

// Knockback
// Impulse = Base + PerCoefficient * coeff * (1 + SpeedFactor * attackerSpeed / SpeedReference)
const (
	KnockbackBase           = 100000.0
	KnockbackPerCoefficient = 20000.0
	KnockbackSpeedFactor    = 3.0
	KnockbackSpeedReference = 70.0

	// CollisionCoefficientStep is added to the victim's coefficient per hit
	CollisionCoefficientStep = 0.5

	// CollisionCoefficientInitial is the coefficient a vehicle starts (and resets) with
	CollisionCoefficientInitial = 1.0
)

// Power-ups
const (
	// BoostPickupMultiplier scales the vehicle boost multiplier on boost pickup
	BoostPickupMultiplier = 1.25

	// PowerUpTriggerRadius is the trigger volume radius
	PowerUpTriggerRadius = 1.5
)

// Vehicle Controls
const (
	ThrottleDefault = 1.0
	ReverseFactor   = 0.5
	TurnFactor      = 0.5
	BoostDefault    = 1.0

	// JumpImpulse is the vertical impulse applied by a jump
	JumpImpulse = 15000.0

	// JumpInterval gates consecutive jumps
	JumpInterval = 2 * time.Second

	// BoostImpulse is the forward impulse of a boost before the boost multiplier
	BoostImpulse = 8000.0

	// BoostInterval gates consecutive boosts
	BoostInterval = 1 * time.Second
)

// Chase AI
const (
	// ArrivalRadius is the distance at which a pursuer counts as arrived
	ArrivalRadius = 4.0

	// PursuitSteerGain converts heading error (radians) to steer input
	PursuitSteerGain = 1.5

	// PursuitSlowRadius is the distance inside which throttle ramps down
	PursuitSlowRadius = 12.0

	// PursuitMinThrottle keeps pursuers moving inside the slow radius
	PursuitMinThrottle = 0.35
)

// Session roster
const (
	// DefaultAIVehicles is the number of chase-AI opponents next to the player
	DefaultAIVehicles = 3

	// DefaultPowerUps is the number of pickups placed at session start
	DefaultPowerUps = 4

	// PlayerName labels the human vehicle in the HUD and logs
	PlayerName = "player"
)
