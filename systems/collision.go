package systems

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/crash-cars/constant"
	"github.com/lixenwraith/crash-cars/engine"
	"github.com/lixenwraith/crash-cars/vmath"
)

// Kinematics is the read-only body query surface of the physics collaborator
// Safe to call from inside contact callbacks
type Kinematics interface {
	Position(h engine.Handle) (vmath.Vec3, bool)
	Velocity(h engine.Handle) (vmath.Vec3, bool)
}

// KnockbackProfile holds the knockback tunables
// Magnitude = Base + PerCoefficient * coeff * (1 + SpeedFactor * max(speed/SpeedReference, 0))
type KnockbackProfile struct {
	Base            float64
	PerCoefficient  float64
	SpeedFactor     float64
	SpeedReference  float64
	CoefficientStep float64
}

// DefaultKnockbackProfile returns the stock arcade tuning
func DefaultKnockbackProfile() KnockbackProfile {
	return KnockbackProfile{
		Base:            constant.KnockbackBase,
		PerCoefficient:  constant.KnockbackPerCoefficient,
		SpeedFactor:     constant.KnockbackSpeedFactor,
		SpeedReference:  constant.KnockbackSpeedReference,
		CoefficientStep: constant.CollisionCoefficientStep,
	}
}

// Magnitude computes the knockback impulse magnitude
// The speed multiplier has no upper bound
func (p KnockbackProfile) Magnitude(coeff, attackerSpeed float64) float64 {
	ratio := max(attackerSpeed/p.SpeedReference, 0)
	return p.Base + p.PerCoefficient*coeff*(1+p.SpeedFactor*ratio)
}

// Knockback computes the magnitude with the default profile
func Knockback(coeff, attackerSpeed float64) float64 {
	return DefaultKnockbackProfile().Magnitude(coeff, attackerSpeed)
}

// CollisionResolver turns vehicle-vehicle contacts into deferred knockback
// Runs inside the physics step: reads kinematics, writes only vehicle gameplay state
type CollisionResolver struct {
	registry *engine.Registry
	bodies   Kinematics
	profile  KnockbackProfile
	log      zerolog.Logger

	resolved uint64
	dropped  uint64
}

// NewCollisionResolver creates a resolver; bodies may be nil to use vehicle snapshots
func NewCollisionResolver(registry *engine.Registry, bodies Kinematics, profile KnockbackProfile, log zerolog.Logger) *CollisionResolver {
	return &CollisionResolver{
		registry: registry,
		bodies:   bodies,
		profile:  profile,
		log:      log.With().Str("system", "collision").Logger(),
	}
}

// OnContact classifies attacker and victim and records the victim's knockback
func (cr *CollisionResolver) OnContact(a, b engine.Handle) {
	va, okA := cr.registry.LiveVehicle(a)
	vb, okB := cr.registry.LiveVehicle(b)
	if !okA || !okB {
		cr.dropped++
		cr.log.Debug().Stringer("a", a).Stringer("b", b).Msg("contact dropped: not a vehicle pair")
		return
	}
	if va == vb {
		cr.dropped++
		return
	}

	posA, velA := cr.kinematics(va)
	posB, velB := cr.kinematics(vb)

	// Exact tie keeps the first-listed body as attacker
	attacker, victim := va, vb
	attackerPos, victimPos, attackerVel := posA, posB, velA
	if vmath.MagSq(velB) > vmath.MagSq(velA) {
		attacker, victim = vb, va
		attackerPos, victimPos, attackerVel = posB, posA, velB
	}

	speed := math.Sqrt(vmath.MagSq(attackerVel))
	magnitude := cr.profile.Magnitude(victim.CollisionCoefficient, speed)

	// Coincident positions have no direction: the hit still escalates, without force
	if dir, ok := vmath.SafeNormalize(victimPos.Sub(attackerPos)); !ok {
		magnitude = 0
		cr.log.Debug().Stringer("attacker", attacker.Handle).Stringer("victim", victim.Handle).
			Msg("knockback skipped: coincident positions")
	} else if !victim.RecordKnockback(dir.Mul(magnitude)) {
		cr.dropped++
		cr.log.Debug().Stringer("victim", victim.Handle).Float64("magnitude", magnitude).
			Msg("contact dropped: non-finite impulse")
		return
	}

	victim.CollisionCoefficient += cr.profile.CoefficientStep
	cr.resolved++

	cr.log.Debug().
		Stringer("attacker", attacker.Handle).
		Stringer("victim", victim.Handle).
		Float64("speed", speed).
		Float64("magnitude", magnitude).
		Float64("coefficient", victim.CollisionCoefficient).
		Msg("knockback recorded")
}

// kinematics prefers live physics state, falling back to the tick snapshot
func (cr *CollisionResolver) kinematics(v *engine.Vehicle) (vmath.Vec3, vmath.Vec3) {
	pos, vel := v.Position, v.Velocity
	if cr.bodies == nil {
		return pos, vel
	}
	if p, ok := cr.bodies.Position(v.Handle); ok {
		pos = p
	}
	if vl, ok := cr.bodies.Velocity(v.Handle); ok {
		vel = vl
	}
	return pos, vel
}

// Resolved returns the number of contacts that produced a knockback
func (cr *CollisionResolver) Resolved() uint64 {
	return cr.resolved
}

// Dropped returns the number of rejected contacts
func (cr *CollisionResolver) Dropped() uint64 {
	return cr.dropped
}
