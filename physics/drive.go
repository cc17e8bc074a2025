package physics

import (
	"fmt"

	"github.com/ByteArena/box2d"

	"github.com/lixenwraith/crash-cars/constant"
	"github.com/lixenwraith/crash-cars/engine"
	"github.com/lixenwraith/crash-cars/vmath"
)

// Drive applies engine force and steering torque for the coming step
// Forces are cleared by box2d after each step, so Drive is called every tick
func (w *World) Drive(h engine.Handle, c engine.Controls) error {
	b, err := w.mutable(h)
	if err != nil {
		return err
	}
	if !b.dynamic {
		return fmt.Errorf("%v: %w", h, ErrNotDynamic)
	}

	// Airborne vehicles have no traction
	if b.height > 0 {
		return nil
	}

	throttle := vmath.Clamp(c.Throttle, -1, 1)
	steer := vmath.Clamp(c.Steer, -1, 1)

	forward := b.b2.GetWorldVector(box2d.MakeB2Vec2(0, 1))
	b.b2.ApplyForceToCenter(box2d.MakeB2Vec2(forward.X*throttle*constant.EngineForce, forward.Y*throttle*constant.EngineForce), true)

	// Positive steer raises yaw, which is a clockwise box2d rotation
	b.b2.ApplyTorque(-steer*constant.SteerTorque, true)

	b.handbrake = c.Handbrake
	if c.Handbrake {
		b.b2.SetLinearDamping(constant.HandbrakeDamping)
	} else {
		b.b2.SetLinearDamping(constant.VehicleLinearDamp)
	}
	return nil
}

// applyGrip cancels part of the sideways velocity so vehicles track their heading
func applyGrip(b *body) {
	if b.height > 0 {
		return
	}
	grip := constant.LateralGrip
	if b.handbrake {
		grip = constant.HandbrakeLateralGrip
	}

	right := b.b2.GetWorldVector(box2d.MakeB2Vec2(1, 0))
	vel := b.b2.GetLinearVelocity()
	lateral := right.X*vel.X + right.Y*vel.Y
	mass := b.b2.GetMass()

	impulse := box2d.MakeB2Vec2(-right.X*lateral*mass*grip, -right.Y*lateral*mass*grip)
	b.b2.ApplyLinearImpulse(impulse, b.b2.GetWorldCenter(), true)
}
