package physics

import (
	"errors"
	"fmt"
	"time"

	"github.com/ByteArena/box2d"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/crash-cars/constant"
	"github.com/lixenwraith/crash-cars/engine"
	"github.com/lixenwraith/crash-cars/vmath"
)

var (
	// ErrWorldLocked is returned by mutating calls made while the world is stepping
	ErrWorldLocked = errors.New("physics world is locked during step")
	ErrUnknownBody = errors.New("no body for handle")
	ErrDuplicate   = errors.New("body already exists for handle")
	ErrNotDynamic  = errors.New("body is not dynamic")
)

// body tracks one box2d body plus the vertical axis the planar solver does not model
type body struct {
	b2      *box2d.B2Body
	dynamic bool

	// Vertical axis, integrated with gravity and clamped at ground level
	height  float64
	climb   float64
	inverse float64 // inverse mass, 0 for static bodies

	handbrake bool
}

// World is a top-down box2d world implementing engine.Physics
// Arena X/Z map to box2d x/y; yaw maps to negated box2d angle
type World struct {
	world    *box2d.B2World
	bodies   map[engine.Handle]*body
	listener *contactListener
	log      zerolog.Logger

	stepping bool
}

// NewWorld creates an empty world with no planar gravity
func NewWorld(log zerolog.Logger) *World {
	w := box2d.MakeB2World(box2d.MakeB2Vec2(0, 0))
	pw := &World{
		world:  &w,
		bodies: make(map[engine.Handle]*body),
		log:    log.With().Str("component", "physics").Logger(),
	}
	pw.listener = &contactListener{log: pw.log}
	pw.world.SetContactListener(pw.listener)
	return pw
}

func (w *World) SetContactHandler(handler engine.ContactHandler) {
	w.listener.handler = handler
}

// AddVehicle creates a dynamic box body for a vehicle
func (w *World) AddVehicle(h engine.Handle, pos vmath.Vec3, heading float64) error {
	if err := w.checkAdd(h); err != nil {
		return err
	}

	def := box2d.MakeB2BodyDef()
	def.Type = box2d.B2BodyType.B2_dynamicBody
	def.Position.Set(pos[0], pos[2])
	def.Angle = -heading
	def.AllowSleep = false
	def.LinearDamping = constant.VehicleLinearDamp
	def.AngularDamping = constant.VehicleAngularDamp

	b := w.world.CreateBody(&def)

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(constant.VehicleHalfWidth, constant.VehicleHalfLength)

	fixture := box2d.MakeB2FixtureDef()
	fixture.Shape = &shape
	fixture.Density = constant.VehicleDensity
	fixture.Friction = 0.3
	fixture.Restitution = 0.2
	b.CreateFixtureFromDef(&fixture)
	b.SetUserData(h)

	inverse := 0.0
	if m := b.GetMass(); m > 0 {
		inverse = 1 / m
	}

	w.bodies[h] = &body{b2: b, dynamic: true, height: pos[1], inverse: inverse}
	return nil
}

// AddPowerUp creates a static circular sensor
func (w *World) AddPowerUp(h engine.Handle, pos vmath.Vec3, radius float64) error {
	if err := w.checkAdd(h); err != nil {
		return err
	}
	if radius <= 0 {
		return fmt.Errorf("power-up %v radius %v: must be positive", h, radius)
	}

	def := box2d.MakeB2BodyDef()
	def.Type = box2d.B2BodyType.B2_staticBody
	def.Position.Set(pos[0], pos[2])
	b := w.world.CreateBody(&def)

	shape := box2d.MakeB2CircleShape()
	shape.SetRadius(radius)

	fixture := box2d.MakeB2FixtureDef()
	fixture.Shape = &shape
	fixture.IsSensor = true
	b.CreateFixtureFromDef(&fixture)
	b.SetUserData(h)

	w.bodies[h] = &body{b2: b, height: pos[1]}
	return nil
}

// AddObstacle creates a static solid box
func (w *World) AddObstacle(h engine.Handle, pos vmath.Vec3, halfX, halfZ float64) error {
	if err := w.checkAdd(h); err != nil {
		return err
	}

	def := box2d.MakeB2BodyDef()
	def.Type = box2d.B2BodyType.B2_staticBody
	def.Position.Set(pos[0], pos[2])
	b := w.world.CreateBody(&def)

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(halfX, halfZ)
	b.CreateFixture(&shape, 0)
	b.SetUserData(h)

	w.bodies[h] = &body{b2: b, height: pos[1]}
	return nil
}

func (w *World) checkAdd(h engine.Handle) error {
	if w.stepping {
		return ErrWorldLocked
	}
	if !h.Valid() {
		return fmt.Errorf("add body: %w", engine.ErrUnknownHandle)
	}
	if _, ok := w.bodies[h]; ok {
		return fmt.Errorf("%v: %w", h, ErrDuplicate)
	}
	return nil
}

func (w *World) Position(h engine.Handle) (vmath.Vec3, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return vmath.Zero, false
	}
	p := b.b2.GetPosition()
	return vmath.V3(p.X, b.height, p.Y), true
}

func (w *World) Velocity(h engine.Handle) (vmath.Vec3, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return vmath.Zero, false
	}
	v := b.b2.GetLinearVelocity()
	return vmath.V3(v.X, b.climb, v.Y), true
}

func (w *World) Heading(h engine.Handle) (float64, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return 0, false
	}
	return vmath.WrapAngle(-b.b2.GetAngle()), true
}

// ApplyImpulse applies the planar part through box2d and the vertical part to the height axis
func (w *World) ApplyImpulse(h engine.Handle, impulse vmath.Vec3) error {
	b, err := w.mutable(h)
	if err != nil {
		return err
	}
	if !b.dynamic {
		return fmt.Errorf("%v: %w", h, ErrNotDynamic)
	}
	if !vmath.IsFinite(impulse) {
		return fmt.Errorf("%v: non-finite impulse", h)
	}

	b.b2.ApplyLinearImpulse(box2d.MakeB2Vec2(impulse[0], impulse[2]), b.b2.GetWorldCenter(), true)
	b.climb += impulse[1] * b.inverse
	return nil
}

func (w *World) RemoveBody(h engine.Handle) error {
	b, err := w.mutable(h)
	if err != nil {
		return err
	}
	w.world.DestroyBody(b.b2)
	delete(w.bodies, h)
	return nil
}

// ResetBody teleports a body and clears its motion
func (w *World) ResetBody(h engine.Handle, pos vmath.Vec3, heading float64) error {
	b, err := w.mutable(h)
	if err != nil {
		return err
	}
	b.b2.SetTransform(box2d.MakeB2Vec2(pos[0], pos[2]), -heading)
	b.b2.SetLinearVelocity(box2d.MakeB2Vec2(0, 0))
	b.b2.SetAngularVelocity(0)
	b.height, b.climb = pos[1], 0
	b.handbrake = false
	return nil
}

func (w *World) mutable(h engine.Handle) (*body, error) {
	if w.stepping {
		return nil, ErrWorldLocked
	}
	b, ok := w.bodies[h]
	if !ok {
		return nil, fmt.Errorf("%v: %w", h, ErrUnknownBody)
	}
	return b, nil
}

// Simulate advances the world by dt
// Contact and trigger callbacks run inside the box2d step, with the world locked
func (w *World) Simulate(dt time.Duration) error {
	if w.stepping {
		return ErrWorldLocked
	}
	if dt <= 0 {
		return nil
	}
	seconds := dt.Seconds()

	for _, b := range w.bodies {
		if b.dynamic {
			applyGrip(b)
		}
	}

	w.stepping = true
	func() {
		defer func() { w.stepping = false }()
		w.world.Step(seconds, constant.VelocityIterations, constant.PositionIterations)
	}()

	for _, b := range w.bodies {
		if b.dynamic {
			integrateHeight(b, seconds)
		}
	}

	return nil
}

// integrateHeight advances the vertical axis with explicit Euler and lands on the ground plane
func integrateHeight(b *body, dt float64) {
	if b.height <= 0 && b.climb <= 0 {
		b.height, b.climb = 0, 0
		return
	}
	b.climb += constant.Gravity * dt
	b.height += b.climb * dt
	if b.height <= 0 {
		b.height, b.climb = 0, 0
	}
}

// Close destroys all bodies
func (w *World) Close() {
	for h, b := range w.bodies {
		w.world.DestroyBody(b.b2)
		delete(w.bodies, h)
	}
	w.listener.handler = nil
}

var _ engine.Physics = (*World)(nil)
