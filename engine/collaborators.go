package engine

import (
	"time"

	"github.com/lixenwraith/crash-cars/vmath"
)

// ContactHandler receives physics callbacks
// Called synchronously from inside Physics.Simulate; implementations must only
// record state and query positions/velocities, never mutate the physics world
type ContactHandler interface {
	// OnContact is called once per touching body pair
	OnContact(a, b Handle)

	// OnTrigger is called when other starts overlapping trigger volume trigger
	OnTrigger(trigger, other Handle)
}

// Controls is a per-tick drive input for one vehicle
type Controls struct {
	Throttle  float64 // -1..1, negative reverses
	Steer     float64 // -1..1, positive turns right (increasing heading)
	Handbrake bool
}

// Physics is the rigid body collaborator
type Physics interface {
	AddVehicle(h Handle, pos vmath.Vec3, heading float64) error
	AddPowerUp(h Handle, pos vmath.Vec3, radius float64) error
	AddObstacle(h Handle, pos vmath.Vec3, halfX, halfZ float64) error

	Position(h Handle) (vmath.Vec3, bool)
	Velocity(h Handle) (vmath.Vec3, bool)
	Heading(h Handle) (float64, bool)

	// ApplyImpulse applies an instantaneous impulse at the body's center of mass
	ApplyImpulse(h Handle, impulse vmath.Vec3) error
	Drive(h Handle, c Controls) error
	RemoveBody(h Handle) error
	ResetBody(h Handle, pos vmath.Vec3, heading float64) error

	SetContactHandler(handler ContactHandler)

	// Simulate advances the world by dt and invokes the contact handler before returning
	Simulate(dt time.Duration) error

	Close()
}

// Audio is the fire-and-forget sound collaborator
type Audio interface {
	PlayCollision(pos vmath.Vec3, strength float64)
	PlayPickup(t PowerUpType, pos vmath.Vec3)
	PlayMenu()
	SetListener(pos vmath.Vec3)
	ToggleMute() bool
	AdjustVolume(delta float64)
	Volume() float64
	Muted() bool
}

// VehicleView is the read-only render snapshot of a vehicle
type VehicleView struct {
	Handle               Handle
	Name                 string
	Controller           Controller
	Position             vmath.Vec3
	Heading              float64
	Speed                float64
	CollisionCoefficient float64
	Boost                float64
	Target               Handle
	Eliminated           bool
}

// PowerUpView is the read-only render snapshot of a live power-up
type PowerUpView struct {
	Handle   Handle
	Type     PowerUpType
	Position vmath.Vec3
}

// ObstacleView is the render snapshot of a static box
type ObstacleView struct {
	Handle       Handle
	Position     vmath.Vec3
	HalfX, HalfZ float64
}

// Frame is everything a renderer may read for one render pass
type Frame struct {
	Tick       uint64
	Paused     bool
	Vehicles   []VehicleView
	PowerUps   []PowerUpView
	Obstacles  []ObstacleView
	ArenaHalf  float64
	Volume     float64
	Muted      bool
	SimCost    time.Duration
	RenderCost time.Duration
	Hits       int64
	Pickups    int64
}

// Renderer draws frames; no simulation logic depends on its output
type Renderer interface {
	Render(f *Frame) error
}

// NopAudio discards all sound requests, used when no audio device is available
type NopAudio struct {
	volume float64
	muted  bool
}

func (n *NopAudio) PlayCollision(vmath.Vec3, float64)  {}
func (n *NopAudio) PlayPickup(PowerUpType, vmath.Vec3) {}
func (n *NopAudio) PlayMenu()                          {}
func (n *NopAudio) SetListener(vmath.Vec3)             {}
func (n *NopAudio) ToggleMute() bool                   { n.muted = !n.muted; return n.muted }
func (n *NopAudio) AdjustVolume(d float64)             { n.volume = vmath.Clamp(n.volume+d, 0, 1) }
func (n *NopAudio) Volume() float64                    { return n.volume }
func (n *NopAudio) Muted() bool                        { return n.muted }
