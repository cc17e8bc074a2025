package session

import (
	"errors"
	"time"

	"github.com/lixenwraith/crash-cars/engine"
	"github.com/lixenwraith/crash-cars/input"
	"github.com/lixenwraith/crash-cars/vmath"
)

// fakePhysics records every call and lets a test script the contact callbacks of a step
type fakePhysics struct {
	handler engine.ContactHandler

	pos     map[engine.Handle]vmath.Vec3
	vel     map[engine.Handle]vmath.Vec3
	heading map[engine.Handle]float64
	radius  map[engine.Handle]float64
	boxes   map[engine.Handle][2]float64

	impulses map[engine.Handle][]vmath.Vec3
	drives   map[engine.Handle]engine.Controls
	removed  []engine.Handle

	steps   int
	onStep  func(h engine.ContactHandler)
	stepErr error
	closed  bool
}

func newFakePhysics() *fakePhysics {
	return &fakePhysics{
		pos:      make(map[engine.Handle]vmath.Vec3),
		vel:      make(map[engine.Handle]vmath.Vec3),
		heading:  make(map[engine.Handle]float64),
		radius:   make(map[engine.Handle]float64),
		boxes:    make(map[engine.Handle][2]float64),
		impulses: make(map[engine.Handle][]vmath.Vec3),
		drives:   make(map[engine.Handle]engine.Controls),
	}
}

func (f *fakePhysics) AddVehicle(h engine.Handle, pos vmath.Vec3, heading float64) error {
	f.pos[h] = pos
	f.vel[h] = vmath.Zero
	f.heading[h] = heading
	return nil
}

func (f *fakePhysics) AddPowerUp(h engine.Handle, pos vmath.Vec3, radius float64) error {
	f.pos[h] = pos
	f.radius[h] = radius
	return nil
}

func (f *fakePhysics) AddObstacle(h engine.Handle, pos vmath.Vec3, halfX, halfZ float64) error {
	f.pos[h] = pos
	f.boxes[h] = [2]float64{halfX, halfZ}
	return nil
}

func (f *fakePhysics) Position(h engine.Handle) (vmath.Vec3, bool) {
	p, ok := f.pos[h]
	return p, ok
}

func (f *fakePhysics) Velocity(h engine.Handle) (vmath.Vec3, bool) {
	v, ok := f.vel[h]
	return v, ok
}

func (f *fakePhysics) Heading(h engine.Handle) (float64, bool) {
	a, ok := f.heading[h]
	return a, ok
}

func (f *fakePhysics) ApplyImpulse(h engine.Handle, impulse vmath.Vec3) error {
	if _, ok := f.pos[h]; !ok {
		return errors.New("unknown body")
	}
	f.impulses[h] = append(f.impulses[h], impulse)
	return nil
}

func (f *fakePhysics) Drive(h engine.Handle, c engine.Controls) error {
	f.drives[h] = c
	return nil
}

func (f *fakePhysics) RemoveBody(h engine.Handle) error {
	delete(f.pos, h)
	delete(f.vel, h)
	delete(f.heading, h)
	f.removed = append(f.removed, h)
	return nil
}

func (f *fakePhysics) ResetBody(h engine.Handle, pos vmath.Vec3, heading float64) error {
	f.pos[h] = pos
	f.vel[h] = vmath.Zero
	f.heading[h] = heading
	return nil
}

func (f *fakePhysics) SetContactHandler(handler engine.ContactHandler) {
	f.handler = handler
}

func (f *fakePhysics) Simulate(time.Duration) error {
	if f.stepErr != nil {
		return f.stepErr
	}
	f.steps++
	if f.onStep != nil {
		f.onStep(f.handler)
		f.onStep = nil
	}
	return nil
}

func (f *fakePhysics) Close() {
	f.closed = true
}

// fakeAudio counts sound requests on top of the volume bookkeeping of NopAudio
type fakeAudio struct {
	engine.NopAudio
	collisions int
	pickups    int
	menus      int
	listener   vmath.Vec3
	cleaned    bool
}

func (a *fakeAudio) PlayCollision(vmath.Vec3, float64)         { a.collisions++ }
func (a *fakeAudio) PlayPickup(engine.PowerUpType, vmath.Vec3) { a.pickups++ }
func (a *fakeAudio) PlayMenu()                                 { a.menus++ }
func (a *fakeAudio) SetListener(pos vmath.Vec3)                { a.listener = pos }
func (a *fakeAudio) Cleanup()                                  { a.cleaned = true }

type fakeRenderer struct {
	frames []engine.Frame
	err    error
}

func (r *fakeRenderer) Render(f *engine.Frame) error {
	r.frames = append(r.frames, *f)
	return r.err
}

// scriptedInput returns one batch per Poll, then nothing
type scriptedInput struct {
	batches [][]input.Command
}

func (s *scriptedInput) push(cmds ...input.Command) {
	s.batches = append(s.batches, cmds)
}

func (s *scriptedInput) Poll() []input.Command {
	if len(s.batches) == 0 {
		return nil
	}
	b := s.batches[0]
	s.batches = s.batches[1:]
	return b
}
