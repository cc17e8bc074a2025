package systems

import (
	"github.com/lixenwraith/crash-cars/engine"
	"github.com/lixenwraith/crash-cars/event"
	"github.com/lixenwraith/crash-cars/vmath"
)

// fakeBodies is an in-memory physics surface keyed by handle
type fakeBodies struct {
	pos      map[engine.Handle]vmath.Vec3
	vel      map[engine.Handle]vmath.Vec3
	heading  map[engine.Handle]float64
	drives   map[engine.Handle]engine.Controls
	impulses map[engine.Handle][]vmath.Vec3
	resets   []engine.Handle
}

func newFakeBodies() *fakeBodies {
	return &fakeBodies{
		pos:      make(map[engine.Handle]vmath.Vec3),
		vel:      make(map[engine.Handle]vmath.Vec3),
		heading:  make(map[engine.Handle]float64),
		drives:   make(map[engine.Handle]engine.Controls),
		impulses: make(map[engine.Handle][]vmath.Vec3),
	}
}

func (f *fakeBodies) set(h engine.Handle, pos, vel vmath.Vec3) {
	f.pos[h] = pos
	f.vel[h] = vel
}

func (f *fakeBodies) Position(h engine.Handle) (vmath.Vec3, bool) {
	p, ok := f.pos[h]
	return p, ok
}

func (f *fakeBodies) Velocity(h engine.Handle) (vmath.Vec3, bool) {
	v, ok := f.vel[h]
	return v, ok
}

func (f *fakeBodies) Heading(h engine.Handle) (float64, bool) {
	a, ok := f.heading[h]
	return a, ok
}

func (f *fakeBodies) Drive(h engine.Handle, c engine.Controls) error {
	f.drives[h] = c
	return nil
}

func (f *fakeBodies) ApplyImpulse(h engine.Handle, impulse vmath.Vec3) error {
	f.impulses[h] = append(f.impulses[h], impulse)
	return nil
}

func (f *fakeBodies) ResetBody(h engine.Handle, pos vmath.Vec3, heading float64) error {
	f.resets = append(f.resets, h)
	f.pos[h] = pos
	f.vel[h] = vmath.Zero
	f.heading[h] = heading
	return nil
}

type sliceSink struct {
	events []event.GameEvent
}

func (s *sliceSink) Push(ev event.GameEvent) bool {
	s.events = append(s.events, ev)
	return true
}
