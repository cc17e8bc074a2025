package systems

import (
	"math/rand/v2"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/crash-cars/engine"
	"github.com/lixenwraith/crash-cars/event"
	"github.com/lixenwraith/crash-cars/vmath"
)

type recordingChaser struct {
	calls map[engine.Handle]engine.Handle
}

func (c *recordingChaser) Chase(v, target *engine.Vehicle) error {
	if c.calls == nil {
		c.calls = make(map[engine.Handle]engine.Handle)
	}
	c.calls[v.Handle] = target.Handle
	return nil
}

func roster(n int, ai ...int) *engine.Registry {
	reg := engine.NewRegistry()
	for i := 0; i < n; i++ {
		c := engine.ControllerHuman
		for _, a := range ai {
			if a == i {
				c = engine.ControllerAI
			}
		}
		reg.AddVehicle(engine.NewVehicle("car", c, vmath.V3(float64(i*10), 0, 0)))
	}
	return reg
}

func TestChasePolicy_SingleVehicleNoTarget(t *testing.T) {
	reg := roster(1, 0)
	chaser := &recordingChaser{}
	cp := NewChasePolicy(reg, chaser, rand.New(rand.NewPCG(1, 2)), nil, zerolog.Nop())

	cp.Update(1)

	v := reg.Vehicles()[0]
	assert.Equal(t, engine.NoHandle, v.Target)
	assert.Empty(t, chaser.calls)
}

func TestChasePolicy_NeverSelectsSelf(t *testing.T) {
	reg := roster(4, 0, 1, 2, 3)
	chaser := &recordingChaser{}
	cp := NewChasePolicy(reg, chaser, rand.New(rand.NewPCG(7, 7)), nil, zerolog.Nop())

	for tick := uint64(0); tick < 200; tick++ {
		for _, v := range reg.Vehicles() {
			v.ReachedTarget = true
		}
		cp.Update(tick)
		for _, v := range reg.Vehicles() {
			require.True(t, v.Target.Valid())
			assert.NotEqual(t, v.Handle, v.Target)
			assert.False(t, v.ReachedTarget, "policy clears the arrival flag")
		}
	}
}

func TestChasePolicy_RetargetOnArrival(t *testing.T) {
	reg := roster(3, 0)
	chaser := &recordingChaser{}
	sink := &sliceSink{}
	cp := NewChasePolicy(reg, chaser, rand.New(rand.NewPCG(3, 4)), sink, zerolog.Nop())

	pursuer := reg.Vehicles()[0]
	cp.Update(1)
	require.True(t, pursuer.Target.Valid())
	first := pursuer.Target
	require.Len(t, sink.events, 1)

	// No arrival: target is sustained
	cp.Update(2)
	assert.Equal(t, first, pursuer.Target)
	assert.Len(t, sink.events, 1)

	pursuer.ReachedTarget = true
	cp.Update(3)

	assert.False(t, pursuer.ReachedTarget)
	assert.NotEqual(t, pursuer.Handle, pursuer.Target)
	assert.Contains(t, []engine.Handle{reg.Vehicles()[1].Handle, reg.Vehicles()[2].Handle}, pursuer.Target)
	require.Len(t, sink.events, 2)
	assert.Equal(t, event.EventTargetAcquired, sink.events[1].Type)
	p := sink.events[1].Payload.(*event.TargetAcquiredPayload)
	assert.Equal(t, first, p.Previous)
	assert.Equal(t, uint64(3), sink.events[1].Tick)
	assert.Equal(t, pursuer.Target, chaser.calls[pursuer.Handle])
}

func TestChasePolicy_EliminatedTargetIsVacant(t *testing.T) {
	reg := roster(3, 0)
	cp := NewChasePolicy(reg, &recordingChaser{}, rand.New(rand.NewPCG(5, 6)), nil, zerolog.Nop())
	pursuer, b, c := reg.Vehicles()[0], reg.Vehicles()[1], reg.Vehicles()[2]

	pursuer.Target = b.Handle
	b.Eliminated = true
	cp.Update(1)

	assert.Equal(t, c.Handle, pursuer.Target, "only live candidate remains")

	c.Eliminated = true
	cp.Update(2)
	assert.Equal(t, engine.NoHandle, pursuer.Target)
}

func TestChasePolicy_HumansAndEliminatedSkipped(t *testing.T) {
	reg := roster(3, 1, 2)
	chaser := &recordingChaser{}
	cp := NewChasePolicy(reg, chaser, rand.New(rand.NewPCG(1, 1)), nil, zerolog.Nop())
	reg.Vehicles()[2].Eliminated = true

	cp.Update(1)

	assert.Equal(t, engine.NoHandle, reg.Vehicles()[0].Target, "human vehicles are not driven")
	assert.Equal(t, reg.Vehicles()[0].Handle, reg.Vehicles()[1].Target)
	assert.Len(t, chaser.calls, 1)
}

func TestPursuit_ArrivalSetsFlag(t *testing.T) {
	reg := roster(2)
	v, target := reg.Vehicles()[0], reg.Vehicles()[1]
	bodies := newFakeBodies()
	bodies.set(v.Handle, vmath.V3(0, 0, 0), vmath.Zero)
	bodies.set(target.Handle, vmath.V3(0, 0, 3), vmath.Zero)

	p := NewPursuit(bodies)
	require.NoError(t, p.Chase(v, target))

	assert.True(t, v.ReachedTarget)
	assert.Equal(t, engine.Controls{}, bodies.drives[v.Handle])
}

func TestPursuit_SteersTowardTarget(t *testing.T) {
	reg := roster(2)
	v, target := reg.Vehicles()[0], reg.Vehicles()[1]
	bodies := newFakeBodies()
	bodies.set(v.Handle, vmath.V3(0, 0, 0), vmath.Zero)
	bodies.heading[v.Handle] = 0 // facing +Z

	p := NewPursuit(bodies)

	bodies.pos[target.Handle] = vmath.V3(30, 0, 30)
	require.NoError(t, p.Chase(v, target))
	right := bodies.drives[v.Handle]
	assert.Greater(t, right.Steer, 0.0)
	assert.Greater(t, right.Throttle, 0.0)
	assert.False(t, v.ReachedTarget)

	bodies.pos[target.Handle] = vmath.V3(-30, 0, 30)
	require.NoError(t, p.Chase(v, target))
	assert.Less(t, bodies.drives[v.Handle].Steer, 0.0)

	bodies.pos[target.Handle] = vmath.V3(0, 0, 50)
	require.NoError(t, p.Chase(v, target))
	ahead := bodies.drives[v.Handle]
	assert.Equal(t, 0.0, ahead.Steer)
	assert.Equal(t, v.Params.Throttle, ahead.Throttle)
}

func TestPursuit_SlowsNearTarget(t *testing.T) {
	reg := roster(2)
	v, target := reg.Vehicles()[0], reg.Vehicles()[1]
	bodies := newFakeBodies()
	bodies.set(v.Handle, vmath.Zero, vmath.Zero)
	bodies.heading[v.Handle] = 0

	p := NewPursuit(bodies)
	bodies.pos[target.Handle] = vmath.V3(0, 0, 6)
	require.NoError(t, p.Chase(v, target))

	assert.InDelta(t, 0.5, bodies.drives[v.Handle].Throttle, 1e-9)
}
