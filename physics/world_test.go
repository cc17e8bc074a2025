package physics

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/crash-cars/engine"
	"github.com/lixenwraith/crash-cars/vmath"
)

const step = time.Second / 60

type recordingHandler struct {
	contacts [][2]engine.Handle
	triggers [][2]engine.Handle

	// Optional reentrant call made from inside a callback
	onContact func(a, b engine.Handle)
}

func (r *recordingHandler) OnContact(a, b engine.Handle) {
	r.contacts = append(r.contacts, [2]engine.Handle{a, b})
	if r.onContact != nil {
		r.onContact(a, b)
	}
}

func (r *recordingHandler) OnTrigger(trigger, other engine.Handle) {
	r.triggers = append(r.triggers, [2]engine.Handle{trigger, other})
}

var (
	carA  = engine.Handle{Kind: engine.KindVehicle, Index: 0}
	carB  = engine.Handle{Kind: engine.KindVehicle, Index: 1}
	boost = engine.Handle{Kind: engine.KindPowerUp, Index: 0}
	crate = engine.Handle{Kind: engine.KindStatic, Index: 0}
)

func newTestWorld(t *testing.T) (*World, *recordingHandler) {
	t.Helper()
	w := NewWorld(zerolog.Nop())
	t.Cleanup(w.Close)
	h := &recordingHandler{}
	w.SetContactHandler(h)
	return w, h
}

func stepN(t *testing.T, w *World, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, w.Simulate(step))
	}
}

func TestWorld_VehicleContact(t *testing.T) {
	w, h := newTestWorld(t)
	require.NoError(t, w.AddVehicle(carA, vmath.V3(0, 0, 0), 0))
	require.NoError(t, w.AddVehicle(carB, vmath.V3(0, 0, 6), 0))

	// 1500 kg at 10 m/s toward B
	require.NoError(t, w.ApplyImpulse(carA, vmath.V3(0, 0, 15000)))
	vel, ok := w.Velocity(carA)
	require.True(t, ok)
	assert.InDelta(t, 10, vel[2], 0.01)

	stepN(t, w, 30)

	require.NotEmpty(t, h.contacts)
	pair := h.contacts[0]
	assert.ElementsMatch(t, []engine.Handle{carA, carB}, pair[:])
	assert.Empty(t, h.triggers)
}

func TestWorld_SensorTrigger(t *testing.T) {
	w, h := newTestWorld(t)
	require.NoError(t, w.AddVehicle(carA, vmath.V3(0, 0, 0), 0))
	require.NoError(t, w.AddPowerUp(boost, vmath.V3(0, 0, 1), 1.5))

	stepN(t, w, 1)

	require.Len(t, h.triggers, 1)
	assert.Equal(t, [2]engine.Handle{boost, carA}, h.triggers[0])
	assert.Empty(t, h.contacts, "sensors never produce solid contacts")

	// Sensor does not push the vehicle
	pos, _ := w.Position(carA)
	assert.InDelta(t, 0, pos[2], 1e-6)

	require.NoError(t, w.RemoveBody(boost))
	stepN(t, w, 5)
	assert.Len(t, h.triggers, 1)
}

func TestWorld_LockedDuringStep(t *testing.T) {
	w, h := newTestWorld(t)
	require.NoError(t, w.AddVehicle(carA, vmath.V3(0, 0, 0), 0))
	require.NoError(t, w.AddVehicle(carB, vmath.V3(0, 0, 4.5), 0))

	var errs []error
	h.onContact = func(a, b engine.Handle) {
		errs = append(errs,
			w.ApplyImpulse(a, vmath.V3(1, 0, 0)),
			w.RemoveBody(b),
			w.Simulate(step),
			w.AddObstacle(crate, vmath.Zero, 1, 1),
		)
	}

	require.NoError(t, w.ApplyImpulse(carA, vmath.V3(0, 0, 15000)))
	stepN(t, w, 10)

	require.NotEmpty(t, errs)
	for _, err := range errs {
		assert.True(t, errors.Is(err, ErrWorldLocked), "got %v", err)
	}
	for _, car := range []engine.Handle{carA, carB} {
		_, ok := w.Position(car)
		assert.True(t, ok, "%v survives a locked removal", car)
	}

	// Unlocked again after the step
	assert.NoError(t, w.ApplyImpulse(carA, vmath.V3(1, 0, 0)))
}

func TestWorld_JumpArc(t *testing.T) {
	w, _ := newTestWorld(t)
	require.NoError(t, w.AddVehicle(carA, vmath.Zero, 0))

	require.NoError(t, w.ApplyImpulse(carA, vmath.V3(0, 15000, 0)))
	stepN(t, w, 10)

	pos, _ := w.Position(carA)
	assert.Greater(t, pos[1], 0.0, "airborne after jump")

	stepN(t, w, 180)
	pos, _ = w.Position(carA)
	vel, _ := w.Velocity(carA)
	assert.Equal(t, 0.0, pos[1], "landed")
	assert.Equal(t, 0.0, vel[1])
}

func TestWorld_DriveFollowsHeading(t *testing.T) {
	w, _ := newTestWorld(t)
	require.NoError(t, w.AddVehicle(carA, vmath.Zero, 0))

	for i := 0; i < 30; i++ {
		require.NoError(t, w.Drive(carA, engine.Controls{Throttle: 1}))
		require.NoError(t, w.Simulate(step))
	}
	pos, _ := w.Position(carA)
	assert.Greater(t, pos[2], 0.5, "heading 0 drives toward +Z")
	assert.InDelta(t, 0, pos[0], 1e-6)

	for i := 0; i < 30; i++ {
		require.NoError(t, w.Drive(carA, engine.Controls{Throttle: 1, Steer: 1}))
		require.NoError(t, w.Simulate(step))
	}
	heading, _ := w.Heading(carA)
	assert.Greater(t, heading, 0.0, "positive steer raises heading")
}

func TestWorld_ResetBody(t *testing.T) {
	w, _ := newTestWorld(t)
	require.NoError(t, w.AddVehicle(carA, vmath.V3(5, 0, 5), 0))
	require.NoError(t, w.ApplyImpulse(carA, vmath.V3(3000, 3000, 0)))
	stepN(t, w, 5)

	require.NoError(t, w.ResetBody(carA, vmath.V3(-10, 0, 20), 1))

	pos, _ := w.Position(carA)
	vel, _ := w.Velocity(carA)
	heading, _ := w.Heading(carA)
	assert.InDelta(t, -10, pos[0], 1e-9)
	assert.InDelta(t, 20, pos[2], 1e-9)
	assert.Equal(t, 0.0, pos[1])
	assert.Equal(t, vmath.Zero, vel)
	assert.InDelta(t, 1, heading, 1e-9)
}

func TestWorld_Errors(t *testing.T) {
	w, _ := newTestWorld(t)
	require.NoError(t, w.AddVehicle(carA, vmath.Zero, 0))
	require.NoError(t, w.AddObstacle(crate, vmath.V3(10, 0, 10), 1, 1))

	assert.ErrorIs(t, w.AddVehicle(carA, vmath.Zero, 0), ErrDuplicate)
	assert.ErrorIs(t, w.AddVehicle(engine.NoHandle, vmath.Zero, 0), engine.ErrUnknownHandle)
	assert.ErrorIs(t, w.ApplyImpulse(carB, vmath.V3(1, 0, 0)), ErrUnknownBody)
	assert.ErrorIs(t, w.ApplyImpulse(crate, vmath.V3(1, 0, 0)), ErrNotDynamic)
	assert.Error(t, w.AddPowerUp(boost, vmath.Zero, 0))

	_, ok := w.Position(carB)
	assert.False(t, ok)

	require.NoError(t, w.RemoveBody(carA))
	assert.ErrorIs(t, w.RemoveBody(carA), ErrUnknownBody)
	assert.NoError(t, w.Simulate(0))
}
