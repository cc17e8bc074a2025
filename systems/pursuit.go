package systems

import (
	"math"

	"github.com/lixenwraith/crash-cars/constant"
	"github.com/lixenwraith/crash-cars/engine"
	"github.com/lixenwraith/crash-cars/vmath"
)

// Driver is the physics surface used to steer a vehicle
type Driver interface {
	Kinematics
	Heading(h engine.Handle) (float64, bool)
	Drive(h engine.Handle, c engine.Controls) error
}

// Pursuit steers one vehicle toward another with proportional control
type Pursuit struct {
	bodies Driver

	ArrivalRadius float64
	SteerGain     float64
	SlowRadius    float64
	MinThrottle   float64
}

// NewPursuit creates a pursuit routine with default gains
func NewPursuit(bodies Driver) *Pursuit {
	return &Pursuit{
		bodies:        bodies,
		ArrivalRadius: constant.ArrivalRadius,
		SteerGain:     constant.PursuitSteerGain,
		SlowRadius:    constant.PursuitSlowRadius,
		MinThrottle:   constant.PursuitMinThrottle,
	}
}

// Chase issues one tick of drive input toward target
// Sets ReachedTarget and coasts when within the arrival radius
func (p *Pursuit) Chase(v, target *engine.Vehicle) error {
	pos := p.position(v)
	goal := p.position(target)

	dist := vmath.Distance(vmath.Planar(pos), vmath.Planar(goal))
	if dist <= p.ArrivalRadius {
		v.ReachedTarget = true
		return p.bodies.Drive(v.Handle, engine.Controls{})
	}

	heading := v.Heading
	if h, ok := p.bodies.Heading(v.Handle); ok {
		heading = h
	}

	headingErr := vmath.WrapAngle(vmath.HeadingTo(pos, goal) - heading)
	steer := vmath.Clamp(headingErr*p.SteerGain, -1, 1)

	throttle := v.Params.Throttle
	if dist < p.SlowRadius {
		throttle *= max(dist/p.SlowRadius, p.MinThrottle)
	}
	// Ease off while turning hard
	throttle *= 1 - 0.5*math.Abs(steer)

	return p.bodies.Drive(v.Handle, engine.Controls{Throttle: throttle, Steer: steer})
}

func (p *Pursuit) position(v *engine.Vehicle) vmath.Vec3 {
	if pos, ok := p.bodies.Position(v.Handle); ok {
		return pos
	}
	return v.Position
}
