package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3D vector in world units, Y up
// Arena plane is X/Z; physics collaborators may store Y separately
type Vec3 = mgl64.Vec3

// Zero is the zero vector
var Zero = Vec3{}

// V3 builds a vector from components
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// MagSq returns squared magnitude
func MagSq(v Vec3) float64 {
	return v.Dot(v)
}

// Mag returns magnitude
func Mag(v Vec3) float64 {
	return v.Len()
}

// SafeNormalize returns the unit vector of v and false when v has no usable direction
// Zero-length and non-finite inputs both report false
func SafeNormalize(v Vec3) (Vec3, bool) {
	if !IsFinite(v) {
		return Zero, false
	}
	mag := v.Len()
	if mag == 0 || math.IsInf(mag, 0) {
		return Zero, false
	}
	return v.Mul(1 / mag), true
}

// IsFinite reports whether all components are finite
func IsFinite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Planar drops the vertical component
func Planar(v Vec3) Vec3 {
	return Vec3{v[0], 0, v[2]}
}

// Distance returns the euclidean distance between a and b
func Distance(a, b Vec3) float64 {
	return b.Sub(a).Len()
}

// HeadingTo returns the yaw angle (radians, around Y) pointing from a to b on the arena plane
// Yaw 0 faces +Z, positive yaw turns toward +X
func HeadingTo(a, b Vec3) float64 {
	d := b.Sub(a)
	return math.Atan2(d[0], d[2])
}

// WrapAngle maps an angle into (-pi, pi]
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
