package engine

import "github.com/lixenwraith/crash-cars/vmath"

// PowerUpType selects the pickup effect
type PowerUpType uint8

const (
	PowerUpBoost PowerUpType = iota
	PowerUpDamage
	PowerUpHealth
	PowerUpJump
)

// String returns the type name for logs and HUD
func (t PowerUpType) String() string {
	switch t {
	case PowerUpBoost:
		return "boost"
	case PowerUpDamage:
		return "damage"
	case PowerUpHealth:
		return "health"
	case PowerUpJump:
		return "jump"
	default:
		return "unknown"
	}
}

// PowerUp is a pickup backed by a physics trigger volume
type PowerUp struct {
	Handle   Handle
	Type     PowerUpType
	Position vmath.Vec3

	// Triggered is set by the dispatcher during a physics callback, consumed by the drain phase
	Triggered bool

	destroyed bool
}

// NewPowerUp creates a live power-up
func NewPowerUp(t PowerUpType, pos vmath.Vec3) *PowerUp {
	return &PowerUp{Type: t, Position: pos}
}

// Live reports whether the power-up can still be picked up or drawn
func (p *PowerUp) Live() bool {
	return !p.destroyed
}

// Destroy transitions the power-up to destroyed
// Returns true only on the call that performed the transition
func (p *PowerUp) Destroy() bool {
	if p.destroyed {
		return false
	}
	p.destroyed = true
	p.Triggered = false
	return true
}
