package engine

import (
	"errors"
	"fmt"
)

// Kind identifies the entity table a handle indexes
type Kind uint8

const (
	KindNone Kind = iota
	KindVehicle
	KindPowerUp
	KindStatic // ground, walls, obstacles: tracked by physics only
)

// String returns the kind name for logs
func (k Kind) String() string {
	switch k {
	case KindVehicle:
		return "vehicle"
	case KindPowerUp:
		return "powerup"
	case KindStatic:
		return "static"
	default:
		return "none"
	}
}

// Handle is a stable typed reference to a registry entity
// Physics bodies carry a Handle as user data; zero value refers to nothing
type Handle struct {
	Kind  Kind
	Index uint32
}

// NoHandle is the empty handle
var NoHandle = Handle{}

// Valid reports whether the handle names an entity table
func (h Handle) Valid() bool {
	return h.Kind != KindNone
}

func (h Handle) String() string {
	return fmt.Sprintf("%s#%d", h.Kind, h.Index)
}

// ErrUnknownHandle is returned when a handle does not name a registered entity
var ErrUnknownHandle = errors.New("unknown entity handle")
