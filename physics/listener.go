package physics

import (
	"github.com/ByteArena/box2d"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/crash-cars/engine"
)

// contactListener implements box2d.B2ContactListenerInterface
// It resolves fixture user data to handles and forwards begin events to the handler
type contactListener struct {
	handler engine.ContactHandler
	log     zerolog.Logger
}

func (l *contactListener) BeginContact(contact box2d.B2ContactInterface) {
	if l.handler == nil {
		return
	}
	fa, fb := contact.GetFixtureA(), contact.GetFixtureB()
	ha, okA := fa.GetBody().GetUserData().(engine.Handle)
	hb, okB := fb.GetBody().GetUserData().(engine.Handle)
	if !okA || !okB {
		l.log.Debug().Msg("contact without handle user data")
		return
	}

	switch {
	case fa.IsSensor() && fb.IsSensor():
		return
	case fa.IsSensor():
		l.handler.OnTrigger(ha, hb)
	case fb.IsSensor():
		l.handler.OnTrigger(hb, ha)
	default:
		l.handler.OnContact(ha, hb)
	}
}

func (l *contactListener) EndContact(contact box2d.B2ContactInterface) {}

func (l *contactListener) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {}

func (l *contactListener) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {
}
