package systems

import "github.com/lixenwraith/crash-cars/engine"

// ContactRouter fans physics callbacks out to the resolver and the dispatcher
type ContactRouter struct {
	Collisions *CollisionResolver
	Triggers   *TriggerDispatcher
}

func (r *ContactRouter) OnContact(a, b engine.Handle) {
	if r.Collisions != nil {
		r.Collisions.OnContact(a, b)
	}
}

func (r *ContactRouter) OnTrigger(trigger, other engine.Handle) {
	if r.Triggers != nil {
		r.Triggers.OnTrigger(trigger, other)
	}
}

var _ engine.ContactHandler = (*ContactRouter)(nil)
