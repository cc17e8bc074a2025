package status

import "sync/atomic"

// Metric keys written by the session
const (
	SimTicks          = "sim.ticks"
	SimPausedTicks    = "sim.paused_ticks"
	SimCostMicros     = "sim.cost_us"
	RenderFrames      = "render.frames"
	RenderCostMicros  = "render.cost_us"
	RenderErrors      = "render.errors"
	CollisionHits     = "collision.hits"
	CollisionDropped  = "collision.dropped"
	TriggerDispatched = "trigger.dispatched"
	TriggerDropped    = "trigger.dropped"
	EventsDropped     = "events.dropped"
	KnockbackTotal    = "collision.knockback_total"
	PowerUpPickups    = "powerup.pickups"
	VehiclesLive      = "vehicles.live"
	VehiclesOut       = "vehicles.eliminated"
	AITargets         = "ai.retargets"
	InputDropped      = "input.dropped"
	AudioVolume       = "audio.volume"
	AudioMuted        = "audio.muted"
	SessionPaused     = "session.paused"
)

// Registry is the metrics facade shared by the session and its systems
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Int is shorthand for Ints.Get
func (r *Registry) Int(key string) *atomic.Int64 {
	return r.Ints.Get(key)
}

// Float is shorthand for Floats.Get
func (r *Registry) Float(key string) *AtomicFloat {
	return r.Floats.Get(key)
}

// Bool is shorthand for Bools.Get
func (r *Registry) Bool(key string) *atomic.Bool {
	return r.Bools.Get(key)
}

// TotalCount returns the number of registered metrics of all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}

// Snapshot copies every metric into a flat map, used for the shutdown log line
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(func(k string, c *atomic.Bool) { out[k] = c.Load() })
	r.Ints.Range(func(k string, c *atomic.Int64) { out[k] = c.Load() })
	r.Floats.Range(func(k string, c *AtomicFloat) { out[k] = c.Get() })
	return out
}
