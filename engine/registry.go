package engine

// Registry is arena-indexed storage for session entities
// Handles index directly into per-kind slices; entities are never removed,
// destroyed power-ups stay in place and fail liveness checks
type Registry struct {
	vehicles []*Vehicle
	powerUps []*PowerUp
	statics  int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// AddVehicle stores v and assigns its handle
func (r *Registry) AddVehicle(v *Vehicle) Handle {
	h := Handle{Kind: KindVehicle, Index: uint32(len(r.vehicles))}
	v.Handle = h
	r.vehicles = append(r.vehicles, v)
	return h
}

// AddPowerUp stores p and assigns its handle
func (r *Registry) AddPowerUp(p *PowerUp) Handle {
	h := Handle{Kind: KindPowerUp, Index: uint32(len(r.powerUps))}
	p.Handle = h
	r.powerUps = append(r.powerUps, p)
	return h
}

// AddStatic reserves a handle for a physics-only body
func (r *Registry) AddStatic() Handle {
	h := Handle{Kind: KindStatic, Index: uint32(r.statics)}
	r.statics++
	return h
}

// Vehicle resolves h to a vehicle, false if h is not a known vehicle handle
func (r *Registry) Vehicle(h Handle) (*Vehicle, bool) {
	if h.Kind != KindVehicle || int(h.Index) >= len(r.vehicles) {
		return nil, false
	}
	v := r.vehicles[h.Index]
	return v, v != nil
}

// LiveVehicle resolves h to a vehicle that has not been eliminated
func (r *Registry) LiveVehicle(h Handle) (*Vehicle, bool) {
	v, ok := r.Vehicle(h)
	if !ok || v.Eliminated {
		return nil, false
	}
	return v, true
}

// PowerUp resolves h to a power-up regardless of lifecycle
func (r *Registry) PowerUp(h Handle) (*PowerUp, bool) {
	if h.Kind != KindPowerUp || int(h.Index) >= len(r.powerUps) {
		return nil, false
	}
	p := r.powerUps[h.Index]
	return p, p != nil
}

// LivePowerUp resolves h to a power-up that has not been destroyed
func (r *Registry) LivePowerUp(h Handle) (*PowerUp, bool) {
	p, ok := r.PowerUp(h)
	if !ok || !p.Live() {
		return nil, false
	}
	return p, true
}

// Vehicles returns the roster in handle order
// Callers must not append to the returned slice
func (r *Registry) Vehicles() []*Vehicle {
	return r.vehicles
}

// PowerUps returns all power-ups in handle order, including destroyed ones
func (r *Registry) PowerUps() []*PowerUp {
	return r.powerUps
}

// VehicleCount returns roster size
func (r *Registry) VehicleCount() int {
	return len(r.vehicles)
}
