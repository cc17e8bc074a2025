package constant

// Physics collaborator tuning (box2d, MKS units)
const (
	// VelocityIterations for the box2d solver, testbed default
	VelocityIterations = 8

	// PositionIterations for the box2d solver, testbed default
	PositionIterations = 3

	VehicleHalfWidth   = 1.0
	VehicleHalfLength  = 2.0
	VehicleDensity     = 187.5 // 1500 kg for a 2x4 m body
	VehicleLinearDamp  = 0.6
	VehicleAngularDamp = 4.0

	// EngineForce is the forward force at full throttle
	EngineForce = 60000.0

	// SteerTorque is the yaw torque at full steer
	SteerTorque = 40000.0

	// HandbrakeDamping replaces linear damping while the handbrake is held
	HandbrakeDamping = 3.0

	// Gravity acts on the vertical axis only; the arena plane is top-down
	Gravity = -9.81
)

// Tyre grip, fraction of lateral velocity cancelled per step
const (
	LateralGrip          = 0.9
	HandbrakeLateralGrip = 0.2
)
