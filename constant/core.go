package constant

import (
	"math"
	"time"
)

// Loop & Engine Timing
const (
	// SimulationHz is the default simulation tick rate
	SimulationHz = 60.0

	// SimulationTimeScale multiplies the simulation step (1.5 gives the 1.5/60 s build)
	SimulationTimeScale = 1.0

	// RenderHz is the default render rate, independent of simulation
	RenderHz = 60.0

	// MinLoopSleep bounds how short the outer loop sleeps between gate polls
	MinLoopSleep = 500 * time.Microsecond

	// InputBufferSize is the capacity of the input command channel
	InputBufferSize = 256
)

// Event Queue
const (
	// EventQueueSize is the per-tick capacity of the event queue
	EventQueueSize = 512
)

// Arena
const (
	// ArenaHalfExtent is the distance from origin past which a vehicle is eliminated
	ArenaHalfExtent = 101.0

	// SpawnRingRadius places vehicles on a circle around origin at session start
	SpawnRingRadius = 20.0

	// PowerUpRingRadius places power-ups on a circle around origin at session start
	PowerUpRingRadius = 40.0

	// DefaultObstacles is the number of static boxes placed at session start
	DefaultObstacles = 1

	// ObstacleRingRadius and ObstacleRingOffset put the first box at (-20, 0, -20)
	ObstacleRingRadius = 20 * math.Sqrt2
	ObstacleRingOffset = 0.625

	// ObstacleHalfExtent is the half side length of an obstacle box
	ObstacleHalfExtent = 2.0
)
