package session

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/crash-cars/config"
	"github.com/lixenwraith/crash-cars/constant"
	"github.com/lixenwraith/crash-cars/engine"
	"github.com/lixenwraith/crash-cars/event"
	"github.com/lixenwraith/crash-cars/input"
	"github.com/lixenwraith/crash-cars/status"
	"github.com/lixenwraith/crash-cars/systems"
	"github.com/lixenwraith/crash-cars/vmath"
)

// ErrMissingCollaborator is returned when a required collaborator is nil
var ErrMissingCollaborator = errors.New("session collaborator missing")

// CommandSource yields the commands captured since the previous tick
type CommandSource interface {
	Poll() []input.Command
}

// Deps are the collaborators a session drives
type Deps struct {
	Physics  engine.Physics
	Audio    engine.Audio
	Renderer engine.Renderer
	Input    CommandSource
	// Clock is the real time source; nil uses the monotonic system clock
	Clock engine.TimeProvider
}

// Session is the explicit context object for one game
// All fields are set in New and owned by the loop goroutine afterwards
type Session struct {
	ID     uuid.UUID
	Config *config.Config
	Log    zerolog.Logger

	Registry *engine.Registry
	Physics  engine.Physics
	Audio    engine.Audio
	Renderer engine.Renderer
	Input    CommandSource

	Timing *engine.TimingController
	Clock  *engine.PausableClock
	Status *status.Registry

	queue  *event.EventQueue
	router *event.Router[*engine.Registry]

	Orchestrator *Orchestrator

	obstacles []engine.ObstacleView
	frame     engine.Frame
}

// New builds the session, spawns the roster and wires every system
func New(cfg *config.Config, log zerolog.Logger, deps Deps) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Physics == nil || deps.Renderer == nil || deps.Input == nil {
		return nil, ErrMissingCollaborator
	}
	if deps.Audio == nil {
		deps.Audio = &engine.NopAudio{}
	}
	if deps.Clock == nil {
		deps.Clock = engine.NewMonotonicTimeProvider()
	}

	timing, err := engine.NewTimingController(deps.Clock, cfg.Timing())
	if err != nil {
		return nil, fmt.Errorf("timing: %w", err)
	}

	id := uuid.New()
	s := &Session{
		ID:       id,
		Config:   cfg,
		Log:      log.With().Str("session", id.String()).Logger(),
		Registry: engine.NewRegistry(),
		Physics:  deps.Physics,
		Audio:    deps.Audio,
		Renderer: deps.Renderer,
		Input:    deps.Input,
		Timing:   timing,
		Clock:    engine.NewPausableClock(deps.Clock),
		Status:   status.NewRegistry(),
		queue:    event.NewEventQueue(),
	}
	s.router = event.NewRouter[*engine.Registry](s.queue)

	if err := s.spawn(); err != nil {
		return nil, err
	}

	seed := cfg.Session.Seed
	if seed == 0 {
		seed = uint64(deps.Clock.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	resolver := systems.NewCollisionResolver(s.Registry, s.Physics, systems.DefaultKnockbackProfile(), s.Log)
	dispatcher := systems.NewTriggerDispatcher(s.Registry, s.Log)
	s.Physics.SetContactHandler(&systems.ContactRouter{Collisions: resolver, Triggers: dispatcher})

	control := systems.NewControlSystem(s.Registry, s.Physics, s.Clock, s.queue, s.Log)
	chase := systems.NewChasePolicy(s.Registry, systems.NewPursuit(s.Physics), rng, s.queue, s.Log)

	s.router.Register(systems.NewAudioHandler(s.Audio))
	s.router.Register(systems.NewLogHandler(s.Log))
	s.router.Register(systems.NewMetricsHandler(s.Status))

	s.Orchestrator = &Orchestrator{
		registry:  s.Registry,
		physics:   s.Physics,
		audio:     s.Audio,
		input:     s.Input,
		clock:     s.Clock,
		timing:    s.Timing,
		queue:     s.queue,
		router:    s.router,
		control:   control,
		chase:     chase,
		resolver:  resolver,
		triggers:  dispatcher,
		status:    s.Status,
		log:       s.Log.With().Str("system", "orchestrator").Logger(),
		arenaHalf: constant.ArenaHalfExtent,
	}

	s.Audio.AdjustVolume(cfg.Audio.Volume - s.Audio.Volume())
	s.Status.Float(status.AudioVolume).Set(s.Audio.Volume())

	s.Log.Info().
		Int("vehicles", s.Registry.VehicleCount()).
		Int("powerups", len(s.Registry.PowerUps())).
		Int("obstacles", len(s.obstacles)).
		Uint64("seed", seed).
		Dur("sim_step", timing.SimStep()).
		Msg("session created")
	return s, nil
}

// spawn places the player and AI vehicles on the spawn ring facing the center,
// the power-ups on the outer ring offset by half a slot, and the static boxes
// on a ring of their own
func (s *Session) spawn() error {
	total := 1 + s.Config.Session.AIVehicles
	for i := range total {
		pos := ringPoint(constant.SpawnRingRadius, i, total, 0)

		name, ctrl := s.Config.Session.PlayerName, engine.ControllerHuman
		if i > 0 {
			name, ctrl = fmt.Sprintf("ai-%d", i), engine.ControllerAI
		}
		v := engine.NewVehicle(name, ctrl, pos)
		h := s.Registry.AddVehicle(v)
		v.Heading = v.SpawnHeading()

		if err := s.Physics.AddVehicle(h, pos, v.Heading); err != nil {
			return fmt.Errorf("spawn %s: %w", name, err)
		}
	}

	n := s.Config.Session.PowerUps
	for i := range n {
		pos := ringPoint(constant.PowerUpRingRadius, i, n, 0.5)
		p := engine.NewPowerUp(engine.PowerUpType(i%4), pos)
		h := s.Registry.AddPowerUp(p)
		if err := s.Physics.AddPowerUp(h, pos, constant.PowerUpTriggerRadius); err != nil {
			return fmt.Errorf("spawn power-up %d: %w", i, err)
		}
	}

	for i := range s.Config.Session.Obstacles {
		pos := ringPoint(constant.ObstacleRingRadius, i, s.Config.Session.Obstacles, constant.ObstacleRingOffset)
		h := s.Registry.AddStatic()
		half := constant.ObstacleHalfExtent
		if err := s.Physics.AddObstacle(h, pos, half, half); err != nil {
			return fmt.Errorf("spawn obstacle %d: %w", i, err)
		}
		s.obstacles = append(s.obstacles, engine.ObstacleView{Handle: h, Position: pos, HalfX: half, HalfZ: half})
	}

	s.Status.Int(status.VehiclesLive).Store(int64(total))
	return nil
}

// ringPoint returns slot i of n evenly spaced points on a circle around the origin
func ringPoint(radius float64, i, n int, offset float64) vmath.Vec3 {
	a := 2 * math.Pi * (float64(i) + offset) / float64(n)
	return vmath.V3(radius*math.Sin(a), 0, radius*math.Cos(a))
}

// Player returns the first human vehicle
func (s *Session) Player() (*engine.Vehicle, bool) {
	for _, v := range s.Registry.Vehicles() {
		if !v.IsAI() {
			return v, true
		}
	}
	return nil, false
}
