package session

import (
	"context"
	"fmt"
	"time"

	"github.com/lixenwraith/crash-cars/constant"
	"github.com/lixenwraith/crash-cars/engine"
	"github.com/lixenwraith/crash-cars/status"
)

// Frame builds the render snapshot from current session state
// The returned frame is reused by the next call
func (s *Session) Frame() *engine.Frame {
	f := &s.frame
	f.Vehicles = f.Vehicles[:0]
	f.PowerUps = f.PowerUps[:0]
	f.Obstacles = s.obstacles

	for _, v := range s.Registry.Vehicles() {
		f.Vehicles = append(f.Vehicles, engine.VehicleView{
			Handle:               v.Handle,
			Name:                 v.Name,
			Controller:           v.Controller,
			Position:             v.Position,
			Heading:              v.Heading,
			Speed:                v.Speed(),
			CollisionCoefficient: v.CollisionCoefficient,
			Boost:                v.Params.Boost,
			Target:               v.Target,
			Eliminated:           v.Eliminated,
		})
	}
	for _, p := range s.Registry.PowerUps() {
		if !p.Live() {
			continue
		}
		f.PowerUps = append(f.PowerUps, engine.PowerUpView{
			Handle:   p.Handle,
			Type:     p.Type,
			Position: p.Position,
		})
	}

	stats := s.Timing.Stats()
	f.Tick = s.Orchestrator.CurrentTick()
	f.Paused = s.Clock.IsPaused()
	f.ArenaHalf = constant.ArenaHalfExtent
	f.Volume = s.Audio.Volume()
	f.Muted = s.Audio.Muted()
	f.SimCost = stats.SimCost
	f.RenderCost = stats.RenderCost
	f.Hits = s.Status.Int(status.CollisionHits).Load()
	f.Pickups = s.Status.Int(status.PowerUpPickups).Load()
	return f
}

// Step polls both timing gates once, running at most one tick and one render pass
func (s *Session) Step() (quit bool, err error) {
	if s.Timing.ShouldSimulate() {
		s.Timing.BeginSimulate()
		res, tickErr := s.Orchestrator.Tick()
		s.Timing.EndSimulate()
		s.Status.Int(status.SimCostMicros).Store(s.Timing.Stats().SimCost.Microseconds())
		if tickErr != nil {
			return false, tickErr
		}
		if res.Quit {
			return true, nil
		}
	}

	if s.Timing.ShouldRender() {
		s.Timing.BeginRender()
		renderErr := s.Renderer.Render(s.Frame())
		s.Timing.EndRender()

		s.Status.Int(status.RenderFrames).Add(1)
		s.Status.Int(status.RenderCostMicros).Store(s.Timing.Stats().RenderCost.Microseconds())
		if renderErr != nil {
			s.Status.Int(status.RenderErrors).Add(1)
			s.Log.Warn().Err(renderErr).Msg("render failed")
		}
	}

	if dc, ok := s.Input.(interface{ Dropped() uint64 }); ok {
		s.Status.Int(status.InputDropped).Store(int64(dc.Dropped()))
	}
	return false, nil
}

// Run drives the session until ctx is cancelled, a quit command arrives or a tick fails
// Teardown runs on every exit path
func (s *Session) Run(ctx context.Context) error {
	defer s.Close()

	s.Log.Info().Msg("session running")
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Log.Info().Msg("session cancelled")
			return nil
		default:
		}

		quit, err := s.Step()
		if err != nil {
			s.Log.Error().Err(err).Msg("session aborted")
			return fmt.Errorf("session %s: %w", s.ID, err)
		}
		if quit {
			s.Log.Info().Uint64("ticks", s.Orchestrator.CurrentTick()).Msg("session quit")
			return nil
		}

		timer.Reset(max(s.Timing.UntilNext(), constant.MinLoopSleep))
		select {
		case <-ctx.Done():
			s.Log.Info().Msg("session cancelled")
			return nil
		case <-timer.C:
		}
	}
}

// Close releases the physics world and stops audio and input when they support it
func (s *Session) Close() {
	s.Physics.Close()
	if a, ok := s.Audio.(interface{ Cleanup() }); ok {
		a.Cleanup()
	}
	if in, ok := s.Input.(interface{ Stop() }); ok {
		in.Stop()
	}
	s.Log.Debug().Interface("metrics", s.Status.Snapshot()).Msg("session closed")
}
