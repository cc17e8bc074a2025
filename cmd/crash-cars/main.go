package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/crash-cars/audio"
	"github.com/lixenwraith/crash-cars/config"
	"github.com/lixenwraith/crash-cars/constant"
	"github.com/lixenwraith/crash-cars/engine"
	"github.com/lixenwraith/crash-cars/input"
	"github.com/lixenwraith/crash-cars/logging"
	"github.com/lixenwraith/crash-cars/physics"
	"github.com/lixenwraith/crash-cars/render"
	"github.com/lixenwraith/crash-cars/session"
)

var configFlag = flag.String("config", "", "Path to a JSON, TOML or YAML config file")

// resizingRenderer applies pending terminal resizes before each frame
type resizingRenderer struct {
	*render.TerminalRenderer
	source *input.Source
}

func (r resizingRenderer) Render(f *engine.Frame) error {
	if r.source.TakeResize() {
		r.Resize()
	}
	return r.TerminalRenderer.Render(f)
}

func main() {
	os.Exit(run())
}

func run() (code int) {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log, logFile, err := logging.Setup(cfg.Log.Enabled, cfg.Log.Dir, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v (continuing without logs)\n", err)
		log = zerolog.Nop()
	}
	if logFile != nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create terminal screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	// Normal exit terminal cleanup
	defer screen.Fini()

	// Panic recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mCRASH-CARS CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			log.Error().Interface("panic", r).Msg("crashed")
			code = 1
		}
	}()

	var sound engine.Audio = &engine.NopAudio{}
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(log)
		if err := sm.Initialize(); err != nil {
			// Non-fatal, the game runs silent
			log.Warn().Err(err).Msg("audio initialization failed, continuing without audio")
		} else {
			sound = sm
		}
	}

	source := input.NewSource(screen, input.DefaultKeyTable(), constant.InputBufferSize)
	source.Start()

	world := physics.NewWorld(log)

	s, err := session.New(cfg, log, session.Deps{
		Physics:  world,
		Audio:    sound,
		Renderer: resizingRenderer{TerminalRenderer: render.NewTerminalRenderer(screen), source: source},
		Input:    source,
	})
	if err != nil {
		// The session never took ownership, release what was already started
		source.Stop()
		world.Close()
		if sm, ok := sound.(*audio.SoundManager); ok {
			sm.Cleanup()
		}
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start session: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.Run(ctx); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}
