package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/lixenwraith/crash-cars/constant"
	"github.com/lixenwraith/crash-cars/engine"
)

// EnvPrefix prefixes environment overrides, e.g. CRASHCARS_SIM_HZ
const EnvPrefix = "CRASHCARS"

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid configuration")

// SimConfig controls the simulation gate
type SimConfig struct {
	Hz        float64 `json:"hz" mapstructure:"hz"`
	TimeScale float64 `json:"timeScale" mapstructure:"timeScale"`
}

// RenderConfig controls the render gate
type RenderConfig struct {
	Hz float64 `json:"hz" mapstructure:"hz"`
}

// SessionConfig controls the roster and randomness
type SessionConfig struct {
	AIVehicles int    `json:"aiVehicles" mapstructure:"aiVehicles"`
	PowerUps   int    `json:"powerUps" mapstructure:"powerUps"`
	Obstacles  int    `json:"obstacles" mapstructure:"obstacles"`
	PlayerName string `json:"playerName" mapstructure:"playerName"`
	// Seed drives AI target selection; zero picks a seed from the clock
	Seed uint64 `json:"seed" mapstructure:"seed"`
}

// LogConfig controls the file logger
type LogConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Level   string `json:"level" mapstructure:"level"`
	Dir     string `json:"dir" mapstructure:"dir"`
}

// AudioConfig controls the sound manager
type AudioConfig struct {
	Enabled bool    `json:"enabled" mapstructure:"enabled"`
	Volume  float64 `json:"volume" mapstructure:"volume"`
}

// Config is the full session configuration
type Config struct {
	Sim     SimConfig     `json:"sim" mapstructure:"sim"`
	Render  RenderConfig  `json:"render" mapstructure:"render"`
	Session SessionConfig `json:"session" mapstructure:"session"`
	Log     LogConfig     `json:"log" mapstructure:"log"`
	Audio   AudioConfig   `json:"audio" mapstructure:"audio"`
}

func setDefaults() {
	viper.SetDefault("sim.hz", constant.SimulationHz)
	viper.SetDefault("sim.timeScale", constant.SimulationTimeScale)

	viper.SetDefault("render.hz", constant.RenderHz)

	viper.SetDefault("session.aiVehicles", constant.DefaultAIVehicles)
	viper.SetDefault("session.powerUps", constant.DefaultPowerUps)
	viper.SetDefault("session.obstacles", constant.DefaultObstacles)
	viper.SetDefault("session.playerName", constant.PlayerName)
	viper.SetDefault("session.seed", 0)

	viper.SetDefault("log.enabled", false)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.dir", "logs")

	viper.SetDefault("audio.enabled", true)
	viper.SetDefault("audio.volume", constant.VolumeDefault)
}

// Load reads defaults, the optional config file at path and CRASHCARS_* overrides
// An empty path skips the file; the file type follows its extension (json, toml, yaml)
func Load(path string) (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration without consulting viper
func Default() *Config {
	return &Config{
		Sim:    SimConfig{Hz: constant.SimulationHz, TimeScale: constant.SimulationTimeScale},
		Render: RenderConfig{Hz: constant.RenderHz},
		Session: SessionConfig{AIVehicles: constant.DefaultAIVehicles, PowerUps: constant.DefaultPowerUps,
			Obstacles: constant.DefaultObstacles, PlayerName: constant.PlayerName},
		Log:   LogConfig{Level: "info", Dir: "logs"},
		Audio: AudioConfig{Enabled: true, Volume: constant.VolumeDefault},
	}
}

// Validate checks ranges; every error wraps ErrInvalid
func (c *Config) Validate() error {
	switch {
	case c.Sim.Hz <= 0:
		return fmt.Errorf("%w: sim.hz must be positive, got %v", ErrInvalid, c.Sim.Hz)
	case c.Sim.TimeScale <= 0:
		return fmt.Errorf("%w: sim.timeScale must be positive, got %v", ErrInvalid, c.Sim.TimeScale)
	case c.Render.Hz <= 0:
		return fmt.Errorf("%w: render.hz must be positive, got %v", ErrInvalid, c.Render.Hz)
	case c.Session.AIVehicles < 0:
		return fmt.Errorf("%w: session.aiVehicles must not be negative, got %d", ErrInvalid, c.Session.AIVehicles)
	case c.Session.PowerUps < 0:
		return fmt.Errorf("%w: session.powerUps must not be negative, got %d", ErrInvalid, c.Session.PowerUps)
	case c.Session.Obstacles < 0:
		return fmt.Errorf("%w: session.obstacles must not be negative, got %d", ErrInvalid, c.Session.Obstacles)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume must be within [0,1], got %v", ErrInvalid, c.Audio.Volume)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// Timing derives the timing controller intervals
// The simulation step is the tick interval stretched by the time scale
func (c *Config) Timing() engine.TimingConfig {
	simInterval := time.Duration(float64(time.Second) / c.Sim.Hz)
	return engine.TimingConfig{
		SimInterval:    simInterval,
		SimStep:        time.Duration(float64(simInterval) * c.Sim.TimeScale),
		RenderInterval: time.Duration(float64(time.Second) / c.Render.Hz),
	}
}
