package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Default log location, relative to the working directory
const (
	LogDir      = "logs"
	LogFileName = "crash-cars.log"
)

// ParseLevel maps a config level name to a zerolog level, info when unknown
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "DISABLED", "OFF":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New builds a line-format logger writing to w
// Color is off since the output is a file while the terminal belongs to the renderer
func New(level zerolog.Level, w io.Writer) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(cw).Level(level).With().Timestamp().Logger()
}

// Setup opens dir/LogFileName for append and returns a logger on it
// Disabled logging returns zerolog.Nop and a nil file; callers close the file on exit
func Setup(enabled bool, dir, level string) (zerolog.Logger, *os.File, error) {
	if !enabled {
		return zerolog.Nop(), nil, nil
	}
	if dir == "" {
		dir = LogDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, LogFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	return New(ParseLevel(level), f), f, nil
}
