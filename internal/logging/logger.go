// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation defaults
const (
	DefaultFileName   = "yt-cropper.log"
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// Options configures Init
type Options struct {
	Debug bool
	// File is the log file path. Empty disables file logging.
	File string
	// Out receives console output, os.Stderr when nil.
	Out     io.Writer
	NoColor bool
}

var (
	mu      sync.Mutex
	rotator *lumberjack.Logger
)

// Init replaces the global logger. Calling it again closes the previous log file.
func Init(opts Options) {
	mu.Lock()
	defer mu.Unlock()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if opts.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	var output io.Writer = zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.DateTime,
		NoColor:    opts.NoColor,
	}

	if rotator != nil {
		rotator.Close()
		rotator = nil
	}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err == nil {
			rotator = &lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    DefaultMaxSizeMB,
				MaxBackups: DefaultMaxBackups,
				MaxAge:     DefaultMaxAgeDays,
				LocalTime:  true,
			}
			output = io.MultiWriter(output, rotator)
		}
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// Close flushes and closes the log file, if any
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

// Get returns a logger tagged with component
func Get(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// DefaultFile returns the log file path inside the user config directory
func DefaultFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "yt-cropper", DefaultFileName)
}
