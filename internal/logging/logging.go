// Package logging configures structured diagnostic logs.
//
// User-facing messages go through the output package. Logs written here are
// for troubleshooting and go to stderr and a state file.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logFileName = "create-wails-app/create-wails-app.log"

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

// Setup configures the global logger for the given verbosity.
// 0 is warn, 1 info, 2 debug and anything higher trace.
func Setup(verbosity int) {
	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}

	writers := []io.Writer{console}
	file, err := openLogFile()
	if err == nil {
		writers = append(writers, file)
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	if err != nil {
		log.Debug().Err(err).Msg("logging to console only")
	}
	log.Debug().Int("verbosity", verbosity).Msg("logger initialized")
}

// Get returns a logger tagged with a component name.
func Get(component string) *zerolog.Logger {
	l := log.With().Str("component", component).Logger()
	return &l
}

func openLogFile() (*os.File, error) {
	path, err := xdg.StateFile(logFileName)
	if err != nil {
		return nil, fmt.Errorf("resolving log file: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
