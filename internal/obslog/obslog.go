// Package obslog provides structured logging for the CLI harnesses,
// via zerolog. It is never imported by internal/engine,
// internal/inference, or internal/search: those packages treat
// invariant violations as programmer errors that panic, not events to
// log, and keep logging off the searcher's hot path.
package obslog

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const milliTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Init configures the global zerolog logger: console output, a level
// read from LOG_LEVEL (default info), and UTC millisecond timestamps.
func Init() {
	zerolog.TimeFieldFormat = milliTimeFormat
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }

	levelName := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if levelName == "" {
		levelName = "info"
	}
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: milliTimeFormat,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	log.Logger = log.Output(output)
}

// Get returns the global logger.
func Get() zerolog.Logger {
	return log.Logger
}

// ForMatch returns a logger enriched with a match identifier, used by
// the tournament harness to tell concurrent games apart in the log
// stream.
func ForMatch(id int) zerolog.Logger {
	return log.Logger.With().Int("match", id).Logger()
}
