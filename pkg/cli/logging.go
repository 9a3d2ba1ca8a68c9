// Package cli carries the plumbing shared by the appmatrix command-line
// tools: logger setup, output rendering and configuration path resolution.
package cli

import (
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogging configures the global zerolog logger: human-readable console
// output on stderr, tagged with a short per-invocation run_id so the lines
// of one run can be correlated in CI logs. Diagnostics default to warnings
// only; --verbose raises that to debug and LOG_LEVEL overrides both.
func SetupLogging(verbose bool) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Str("run_id", runID()).
		Logger()

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	switch os.Getenv("LOG_LEVEL") {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)
}

// runID returns the first block of a fresh UUID, enough to distinguish
// concurrent CI invocations without flooding every log line.
func runID() string {
	return uuid.NewString()[:8]
}
