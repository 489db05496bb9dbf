package corosched

import (
	"os"

	"github.com/rs/zerolog"
)

// logger is the package-local name for zerolog.Logger, the type corosched
// uses for lifecycle tracing. It is a plain alias: WithLogger takes a
// zerolog.Logger value, such as one returned by NewStderrLogger.
type logger = zerolog.Logger

// defaultLogger is disabled by default. The teacher itself has no
// structured logging at all — its only diagnostic output is a single
// fmt.Fprintln(os.Stderr, ...) call at one unrecoverable condition
// (internal/scheduler.go) — so a silent default keeps corosched's ambient
// behavior consistent with the teacher's near-silence, while still giving
// callers a real logger to opt into (see WithLogger).
func defaultLogger() logger {
	return zerolog.Nop()
}

// NewStderrLogger returns a human-readable zerolog.Logger writing to
// stderr at the given level, for use with WithLogger during development or
// from cmd/corodemo.
func NewStderrLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false}).
		Level(level).
		With().Timestamp().Logger()
}
