// Package obslog sets up structured logging and a per-query trace
// recorder. The global slog logger is grounded directly on
// rgonzalez12-dbd-analytics/internal/log: a JSON handler chosen from
// LOG_LEVEL, lazily initialized so callers never need an explicit
// setup step. The trace recorder is adapted from the teacher's event
// infrastructure (vsinha-mrp/pkg/infrastructure/events/event.go):
// Event there is a generic append-only log of typed, timestamped
// facts about a BOM run, and Trace here is the same idea narrowed to
// one query's lifetime, turned into a flat human-readable log instead
// of a subscribable event stream since nothing in this service needs
// to react to an event asynchronously.
package obslog

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

var logger *slog.Logger

// Init configures the global structured logger from LOG_LEVEL.
func Init() {
	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     levelFromEnv(),
		AddSource: true,
	}))
	slog.SetDefault(logger)
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger returns the global logger, initializing it on first use.
func Logger() *slog.Logger {
	if logger == nil {
		Init()
	}
	return logger
}

// Trace accumulates the human-readable narrative of one solve query:
// rows discarded during CSV ingestion, anomalies skipped for an
// unknown base armor, and the final candidate/answer counts. It rides
// along in query.Response.Log so a caller can see why their query
// produced fewer builds than expected without turning on debug
// logging.
type Trace struct {
	correlationID string
	lines         []string
}

// NewTrace starts a trace tagged with a correlation id, logged as the
// query begins.
func NewTrace(correlationID string) *Trace {
	Logger().Info("solve query started", "correlation_id", correlationID)
	return &Trace{correlationID: correlationID}
}

// Notef appends one line to the trace and mirrors it to the
// structured logger at info level.
func (t *Trace) Notef(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	t.lines = append(t.lines, line)
	Logger().Info(line, "correlation_id", t.correlationID)
}

// Warnf appends one line to the trace and mirrors it to the
// structured logger at warn level, for recoverable but noteworthy
// conditions such as a discarded CSV row.
func (t *Trace) Warnf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	t.lines = append(t.lines, line)
	Logger().Warn(line, "correlation_id", t.correlationID)
}

// Lines returns the accumulated human-readable trace.
func (t *Trace) Lines() []string {
	return t.lines
}
