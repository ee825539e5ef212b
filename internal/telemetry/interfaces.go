package telemetry

import (
	"context"
	"log"

	"worldnav/logging"
)

// Logger exposes the logging capabilities required by server components.
type Logger interface {
	Printf(format string, args ...any)
}

// LoggerFunc adapts functions into the Logger interface.
type LoggerFunc func(format string, args ...any)

// Printf implements Logger for LoggerFunc.
func (f LoggerFunc) Printf(format string, args ...any) {
	if f == nil {
		return
	}
	f(format, args...)
}

// WrapLogger adapts a standard library logger to the Logger interface.
func WrapLogger(logger *log.Logger) Logger {
	return &loggerAdapter{logger: logger}
}

type loggerAdapter struct {
	logger *log.Logger
}

func (l *loggerAdapter) Printf(format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Printf(format, args...)
}

// Metrics exposes the telemetry methods required by server components.
type Metrics interface {
	Add(key string, delta uint64)
	Store(key string, value uint64)
}

// WrapMetrics adapts the logging router metrics into the Metrics interface.
func WrapMetrics(metrics *logging.Metrics) Metrics {
	return &metricsAdapter{metrics: metrics}
}

type metricsAdapter struct {
	metrics *logging.Metrics
}

func (m *metricsAdapter) Add(key string, delta uint64) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.TelemetryAdd(key, delta)
}

func (m *metricsAdapter) Store(key string, value uint64) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.TelemetryStore(key, value)
}

// EventLogger tags call sites with the Category/Severity pairing the
// ambient logging stack is built around ("generator", "pathfinder",
// "http"; SeverityError for IntegrityError/DataCorruptionError,
// SeverityWarn for rejected queries, SeverityInfo for progress and
// completed queries, SeverityDebug for per-item detail), publishing each
// one through a logging.Publisher while also mirroring it to a fallback
// *log.Logger so plain stderr output keeps working with no sinks
// configured.
type EventLogger struct {
	publisher logging.Publisher
	fallback  *log.Logger
}

// NewEventLogger wraps publisher (typically a *logging.Router) for use at
// generator/pathfinder/HTTP call sites. publisher may be nil, in which
// case events only reach fallback.
func NewEventLogger(publisher logging.Publisher, fallback *log.Logger) *EventLogger {
	if fallback == nil {
		fallback = log.Default()
	}
	return &EventLogger{publisher: publisher, fallback: fallback}
}

// Emit publishes an event at the given severity/category and mirrors it
// to the fallback logger.
func (l *EventLogger) Emit(severity logging.Severity, category logging.Category, eventType logging.EventType, msg string, extra map[string]any) {
	if l == nil {
		return
	}
	l.fallback.Printf("[%s/%s] %s", category, eventType, msg)
	if l.publisher == nil {
		return
	}
	l.publisher.Publish(context.Background(), logging.Event{
		Type:     eventType,
		Severity: severity,
		Category: category,
		Payload:  msg,
		Extra:    extra,
	})
}

// Debug emits a SeverityDebug event, used for per-item processing detail.
func (l *EventLogger) Debug(category logging.Category, eventType logging.EventType, msg string, extra map[string]any) {
	l.Emit(logging.SeverityDebug, category, eventType, msg, extra)
}

// Info emits a SeverityInfo event, used for progress and completed queries.
func (l *EventLogger) Info(category logging.Category, eventType logging.EventType, msg string, extra map[string]any) {
	l.Emit(logging.SeverityInfo, category, eventType, msg, extra)
}

// Warn emits a SeverityWarn event, used for rejected queries (DomainError).
func (l *EventLogger) Warn(category logging.Category, eventType logging.EventType, msg string, extra map[string]any) {
	l.Emit(logging.SeverityWarn, category, eventType, msg, extra)
}

// Error emits a SeverityError event, used for IntegrityError/DataCorruptionError.
func (l *EventLogger) Error(category logging.Category, eventType logging.EventType, msg string, extra map[string]any) {
	l.Emit(logging.SeverityError, category, eventType, msg, extra)
}
