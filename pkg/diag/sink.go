package diag

import (
	"context"
	"log/slog"
)

// Sink receives a copy of every record a Service emits, in emission
// order. Sinks observe records only; the diagnostics file and the
// crash detector are unaffected by them. Implementations are called
// under the Service mutex and must not block for long or call back
// into the Service.
type Sink interface {
	Record(Record)
}

// NoopSink discards all records. Usable as a zero value.
type NoopSink struct{}

// Record discards the record.
func (NoopSink) Record(Record) {}

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a MultiSink delivering to all provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Record sends the record to all configured sinks.
func (m *MultiSink) Record(r Record) {
	for _, s := range m.sinks {
		s.Record(r)
	}
}

// SlogSink writes records to an slog.Logger at Debug level. Useful for
// development when scope traffic should show up on the console.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a SlogSink writing to the given slog.Logger.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger}
}

// Record writes the record to the slog logger.
func (s *SlogSink) Record(r Record) {
	attrs := []slog.Attr{
		slog.String("label", r.Label),
		slog.String("phase", r.Phase.String()),
		slog.String("source", r.Source),
		slog.Int("depth", r.Depth),
	}
	if r.Message != "" {
		attrs = append(attrs, slog.String("message", r.Message))
	}
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "scope", attrs...)
}

// Compile-time interface satisfaction checks.
var (
	_ Sink = NoopSink{}
	_ Sink = (*MultiSink)(nil)
	_ Sink = (*SlogSink)(nil)
)
