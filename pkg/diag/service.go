package diag

import (
	"sync"

	"github.com/ulog-project/ulog-go/internal/stamp"
	"github.com/ulog-project/ulog-go/pkg/logfile"
)

// Service owns the process-wide diagnostics state: the rotating file,
// the open-scope counter, and the one-time crash-check result. One
// Service per process is the intended shape (see Default), but
// constructing extra instances against separate files is fine and is
// how the package tests itself.
//
// A single mutex guards the counter together with the open/write path,
// so every emitted line carries a depth consistent with program order
// on its goroutine. Safe for concurrent use.
type Service struct {
	mu    sync.Mutex
	file  *logfile.File
	sinks []Sink

	open int // live open-scope counter

	prepared bool // first-use sequence ran (crash check + open + marker)
	crashed  bool
}

// NewService creates a Service for the given options. Nothing touches
// the disk until the first scope begins.
func NewService(opts Options) *Service {
	opts = opts.withDefaults()
	return &Service{
		file: logfile.New(opts.DiagnosticsPath, opts.MaxFileSize),
	}
}

// AddSink registers an additional observer for emitted records. The
// file channel is unaffected by sinks.
func (s *Service) AddSink(sink Sink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks = append(s.sinks, sink)
}

// Begin starts a new scope labelled with a function name and its
// source location, writes the start record and raises the counter.
// The returned Scope must be ended on every exit path:
//
//	s := svc.Begin("handleRequest", "server.go")
//	defer s.End()
func (s *Service) Begin(label, source string) *Scope {
	return s.begin(label, source)
}

// BeginNamed is Begin with a caller-supplied block name, for
// distinguishing sibling scopes within one function. The scope is
// labelled "label:name".
func (s *Service) BeginNamed(label, name, source string) *Scope {
	return s.begin(label+":"+name, source)
}

func (s *Service) begin(label, source string) *Scope {
	sc := &Scope{svc: s, label: label, source: source}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prepareLocked()
	s.open++
	s.emitLocked(Record{
		Time:   stamp.Now(),
		Label:  label,
		Phase:  PhaseStart,
		Source: source,
		Depth:  s.open,
	})
	return sc
}

// OpenScopes returns the current open-scope count.
func (s *Service) OpenScopes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// CrashedLastRun reports whether the previous run of this process left
// a scope open. The check runs at most once per Service; calling this
// before any scope forces it (and the file open) to run now.
func (s *Service) CrashedLastRun() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prepareLocked()
	return s.crashed
}

// Close flushes and closes the diagnostics file. The counter and the
// crash-check result survive; a later scope reopens the file lazily.
func (s *Service) Close() error {
	return s.file.Close()
}

// prepareLocked runs the one-time first-use sequence: inspect the
// pre-rotation file tail for a crash verdict, then open (rotating if
// oversized), then write the crash marker if one is due. Ordering
// matters: the detector must see the file as the previous run left it,
// before any rename. Later calls only reattach a closed handle.
func (s *Service) prepareLocked() {
	if s.prepared {
		s.file.EnsureOpen()
		return
	}
	s.prepared = true

	s.crashed = detectCrash(s.file.LastLine())
	s.file.EnsureOpen()
	if s.crashed {
		s.file.WriteLine(CrashMarker)
	}
}

// detectCrash decides from the last line of the previous run's file
// whether that run stopped with a scope still open. Anything that is
// not a positive trailing depth - missing file, blank tail, the crash
// marker itself, garbage - means "no crash".
func detectCrash(lastLine string) bool {
	n, ok := TrailingDepth(lastLine)
	return ok && n > 0
}

// emitLocked writes the record to the file and fans it out to sinks.
// Callers hold s.mu.
func (s *Service) emitLocked(r Record) {
	s.file.WriteLine(r.FormatLine())
	for _, sink := range s.sinks {
		sink.Record(r)
	}
}

// Scope is one live scope recorder. Created by Service.Begin, closed
// by End (typically deferred), annotated in between with Note. Not
// intended to be shared across goroutines; the Service serializes the
// underlying writes regardless.
type Scope struct {
	svc    *Service
	label  string
	source string
	ended  bool
}

// Note writes a free-text annotation at the current depth. It may be
// called any number of times before End and has no lifecycle effect.
// Notes after End are dropped.
func (sc *Scope) Note(msg string) {
	s := sc.svc
	s.mu.Lock()
	defer s.mu.Unlock()

	if sc.ended {
		return
	}
	s.prepareLocked()
	s.emitLocked(Record{
		Time:    stamp.Now(),
		Label:   sc.label,
		Phase:   PhaseNote,
		Message: msg,
		Source:  sc.source,
		Depth:   s.open,
	})
}

// End closes the scope: the counter drops first, then the end record
// is written with the post-decrement depth. End is idempotent, so a
// stray double call cannot drive the counter negative.
func (sc *Scope) End() {
	s := sc.svc
	s.mu.Lock()
	defer s.mu.Unlock()

	if sc.ended {
		return
	}
	sc.ended = true

	s.prepareLocked()
	if s.open > 0 {
		s.open--
	}
	s.emitLocked(Record{
		Time:   stamp.Now(),
		Label:  sc.label,
		Phase:  PhaseEnd,
		Source: sc.source,
		Depth:  s.open,
	})
}
