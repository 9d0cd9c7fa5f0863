// Package diag implements the scope-tracking diagnostics channel.
//
// A Service owns the diagnostics file and a process-wide open-scope
// counter. Scopes bracket logical execution regions: Begin writes a
// start record and raises the counter, End lowers the counter and
// writes an end record, and Note adds free-text annotations in
// between. Every record carries the live counter value, so the tail of
// the file always shows how deeply nested the process was when it last
// wrote.
//
// That tail is what the crash detector uses: on the first write of a
// new process, the last line of the previous run's file is inspected,
// and if its trailing depth is still positive the previous run ended
// with a scope open - it crashed. A one-time "## CRASH POINT ##"
// marker is then written before any new record.
//
// # Basic Usage
//
//	svc := diag.NewService(diag.DefaultOptions())
//	defer svc.Close()
//
//	func doWork() {
//	    s := svc.Begin("doWork", "worker.go")
//	    defer s.End()
//
//	    s.Note("halfway")
//	}
//
// The package-level Begin/BeginNamed helpers use a shared default
// Service, preserving the one-instance-per-process convenience.
//
// No operation in this package returns an error to the caller: I/O
// failures degrade to dropped lines and malformed previous-run content
// degrades to "no crash". Logging must never fault the host
// application.
//
// # File Format
//
// One record per line, human-readable:
//
//	[2026-08-29 10:15:04] doWork:start... worker.go |1
//	[2026-08-29 10:15:04] doWork:halfway worker.go |1
//	[2026-08-29 10:15:05] doWork:end! worker.go |0
//
// The ulog-diag CLI tool provides viewing, filtering, statistics and
// export for diagnostics files.
package diag
