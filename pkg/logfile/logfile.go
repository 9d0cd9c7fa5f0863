// Package logfile implements the append-only rotating file sink shared
// by the diagnostics and message log channels.
//
// A File owns one on-disk log file. The first open in a process's
// lifetime checks the existing file against a size threshold and, if
// exceeded, renames it to "<path>.old" (replacing any previous backup)
// before opening fresh. The rotation decision is made exactly once per
// process; later opens only reattach a handle that was never obtained
// or was explicitly closed.
//
// All I/O failures degrade silently: a File that cannot open its path
// drops writes instead of surfacing errors, so logging can never fault
// the host application.
package logfile

import (
	"bufio"
	"os"
	"sync"
)

// BackupSuffix is appended to the path when the file is rotated aside.
const BackupSuffix = ".old"

// File is an append-only log file with one-shot size rotation.
// It is safe for concurrent use from multiple goroutines.
type File struct {
	path    string
	maxSize int64

	mu      sync.Mutex
	f       *os.File
	checked bool // rotation considered for this process
	rotated bool
}

// New returns a File for path with the given rotation threshold in
// bytes. Nothing is opened until the first use.
func New(path string, maxSize int64) *File {
	return &File{path: path, maxSize: maxSize}
}

// Path returns the file path this File writes to.
func (f *File) Path() string { return f.path }

// EnsureOpen makes sure a write handle exists, rotating the on-disk
// file first if this is the process's first open and the file exceeds
// the threshold. It is idempotent and reports whether a usable handle
// is available. Open failures are not returned; the File simply stays
// unopened and drops writes.
func (f *File) EnsureOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ensureOpenLocked()
}

func (f *File) ensureOpenLocked() bool {
	if f.f != nil {
		return true
	}
	if !f.checked {
		f.checked = true
		f.rotated = rotateIfTooLarge(f.path, f.maxSize)
	}
	h, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return false
	}
	f.f = h
	return true
}

// WriteLine appends s followed by a newline. The line is dropped
// silently if no handle can be obtained or the write fails.
func (f *File) WriteLine(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.ensureOpenLocked() {
		return
	}
	_, _ = f.f.WriteString(s + "\n")
}

// Rotated reports whether this process's first open renamed the
// pre-existing file to its backup name.
func (f *File) Rotated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rotated
}

// Close flushes and closes the handle. It is safe to call multiple
// times; a later WriteLine reopens the file in append mode without
// re-running the rotation check.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.f == nil {
		return nil
	}
	err := f.f.Close()
	f.f = nil
	return err
}

// LastLine returns the last non-empty line of the file as it currently
// exists on disk, reading independently of the write handle. It
// returns "" if the file is missing, empty, or unreadable. Callers
// that need the pre-rotation tail must call this before EnsureOpen.
func (f *File) LastLine() string {
	return LastLine(f.path)
}

// LastLine returns the last non-empty line of the named file, or ""
// if the file cannot be read.
func LastLine(path string) string {
	h, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer h.Close()

	var last string
	sc := bufio.NewScanner(h)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			last = line
		}
	}
	return last
}

// rotateIfTooLarge renames path to path+BackupSuffix when its size
// exceeds maxSize, replacing any existing backup. Reports whether a
// rename happened.
func rotateIfTooLarge(path string, maxSize int64) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() <= maxSize {
		return false
	}
	backup := path + BackupSuffix
	_ = os.Remove(backup)
	return os.Rename(path, backup) == nil
}
