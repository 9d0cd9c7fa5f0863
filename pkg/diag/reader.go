package diag

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Filter specifies criteria for selecting records while reading a
// diagnostics file. Zero-valued fields match all records.
type Filter struct {
	// Phase filters by record phase.
	Phase *Phase

	// Label filters by substring match on the label.
	Label string

	// MinDepth filters out records shallower than this depth.
	MinDepth int
}

// matches returns true if the record meets all filter criteria.
func (f *Filter) matches(r Record) bool {
	if f.Phase != nil && r.Phase != *f.Phase {
		return false
	}
	if f.Label != "" && !strings.Contains(r.Label, f.Label) {
		return false
	}
	if r.Depth < f.MinDepth {
		return false
	}
	return true
}

// Entry is one line of a diagnostics file as seen by the reader:
// either a parsed record or a crash marker.
type Entry struct {
	// Record is the parsed record (zero when Marker is true).
	Record Record

	// Marker is true for the crash marker line.
	Marker bool

	// Raw is the verbatim line.
	Raw string
}

// Reader streams entries from a diagnostics file. Lines that are
// neither valid records nor the crash marker (for example a line
// truncated by a crash mid-write) are skipped.
type Reader struct {
	file    *os.File
	scanner *bufio.Scanner
	filter  Filter
}

// NewReader creates a Reader over all records in the named file.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader creates a Reader returning only records matching
// the filter. Crash markers are unaffected by the filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{file: f, scanner: sc, filter: filter}, nil
}

// NextEntry returns the next entry - record or crash marker - matching
// the filter. Returns io.EOF when the file is exhausted.
func (r *Reader) NextEntry() (Entry, error) {
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if line == CrashMarker {
			return Entry{Marker: true, Raw: line}, nil
		}
		rec, ok := ParseLine(line)
		if !ok {
			continue
		}
		if r.filter.matches(rec) {
			return Entry{Record: rec, Raw: line}, nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		return Entry{}, err
	}
	return Entry{}, io.EOF
}

// Next returns the next matching record, skipping crash markers.
// Returns io.EOF when no more records are available.
func (r *Reader) Next() (Record, error) {
	for {
		e, err := r.NextEntry()
		if err != nil {
			return Record{}, err
		}
		if e.Marker {
			continue
		}
		return e.Record, nil
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// ReadEntries reads the whole file into memory. Convenience for the
// analyzer commands; prefer the streaming Reader for large files.
func ReadEntries(path string) ([]Entry, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var entries []Entry
	for {
		e, err := r.NextEntry()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
}
