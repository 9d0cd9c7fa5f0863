package diag

import "github.com/google/uuid"

// Run is one contiguous slice of a diagnostics file between crash
// markers, i.e. the records of (at most) one process run. The marker a
// new process writes when it detects its predecessor crashed doubles
// as the run boundary.
type Run struct {
	// ID is a generated identifier for referencing the run in
	// analyzer output. It is not persisted in the file.
	ID string

	// AfterCrash is true when this run opened with a crash marker,
	// meaning the run before it crashed.
	AfterCrash bool

	// Records in file order.
	Records []Record

	// Starts, Ends and Notes count records by phase.
	Starts, Ends, Notes int

	// MaxDepth is the highest depth seen in the run.
	MaxDepth int

	// DanglingDepth is the depth of the run's last record: for the
	// final run of a file this is the number of scopes that were
	// still open when the process last wrote.
	DanglingDepth int
}

// Crashed reports whether the run itself ended with a scope open,
// judged the same way the crash detector judges a file tail.
func (r Run) Crashed() bool {
	return r.DanglingDepth > 0
}

// SplitRuns groups entries into process runs. Every crash marker
// closes the current run and opens a new one flagged AfterCrash.
func SplitRuns(entries []Entry) []Run {
	var runs []Run
	cur := Run{ID: uuid.NewString()}

	flush := func() {
		if len(cur.Records) > 0 || cur.AfterCrash {
			runs = append(runs, cur)
		}
	}

	for _, e := range entries {
		if e.Marker {
			flush()
			cur = Run{ID: uuid.NewString(), AfterCrash: true}
			continue
		}
		rec := e.Record
		cur.Records = append(cur.Records, rec)
		switch rec.Phase {
		case PhaseStart:
			cur.Starts++
		case PhaseEnd:
			cur.Ends++
		case PhaseNote:
			cur.Notes++
		}
		if rec.Depth > cur.MaxDepth {
			cur.MaxDepth = rec.Depth
		}
		cur.DanglingDepth = rec.Depth
	}
	flush()
	return runs
}

// ReadRuns reads the named diagnostics file and segments it into runs.
func ReadRuns(path string) ([]Run, error) {
	entries, err := ReadEntries(path)
	if err != nil {
		return nil, err
	}
	return SplitRuns(entries), nil
}
