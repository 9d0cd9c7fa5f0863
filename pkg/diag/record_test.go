package diag

import "testing"

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "start",
			rec:  Record{Time: "2026-08-29 10:15:04", Label: "foo", Phase: PhaseStart, Source: "file.cpp", Depth: 1},
			want: "[2026-08-29 10:15:04] foo:start... file.cpp |1",
		},
		{
			name: "end",
			rec:  Record{Time: "2026-08-29 10:15:05", Label: "foo", Phase: PhaseEnd, Source: "file.cpp", Depth: 0},
			want: "[2026-08-29 10:15:05] foo:end! file.cpp |0",
		},
		{
			name: "note",
			rec:  Record{Time: "2026-08-29 10:15:04", Label: "foo", Phase: PhaseNote, Message: "halfway there", Source: "file.cpp", Depth: 1},
			want: "[2026-08-29 10:15:04] foo:halfway there file.cpp |1",
		},
		{
			name: "named scope",
			rec:  Record{Time: "2026-08-29 10:15:04", Label: "foo:retry", Phase: PhaseStart, Source: "file.cpp", Depth: 2},
			want: "[2026-08-29 10:15:04] foo:retry:start... file.cpp |2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.FormatLine(); got != tt.want {
				t.Errorf("FormatLine: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLineRoundTrip(t *testing.T) {
	recs := []Record{
		{Time: "2026-08-29 10:15:04", Label: "foo", Phase: PhaseStart, Source: "file.cpp", Depth: 1},
		{Time: "2026-08-29 10:15:04", Label: "foo:retry", Phase: PhaseEnd, Source: "a/b/c.go", Depth: 0},
		{Time: "2026-08-29 10:15:04", Label: "foo", Phase: PhaseNote, Message: "halfway there", Source: "file.cpp", Depth: 3},
		{Time: "2026-08-29 10:15:04", Label: "foo:retry", Phase: PhaseNote, Message: "pass 2 of 5", Source: "file.cpp", Depth: 2},
	}

	for _, rec := range recs {
		got, ok := ParseLine(rec.FormatLine())
		if !ok {
			t.Errorf("ParseLine(%q) failed", rec.FormatLine())
			continue
		}
		if got != rec {
			t.Errorf("round trip: got %+v, want %+v", got, rec)
		}
	}
}

func TestParseLineNoteWithDelimiters(t *testing.T) {
	// Messages may contain '|' and spaces; the final '|' wins.
	rec := Record{Time: "2026-08-29 10:15:04", Label: "foo", Phase: PhaseNote,
		Message: "a|b pipe", Source: "file.cpp", Depth: 2}

	got, ok := ParseLine(rec.FormatLine())
	if !ok {
		t.Fatalf("ParseLine(%q) failed", rec.FormatLine())
	}
	if got.Depth != 2 {
		t.Errorf("Depth: got %d, want 2", got.Depth)
	}
	if got.Message != "a|b pipe" {
		t.Errorf("Message: got %q, want %q", got.Message, "a|b pipe")
	}
}

func TestParseLineRejects(t *testing.T) {
	bad := []string{
		"",
		CrashMarker,
		"no brackets at all",
		"[2026-08-29 10:15:04] missing depth field",
		"[2026-08-29 10:15:04] foo:start... file.cpp |notanumber",
		"[2026-08-29 10:15:04] foo:start... file.cpp |-1",
	}
	for _, line := range bad {
		if _, ok := ParseLine(line); ok {
			t.Errorf("ParseLine(%q) = ok, want rejection", line)
		}
	}
}

func TestTrailingDepth(t *testing.T) {
	tests := []struct {
		line   string
		want   int
		wantOK bool
	}{
		{"[t] foo:start... f |3", 3, true},
		{"[t] foo:end! f |0", 0, true},
		{"junk |17", 17, true},
		{CrashMarker, 0, false},
		{"no delimiter here", 0, false},
		{"trailing junk |x7", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := TrailingDepth(tt.line)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("TrailingDepth(%q) = (%d, %v), want (%d, %v)",
				tt.line, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseStart.String() != "START" || PhaseNote.String() != "NOTE" || PhaseEnd.String() != "END" {
		t.Error("unexpected phase names")
	}
	if Phase(99).String() != "UNKNOWN" {
		t.Error("invalid phase should stringify as UNKNOWN")
	}
}
