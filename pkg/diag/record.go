package diag

import (
	"fmt"
	"strconv"
	"strings"
)

// CrashMarker is the sentinel line written once per process start when
// the previous run is concluded to have crashed. It carries no
// timestamp or depth field.
const CrashMarker = "## CRASH POINT ##"

// Phase tokens as they appear on the wire.
const (
	startToken = "start..."
	endToken   = "end!"
)

// Phase classifies a diagnostics record.
type Phase uint8

const (
	// PhaseStart marks scope entry.
	PhaseStart Phase = 0
	// PhaseNote is a free-text annotation inside an open scope.
	PhaseNote Phase = 1
	// PhaseEnd marks scope exit.
	PhaseEnd Phase = 2
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "START"
	case PhaseNote:
		return "NOTE"
	case PhaseEnd:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// Record is one diagnostics entry. Only its serialized line form is
// durable; Record itself exists for sinks, the reader, and export.
// CBOR encoding uses integer keys for compactness.
type Record struct {
	// Time is the formatted wall-clock time of the write (second
	// resolution).
	Time string `cbor:"1,keyasint" json:"time"`

	// Label is the scope label: a function name, optionally suffixed
	// with a caller-supplied block name ("func:block").
	Label string `cbor:"2,keyasint" json:"label"`

	// Phase of the record.
	Phase Phase `cbor:"3,keyasint" json:"phase"`

	// Message is the annotation text (PhaseNote only).
	Message string `cbor:"4,keyasint,omitempty" json:"message,omitempty"`

	// Source is the originating file path.
	Source string `cbor:"5,keyasint" json:"source"`

	// Depth is the open-scope counter sampled at write time.
	Depth int `cbor:"6,keyasint" json:"depth"`
}

// phaseText returns the on-wire text between the label colon and the
// source field.
func (r Record) phaseText() string {
	switch r.Phase {
	case PhaseStart:
		return startToken
	case PhaseEnd:
		return endToken
	default:
		return r.Message
	}
}

// FormatLine serializes the record to its single-line wire form:
//
//	[<time>] <label>:<phase-or-message> <source> |<depth>
func (r Record) FormatLine() string {
	return fmt.Sprintf("[%s] %s:%s %s |%d", r.Time, r.Label, r.phaseText(), r.Source, r.Depth)
}

// TrailingDepth extracts the integer after the final '|' of a line.
// This is the crash-detection primitive: it reports ok=false for
// lines without a parseable trailing depth, including the crash
// marker itself.
func TrailingDepth(line string) (int, bool) {
	pos := strings.LastIndexByte(line, '|')
	if pos < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(line[pos+1:]))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseLine parses a serialized record line. It reports ok=false for
// the crash marker, blank lines, and anything else that does not match
// the wire form.
//
// Parsing is best-effort on one ambiguity: the label/message boundary
// of a note whose message itself starts with a colon-joined word; the
// boundary is taken at the last colon of the first whitespace-free
// token, which is exact for every line the writer produces from
// colon-free messages.
func ParseLine(line string) (Record, bool) {
	if line == "" || line == CrashMarker {
		return Record{}, false
	}
	if !strings.HasPrefix(line, "[") {
		return Record{}, false
	}
	closing := strings.IndexByte(line, ']')
	if closing < 0 {
		return Record{}, false
	}

	var r Record
	r.Time = line[1:closing]

	rest := strings.TrimSpace(line[closing+1:])
	bar := strings.LastIndexByte(rest, '|')
	if bar < 0 {
		return Record{}, false
	}
	depth, err := strconv.Atoi(strings.TrimSpace(rest[bar+1:]))
	if err != nil || depth < 0 {
		return Record{}, false
	}
	r.Depth = depth

	body := strings.TrimRight(rest[:bar], " ")
	srcIdx := strings.LastIndexByte(body, ' ')
	if srcIdx < 0 {
		return Record{}, false
	}
	r.Source = body[srcIdx+1:]
	head := body[:srcIdx]

	switch {
	case strings.HasSuffix(head, ":"+startToken):
		r.Phase = PhaseStart
		r.Label = strings.TrimSuffix(head, ":"+startToken)
	case strings.HasSuffix(head, ":"+endToken):
		r.Phase = PhaseEnd
		r.Label = strings.TrimSuffix(head, ":"+endToken)
	default:
		r.Phase = PhaseNote
		first := head
		if sp := strings.IndexByte(head, ' '); sp >= 0 {
			first = head[:sp]
		}
		colon := strings.LastIndexByte(first, ':')
		if colon < 0 {
			return Record{}, false
		}
		r.Label = head[:colon]
		r.Message = head[colon+1:]
	}
	if r.Label == "" {
		return Record{}, false
	}
	return r, true
}
