package diag

import (
	"bytes"
	"io"
	"testing"
)

func TestRecordCBORRoundTrip(t *testing.T) {
	rec := Record{
		Time:    "2026-08-29 10:15:04",
		Label:   "foo:retry",
		Phase:   PhaseNote,
		Message: "halfway there",
		Source:  "file.cpp",
		Depth:   2,
	}

	data, err := EncodeRecord(rec)
	if err != nil {
		t.Fatalf("EncodeRecord failed: %v", err)
	}

	got, err := DecodeRecord(data)
	if err != nil {
		t.Fatalf("DecodeRecord failed: %v", err)
	}
	if got != rec {
		t.Errorf("round trip: got %+v, want %+v", got, rec)
	}
}

func TestRecordCBORStream(t *testing.T) {
	recs := []Record{
		{Time: "2026-08-29 10:15:04", Label: "a", Phase: PhaseStart, Source: "x.go", Depth: 1},
		{Time: "2026-08-29 10:15:05", Label: "a", Phase: PhaseEnd, Source: "x.go", Depth: 0},
	}

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, r := range recs {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}

	dec := NewDecoder(&buf)
	var got []Record
	for {
		var r Record
		if err := dec.Decode(&r); err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("Decode failed: %v", err)
		}
		got = append(got, r)
	}

	if len(got) != len(recs) {
		t.Fatalf("decoded %d records, want %d", len(got), len(recs))
	}
	for i := range recs {
		if got[i] != recs[i] {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], recs[i])
		}
	}
}

func TestDecodeRecordRejectsGarbage(t *testing.T) {
	if _, err := DecodeRecord([]byte{0xff, 0x00, 0x01}); err == nil {
		t.Error("DecodeRecord accepted garbage")
	}
}
