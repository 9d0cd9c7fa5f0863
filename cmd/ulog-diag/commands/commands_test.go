package commands

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulog-project/ulog-go/pkg/diag"
)

func init() {
	// Deterministic output regardless of the test terminal.
	color.NoColor = true
}

// crashedLogFile simulates two process runs: the first stops with two
// scopes open, the second detects the crash, writes the marker, and
// finishes one scope cleanly.
func crashedLogFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diagnostics.log")

	svc1 := diag.NewService(diag.Options{DiagnosticsPath: path})
	svc1.Begin("outer", "main.go")
	inner := svc1.Begin("inner", "worker.go")
	inner.Note("about to die")
	require.NoError(t, svc1.Close())

	svc2 := diag.NewService(diag.Options{DiagnosticsPath: path})
	s := svc2.Begin("recovered", "main.go")
	s.End()
	require.NoError(t, svc2.Close())

	return path
}

func TestRunView(t *testing.T) {
	path := crashedLogFile(t)

	var buf bytes.Buffer
	require.NoError(t, RunView(path, diag.Filter{}, &buf))

	out := buf.String()
	assert.Contains(t, out, "start  outer  main.go  |1")
	assert.Contains(t, out, "start  inner  worker.go  |2")
	assert.Contains(t, out, "note   inner: about to die  |2")
	assert.Contains(t, out, diag.CrashMarker)
	assert.Contains(t, out, "end    recovered  main.go  |0")

	// Nesting shows as indentation: inner sits deeper than outer.
	outerLine, innerLine := "", ""
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "start  outer") {
			outerLine = line
		}
		if strings.Contains(line, "start  inner") {
			innerLine = line
		}
	}
	require.NotEmpty(t, outerLine)
	require.NotEmpty(t, innerLine)
	assert.Greater(t, strings.Index(innerLine, "start"), strings.Index(outerLine, "start"))
}

func TestRunViewFilters(t *testing.T) {
	path := crashedLogFile(t)

	start := diag.PhaseStart
	var buf bytes.Buffer
	require.NoError(t, RunView(path, diag.Filter{Phase: &start, Label: "inner"}, &buf))

	out := buf.String()
	assert.Contains(t, out, "start  inner")
	assert.NotContains(t, out, "start  outer")
	assert.NotContains(t, out, "note")
	// Markers pass through the filter untouched.
	assert.Contains(t, out, diag.CrashMarker)
}

func TestRunViewMissingFile(t *testing.T) {
	var buf bytes.Buffer
	err := RunView(filepath.Join(t.TempDir(), "nope.log"), diag.Filter{}, &buf)
	assert.Error(t, err)
}

func TestParsePhaseFlag(t *testing.T) {
	p, err := parsePhaseFlag("Start")
	require.NoError(t, err)
	assert.Equal(t, diag.PhaseStart, p)

	_, err = parsePhaseFlag("bogus")
	assert.Error(t, err)
}

func TestRunStats(t *testing.T) {
	path := crashedLogFile(t)

	var buf bytes.Buffer
	require.NoError(t, RunStats(path, &buf))

	out := buf.String()
	// Two runs: the dangling one and the recovered one.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3, "header plus two rows:\n%s", out)
	assert.Contains(t, out, "DANGLING")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "no")
}

func TestRunStatsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagnostics.log")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	var buf bytes.Buffer
	require.NoError(t, RunStats(path, &buf))
	assert.Contains(t, buf.String(), "no records")
}

func TestRunExportJSONL(t *testing.T) {
	path := crashedLogFile(t)

	var buf bytes.Buffer
	require.NoError(t, RunExport(path, "jsonl", &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 5, "markers are excluded from export")
	assert.Contains(t, lines[0], `"label":"outer"`)
	assert.Contains(t, lines[0], `"depth":1`)
}

func TestRunExportCSV(t *testing.T) {
	path := crashedLogFile(t)

	var buf bytes.Buffer
	require.NoError(t, RunExport(path, "csv", &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6, "header plus five records")
	assert.Equal(t, []string{"time", "label", "phase", "message", "source", "depth"}, rows[0])
	assert.Equal(t, "outer", rows[1][1])
	assert.Equal(t, "about to die", rows[3][3])
}

func TestRunExportCBOR(t *testing.T) {
	path := crashedLogFile(t)

	var buf bytes.Buffer
	require.NoError(t, RunExport(path, "cbor", &buf))

	dec := diag.NewDecoder(&buf)
	var recs []diag.Record
	for {
		var r diag.Record
		if err := dec.Decode(&r); err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
		recs = append(recs, r)
	}
	require.Len(t, recs, 5)
	assert.Equal(t, "outer", recs[0].Label)
	assert.Equal(t, diag.PhaseNote, recs[2].Phase)
}

func TestRunExportUnknownFormat(t *testing.T) {
	path := crashedLogFile(t)
	var buf bytes.Buffer
	assert.Error(t, RunExport(path, "xml", &buf))
}

func TestRunRuns(t *testing.T) {
	path := crashedLogFile(t)

	var buf bytes.Buffer
	require.NoError(t, RunRuns(path, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "after_crash=no")
	assert.Contains(t, lines[0], "crashed=yes")
	assert.Contains(t, lines[1], "after_crash=yes")
	assert.Contains(t, lines[1], "crashed=no")
}

func TestCommandWiring(t *testing.T) {
	path := crashedLogFile(t)

	root := newRootCmd()
	root.AddCommand(newViewCmd(), newStatsCmd(), newExportCmd(), newRunsCmd())

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"view", "--phase", "start", path})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "start  outer")
}
