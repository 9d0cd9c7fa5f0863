package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ulog-project/ulog-go/pkg/diag"
)

var crashColor = color.New(color.FgRed, color.Bold)

func newViewCmd() *cobra.Command {
	var (
		phaseFlag    string
		labelFlag    string
		minDepthFlag int
	)

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "View records with depth indentation and crash markers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter diag.Filter
			if phaseFlag != "" {
				p, err := parsePhaseFlag(phaseFlag)
				if err != nil {
					return err
				}
				filter.Phase = &p
			}
			filter.Label = labelFlag
			filter.MinDepth = minDepthFlag

			return RunView(args[0], filter, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&phaseFlag, "phase", "", "filter by phase (start, note, end)")
	cmd.Flags().StringVar(&labelFlag, "label", "", "filter by label substring")
	cmd.Flags().IntVar(&minDepthFlag, "min-depth", 0, "filter out records shallower than this depth")

	return cmd
}

// parsePhaseFlag maps a flag value to a record phase.
func parsePhaseFlag(s string) (diag.Phase, error) {
	switch strings.ToLower(s) {
	case "start":
		return diag.PhaseStart, nil
	case "note":
		return diag.PhaseNote, nil
	case "end":
		return diag.PhaseEnd, nil
	default:
		return 0, fmt.Errorf("unknown phase %q (want start, note or end)", s)
	}
}

// RunView streams matching entries to w in human-readable form.
func RunView(path string, filter diag.Filter, w io.Writer) error {
	r, err := diag.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer r.Close()

	for {
		e, err := r.NextEntry()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read log: %w", err)
		}
		if e.Marker {
			crashColor.Fprintln(w, diag.CrashMarker)
			continue
		}
		formatRecord(w, e.Record)
	}
}

// formatRecord writes one indented line per record. Indentation tracks
// nesting: a scope's start, notes and end all align one level deeper
// than the enclosing scope.
func formatRecord(w io.Writer, rec diag.Record) {
	// End depth is post-decrement, so it already equals the level of
	// the enclosing scope; start and note depths include their own
	// scope and sit one deeper.
	level := rec.Depth
	if rec.Phase != diag.PhaseEnd {
		level--
	}
	if level < 0 {
		level = 0
	}
	indent := strings.Repeat("  ", level)

	switch rec.Phase {
	case diag.PhaseStart:
		fmt.Fprintf(w, "%s  %sstart  %s  %s  |%d\n", rec.Time, indent, rec.Label, rec.Source, rec.Depth)
	case diag.PhaseEnd:
		fmt.Fprintf(w, "%s  %send    %s  %s  |%d\n", rec.Time, indent, rec.Label, rec.Source, rec.Depth)
	default:
		fmt.Fprintf(w, "%s  %snote   %s: %s  |%d\n", rec.Time, indent, rec.Label, rec.Message, rec.Depth)
	}
}
