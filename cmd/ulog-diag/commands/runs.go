package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ulog-project/ulog-go/pkg/diag"
)

func newRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs <file>",
		Short: "List process runs and their crash status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunRuns(args[0], cmd.OutOrStdout())
		},
	}
}

// RunRuns writes one summary line per process run.
func RunRuns(path string, w io.Writer) error {
	runs, err := diag.ReadRuns(path)
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}

	for i, run := range runs {
		span := "-"
		if n := len(run.Records); n > 0 {
			span = run.Records[0].Time + " .. " + run.Records[n-1].Time
		}
		fmt.Fprintf(w, "run %d (%s)  records=%d  span=%s  after_crash=%s  crashed=%s\n",
			i+1, shortID(run.ID), len(run.Records), span,
			yesNo(run.AfterCrash), yesNo(run.Crashed()))
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "no records")
	}
	return nil
}
