package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ulog-project/ulog-go/pkg/diag"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Show per-run statistics as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunStats(args[0], cmd.OutOrStdout())
		},
	}
}

// RunStats writes one table row per process run found in the file.
func RunStats(path string, w io.Writer) error {
	runs, err := diag.ReadRuns(path)
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "no records")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Run", "Records", "Starts", "Ends", "Notes", "Max Depth", "Dangling", "Crashed"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, run := range runs {
		table.Append([]string{
			shortID(run.ID),
			strconv.Itoa(len(run.Records)),
			strconv.Itoa(run.Starts),
			strconv.Itoa(run.Ends),
			strconv.Itoa(run.Notes),
			strconv.Itoa(run.MaxDepth),
			strconv.Itoa(run.DanglingDepth),
			yesNo(run.Crashed()),
		})
	}
	table.Render()
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
