package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ulog-project/ulog-go/pkg/diag"
)

func newExportCmd() *cobra.Command {
	var (
		formatFlag string
		outputFlag string
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export records to JSONL, CSV or CBOR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if outputFlag != "" {
				f, err := os.Create(outputFlag)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				w = f
			}
			return RunExport(args[0], formatFlag, w)
		},
	}
	cmd.Flags().StringVar(&formatFlag, "format", "jsonl", "output format (jsonl, csv, cbor)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// RunExport converts all records (crash markers excluded) to the given
// format on w.
func RunExport(path, format string, w io.Writer) error {
	r, err := diag.NewReader(path)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer r.Close()

	switch format {
	case "jsonl":
		return exportJSONL(r, w)
	case "csv":
		return exportCSV(r, w)
	case "cbor":
		return exportCBOR(r, w)
	default:
		return fmt.Errorf("unknown format %q (want jsonl, csv or cbor)", format)
	}
}

func exportJSONL(r *diag.Reader, w io.Writer) error {
	enc := json.NewEncoder(w)
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
}

func exportCSV(r *diag.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"time", "label", "phase", "message", "source", "depth"}); err != nil {
		return err
	}
	for {
		rec, err := r.Next()
		if err == io.EOF {
			cw.Flush()
			return cw.Error()
		}
		if err != nil {
			return err
		}
		row := []string{
			rec.Time,
			rec.Label,
			rec.Phase.String(),
			rec.Message,
			rec.Source,
			strconv.Itoa(rec.Depth),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
}

func exportCBOR(r *diag.Reader, w io.Writer) error {
	enc := diag.NewEncoder(w)
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
}
