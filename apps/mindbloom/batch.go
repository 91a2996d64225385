package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/mindbloom/apps"
	"github.com/trezcool/mindbloom/core/wellness"
)

var errRejectedLines = errors.New("some lines were rejected")

// candidate is one line of a batch file.
type candidate struct {
	line  int
	entry wellness.NewEntry
}

// readCandidates reads name,wellness,metime,minutes[,notes] records. A leading header line is skipped.
func readCandidates(r io.Reader) ([]candidate, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var cands []candidate
	for first := true; ; first = false {
		rec, err := cr.Read()
		if err == io.EOF {
			return cands, nil
		} else if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if first && strings.EqualFold(strings.TrimSpace(rec[0]), "name") {
			continue
		}
		if len(rec) < 4 || len(rec) > 5 {
			return nil, apps.NewArgumentErrorf("line %d: expected 4 or 5 columns, got %d", line, len(rec))
		}
		ne := wellness.NewEntry{
			StudentName:       rec[0],
			WellnessActivity:  rec[1],
			MeTimeActivity:    rec[2],
			ScreenFreeMinutes: rec[3],
		}
		if len(rec) == 5 {
			ne.Notes = rec[4]
		}
		cands = append(cands, candidate{line: line, entry: ne})
	}
}

func newBatchCmd(a *app) *cobra.Command {
	var (
		out        string
		appendMode bool
		strict     bool
	)
	cmd := &cobra.Command{
		Use:   "batch FILE.csv",
		Short: "Validate a csv file of entries (name,wellness,metime,minutes[,notes])",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "opening batch file")
			}
			defer func() { _ = f.Close() }()

			cands, err := readCandidates(f)
			if err != nil {
				return errors.Wrapf(err, "reading %s", args[0])
			}

			w := cmd.OutOrStdout()
			rejected := 0
			for _, c := range cands {
				if _, _, err := a.svc.Log(c.entry); err != nil {
					rejected++
					msg := err.Error()
					if vErr, ok := wellness.AsValidationError(err); ok {
						msg = strings.ReplaceAll(vErr.Details(), "\n", "; ")
					}
					_, _ = fmt.Fprintf(w, "line %d: %s\n", c.line, invalidStyle.Render(msg))
				}
			}
			_, _ = fmt.Fprintf(w, "%d accepted, %d rejected\n", len(cands)-rejected, rejected)
			renderStats(w, a.svc.Summary())

			if out != "" {
				n, err := exportSession(a, out, appendMode)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(w, "exported %d entries to %s (%d rows in file)\n", a.svc.Count(), out, n)
			}
			if strict && rejected > 0 {
				return errors.Wrapf(errRejectedLines, "%d of %d", rejected, len(cands))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "export the accepted entries to this file (csv, json or yaml)")
	cmd.Flags().BoolVar(&appendMode, "append", false, "keep the rows already in the export file")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when a line is rejected")
	return cmd
}
