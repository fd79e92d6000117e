package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stayflow-labs/dataguard/pkg/check"
)

// renderReport writes a check report in the requested format.
func renderReport(w io.Writer, r *check.Report, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "CHECK", "STATUS", "MESSAGE"})
	for _, o := range r.Results {
		status := "PASS"
		if !o.Passed {
			status = "FAIL"
		}
		t.AppendRow(table.Row{o.CheckID, o.Name, status, o.Message})
	}
	t.Render()

	failed := len(r.Failures())
	if failed == 0 {
		fmt.Fprintf(w, "%d checks passed in %s (run %s)\n",
			len(r.Results), r.Duration.Round(time.Millisecond), r.RunID)
	} else {
		fmt.Fprintf(w, "%d of %d checks failed in %s (run %s)\n",
			failed, len(r.Results), r.Duration.Round(time.Millisecond), r.RunID)
	}
	return nil
}
