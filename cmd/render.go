package main

import (
	"encoding/json"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/zipcensus/internal/batch"
	"github.com/sells-group/zipcensus/internal/model"
	"github.com/sells-group/zipcensus/internal/store"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// summaryColumns are the census labels shown in the fetch table.
var summaryColumns = []string{"Total Population", "Median Household Income", "Median Age", "Median Home Value"}

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return eris.Errorf("unknown format %q (want table, json, or yaml)", format)
}

// writeEncoded writes v as JSON or YAML.
func writeEncoded(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(v), "render: encode json")
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "render: encode yaml")
		}
		return eris.Wrap(enc.Close(), "render: close yaml")
	}
	return checkFormat(format)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

// renderSummary prints this run's records followed by the counters.
func renderSummary(w io.Writer, format string, sum *batch.Summary) error {
	if format != formatTable {
		return writeEncoded(w, format, sum)
	}

	if len(sum.Records) > 0 {
		t := newTable(w)
		header := table.Row{model.ZIPCodeColumn, "Status"}
		for _, c := range summaryColumns {
			header = append(header, c)
		}
		header = append(header, "Error")
		t.AppendHeader(header)

		for _, rec := range sum.Records {
			row := table.Row{rec.ZIP, string(rec.Status)}
			for _, c := range summaryColumns {
				v, _ := rec.Get(c)
				row = append(row, v)
			}
			row = append(row, rec.Error)
			t.AppendRow(row)
		}
		t.Render()
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Run ID", sum.RunID},
		{"Requested", sum.Requested},
		{"Skipped (already processed)", sum.Skipped},
		{"Resolved", sum.Resolved},
		{"State not found", sum.Unresolved},
		{"Census errors", sum.CensusErrors},
		{"Checkpoints", sum.Checkpoints},
	})
	t.Render()
	return nil
}

// renderStatus prints artifact counts and the failures list.
func renderStatus(w io.Writer, st *store.State) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Artifact", "Count"})
	t.AppendRows([]table.Row{
		{"Processed ZIPs", st.Ledger.Len()},
		{"Result rows", st.Table.Len()},
		{"Failures", st.Failures.Len()},
	})
	t.Render()

	failures := st.Failures.All()
	if len(failures) == 0 {
		return
	}
	ft := newTable(w)
	ft.AppendHeader(table.Row{model.ZIPCodeColumn, "Stage", "Type", "Failed At", "Error"})
	for _, f := range failures {
		failedAt := ""
		if !f.FailedAt.IsZero() {
			failedAt = f.FailedAt.Format("2006-01-02 15:04")
		}
		ft.AppendRow(table.Row{f.ZIP, string(f.Stage), f.ErrorType, failedAt, truncate(f.Error, 60)})
	}
	ft.Render()
}

// renderRecord prints one result row as label/value pairs.
func renderRecord(w io.Writer, format string, rec model.Record) error {
	if format != formatTable {
		return writeEncoded(w, format, rec)
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Field", "Value"})
	for _, f := range rec.Fields {
		t.AppendRow(table.Row{f.Label, f.Value})
	}
	t.Render()
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
