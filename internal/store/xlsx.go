package store

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ExportXLSX writes the result table, and the failures when present, to an
// XLSX workbook at path.
func ExportXLSX(st *State, path string) error {
	f := xlsx.NewFile()

	results, err := f.AddSheet("Results")
	if err != nil {
		return eris.Wrap(err, "xlsx export: add results sheet")
	}
	appendRow(results, st.Table.Columns())
	for _, row := range st.Table.Rows() {
		appendRow(results, row)
	}

	if st.Failures != nil && st.Failures.Len() > 0 {
		failures, err := f.AddSheet("Failures")
		if err != nil {
			return eris.Wrap(err, "xlsx export: add failures sheet")
		}
		appendRow(failures, failureColumns)
		for _, fl := range st.Failures.All() {
			failedAt := ""
			if !fl.FailedAt.IsZero() {
				failedAt = fl.FailedAt.Format(time.RFC3339)
			}
			appendRow(failures, []string{fl.ZIP, string(fl.Stage), fl.Error, fl.ErrorType, failedAt})
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "xlsx export: save")
	}
	return nil
}

// appendRow writes every cell as a string so ZIP codes keep leading zeros.
func appendRow(sheet *xlsx.Sheet, cells []string) {
	row := sheet.AddRow()
	for _, c := range cells {
		row.AddCell().SetString(c)
	}
}
