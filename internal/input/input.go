// Package input collects raw ZIP code values from command-line arguments and
// CSV or XLSX files.
package input

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/zipcensus/internal/fetcher"
)

// zipHeaders are header names recognized as the ZIP column.
var zipHeaders = []string{"zip code", "zip", "zipcode", "zip_code", "postal code", "zcta"}

// FromArgs splits each argument on commas and whitespace.
func FromArgs(args []string) []string {
	var out []string
	for _, a := range args {
		for _, part := range strings.FieldsFunc(a, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		}) {
			out = append(out, part)
		}
	}
	return out
}

// FromFile reads ZIP values from a .csv, .tsv, .txt, or .xlsx file. When the
// first row names a ZIP column that column is used; otherwise the first
// column. sheet picks the XLSX worksheet; empty means the first one.
func FromFile(path, sheet string) ([]string, error) {
	var (
		s   *fetcher.Sheet
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		s, err = fetcher.ReadXLSX(path, fetcher.XLSXOptions{SheetName: sheet})
	case ".csv", ".txt", "":
		s, err = readDelimited(path, ',')
	case ".tsv":
		s, err = readDelimited(path, '\t')
	default:
		return nil, eris.Errorf("input: unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, eris.Wrapf(err, "input: read %s", path)
	}
	return zipColumnValues(s.Rows), nil
}

func readDelimited(path string, delim rune) (*fetcher.Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "open")
	}
	defer f.Close() //nolint:errcheck
	return fetcher.ReadCSV(f, fetcher.CSVOptions{Delimiter: delim, TrimSpace: true, Comment: '#'})
}

func zipColumnValues(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	col, start := 0, 0
	if idx := headerIndex(rows[0]); idx >= 0 {
		col, start = idx, 1
	}

	var out []string
	for _, row := range rows[start:] {
		if col >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[col])
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func headerIndex(row []string) int {
	for i, cell := range row {
		c := strings.ToLower(strings.TrimSpace(cell))
		for _, h := range zipHeaders {
			if c == h {
				return i
			}
		}
	}
	return -1
}
