package fetcher

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// Sheet is a parsed tabular file.
type Sheet struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the index of the named header column, or -1.
// Matching ignores case and surrounding space.
func (s *Sheet) ColumnIndex(name string) int {
	for i, h := range s.Header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// CSVOptions configures the CSV parser.
type CSVOptions struct {
	Delimiter rune // default ','
	HasHeader bool // if true, the first row becomes Sheet.Header
	Comment   rune // comment character (0 = none)
	TrimSpace bool
}

// ReadCSV reads every row of a CSV document. Rows may have varying widths.
func ReadCSV(r io.Reader, opts CSVOptions) (*Sheet, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}
	reader.FieldsPerRecord = -1

	s := &Sheet{}
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}

		if opts.TrimSpace {
			for i, field := range record {
				record[i] = strings.TrimSpace(field)
			}
		}

		if first && opts.HasHeader {
			first = false
			s.Header = record
			continue
		}
		first = false
		s.Rows = append(s.Rows, record)
	}
	return s, nil
}
