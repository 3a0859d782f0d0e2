package store

import (
	"context"
	"encoding/csv"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/zipcensus/internal/fetcher"
	"github.com/sells-group/zipcensus/internal/model"
	"github.com/sells-group/zipcensus/internal/transform"
)

// Default artifact file names.
const (
	DefaultLedgerFile   = "proc_post.csv"
	DefaultResultsFile  = "census_df.csv"
	DefaultFailuresFile = "census_failures.csv"
)

var failureColumns = []string{model.ZIPCodeColumn, "Stage", "Error", "Error Type", "Failed At"}

// FileStore implements Store with one CSV file per artifact.
type FileStore struct {
	LedgerPath   string
	ResultsPath  string
	FailuresPath string
}

// NewFileStore creates a FileStore rooted at dir using the default file names
// for any empty name.
func NewFileStore(dir, ledgerFile, resultsFile, failuresFile string) *FileStore {
	if ledgerFile == "" {
		ledgerFile = DefaultLedgerFile
	}
	if resultsFile == "" {
		resultsFile = DefaultResultsFile
	}
	if failuresFile == "" {
		failuresFile = DefaultFailuresFile
	}
	return &FileStore{
		LedgerPath:   filepath.Join(dir, ledgerFile),
		ResultsPath:  filepath.Join(dir, resultsFile),
		FailuresPath: filepath.Join(dir, failuresFile),
	}
}

// Load reads all three artifacts.
func (s *FileStore) Load(ctx context.Context) (*State, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "store: load")
	}
	st := NewState()

	if err := s.loadLedger(st.Ledger); err != nil {
		return nil, err
	}
	if err := s.loadResults(st.Table); err != nil {
		return nil, err
	}
	if err := s.loadFailures(st.Failures); err != nil {
		return nil, err
	}

	zap.L().Debug("store: loaded state",
		zap.Int("ledger", st.Ledger.Len()),
		zap.Int("results", st.Table.Len()),
		zap.Int("failures", st.Failures.Len()),
	)
	return st, nil
}

// Save rewrites the result table, failures, and ledger.
func (s *FileStore) Save(ctx context.Context, st *State) error {
	if err := ctx.Err(); err != nil {
		return eris.Wrap(err, "store: save")
	}

	if err := writeCSV(s.ResultsPath, st.Table.Columns(), st.Table.Rows()); err != nil {
		return eris.Wrap(err, "store: write results")
	}

	var failureRows [][]string
	for _, f := range st.Failures.All() {
		failedAt := ""
		if !f.FailedAt.IsZero() {
			failedAt = f.FailedAt.Format(time.RFC3339)
		}
		failureRows = append(failureRows, []string{f.ZIP, string(f.Stage), f.Error, f.ErrorType, failedAt})
	}
	if err := writeCSV(s.FailuresPath, failureColumns, failureRows); err != nil {
		return eris.Wrap(err, "store: write failures")
	}

	ledgerRows := make([][]string, 0, st.Ledger.Len())
	for _, z := range st.Ledger.ZIPs() {
		ledgerRows = append(ledgerRows, []string{z})
	}
	if err := writeCSV(s.LedgerPath, []string{model.ZIPCodeColumn}, ledgerRows); err != nil {
		return eris.Wrap(err, "store: write ledger")
	}

	return nil
}

// readSheet parses path as a CSV with a header row. A missing file yields nil.
func readSheet(path string) (*fetcher.Sheet, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "store: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	sheet, err := fetcher.ReadCSV(f, fetcher.CSVOptions{HasHeader: true})
	if err != nil {
		return nil, eris.Wrapf(err, "store: parse %s", path)
	}
	return sheet, nil
}

// zipColumn locates the ZIP Code column of a non-empty sheet.
func zipColumn(sheet *fetcher.Sheet, path string) (int, error) {
	idx := sheet.ColumnIndex(model.ZIPCodeColumn)
	if idx < 0 && len(sheet.Rows) > 0 {
		return -1, eris.Errorf("store: %s has no %q column", path, model.ZIPCodeColumn)
	}
	return idx, nil
}

// normalizeStoredZIP repairs ZIPs that lost their leading zeros, typically
// after a round trip through a spreadsheet.
func normalizeStoredZIP(raw, path string) (string, bool) {
	z, err := transform.NormalizeZIP(raw)
	if err != nil {
		zap.L().Warn("store: skipping invalid zip", zap.String("file", path), zap.String("value", raw))
		return "", false
	}
	return z, true
}

func (s *FileStore) loadLedger(l *model.Ledger) error {
	sheet, err := readSheet(s.LedgerPath)
	if err != nil || sheet == nil {
		return err
	}
	idx, err := zipColumn(sheet, s.LedgerPath)
	if err != nil {
		return err
	}
	for _, row := range sheet.Rows {
		if idx >= len(row) {
			continue
		}
		if z, ok := normalizeStoredZIP(row[idx], s.LedgerPath); ok {
			l.Add(z)
		}
	}
	return nil
}

func (s *FileStore) loadResults(t *model.ResultTable) error {
	sheet, err := readSheet(s.ResultsPath)
	if err != nil || sheet == nil {
		return err
	}
	idx, err := zipColumn(sheet, s.ResultsPath)
	if err != nil {
		return err
	}
	t.AddColumns(sheet.Header...)
	for _, row := range sheet.Rows {
		if idx >= len(row) {
			continue
		}
		z, ok := normalizeStoredZIP(row[idx], s.ResultsPath)
		if !ok {
			continue
		}
		fields := make([]model.Field, 0, len(sheet.Header))
		for j, col := range sheet.Header {
			if j == idx || j >= len(row) {
				continue
			}
			fields = append(fields, model.Field{Label: col, Value: row[j]})
		}
		t.Upsert(z, fields)
	}
	return nil
}

func (s *FileStore) loadFailures(set *model.FailureSet) error {
	sheet, err := readSheet(s.FailuresPath)
	if err != nil || sheet == nil {
		return err
	}
	idx, err := zipColumn(sheet, s.FailuresPath)
	if err != nil {
		return err
	}
	col := func(row []string, name string) string {
		j := sheet.ColumnIndex(name)
		if j < 0 || j >= len(row) {
			return ""
		}
		return row[j]
	}
	for _, row := range sheet.Rows {
		if idx >= len(row) {
			continue
		}
		z, ok := normalizeStoredZIP(row[idx], s.FailuresPath)
		if !ok {
			continue
		}
		f := model.Failure{
			ZIP:       z,
			Stage:     model.Stage(col(row, "Stage")),
			Error:     col(row, "Error"),
			ErrorType: col(row, "Error Type"),
		}
		if ts := col(row, "Failed At"); ts != "" {
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				f.FailedAt = t
			}
		}
		set.Put(f)
	}
	return nil
}

// writeCSV writes header and rows to a temp file in the target directory and
// renames it over path.
func writeCSV(path string, header []string, rows [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "create dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return eris.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		_ = tmp.Close()
		return eris.Wrap(err, "write header")
	}
	if err := w.WriteAll(rows); err != nil {
		_ = tmp.Close()
		return eris.Wrap(err, "write rows")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "close temp file")
	}

	return eris.Wrap(os.Rename(tmpName, path), "rename into place")
}
