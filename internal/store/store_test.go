package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/zipcensus/internal/model"
)

func newTestFileStore(t *testing.T) Store {
	t.Helper()
	zap.ReplaceGlobals(zap.NewNop())
	return NewFileStore(t.TempDir(), "", "", "")
}

func newTestMemoryStore(t *testing.T) Store {
	t.Helper()
	return NewMemoryStore()
}

func sampleState() *State {
	st := NewState()
	st.Ledger.Add("02406")
	st.Ledger.Add("22406")
	st.Ledger.Add("00000")
	st.Table.Upsert("02406", []model.Field{
		{Label: "Total Population", Value: "100"},
		{Label: "Median Age", Value: ""},
	})
	st.Table.Upsert("22406", []model.Field{
		{Label: "Total Population", Value: "12345"},
		{Label: "Median Age", Value: "38.1"},
	})
	st.Failures.Put(model.Failure{
		ZIP:       "00000",
		Stage:     model.StageState,
		Error:     "state not found",
		ErrorType: "permanent",
		FailedAt:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	})
	return st
}

func storeTestSuite(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("LoadEmpty", func(t *testing.T) {
		s := newStore(t)
		st, err := s.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, st.Ledger.Len())
		assert.Equal(t, 0, st.Table.Len())
		assert.Equal(t, 0, st.Failures.Len())
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Save(ctx, sampleState()))

		got, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"02406", "22406", "00000"}, got.Ledger.ZIPs())
		assert.Equal(t, []string{"02406", "22406"}, got.Table.ZIPs())
		assert.Equal(t, []string{model.ZIPCodeColumn, "Total Population", "Median Age"}, got.Table.Columns())

		fields, ok := got.Table.Get("22406")
		require.True(t, ok)
		assert.Contains(t, fields, model.Field{Label: "Median Age", Value: "38.1"})

		f, ok := got.Failures.Get("00000")
		require.True(t, ok)
		assert.Equal(t, model.StageState, f.Stage)
		assert.Equal(t, "state not found", f.Error)
		assert.Equal(t, "permanent", f.ErrorType)
		assert.True(t, f.FailedAt.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
	})
}

func TestFileStore(t *testing.T) {
	storeTestSuite(t, newTestFileStore)
}

func TestMemoryStore(t *testing.T) {
	storeTestSuite(t, newTestMemoryStore)
}

func TestFileStore_LedgerFormat(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, "", "", "")
	require.NoError(t, s.Save(context.Background(), sampleState()))

	data, err := os.ReadFile(filepath.Join(dir, DefaultLedgerFile))
	require.NoError(t, err)
	assert.Equal(t, "ZIP Code\n02406\n22406\n00000\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "temp files should be renamed away")
	}
}

func TestFileStore_RepairsStrippedZeros(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultLedgerFile), []byte("ZIP Code\n2406\nbad\n22406\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultResultsFile), []byte("Total Population,ZIP Code\n7,2406\n"), 0o644))

	st, err := NewFileStore(dir, "", "", "").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"02406", "22406"}, st.Ledger.ZIPs())
	assert.True(t, st.Table.Has("02406"))
	assert.Equal(t, []string{model.ZIPCodeColumn, "Total Population"}, st.Table.Columns())
}

func TestFileStore_MissingZIPColumn(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultResultsFile), []byte("a,b\n1,2\n"), 0o644))

	_, err := NewFileStore(dir, "", "", "").Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZIP Code")
}

func TestFileStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewFileStore(t.TempDir(), "", "", "")
	_, err := s.Load(ctx)
	assert.Error(t, err)
	assert.Error(t, s.Save(ctx, NewState()))
}

func TestNewFileStore_Paths(t *testing.T) {
	s := NewFileStore("out", "l.csv", "", "f.csv")
	assert.Equal(t, filepath.Join("out", "l.csv"), s.LedgerPath)
	assert.Equal(t, filepath.Join("out", DefaultResultsFile), s.ResultsPath)
	assert.Equal(t, filepath.Join("out", "f.csv"), s.FailuresPath)
}

func TestMemoryStore_CountsSaves(t *testing.T) {
	m := NewMemoryStore()
	require.NoError(t, m.Save(context.Background(), NewState()))
	require.NoError(t, m.Save(context.Background(), NewState()))
	assert.Equal(t, 2, m.Saves())
}

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, ExportXLSX(sampleState(), path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)

	results := f.Sheet["Results"]
	require.NotNil(t, results)
	assert.Equal(t, model.ZIPCodeColumn, results.Rows[0].Cells[0].String())
	assert.Equal(t, "02406", results.Rows[1].Cells[0].String())

	failures := f.Sheet["Failures"]
	require.NotNil(t, failures)
	assert.Equal(t, "00000", failures.Rows[1].Cells[0].String())
}

func TestExportXLSX_NoFailuresSheet(t *testing.T) {
	st := sampleState()
	st.Failures = model.NewFailureSet()
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, ExportXLSX(st, path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Sheets, 1)
}
