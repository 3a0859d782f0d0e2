package fetcher

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func createTestXLSX(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				cell := row.AddCell()
				cell.SetString(cellData)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSX_FirstSheet(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {
			{"ZIP Code", "Name"},
			{"22406", "Fredericksburg"},
			{"02406", "Somewhere"},
		},
	})

	s, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	assert.Nil(t, s.Header)
	require.Len(t, s.Rows, 3)
	assert.Equal(t, []string{"ZIP Code", "Name"}, s.Rows[0])
	assert.Equal(t, "02406", s.Rows[2][0])
}

func TestReadXLSX_SheetByName(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"zips": {{"90210"}},
	})

	s, err := ReadXLSX(path, XLSXOptions{SheetName: "zips"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"90210"}}, s.Rows)
}

func TestReadXLSX_Errors(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{"Sheet1": {{"a"}}})

	_, err := ReadXLSX(path, XLSXOptions{SheetName: "nope"})
	assert.Error(t, err)

	_, err = ReadXLSX(filepath.Join(t.TempDir(), "missing.xlsx"), XLSXOptions{})
	assert.Error(t, err)
}
