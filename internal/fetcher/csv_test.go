package fetcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_Basic(t *testing.T) {
	s, err := ReadCSV(strings.NewReader("a,b,c\n1,2,3\n4,5,6\n"), CSVOptions{})
	require.NoError(t, err)
	assert.Nil(t, s.Header)
	require.Len(t, s.Rows, 3)
	assert.Equal(t, []string{"a", "b", "c"}, s.Rows[0])
	assert.Equal(t, []string{"4", "5", "6"}, s.Rows[2])
}

func TestReadCSV_WithHeader(t *testing.T) {
	s, err := ReadCSV(strings.NewReader("ZIP Code,Total Population\n02406,12\n"), CSVOptions{HasHeader: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"ZIP Code", "Total Population"}, s.Header)
	assert.Equal(t, [][]string{{"02406", "12"}}, s.Rows)
	assert.Equal(t, 0, s.ColumnIndex("zip code"))
	assert.Equal(t, -1, s.ColumnIndex("missing"))
}

func TestReadCSV_VariableWidthAndTrim(t *testing.T) {
	s, err := ReadCSV(strings.NewReader(" a , b\n1\n"), CSVOptions{TrimSpace: true})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1"}}, s.Rows)
}

func TestReadCSV_PipeDelimitedWithComments(t *testing.T) {
	s, err := ReadCSV(strings.NewReader("# note\na|b\n"), CSVOptions{Delimiter: '|', Comment: '#'})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}}, s.Rows)
}

func TestReadCSV_Empty(t *testing.T) {
	s, err := ReadCSV(strings.NewReader(""), CSVOptions{HasHeader: true})
	require.NoError(t, err)
	assert.Empty(t, s.Header)
	assert.Empty(t, s.Rows)
}

func TestReadCSV_Malformed(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,\"b\nc"), CSVOptions{})
	require.Error(t, err)
}
