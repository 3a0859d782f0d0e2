package fetcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPlace struct {
	State string `json:"state abbreviation"`
}

func TestDecodeJSONObject(t *testing.T) {
	obj, err := DecodeJSONObject[testPlace](strings.NewReader(`{"state abbreviation":"VA"}`))
	require.NoError(t, err)
	assert.Equal(t, "VA", obj.State)
}

func TestDecodeJSONObject_Invalid(t *testing.T) {
	_, err := DecodeJSONObject[testPlace](strings.NewReader(`{`))
	require.Error(t, err)
}
