package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateFIPS(t *testing.T) {
	tests := []struct {
		abbr string
		want string
	}{
		{"VA", "51"},
		{"va", "51"},
		{" CA ", "06"},
		{"AL", "01"},
		{"WY", "56"},
		{"DC", ""},
		{"PR", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.abbr, func(t *testing.T) {
			assert.Equal(t, tt.want, StateFIPS(tt.abbr))
		})
	}
}

func TestStateAbbrToFIPS_Size(t *testing.T) {
	assert.Len(t, StateAbbrToFIPS, 50)
	seen := make(map[string]string)
	for abbr, code := range StateAbbrToFIPS {
		assert.Len(t, code, 2, abbr)
		prev, dup := seen[code]
		assert.False(t, dup, "fips %s shared by %s and %s", code, prev, abbr)
		seen[code] = abbr
	}
}

func TestNormalizeZIP(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"22406", "22406"},
		{"2406", "02406"},
		{"501", "00501"},
		{" 90210 ", "90210"},
		{"10001-1234", "10001"},
		{"2406.0", "02406"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := NormalizeZIP(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeZIP_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "abcde", "123456", "12a45"} {
		_, err := NormalizeZIP(raw)
		assert.Error(t, err, raw)
	}
}

func TestNormalizeZIPs(t *testing.T) {
	got, err := NormalizeZIPs([]string{"22406", "501"})
	require.NoError(t, err)
	assert.Equal(t, []string{"22406", "00501"}, got)

	_, err = NormalizeZIPs([]string{"22406", "bad"})
	assert.Error(t, err)
}
