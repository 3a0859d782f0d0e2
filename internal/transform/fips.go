// Package transform holds static lookup tables and normalizers for ZIP codes
// and state FIPS codes.
package transform

import (
	"strings"

	"github.com/rotisserie/eris"
)

// StateAbbrToFIPS maps USPS state abbreviations to 2-digit state FIPS codes.
// DC and the territories are not included.
var StateAbbrToFIPS = map[string]string{
	"AL": "01", "AK": "02", "AZ": "04", "AR": "05", "CA": "06", "CO": "08", "CT": "09",
	"DE": "10", "FL": "12", "GA": "13", "HI": "15", "ID": "16", "IL": "17", "IN": "18",
	"IA": "19", "KS": "20", "KY": "21", "LA": "22", "ME": "23", "MD": "24", "MA": "25",
	"MI": "26", "MN": "27", "MS": "28", "MO": "29", "MT": "30", "NE": "31", "NV": "32",
	"NH": "33", "NJ": "34", "NM": "35", "NY": "36", "NC": "37", "ND": "38", "OH": "39",
	"OK": "40", "OR": "41", "PA": "42", "RI": "44", "SC": "45", "SD": "46", "TN": "47",
	"TX": "48", "UT": "49", "VT": "50", "VA": "51", "WA": "53", "WV": "54", "WI": "55",
	"WY": "56",
}

// StateFIPS returns the FIPS code for a state abbreviation, or "" if unknown.
func StateFIPS(abbr string) string {
	return StateAbbrToFIPS[strings.ToUpper(strings.TrimSpace(abbr))]
}

// NormalizeZIP converts a raw ZIP value into a zero-padded 5-character string.
// ZIP+4 values ("12345-6789") keep their 5-digit prefix.
func NormalizeZIP(raw string) (string, error) {
	z := strings.TrimSpace(raw)
	if i := strings.IndexByte(z, '-'); i >= 0 {
		z = z[:i]
	}
	// Spreadsheet exports sometimes carry numeric ZIPs as "2406.0".
	z = strings.TrimSuffix(z, ".0")
	if z == "" {
		return "", eris.Errorf("zip: empty value %q", raw)
	}
	if len(z) > 5 {
		return "", eris.Errorf("zip: %q has more than 5 digits", raw)
	}
	for _, r := range z {
		if r < '0' || r > '9' {
			return "", eris.Errorf("zip: %q is not numeric", raw)
		}
	}
	return strings.Repeat("0", 5-len(z)) + z, nil
}

// NormalizeZIPs normalizes every value, failing on the first invalid one.
func NormalizeZIPs(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		z, err := NormalizeZIP(r)
		if err != nil {
			return nil, err
		}
		out = append(out, z)
	}
	return out, nil
}
