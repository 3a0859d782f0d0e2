//go:build !integration

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sells-group/zipcensus/internal/config"
)

// fakeAPIs serves both the Zippopotam and the Census endpoints.
type fakeAPIs struct {
	srv      *httptest.Server
	states   map[string]string // zip -> state abbreviation
	lookups  atomic.Int32
	censuses atomic.Int32
	failZIP  string // census returns 500 for this zip
}

func newFakeAPIs(t *testing.T, states map[string]string) *fakeAPIs {
	t.Helper()
	f := &fakeAPIs{states: states}

	mux := http.NewServeMux()
	mux.HandleFunc("/us/", func(w http.ResponseWriter, r *http.Request) {
		f.lookups.Add(1)
		zip := strings.TrimPrefix(r.URL.Path, "/us/")
		abbr, ok := f.states[zip]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("{}"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"post code": zip,
			"places":    []map[string]string{{"place name": "Somewhere", "state abbreviation": abbr}},
		})
	})
	mux.HandleFunc("/data/2019/acs/acs5", func(w http.ResponseWriter, r *http.Request) {
		f.censuses.Add(1)
		zip := strings.TrimPrefix(r.URL.Query().Get("for"), "zip code tabulation area:")
		if zip == f.failZIP {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([][]any{
			{"B01003_001E", "B19013_001E", "B01002_001E", "state", "zip code tabulation area"},
			{"1200", "65000", 38.5, r.URL.Query().Get("in")[len("state:"):], zip},
		})
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPIs) requests() int {
	return int(f.lookups.Load() + f.censuses.Load())
}

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		Census: config.CensusConfig{
			APIKey:     "test-key",
			BaseURL:    baseURL,
			Year:       2019,
			Dataset:    "acs/acs5",
			RatePerSec: 1000,
		},
		Zippopotam: config.ZippopotamConfig{BaseURL: baseURL, RatePerSec: 1000},
		HTTP:       config.HTTPConfig{TimeoutSecs: 5, UserAgent: "zipcensus-test"},
		Batch:      config.BatchConfig{CheckpointEvery: 5},
		Output: config.OutputConfig{
			Dir:          t.TempDir(),
			LedgerFile:   "proc_post.csv",
			ResultsFile:  "census_df.csv",
			FailuresFile: "census_failures.csv",
		},
		Log: config.LogConfig{Level: "info", Format: "json"},
	}
}
