package main

import (
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/sells-group/zipcensus/internal/batch"
	"github.com/sells-group/zipcensus/internal/census"
	"github.com/sells-group/zipcensus/internal/config"
	"github.com/sells-group/zipcensus/internal/fetcher"
	"github.com/sells-group/zipcensus/internal/store"
	"github.com/sells-group/zipcensus/internal/zipcode"
)

// initFetcher builds the shared HTTP fetcher with one limiter per API host.
func initFetcher(c *config.Config) *fetcher.HTTPFetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:    c.HTTP.UserAgent,
		Timeout:      time.Duration(c.HTTP.TimeoutSecs) * time.Second,
		RateLimiters: rateLimiters(c),
	})
}

func rateLimiters(c *config.Config) map[string]*rate.Limiter {
	limiters := fetcher.DefaultRateLimiters()
	add := func(base string, perSec float64) {
		u, err := url.Parse(base)
		if err != nil || u.Host == "" || perSec <= 0 {
			return
		}
		burst := int(perSec)
		if burst < 1 {
			burst = 1
		}
		limiters[u.Host] = rate.NewLimiter(rate.Limit(perSec), burst)
	}
	add(c.Zippopotam.BaseURL, c.Zippopotam.RatePerSec)
	add(c.Census.BaseURL, c.Census.RatePerSec)
	return limiters
}

// initStore returns the CSV store for the configured output directory, or an
// in-memory store when nothing should be written.
func initStore(c *config.Config, noPersist bool) store.Store {
	if noPersist {
		return store.NewMemoryStore()
	}
	return store.NewFileStore(c.Output.Dir, c.Output.LedgerFile, c.Output.ResultsFile, c.Output.FailuresFile)
}

// initOrchestrator wires the resolver, census client and store together.
// An empty apiKey falls back to the configured key.
func initOrchestrator(c *config.Config, st store.Store, apiKey string, checkpointEvery int) *batch.Orchestrator {
	f := initFetcher(c)
	if apiKey == "" {
		apiKey = c.Census.APIKey
	}
	if checkpointEvery <= 0 {
		checkpointEvery = c.Batch.CheckpointEvery
	}

	resolver := zipcode.NewClient(f, zipcode.WithBaseURL(c.Zippopotam.BaseURL))
	cc := census.NewClient(f, apiKey,
		census.WithBaseURL(c.Census.BaseURL),
		census.WithYear(c.Census.Year),
		census.WithDataset(c.Census.Dataset),
	)
	return batch.New(resolver, cc, st, batch.Options{CheckpointEvery: checkpointEvery})
}
