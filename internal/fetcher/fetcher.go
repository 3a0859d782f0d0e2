// Package fetcher issues rate-limited HTTP GETs and parses JSON, CSV, and
// XLSX payloads.
package fetcher

import (
	"context"
	"io"
)

// Fetcher defines the interface for downloading remote data.
type Fetcher interface {
	// Download fetches the URL and returns the response body. Non-2xx
	// responses are reported as *StatusError.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// GetJSON downloads url and decodes the body into T.
func GetJSON[T any](ctx context.Context, f Fetcher, url string) (*T, error) {
	body, err := f.Download(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck

	return DecodeJSONObject[T](body)
}
