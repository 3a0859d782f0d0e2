// Package zipcode resolves ZIP codes to state FIPS codes through the
// Zippopotam lookup service.
package zipcode

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/zipcensus/internal/fetcher"
	"github.com/sells-group/zipcensus/internal/transform"
)

// DefaultBaseURL is the Zippopotam API root.
const DefaultBaseURL = "http://api.zippopotam.us"

// Resolver maps a ZIP code to its 2-digit state FIPS code.
type Resolver interface {
	// ResolveState returns "" with a nil error when the ZIP has no known
	// state. Errors are reserved for transport and decoding failures.
	ResolveState(ctx context.Context, zip string) (string, error)
}

type lookupResponse struct {
	PostCode string  `json:"post code"`
	Country  string  `json:"country"`
	Places   []place `json:"places"`
}

type place struct {
	Name      string `json:"place name"`
	State     string `json:"state"`
	StateAbbr string `json:"state abbreviation"`
}

// Client implements Resolver against Zippopotam.
type Client struct {
	f       fetcher.Fetcher
	baseURL string
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the Zippopotam API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// NewClient creates a Zippopotam resolver.
func NewClient(f fetcher.Fetcher, opts ...Option) *Client {
	c := &Client{f: f, baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveState looks up the state for zip. A non-2xx response or an unmapped
// state abbreviation yields "". A 2xx body without places is malformed and
// returned as an error, like a body that fails to decode.
func (c *Client) ResolveState(ctx context.Context, zip string) (string, error) {
	log := zap.L().With(zap.String("zip", zip))

	reqURL := c.baseURL + "/us/" + url.PathEscape(zip)
	resp, err := fetcher.GetJSON[lookupResponse](ctx, c.f, reqURL)
	if err != nil {
		var se *fetcher.StatusError
		if errors.As(err, &se) {
			log.Warn("zipcode: error fetching state FIPS code",
				zap.Int("status", se.StatusCode),
				zap.Error(err),
			)
			return "", nil
		}
		return "", eris.Wrapf(err, "zipcode: lookup %s", zip)
	}

	if len(resp.Places) == 0 {
		return "", eris.Errorf("zipcode: lookup %s returned no places", zip)
	}

	abbr := resp.Places[0].StateAbbr
	code := transform.StateFIPS(abbr)
	if code == "" {
		log.Warn("zipcode: unmapped state abbreviation", zap.String("state", abbr))
		return "", nil
	}

	log.Debug("zipcode: resolved state", zap.String("state", abbr), zap.String("fips", code))
	return code, nil
}
