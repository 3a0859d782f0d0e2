// Package census fetches American Community Survey statistics for ZIP code
// tabulation areas from the Census Bureau data API.
package census

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/zipcensus/internal/fetcher"
	"github.com/sells-group/zipcensus/internal/model"
)

const (
	DefaultBaseURL = "https://api.census.gov"
	DefaultYear    = 2019
	DefaultDataset = "acs/acs5"
)

// Fetcher retrieves the labeled census record for one ZIP code.
type Fetcher interface {
	// FetchZIP never returns an error; failures come back as error records.
	FetchZIP(ctx context.Context, zip, stateCode string) model.Record
}

// Client implements Fetcher against the Census data API.
type Client struct {
	f       fetcher.Fetcher
	apiKey  string
	baseURL string
	year    int
	dataset string
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithYear selects the ACS vintage.
func WithYear(year int) Option {
	return func(c *Client) {
		if year > 0 {
			c.year = year
		}
	}
}

// WithDataset selects the dataset path, e.g. "acs/acs5".
func WithDataset(ds string) Option {
	return func(c *Client) {
		if ds != "" {
			c.dataset = strings.Trim(ds, "/")
		}
	}
}

// NewClient creates a census client. The key is sent as given.
func NewClient(f fetcher.Fetcher, apiKey string, opts ...Option) *Client {
	c := &Client{
		f:       f,
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		year:    DefaultYear,
		dataset: DefaultDataset,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueryURL builds the request URL for zip within the given state.
func (c *Client) QueryURL(zip, stateCode string) string {
	return fmt.Sprintf("%s/data/%d/%s?get=%s&for=zip%%20code%%20tabulation%%20area:%s&in=state:%s&key=%s",
		c.baseURL, c.year, c.dataset, strings.Join(Variables, ","), zip, stateCode, url.QueryEscape(c.apiKey))
}

// FetchZIP requests every variable for zip and labels the response.
func (c *Client) FetchZIP(ctx context.Context, zip, stateCode string) model.Record {
	log := zap.L().With(zap.String("zip", zip), zap.String("state", stateCode))

	data, err := fetcher.GetJSON[[][]any](ctx, c.f, c.QueryURL(zip, stateCode))
	if err != nil {
		var se *fetcher.StatusError
		if errors.As(err, &se) {
			log.Warn("census: http error", zap.Int("status", se.StatusCode))
			return model.NewErrorRecord(zip, model.StageCensus, "HTTP error occurred: "+se.Error(), err)
		}
		log.Warn("census: request failed", zap.Error(err))
		return model.NewErrorRecord(zip, model.StageCensus, "An error occurred: "+err.Error(), err)
	}

	fields, err := LabelResponse(*data)
	if err != nil {
		log.Warn("census: unexpected response", zap.Error(err))
		return model.NewErrorRecord(zip, model.StageCensus, "An error occurred: "+err.Error(), err)
	}

	return model.NewRecord(zip, fields)
}

// LabelResponse pairs the header row with the first value row, translating
// each header through Labels.
func LabelResponse(data [][]any) ([]model.Field, error) {
	if len(data) < 2 {
		return nil, eris.Errorf("census: expected header and value rows, got %d rows", len(data))
	}
	header, values := data[0], data[1]
	if len(values) < len(header) {
		return nil, eris.Errorf("census: header has %d columns but values have %d", len(header), len(values))
	}

	fields := make([]model.Field, 0, len(header))
	for i, h := range header {
		token, ok := h.(string)
		if !ok {
			return nil, eris.Errorf("census: header column %d is not a string", i)
		}
		fields = append(fields, model.Field{Label: Label(token), Value: formatValue(values[i])})
	}
	return fields, nil
}

// formatValue renders a JSON cell as text. Nulls become "".
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}
