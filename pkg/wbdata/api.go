// Package wbdata provides typed access to the World Bank Open Data API v2
// on top of the cached, paginated fetcher.
package wbdata

import (
	"context"
	"strings"
	"time"

	"github.com/rogomes/wbdata/pkg/pagination"
)

// Client exposes the World Bank entity listings and indicator time series.
type Client struct {
	fetcher  *pagination.Fetcher
	baseURL  string
	useCache bool
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root (used in tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithoutCache disables the response cache for every call from this client.
func WithoutCache() Option {
	return func(c *Client) {
		c.useCache = false
	}
}

// New creates a domain client on top of a page source.
func New(pages pagination.PageFetcher, opts ...Option) *Client {
	c := &Client{
		fetcher:  pagination.NewFetcher(pages),
		baseURL:  BaseURL,
		useCache: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) fetch(ctx context.Context, path string, params map[string]string) (*pagination.ResultSet, error) {
	return c.fetcher.FetchAll(ctx, c.baseURL+path, params, c.useCache)
}

// GetCountries returns every country and aggregate the API knows.
func (c *Client) GetCountries(ctx context.Context) ([]Country, error) {
	rs, err := c.fetch(ctx, "/countries", nil)
	if err != nil {
		return nil, err
	}
	countries := make([]Country, 0, len(rs.Records))
	for _, rec := range rs.Records {
		countries = append(countries, decodeCountry(rec))
	}
	return countries, nil
}

// GetCountry returns one country by its ISO code.
func (c *Client) GetCountry(ctx context.Context, code string) (*Country, error) {
	rs, err := c.fetch(ctx, "/countries/"+code, nil)
	if err != nil {
		return nil, err
	}
	if len(rs.Records) == 0 {
		return nil, &pagination.APIError{ID: "not_found", Key: "country", Value: code}
	}
	country := decodeCountry(rs.Records[0])
	return &country, nil
}

// GetIndicators returns the full indicator catalog.
func (c *Client) GetIndicators(ctx context.Context) ([]Indicator, error) {
	return c.indicators(ctx, "/indicators")
}

// GetIndicatorsBySource returns the indicators of one source.
func (c *Client) GetIndicatorsBySource(ctx context.Context, source string) ([]Indicator, error) {
	return c.indicators(ctx, "/sources/"+source+"/indicators")
}

func (c *Client) indicators(ctx context.Context, path string) ([]Indicator, error) {
	rs, err := c.fetch(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	indicators := make([]Indicator, 0, len(rs.Records))
	for _, rec := range rs.Records {
		indicators = append(indicators, decodeIndicator(rec))
	}
	return indicators, nil
}

// GetSources returns the data source catalog.
func (c *Client) GetSources(ctx context.Context) ([]Source, error) {
	return c.refList(ctx, "/sources")
}

// GetTopics returns the topic catalog.
func (c *Client) GetTopics(ctx context.Context) ([]Source, error) {
	return c.refList(ctx, "/topics")
}

// GetIncomeLevels returns the income level classifications.
func (c *Client) GetIncomeLevels(ctx context.Context) ([]Source, error) {
	return c.refList(ctx, "/incomelevels")
}

// GetLendingTypes returns the lending type classifications.
func (c *Client) GetLendingTypes(ctx context.Context) ([]Source, error) {
	return c.refList(ctx, "/lendingtypes")
}

func (c *Client) refList(ctx context.Context, path string) ([]Source, error) {
	rs, err := c.fetch(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	sources := make([]Source, 0, len(rs.Records))
	for _, rec := range rs.Records {
		sources = append(sources, decodeSource(rec))
	}
	return sources, nil
}

// DataSet is an indicator time series plus the data revision date the API
// reported for it (zero when absent).
type DataSet struct {
	Points      []DataPoint
	LastUpdated time.Time
}

// GetIndicatorData returns the time series of one indicator for the given
// country ISO codes ("all" selects every country). dateRange uses the API's
// "YYYY:YYYY" form and may be empty for the full history.
func (c *Client) GetIndicatorData(ctx context.Context, indicator string, countries []string, dateRange string) (*DataSet, error) {
	codes := "all"
	if len(countries) > 0 {
		codes = strings.Join(countries, ";")
	}

	var params map[string]string
	if dateRange != "" {
		params = map[string]string{"date": dateRange}
	}

	rs, err := c.fetch(ctx, "/countries/"+codes+"/indicators/"+indicator, params)
	if err != nil {
		return nil, err
	}

	set := &DataSet{
		Points:      make([]DataPoint, 0, len(rs.Records)),
		LastUpdated: rs.LastUpdated,
	}
	for _, rec := range rs.Records {
		set.Points = append(set.Points, decodeDataPoint(rec))
	}
	return set, nil
}

// SearchCountries returns the countries whose name contains query,
// case-insensitively. Filtering happens client-side; the API has no name
// search endpoint.
func (c *Client) SearchCountries(ctx context.Context, query string) ([]Country, error) {
	countries, err := c.GetCountries(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(query)
	matched := countries[:0]
	for _, country := range countries {
		if strings.Contains(strings.ToLower(country.Name), query) {
			matched = append(matched, country)
		}
	}
	return matched, nil
}

// SearchIndicators returns the indicators whose name contains query,
// case-insensitively.
func (c *Client) SearchIndicators(ctx context.Context, query string) ([]Indicator, error) {
	indicators, err := c.GetIndicators(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(query)
	matched := indicators[:0]
	for _, indicator := range indicators {
		if strings.Contains(strings.ToLower(indicator.Name), query) {
			matched = append(matched, indicator)
		}
	}
	return matched, nil
}
