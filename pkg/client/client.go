// Package client provides the HTTP layer of the wbdata fetcher: single-page
// GET requests with bounded retries and transparent response caching.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/rogomes/wbdata/pkg/cache"
	"github.com/rogomes/wbdata/pkg/logging"
)

// Prometheus metrics for API requests.
var (
	wbRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wb_requests_total",
		Help: "Total World Bank API requests by HTTP status",
	}, []string{"status"})

	wbRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wb_request_duration_seconds",
		Help:    "World Bank API request duration in seconds, retries included",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})

	wbRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wb_retries_total",
		Help: "Total number of connection retry attempts",
	})

	wbRetryExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wb_retry_exhausted_total",
		Help: "Total number of requests that exhausted all connection attempts",
	})
)

// Config holds the client configuration.
type Config struct {
	// HTTPTimeout bounds a single request attempt
	HTTPTimeout time.Duration

	// MaxAttempts is the number of tries for one URL before giving up
	MaxAttempts int

	// Backoff between connection retries
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		HTTPTimeout:       30 * time.Second,
		MaxAttempts:       5,
		InitialBackoff:    500 * time.Millisecond,
		MaxBackoff:        10 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// Client fetches single pages from the World Bank API, consulting the
// response cache before going to the network.
type Client struct {
	httpClient *http.Client
	cache      *cache.Store
	config     Config
	logger     zerolog.Logger
}

// New creates a client on top of a loaded cache store. A nil store disables
// caching entirely.
func New(store *cache.Store, cfg Config) *Client {
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 500 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 10 * time.Second
	}
	if cfg.BackoffMultiplier <= 0 {
		cfg.BackoffMultiplier = 2.0
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		cache:      store,
		config:     cfg,
		logger:     logging.NewLogger("client"),
	}
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// GetPage resolves one logical request to a parsed JSON page. With useCache
// the response cache is consulted first and populated on a miss; without it
// the cache is neither read nor written.
//
// The raw body is cached before parsing is attempted, mirroring the
// transport contract: a body the remote served successfully is cache-worthy
// even if it turns out malformed, and the parse failure repeats either way.
func (c *Client) GetPage(ctx context.Context, url string, params map[string]string, useCache bool) (json.RawMessage, error) {
	key := cache.Key{URL: url, Params: params}

	var body string
	var hit bool
	if useCache && c.cache != nil {
		body, hit = c.cache.Get(key)
	}

	if hit {
		c.logger.Debug().Str("url", url).Msg("Serving page from cache")
	} else {
		fetched, err := c.fetchURL(ctx, url, params)
		if err != nil {
			return nil, err
		}
		body = fetched

		if useCache && c.cache != nil {
			if err := c.cache.Put(ctx, key, body); err != nil {
				// Persistence is an optimization; keep serving the fresh body.
				c.logger.Warn().Err(err).Str("url", url).Msg("Failed to persist cache snapshot")
			}
		}
	}

	var page json.RawMessage
	if err := json.Unmarshal([]byte(body), &page); err != nil {
		return nil, fmt.Errorf("parse response from %s: %w", url, err)
	}
	return page, nil
}
