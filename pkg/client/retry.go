package client

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// fetchURL performs a single HTTP GET with up to MaxAttempts attempts. Only
// transport-level failures are retried, with jittered exponential backoff;
// any completed HTTP response counts as success here, since the remote
// encodes application errors in the response body, not the status line.
func (c *Client) fetchURL(ctx context.Context, rawURL string, params map[string]string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url %s: %w", rawURL, err)
	}
	q := u.Query()
	for name, value := range params {
		q.Set(name, value)
	}
	u.RawQuery = q.Encode()

	start := time.Now()
	defer func() {
		wbRequestDuration.Observe(time.Since(start).Seconds())
	}()

	var lastErr error
	backoff := c.config.InitialBackoff

	for attempt := 1; attempt <= c.config.MaxAttempts; attempt++ {
		body, err := c.attempt(ctx, u.String())
		if err == nil {
			if attempt > 1 {
				c.logger.Info().
					Str("url", rawURL).
					Int("attempt", attempt).
					Msg("Request succeeded after retry")
			}
			return body, nil
		}

		lastErr = err
		c.logger.Warn().
			Err(err).
			Str("url", rawURL).
			Int("attempt", attempt).
			Msg("Connection attempt failed")

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if attempt >= c.config.MaxAttempts {
			break
		}

		wbRetriesTotal.Inc()

		// Jitter (±20%) keeps parallel processes from retrying in lockstep.
		wait := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}

		backoff = time.Duration(float64(backoff) * c.config.BackoffMultiplier)
		if backoff > c.config.MaxBackoff {
			backoff = c.config.MaxBackoff
		}
	}

	wbRetryExhaustedTotal.Inc()
	c.logger.Error().
		Str("url", rawURL).
		Int("attempts", c.config.MaxAttempts).
		Msg("Could not connect to API")

	return "", &ConnectError{URL: rawURL, Attempts: c.config.MaxAttempts, Err: lastErr}
}

// attempt executes one GET and reads the full body. A failure anywhere in
// here is a transport-level failure and therefore retryable.
func (c *Client) attempt(ctx context.Context, fullURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	wbRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().
			Str("url", fullURL).
			Int("status", resp.StatusCode).
			Msg("Non-OK status from API")
	}

	return string(data), nil
}
