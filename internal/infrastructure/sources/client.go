package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/proteincompare/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	maxAttempts     = 3
	maxResponseSize = 4 << 20
	defaultTimeout  = 30 * time.Second
	rateLimitBurst  = 10
)

// ClientConfig holds the settings shared by every outbound source client
type ClientConfig struct {
	Timeout         time.Duration
	UserAgent       string
	RequestsPerHour int
}

// Client performs rate-limited GET requests with retries against a single
// third-party API. Each adapter owns its own Client so limits are per source.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	rateLimiter *rate.Limiter
	backoff     func(attempt int) time.Duration
	debug       bool
	tag         string
}

// NewClient creates a new outbound client. tag prefixes log lines, e.g. "[OFF]".
func NewClient(tag string, cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	// RequestsPerHour is converted to the per-second rate.Limit
	limit := rate.Inf
	if cfg.RequestsPerHour > 0 {
		limit = rate.Limit(float64(cfg.RequestsPerHour) / 3600)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent:   cfg.UserAgent,
		rateLimiter: rate.NewLimiter(limit, rateLimitBurst),
		backoff:     exponentialBackoff,
		tag:         tag,
	}
}

// SetDebug enables request and response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

func (c *Client) debugLog(format string, args ...any) {
	if c.debug {
		log.Printf(c.tag+" "+format, args...)
	}
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return time.Duration(500<<(attempt-1)) * time.Millisecond
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// doRequest executes an HTTP GET request with proper headers
func (c *Client) doRequest(ctx context.Context, reqURL string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceFailure, err)
	}

	return resp, nil
}

// Get fetches reqURL and returns the response body. Transport errors, 5xx and
// 429 responses are retried; 404 maps to ErrSourceNotFound and any other
// non-2xx status fails immediately.
func (c *Client) Get(ctx context.Context, reqURL string, header http.Header) ([]byte, error) {
	c.debugLog("GET %s", reqURL)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepContext(ctx, c.backoff(attempt-1)); err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrSourceFailure, err)
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
		}

		resp, err := c.doRequest(ctx, reqURL, header)
		if err != nil {
			c.debugLog("Request error (attempt %d): %v", attempt, err)
			lastErr = err
			if ctx.Err() != nil {
				return nil, lastErr
			}
			continue
		}

		body, err := readLimitedBody(resp.Body, maxResponseSize)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("%w: reading body: %v", domain.ErrSourceFailure, err)
			continue
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			c.debugLog("Status %d, %d bytes", resp.StatusCode, len(body))
			return body, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, domain.ErrSourceNotFound
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			c.debugLog("Retryable status %d (attempt %d)", resp.StatusCode, attempt)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrSourceFailure, resp.StatusCode)
		default:
			return nil, fmt.Errorf("%w: status %d", domain.ErrSourceFailure, resp.StatusCode)
		}
	}

	return nil, lastErr
}

// GetJSON fetches reqURL and decodes the JSON body into out
func (c *Client) GetJSON(ctx context.Context, reqURL string, header http.Header, out any) error {
	body, err := c.Get(ctx, reqURL, header)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
