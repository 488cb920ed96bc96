// Package googlebooks provides a client for the Google Books volumes API,
// used to pre-fill book records from an ISBN.
package googlebooks

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/booknest/booknest-server/internal/metrics"
)

// DefaultBaseURL is the production Google Books API endpoint.
const DefaultBaseURL = "https://www.googleapis.com/books/v1"

// Client provides access to the Google Books volumes API.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewClient creates a new Google Books client.
// Rate limited to roughly 60 requests per minute, burst of 5.
func NewClient(baseURL string, m *metrics.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
		baseURL:     baseURL,
		metrics:     m,
		logger:      logger,
	}
}

// Close releases resources. Currently a no-op but included for interface consistency.
func (c *Client) Close() {
	// No persistent resources to close
}

// wait blocks until rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
