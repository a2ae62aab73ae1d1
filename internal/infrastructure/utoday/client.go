package utoday

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"CoinPulse/internal/ports"
)

// Some listing hosts reject requests without a browser-like agent.
const defaultUserAgent = "Mozilla/5.0"

// Client fetches the raw HTML of one news listing page. Parsing is left to
// the normalizer; pagination is out of scope.
type Client struct {
	listingURL string
	userAgent  string
	client     *http.Client
}

var _ ports.ListingSource = (*Client)(nil)

// NewClient wires the listing URL and an HTTP client.
func NewClient(listingURL, userAgent string, client *http.Client) *Client {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{listingURL: listingURL, userAgent: userAgent, client: client}
}

// FetchListing performs a single GET against the configured listing URL.
func (c *Client) FetchListing(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.listingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("listing returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}
