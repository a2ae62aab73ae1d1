package alphavantage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"CoinPulse/internal/ports"
)

const defaultEndpoint = "https://www.alphavantage.co/query"

// Client fetches daily digital-currency series from the Alpha Vantage API.
// The API key is injected; the client never reads process-wide state.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

var _ ports.PriceSource = (*Client)(nil)

// NewClient wires an HTTP client; endpoint defaults to the public API.
func NewClient(endpoint, apiKey string, client *http.Client) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{endpoint: endpoint, apiKey: apiKey, client: client}
}

// FetchDaily performs a single GET for the asset/market daily series and
// returns the raw JSON body. No retries, no caching.
func (c *Client) FetchDaily(ctx context.Context, asset, market string) ([]byte, error) {
	query := url.Values{}
	query.Set("function", "DIGITAL_CURRENCY_DAILY")
	query.Set("symbol", asset)
	query.Set("market", market)
	query.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request daily series: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("alphavantage returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}
