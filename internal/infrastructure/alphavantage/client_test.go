package alphavantage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchDaily(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "DIGITAL_CURRENCY_DAILY", q.Get("function"))
		assert.Equal(t, "BTC", q.Get("symbol"))
		assert.Equal(t, "EUR", q.Get("market"))
		assert.Equal(t, "test-key", q.Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Time Series (Digital Currency Daily)": {}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", server.Client())

	body, err := client.FetchDaily(context.Background(), "BTC", "EUR")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Time Series (Digital Currency Daily)": {}}`, string(body))
}

func TestFetchDailyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", server.Client())

	_, err := client.FetchDaily(context.Background(), "BTC", "EUR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestFetchDailyTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "test-key", nil)

	_, err := client.FetchDaily(context.Background(), "BTC", "EUR")
	assert.Error(t, err)
}
