package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"CoinPulse/internal/domain"
)

const (
	seriesKey  = "Time Series (Digital Currency Daily)"
	dateLayout = "2006-01-02"
)

var (
	// ErrMissingSeries means the payload carries no daily time series at
	// all (typically a rate-limit or error note instead of data).
	ErrMissingSeries = errors.New("missing series")

	// ErrNoDataForDate means the series exists but has no bar for the
	// requested day. During intraday runs this usually means the bar is
	// not yet published, not that the upstream is down.
	ErrNoDataForDate = errors.New("no data for date")
)

// Price extracts the OHLCV bar for expectedDate from a raw daily-series
// payload. Pure; all failures are explicit.
func Price(raw []byte, asset, market string, expectedDate time.Time) (domain.PriceSnapshot, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.PriceSnapshot{}, fmt.Errorf("decode payload: %w", err)
	}

	rawSeries, ok := payload[seriesKey]
	if !ok {
		return domain.PriceSnapshot{}, ErrMissingSeries
	}

	var series map[string]map[string]string
	if err := json.Unmarshal(rawSeries, &series); err != nil {
		return domain.PriceSnapshot{}, fmt.Errorf("decode series: %w", err)
	}

	day := expectedDate.UTC().Format(dateLayout)
	bar, ok := series[day]
	if !ok {
		return domain.PriceSnapshot{}, fmt.Errorf("%w: %s", ErrNoDataForDate, day)
	}

	snapshot := domain.PriceSnapshot{
		Asset:  asset,
		Market: market,
		Date:   expectedDate.UTC().Truncate(24 * time.Hour),
	}

	fields := []struct {
		key  string
		dest *decimal.Decimal
	}{
		{"1. open", &snapshot.Open},
		{"2. high", &snapshot.High},
		{"3. low", &snapshot.Low},
		{"4. close", &snapshot.Close},
		{"5. volume", &snapshot.Volume},
	}
	for _, f := range fields {
		value, err := barField(bar, f.key)
		if err != nil {
			return domain.PriceSnapshot{}, err
		}
		*f.dest = value
	}

	return snapshot, nil
}

func barField(bar map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := bar[key]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("malformed field %q: absent", key)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("malformed field %q: %w", key, err)
	}
	return value, nil
}
