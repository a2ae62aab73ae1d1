package normalize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dailyPayload = `{
	"Meta Data": {"2. Digital Currency Code": "BTC"},
	"Time Series (Digital Currency Daily)": {
		"2025-06-11": {
			"1. open": "56000",
			"2. high": "58000",
			"3. low": "55000",
			"4. close": "57000",
			"5. volume": "2100.5"
		},
		"2025-06-10": {
			"1. open": "54000",
			"2. high": "56500",
			"3. low": "53800",
			"4. close": "56000",
			"5. volume": "1800.25"
		}
	}
}`

func TestPrice(t *testing.T) {
	day := time.Date(2025, time.June, 11, 14, 30, 0, 0, time.UTC)

	snapshot, err := Price([]byte(dailyPayload), "BTC", "EUR", day)
	require.NoError(t, err)

	assert.Equal(t, "BTC", snapshot.Asset)
	assert.Equal(t, "EUR", snapshot.Market)
	assert.Equal(t, "2025-06-11", snapshot.Date.Format("2006-01-02"))
	assert.True(t, snapshot.Open.Equal(mustDecimal(t, "56000")))
	assert.True(t, snapshot.High.Equal(mustDecimal(t, "58000")))
	assert.True(t, snapshot.Low.Equal(mustDecimal(t, "55000")))
	assert.True(t, snapshot.Close.Equal(mustDecimal(t, "57000")))
	assert.True(t, snapshot.Volume.Equal(mustDecimal(t, "2100.5")))
}

func TestPriceMissingSeries(t *testing.T) {
	raw := `{"Note": "API call frequency exceeded"}`

	_, err := Price([]byte(raw), "BTC", "EUR", time.Now())
	assert.ErrorIs(t, err, ErrMissingSeries)
}

func TestPriceNoDataForDate(t *testing.T) {
	day := time.Date(2025, time.June, 12, 3, 0, 0, 0, time.UTC)

	_, err := Price([]byte(dailyPayload), "BTC", "EUR", day)
	require.ErrorIs(t, err, ErrNoDataForDate)
	assert.Contains(t, err.Error(), "2025-06-12")
}

func TestPriceMalformedField(t *testing.T) {
	raw := `{
		"Time Series (Digital Currency Daily)": {
			"2025-06-11": {
				"1. open": "not-a-number",
				"2. high": "58000",
				"3. low": "55000",
				"4. close": "57000",
				"5. volume": "2100.5"
			}
		}
	}`
	day := time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC)

	_, err := Price([]byte(raw), "BTC", "EUR", day)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed field")
}

func TestPriceAbsentField(t *testing.T) {
	raw := `{
		"Time Series (Digital Currency Daily)": {
			"2025-06-11": {
				"1. open": "56000"
			}
		}
	}`
	day := time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC)

	_, err := Price([]byte(raw), "BTC", "EUR", day)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"2. high"`)
}

func TestPriceInvalidJSON(t *testing.T) {
	_, err := Price([]byte("<html>maintenance</html>"), "BTC", "EUR", time.Now())
	assert.Error(t, err)
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
