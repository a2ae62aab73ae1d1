package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FieldNA marks a listing field whose sub-node was absent in the source HTML.
const FieldNA = "N/A"

// PriceSnapshot is one day's OHLCV bar for a fixed asset/market pair.
// The (asset, market, date) triple is the business key; values for a closed
// trading day never change, so the first persisted observation wins.
type PriceSnapshot struct {
	Asset  string
	Market string
	Date   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

// ArticleSummary is one entry of a scraped news listing. Link is the
// business key; Date keeps the raw listing text since the source renders
// localized date strings.
type ArticleSummary struct {
	Title  string
	Author string
	Date   string
	Link   string
}
