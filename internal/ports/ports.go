package ports

import (
	"context"
	"time"

	"CoinPulse/internal/domain"
)

// PriceSource retrieves one day's raw OHLCV payload from the quote API.
type PriceSource interface {
	FetchDaily(ctx context.Context, asset, market string) ([]byte, error)
}

// ListingSource retrieves the raw HTML of the news listing page.
type ListingSource interface {
	FetchListing(ctx context.Context) ([]byte, error)
}

// Store persists normalized records under duplicate-safe semantics.
type Store interface {
	UpsertPrice(ctx context.Context, snapshot domain.PriceSnapshot) (bool, error)
	UpsertArticles(ctx context.Context, summaries []domain.ArticleSummary) (int, error)
}

// ReadStore serves the persisted rows to the dashboard collaborator.
type ReadStore interface {
	ListPrices(ctx context.Context) ([]domain.PriceSnapshot, error)
	ListArticles(ctx context.Context) ([]domain.ArticleSummary, error)
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
