package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"CoinPulse/internal/domain"
	"CoinPulse/internal/normalize"
	"CoinPulse/internal/ports"
)

// PipelineDeps wires the driven adapters into the ingestion pipeline.
type PipelineDeps struct {
	Prices   ports.PriceSource
	Listings ports.ListingSource
	Store    ports.Store
	Asset    string
	Market   string
	Origin   string
	Logger   *slog.Logger
	Clock    func() time.Time
}

// Pipeline runs the two ingestion branches: price snapshots and article
// summaries. The branches share nothing; a failure in one never aborts
// the other.
type Pipeline struct {
	prices   ports.PriceSource
	listings ports.ListingSource
	store    ports.Store
	asset    string
	market   string
	origin   string
	logger   *slog.Logger
	clock    func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		prices:   deps.Prices,
		listings: deps.Listings,
		store:    deps.Store,
		asset:    deps.Asset,
		market:   deps.Market,
		origin:   deps.Origin,
		logger:   logger,
		clock:    clock,
	}
}

// IngestPrice fetches today's OHLCV bar, normalizes it against the current
// UTC date and persists it. An unpublished bar maps to OutcomeNotFound so
// callers do not mistake an intraday run for an upstream outage.
func (p *Pipeline) IngestPrice(ctx context.Context) domain.IngestionResult {
	raw, err := p.prices.FetchDaily(ctx, p.asset, p.market)
	if err != nil {
		return p.report("price", domain.Failure(domain.OutcomeUpstream, err))
	}

	snapshot, err := normalize.Price(raw, p.asset, p.market, p.clock().UTC())
	if err != nil {
		if errors.Is(err, normalize.ErrNoDataForDate) {
			return p.report("price", domain.Failure(domain.OutcomeNotFound, err))
		}
		return p.report("price", domain.Failure(domain.OutcomeValidation, err))
	}

	return p.report("price", p.persistPrice(ctx, snapshot))
}

// IngestArticles scrapes the listing page, normalizes every entry and
// persists the batch. Re-running on unchanged content inserts nothing.
func (p *Pipeline) IngestArticles(ctx context.Context) domain.IngestionResult {
	raw, err := p.listings.FetchListing(ctx)
	if err != nil {
		return p.report("articles", domain.Failure(domain.OutcomeUpstream, err))
	}

	summaries, err := normalize.Articles(raw, p.origin)
	if err != nil {
		return p.report("articles", domain.Failure(domain.OutcomeValidation, err))
	}

	return p.report("articles", p.persistArticles(ctx, summaries))
}

// PersistPrice is the entry point for an already-normalized snapshot.
func (p *Pipeline) PersistPrice(ctx context.Context, snapshot domain.PriceSnapshot) domain.IngestionResult {
	return p.report("price", p.persistPrice(ctx, snapshot))
}

// PersistArticles is the entry point for an already-normalized batch.
func (p *Pipeline) PersistArticles(ctx context.Context, summaries []domain.ArticleSummary) domain.IngestionResult {
	return p.report("articles", p.persistArticles(ctx, summaries))
}

// ProcessDay runs both branches in sequence and returns their results.
func (p *Pipeline) ProcessDay(ctx context.Context) (price, articles domain.IngestionResult) {
	price = p.IngestPrice(ctx)
	articles = p.IngestArticles(ctx)
	return price, articles
}

func (p *Pipeline) persistPrice(ctx context.Context, snapshot domain.PriceSnapshot) domain.IngestionResult {
	inserted, err := p.store.UpsertPrice(ctx, snapshot)
	if err != nil {
		return domain.Failure(domain.OutcomePersistence, err)
	}
	count := 0
	if inserted {
		count = 1
	}
	return domain.Success(count)
}

func (p *Pipeline) persistArticles(ctx context.Context, summaries []domain.ArticleSummary) domain.IngestionResult {
	inserted, err := p.store.UpsertArticles(ctx, summaries)
	if err != nil {
		return domain.Failure(domain.OutcomePersistence, err)
	}
	return domain.Success(inserted)
}

func (p *Pipeline) report(branch string, result domain.IngestionResult) domain.IngestionResult {
	if result.OK() {
		p.logger.Info("branch done", "branch", branch, "inserted", result.Inserted)
	} else {
		p.logger.Warn("branch failed", "branch", branch, "outcome", string(result.Outcome), "reason", result.Reason)
	}
	return result
}
