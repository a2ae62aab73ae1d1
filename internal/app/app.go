package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"CoinPulse/internal/config"
	"CoinPulse/internal/infrastructure/alphavantage"
	"CoinPulse/internal/infrastructure/scheduler"
	"CoinPulse/internal/infrastructure/storage"
	"CoinPulse/internal/infrastructure/utoday"
	"CoinPulse/internal/logging"
	"CoinPulse/internal/ports"
	"CoinPulse/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	db        *sql.DB
	pipeline  *usecase.Pipeline
	scheduler ports.Scheduler
}

// New builds a runnable application instance: DB pool, adapters, pipeline.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := storage.Open(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	store := storage.NewPostgresStore(db)

	prices := alphavantage.NewClient(cfg.Alpha.Endpoint, cfg.Alpha.APIKey,
		&http.Client{Timeout: cfg.Alpha.Timeout})
	listings := utoday.NewClient(cfg.Scraper.URL, cfg.Scraper.UserAgent,
		&http.Client{Timeout: cfg.Scraper.Timeout})

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Prices:   prices,
		Listings: listings,
		Store:    store,
		Asset:    cfg.Alpha.Symbol,
		Market:   cfg.Alpha.Market,
		Origin:   cfg.Scraper.Origin,
		Logger:   baseLogger.With("component", "pipeline"),
	})

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		db:        db,
		pipeline:  pipeline,
		scheduler: scheduler.NewCronScheduler(cfg.Scheduler.CronExpression, cfg.Scheduler.Location()),
	}, nil
}

// RunOnce executes a single ingestion cycle and reports per-branch status.
// Both branches always run; the returned error summarizes any failures.
func (a *Application) RunOnce(ctx context.Context) error {
	price, articles := a.pipeline.ProcessDay(ctx)

	a.logger.Info("ingestion cycle finished",
		"price_status", price.StatusCode(), "price_inserted", price.Inserted,
		"articles_status", articles.StatusCode(), "articles_inserted", articles.Inserted)

	if !price.OK() && !articles.OK() {
		return fmt.Errorf("both branches failed: price: %s; articles: %s", price.Reason, articles.Reason)
	}
	return nil
}

// Run executes one cycle immediately, then keeps running on the cron
// schedule until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if err := a.RunOnce(ctx); err != nil {
		a.logger.Warn("initial cycle failed", "error", err)
	}

	job := func(trigger time.Time) {
		a.logger.Info("scheduled run", "trigger", trigger.Format(time.RFC3339))
		if err := a.RunOnce(ctx); err != nil {
			a.logger.Warn("scheduled cycle failed", "error", err)
		}
	}
	if err := a.scheduler.Start(ctx, job); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return a.scheduler.Stop(stopCtx)
}

// Close releases the database pool.
func (a *Application) Close() error {
	return a.db.Close()
}
