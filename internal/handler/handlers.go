package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"CoinPulse/internal/ports"
)

// Handler serves the read-only rows consumed by the dashboard. No sort or
// filter is applied; presentation concerns stay with the dashboard.
type Handler struct {
	store  ports.ReadStore
	logger *slog.Logger
}

// NewHandler wires the read store.
func NewHandler(store ports.ReadStore, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Router builds the gin engine with all read routes registered.
func Router(store ports.ReadStore, logger *slog.Logger) *gin.Engine {
	h := NewHandler(store, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", h.GetHealth)
	r.GET("/api/prices", h.GetPrices)
	r.GET("/api/articles", h.GetArticles)
	return r
}

// GetPrices returns every persisted OHLCV snapshot.
func (h *Handler) GetPrices(c *gin.Context) {
	snapshots, err := h.store.ListPrices(c.Request.Context())
	if err != nil {
		h.logger.Error("list prices", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	items := make([]PriceResponse, 0, len(snapshots))
	for _, s := range snapshots {
		items = append(items, PriceResponse{
			Date:   s.Date.Format("2006-01-02"),
			Open:   s.Open.String(),
			High:   s.High.String(),
			Low:    s.Low.String(),
			Close:  s.Close.String(),
			Volume: s.Volume.String(),
		})
	}

	c.JSON(http.StatusOK, ListResponse[PriceResponse]{Items: items, Total: len(items)})
}

// GetArticles returns every persisted article summary.
func (h *Handler) GetArticles(c *gin.Context) {
	summaries, err := h.store.ListArticles(c.Request.Context())
	if err != nil {
		h.logger.Error("list articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	items := make([]ArticleResponse, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, ArticleResponse{
			Date:   s.Date,
			Title:  s.Title,
			Author: s.Author,
			Link:   s.Link,
		})
	}

	c.JSON(http.StatusOK, ListResponse[ArticleResponse]{Items: items, Total: len(items)})
}

// GetHealth reports liveness.
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
