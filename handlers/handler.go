package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/yuehcw/padres-project/metrics"
	"github.com/yuehcw/padres-project/models"
	"github.com/yuehcw/padres-project/stats"
)

// EventSource is the read side of the event store.
type EventSource interface {
	BattingEvents(ctx context.Context, playerID int) ([]models.BattingEvent, error)
	PitchingEvents(ctx context.Context, playerID int) ([]models.PitchingEvent, error)
	InPlayBattingEvents(ctx context.Context) ([]models.BattingEvent, error)
	InPlayPitchingEvents(ctx context.Context) ([]models.PitchingEvent, error)
	Players(ctx context.Context) ([]models.Player, error)
	Player(ctx context.Context, id int) (*models.Player, error)
	Ping(ctx context.Context) error
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	store   EventSource
	log     *zap.Logger
	metrics *metrics.Manager
	dist    stats.DistributionConfig
}

// New creates a Handler. A nil metrics manager disables metrics.
func New(store EventSource, logger *zap.Logger, m *metrics.Manager, dist stats.DistributionConfig) *Handler {
	return &Handler{store: store, log: logger, metrics: m, dist: dist}
}

// playerID reads the required player_id query parameter.
func playerID(c echo.Context) (int, error) {
	raw := c.QueryParam("player_id")
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Player ID is required")
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid player ID format")
	}
	return id, nil
}

// storeError answers a failed store read.
func (h *Handler) storeError(c echo.Context, err error) error {
	h.log.Error("store read failed",
		zap.String("path", c.Path()),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.Error(err),
	)
	return echo.NewHTTPError(http.StatusInternalServerError, "failed to read events")
}

// statsError maps an aggregation error to a response: no data is a 404,
// anything else a logged 500.
func (h *Handler) statsError(c echo.Context, op string, err error, notFound string) error {
	if errors.Is(err, stats.ErrNoData) {
		return echo.NewHTTPError(http.StatusNotFound, notFound)
	}
	h.log.Error("aggregation failed",
		zap.String("operation", op),
		zap.String("path", c.Path()),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.Error(err),
	)
	return echo.NewHTTPError(http.StatusInternalServerError, "failed to compute "+op)
}

// observe records an aggregation's duration. No-data results are not
// failures.
func (h *Handler) observe(op string, start time.Time, err error) {
	failed := err != nil && !errors.Is(err, stats.ErrNoData)
	h.metrics.ObserveAggregation(op, time.Since(start), failed)
}

// Health pings the store.
func (h *Handler) Health(c echo.Context) error {
	if err := h.store.Ping(c.Request().Context()); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
