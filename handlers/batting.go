package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yuehcw/padres-project/stats"
)

// BattingStats returns a batter's counting stats and rates.
func (h *Handler) BattingStats(c echo.Context) error {
	id, err := playerID(c)
	if err != nil {
		return err
	}
	events, err := h.store.BattingEvents(c.Request().Context(), id)
	if err != nil {
		return h.storeError(c, err)
	}

	start := time.Now()
	line, err := stats.BattingStats(events)
	h.observe("batting_stats", start, err)
	if err != nil {
		return h.statsError(c, "batting stats", err, "No batting data found for this player")
	}
	return c.JSON(http.StatusOK, line)
}

// SprayChart returns the batter's base hits placed on the field. A batter
// without hits gets an empty list.
func (h *Handler) SprayChart(c echo.Context) error {
	id, err := playerID(c)
	if err != nil {
		return err
	}
	events, err := h.store.BattingEvents(c.Request().Context(), id)
	if err != nil {
		return h.storeError(c, err)
	}

	start := time.Now()
	points, err := stats.SprayChart(events)
	h.observe("spray_chart", start, err)
	if err != nil {
		return h.statsError(c, "spray chart", err, "No spray chart data found for this player")
	}
	return c.JSON(http.StatusOK, points)
}

// ZoneHeatmap returns the batter's 3×3 strike zone grid.
func (h *Handler) ZoneHeatmap(c echo.Context) error {
	id, err := playerID(c)
	if err != nil {
		return err
	}
	events, err := h.store.BattingEvents(c.Request().Context(), id)
	if err != nil {
		return h.storeError(c, err)
	}

	start := time.Now()
	grid, err := stats.ZoneHeatmap(events)
	h.observe("zone_heatmap", start, err)
	if err != nil {
		return h.statsError(c, "zone heatmap", err, "No zone heatmap data found for this player")
	}
	return c.JSON(http.StatusOK, grid)
}

// PitchTrends returns the pitch mix the batter faced per date.
func (h *Handler) PitchTrends(c echo.Context) error {
	id, err := playerID(c)
	if err != nil {
		return err
	}
	events, err := h.store.BattingEvents(c.Request().Context(), id)
	if err != nil {
		return h.storeError(c, err)
	}

	start := time.Now()
	trend, err := stats.PitchTrends(events)
	h.observe("pitch_trends", start, err)
	if err != nil {
		return h.statsError(c, "pitch trends", err, "No pitch trends data found for this player")
	}
	return c.JSON(http.StatusOK, trend)
}

// BattingLeaderboard ranks every batter by batted-ball quality.
func (h *Handler) BattingLeaderboard(c echo.Context) error {
	events, err := h.store.InPlayBattingEvents(c.Request().Context())
	if err != nil {
		return h.storeError(c, err)
	}

	start := time.Now()
	board, err := stats.BattingLeaderboard(events)
	h.observe("batting_leaderboard", start, err)
	if err != nil {
		return h.statsError(c, "batting leaderboard", err, "No batted balls recorded")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    board,
	})
}
