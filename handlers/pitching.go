package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yuehcw/padres-project/stats"
)

type pitchingInfo struct {
	PitchData []stats.MovementPoint `json:"pitch_data"`
	Stats     *stats.PitchingLine   `json:"stats"`
}

// PitchingInfo returns a pitcher's movement profile and season line.
func (h *Handler) PitchingInfo(c echo.Context) error {
	id, err := playerID(c)
	if err != nil {
		return err
	}
	events, err := h.store.PitchingEvents(c.Request().Context(), id)
	if err != nil {
		return h.storeError(c, err)
	}

	start := time.Now()
	line, err := stats.PitchingStats(events)
	h.observe("pitching_stats", start, err)
	if err != nil {
		return h.statsError(c, "pitching stats", err, "No pitching data found for this player")
	}

	start = time.Now()
	movement, err := stats.PitchMovement(events, line.PitchUsage)
	h.observe("pitch_movement", start, err)
	switch {
	case errors.Is(err, stats.ErrNoData):
		// Only untracked pitch types: the line still stands.
		movement = []stats.MovementPoint{}
	case err != nil:
		return h.statsError(c, "pitch movement", err, "No pitching data found for this player")
	}

	return c.JSON(http.StatusOK, pitchingInfo{PitchData: movement, Stats: line})
}

// PitchUsageByDate returns the pitcher's pitch mix per date.
func (h *Handler) PitchUsageByDate(c echo.Context) error {
	id, err := playerID(c)
	if err != nil {
		return err
	}
	events, err := h.store.PitchingEvents(c.Request().Context(), id)
	if err != nil {
		return h.storeError(c, err)
	}

	start := time.Now()
	usage, err := stats.PitchUsageByDate(events)
	h.observe("pitch_usage_by_date", start, err)
	if err != nil {
		return h.statsError(c, "pitch usage", err, "No data found for this player")
	}
	return c.JSON(http.StatusOK, usage)
}

// PitchDistribution returns a velocity curve per pitch type.
func (h *Handler) PitchDistribution(c echo.Context) error {
	id, err := playerID(c)
	if err != nil {
		return err
	}
	events, err := h.store.PitchingEvents(c.Request().Context(), id)
	if err != nil {
		return h.storeError(c, err)
	}

	start := time.Now()
	dists, err := stats.PitchDistribution(events, h.dist)
	h.observe("pitch_distribution", start, err)
	if err != nil {
		return h.statsError(c, "pitch distribution", err, "No data found for this player")
	}
	return c.JSON(http.StatusOK, dists)
}

// PitchingLeaderboard ranks every pitcher by contact allowed.
func (h *Handler) PitchingLeaderboard(c echo.Context) error {
	events, err := h.store.InPlayPitchingEvents(c.Request().Context())
	if err != nil {
		return h.storeError(c, err)
	}

	start := time.Now()
	board, err := stats.PitchingLeaderboard(events)
	h.observe("pitching_leaderboard", start, err)
	if err != nil {
		return h.statsError(c, "pitching leaderboard", err, "No batted balls recorded")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    board,
	})
}
