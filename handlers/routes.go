package handlers

import "github.com/labstack/echo/v4"

// Register mounts the API routes on e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api")

	player := api.Group("/player")
	player.GET("/bio", h.Players)
	player.GET("/bio/:id", h.Player)

	batting := api.Group("/batting")
	batting.GET("/stats", h.BattingStats)
	batting.GET("/spray-chart", h.SprayChart)
	batting.GET("/zone-heatmap", h.ZoneHeatmap)
	batting.GET("/pitch-trends", h.PitchTrends)
	batting.GET("/leaderboard", h.BattingLeaderboard)

	pitching := api.Group("/pitching")
	pitching.GET("/info", h.PitchingInfo)
	pitching.GET("/usage_by_date", h.PitchUsageByDate)
	pitching.GET("/distribution", h.PitchDistribution)
	pitching.GET("/leaderboard", h.PitchingLeaderboard)
}
