package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/yuehcw/padres-project/db"
	"github.com/yuehcw/padres-project/models"
)

type playerData struct {
	ID         int      `json:"id"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Position   *string  `json:"position"`
	Age        *int     `json:"age"`
	Height     *float64 `json:"height"`
	Weight     *float64 `json:"weight"`
	BirthPlace *string  `json:"birthPlace"`
	ImageURL   *string  `json:"imageUrl"`
}

func toPlayerData(p *models.Player) playerData {
	return playerData{
		ID:         p.PlayerID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Position:   p.Position,
		Age:        p.Age,
		Height:     p.Height,
		Weight:     p.Weight,
		BirthPlace: p.BirthPlace,
		ImageURL:   p.ImageURL,
	}
}

// Players returns every player's bio.
func (h *Handler) Players(c echo.Context) error {
	players, err := h.store.Players(c.Request().Context())
	if err != nil {
		return h.storeError(c, err)
	}

	result := make([]playerData, len(players))
	for i := range players {
		result[i] = toPlayerData(&players[i])
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"players": result,
	})
}

// Player returns one player's bio.
func (h *Handler) Player(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid player ID format")
	}

	p, err := h.store.Player(c.Request().Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Player not found")
	}
	if err != nil {
		return h.storeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"player":  toPlayerData(p),
	})
}
