package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yuehcw/padres-project/db"
	"github.com/yuehcw/padres-project/metrics"
	"github.com/yuehcw/padres-project/models"
	"github.com/yuehcw/padres-project/stats"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) BattingEvents(ctx context.Context, playerID int) ([]models.BattingEvent, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).([]models.BattingEvent), args.Error(1)
}

func (m *mockStore) PitchingEvents(ctx context.Context, playerID int) ([]models.PitchingEvent, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).([]models.PitchingEvent), args.Error(1)
}

func (m *mockStore) InPlayBattingEvents(ctx context.Context) ([]models.BattingEvent, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.BattingEvent), args.Error(1)
}

func (m *mockStore) InPlayPitchingEvents(ctx context.Context) ([]models.PitchingEvent, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.PitchingEvent), args.Error(1)
}

func (m *mockStore) Players(ctx context.Context) ([]models.Player, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Player), args.Error(1)
}

func (m *mockStore) Player(ctx context.Context, id int) (*models.Player, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Player)
	return p, args.Error(1)
}

func (m *mockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func ptr[T any](v T) *T { return &v }

func newServer(t *testing.T, store *mockStore) *echo.Echo {
	t.Helper()
	h := New(store, zap.NewNop(), metrics.New(prometheus.NewRegistry()), stats.DefaultDistributionConfig())
	e := echo.New()
	h.Register(e)
	return e
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

var opening = time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC)

func TestPlayerIDValidation(t *testing.T) {
	e := newServer(t, new(mockStore))

	for _, target := range []string{
		"/api/batting/stats",
		"/api/batting/stats?player_id=abc",
		"/api/batting/spray-chart?player_id=",
		"/api/pitching/info?player_id=1.5",
		"/api/pitching/distribution",
	} {
		rec := get(e, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestBattingStatsHandler(t *testing.T) {
	store := new(mockStore)
	store.On("BattingEvents", mock.Anything, 12).Return([]models.BattingEvent{
		{GameDate: opening, GameID: 1, AtBatNumber: 1, EventType: ptr("home_run")},
		{GameDate: opening, GameID: 1, AtBatNumber: 2, EventType: ptr("walk")},
	}, nil)
	e := newServer(t, store)

	rec := get(e, "/api/batting/stats?player_id=12")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]float64
	decode(t, rec, &body)
	assert.Equal(t, 2.0, body["PA"])
	assert.Equal(t, 1.0, body["HR"])
	assert.Equal(t, 1.0, body["AVG"])
	assert.Equal(t, 4.0, body["SLG"])
	store.AssertExpectations(t)
}

func TestBattingStatsNoData(t *testing.T) {
	store := new(mockStore)
	store.On("BattingEvents", mock.Anything, 5).Return([]models.BattingEvent{}, nil)
	e := newServer(t, store)

	rec := get(e, "/api/batting/stats?player_id=5")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoreFailureIs500(t *testing.T) {
	store := new(mockStore)
	store.On("BattingEvents", mock.Anything, 5).Return([]models.BattingEvent(nil), errors.New("connection reset"))
	e := newServer(t, store)

	rec := get(e, "/api/batting/zone-heatmap?player_id=5")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestSprayChartEmptyIs200(t *testing.T) {
	store := new(mockStore)
	store.On("BattingEvents", mock.Anything, 5).Return([]models.BattingEvent{}, nil)
	e := newServer(t, store)

	rec := get(e, "/api/batting/spray-chart?player_id=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestZoneHeatmapHandler(t *testing.T) {
	store := new(mockStore)
	store.On("BattingEvents", mock.Anything, 5).Return([]models.BattingEvent{}, nil)
	store.On("BattingEvents", mock.Anything, 6).Return([]models.BattingEvent{
		{GameDate: opening, PlateX: ptr(0.0), PlateZ: ptr(nan())},
	}, nil)
	e := newServer(t, store)

	rec := get(e, "/api/batting/zone-heatmap?player_id=5")
	require.Equal(t, http.StatusOK, rec.Code)
	var cells []stats.ZoneCell
	decode(t, rec, &cells)
	assert.Len(t, cells, 9)

	rec = get(e, "/api/batting/zone-heatmap?player_id=6")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPitchTrendsHandler(t *testing.T) {
	store := new(mockStore)
	store.On("BattingEvents", mock.Anything, 5).Return([]models.BattingEvent{
		{GameDate: opening, PitchType: ptr("4S")},
		{GameDate: opening, PitchType: ptr("CH")},
	}, nil)
	e := newServer(t, store)

	rec := get(e, "/api/batting/pitch-trends?player_id=5")
	require.Equal(t, http.StatusOK, rec.Code)
	var trend []stats.TrendPoint
	decode(t, rec, &trend)
	require.Len(t, trend, 1)
	assert.Equal(t, "March 28", trend[0].DisplayDate)
	assert.Equal(t, 50.0, trend[0].OffspeedPct)
}

func TestLeaderboardHandlers(t *testing.T) {
	store := new(mockStore)
	store.On("InPlayBattingEvents", mock.Anything).Return([]models.BattingEvent{
		{PlayerID: 1, FirstName: "Fernando", LastName: "Tatis", InPlay: ptr(true), HitExitSpeed: ptr(104.0)},
	}, nil)
	store.On("InPlayPitchingEvents", mock.Anything).Return([]models.PitchingEvent{}, nil)
	e := newServer(t, store)

	rec := get(e, "/api/batting/leaderboard")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool                  `json:"success"`
		Data    []stats.BattingLeader `json:"data"`
	}
	decode(t, rec, &body)
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Fernando Tatis", body.Data[0].Name)
	assert.Equal(t, 1, body.Data[0].NinetyFivePlus)

	rec = get(e, "/api/pitching/leaderboard")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func pitcherRows() []models.PitchingEvent {
	return []models.PitchingEvent{
		{GameDate: opening, GameID: 1, AtBatNumber: 1, PitchSeq: 1, PitchType: ptr("4S"), RelSpeed: ptr(95.0),
			PreOuts: ptr(0), PostOuts: ptr(0)},
		{GameDate: opening, GameID: 1, AtBatNumber: 1, PitchSeq: 2, PitchType: ptr("4S"), RelSpeed: ptr(96.5),
			PreOuts: ptr(0), PostOuts: ptr(1), EventType: ptr("strikeout")},
		{GameDate: opening, GameID: 1, AtBatNumber: 2, PitchSeq: 1, PitchType: ptr("SL"), RelSpeed: ptr(86.0),
			PreOuts: ptr(1), PostOuts: ptr(1)},
	}
}

func TestPitchingInfoHandler(t *testing.T) {
	store := new(mockStore)
	store.On("PitchingEvents", mock.Anything, 3).Return(pitcherRows(), nil)
	store.On("PitchingEvents", mock.Anything, 4).Return([]models.PitchingEvent{}, nil)
	e := newServer(t, store)

	rec := get(e, "/api/pitching/info?player_id=3")
	require.Equal(t, http.StatusOK, rec.Code)
	var body pitchingInfo
	decode(t, rec, &body)
	assert.Len(t, body.PitchData, 3)
	require.NotNil(t, body.Stats)
	assert.Equal(t, 1, body.Stats.Strikeouts)
	assert.Equal(t, 0.3, body.Stats.InningsPitched)
	assert.InDelta(t, 200.0/3, body.PitchData[0].Usage, 1e-9)

	rec = get(e, "/api/pitching/info?player_id=4")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPitchingInfoUntrackedPitchTypes(t *testing.T) {
	store := new(mockStore)
	store.On("PitchingEvents", mock.Anything, 9).Return([]models.PitchingEvent{
		{GameDate: opening, GameID: 1, AtBatNumber: 1, Inning: 1, PitchType: ptr("SI"),
			PreOuts: ptr(0), PostOuts: ptr(1), EventType: ptr("strikeout")},
	}, nil)
	e := newServer(t, store)

	rec := get(e, "/api/pitching/info?player_id=9")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pitch_data":[]`)
	var body pitchingInfo
	decode(t, rec, &body)
	require.NotNil(t, body.Stats)
	assert.Equal(t, 1, body.Stats.Strikeouts)
	assert.Equal(t, 100.0, body.Stats.PitchUsage["SI"])
}

func TestPitchUsageAndDistributionHandlers(t *testing.T) {
	store := new(mockStore)
	store.On("PitchingEvents", mock.Anything, 3).Return(pitcherRows(), nil)
	e := newServer(t, store)

	rec := get(e, "/api/pitching/usage_by_date?player_id=3")
	require.Equal(t, http.StatusOK, rec.Code)
	var usage []stats.DateUsage
	decode(t, rec, &usage)
	require.Len(t, usage, 2)
	assert.Equal(t, "2024-03-28", usage[0].Date)
	assert.Equal(t, 66.7, usage[0].Percentage)

	rec = get(e, "/api/pitching/distribution?player_id=3")
	require.Equal(t, http.StatusOK, rec.Code)
	var dists []stats.Distribution
	decode(t, rec, &dists)
	require.Len(t, dists, 1, "the single slider has no curve")
	assert.Equal(t, "4S", dists[0].PitchType)
	assert.Len(t, dists[0].Distribution, 62)
}

func TestPlayerBioHandlers(t *testing.T) {
	store := new(mockStore)
	store.On("Players", mock.Anything).Return([]models.Player{
		{PlayerID: 1, FirstName: "Jackson", LastName: "Merrill", Position: ptr("CF"), Height: ptr(75.0)},
	}, nil)
	store.On("Player", mock.Anything, 1).Return(&models.Player{PlayerID: 1, FirstName: "Jackson", LastName: "Merrill"}, nil)
	store.On("Player", mock.Anything, 2).Return(nil, db.ErrNotFound)
	e := newServer(t, store)

	rec := get(e, "/api/player/bio")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Success bool         `json:"success"`
		Players []playerData `json:"players"`
	}
	decode(t, rec, &list)
	assert.True(t, list.Success)
	require.Len(t, list.Players, 1)
	assert.Equal(t, "CF", *list.Players[0].Position)

	rec = get(e, "/api/player/bio/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"firstName":"Jackson"`)

	assert.Equal(t, http.StatusNotFound, get(e, "/api/player/bio/2").Code)
	assert.Equal(t, http.StatusBadRequest, get(e, "/api/player/bio/x").Code)
}

func TestHealth(t *testing.T) {
	store := new(mockStore)
	store.On("Ping", mock.Anything).Return(nil).Once()
	store.On("Ping", mock.Anything).Return(errors.New("down")).Once()
	e := newServer(t, store)

	assert.Equal(t, http.StatusOK, get(e, "/healthz").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(e, "/healthz").Code)
}

func nan() float64 { return math.NaN() }
