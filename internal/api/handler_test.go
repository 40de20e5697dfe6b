package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/marketpulse/internal/domain/dto"
	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/service"
)

type mockMarketService struct {
	snap   *models.Snapshot
	chart  *models.Chart
	report *models.SignalReport
	err    error

	gotSymbol string
	gotDays   int
	refreshed bool
}

func (m *mockMarketService) GetSnapshot(_ context.Context, symbol string) (*models.Snapshot, error) {
	m.gotSymbol = symbol
	return m.snap, m.err
}

func (m *mockMarketService) GetChart(_ context.Context, symbol string, days int) (*models.Chart, error) {
	m.gotSymbol, m.gotDays = symbol, days
	return m.chart, m.err
}

func (m *mockMarketService) GetSignals(_ context.Context, symbol string) (*models.SignalReport, error) {
	m.gotSymbol = symbol
	return m.report, m.err
}

func (m *mockMarketService) Refresh(_ context.Context, symbol string) (*models.Snapshot, error) {
	m.gotSymbol, m.refreshed = symbol, true
	return m.snap, m.err
}

var _ service.MarketService = (*mockMarketService)(nil)

type mockWatchlistService struct {
	items []models.WatchlistItem
	item  *models.WatchlistItem
	err   error

	gotInput service.AddWatchlistInput
	gotPatch models.WatchlistPatch
	removed  string
}

func (m *mockWatchlistService) List(context.Context) ([]models.WatchlistItem, error) {
	return m.items, m.err
}

func (m *mockWatchlistService) Add(_ context.Context, in service.AddWatchlistInput) (*models.WatchlistItem, error) {
	m.gotInput = in
	return m.item, m.err
}

func (m *mockWatchlistService) Update(_ context.Context, _ string, patch models.WatchlistPatch) (*models.WatchlistItem, error) {
	m.gotPatch = patch
	return m.item, m.err
}

func (m *mockWatchlistService) Remove(_ context.Context, symbol string) error {
	m.removed = symbol
	return m.err
}

func (m *mockWatchlistService) Symbols(context.Context) ([]string, error) { return nil, m.err }

var _ service.WatchlistService = (*mockWatchlistService)(nil)

func setupRouterWithMocks(ms service.MarketService, ws service.WatchlistService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(ms, ws, &mockScreenshotService{})
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/stocks/:symbol", h.GetSnapshot)
	v1.GET("/stocks/:symbol/chart", h.GetChart)
	v1.GET("/stocks/:symbol/signals", h.GetSignals)
	v1.POST("/stocks/:symbol/refresh", h.Refresh)
	v1.GET("/watchlist", h.ListWatchlist)
	v1.POST("/watchlist", h.AddWatchlist)
	v1.PATCH("/watchlist/:symbol", h.UpdateWatchlist)
	v1.DELETE("/watchlist/:symbol", h.DeleteWatchlist)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func f64(v float64) *float64 { return &v }

func TestGetSnapshot_TableDriven(t *testing.T) {
	snap := &models.Snapshot{
		Symbol:       "AAPL",
		Name:         "AAPL",
		CurrentPrice: 190,
		MovingAverages: models.MovingAverages{
			MA50: f64(180.5),
		},
		LastUpdated: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC),
	}

	cases := []struct {
		name   string
		svc    *mockMarketService
		status int
		msg    string
	}{
		{name: "success", svc: &mockMarketService{snap: snap}, status: http.StatusOK},
		{name: "not found", svc: &mockMarketService{err: fmt.Errorf("quote AAPL: %w", models.ErrNotFound)},
			status: http.StatusNotFound, msg: "symbol not found"},
		{name: "unavailable", svc: &mockMarketService{err: fmt.Errorf("quote AAPL: %w", models.ErrUnavailable)},
			status: http.StatusServiceUnavailable, msg: "market data provider unavailable"},
		{name: "internal", svc: &mockMarketService{err: errors.New("boom")},
			status: http.StatusInternalServerError, msg: "internal error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMocks(tc.svc, &mockWatchlistService{})
			w := do(r, http.MethodGet, "/api/v1/stocks/%20aapl%20", "")
			if w.Code != tc.status {
				t.Fatalf("want %d got %d body=%s", tc.status, w.Code, w.Body.String())
			}
			if tc.svc.gotSymbol != "AAPL" {
				t.Fatalf("symbol not normalized: %q", tc.svc.gotSymbol)
			}
			if tc.status == http.StatusOK {
				var out models.Snapshot
				if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Symbol != "AAPL" || out.MovingAverages.MA50 == nil || *out.MovingAverages.MA50 != 180.5 {
					t.Fatalf("unexpected body: %+v", out)
				}
				return
			}
			var e dto.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if e.Message != tc.msg || e.ErrorDetails == "" {
				t.Fatalf("unexpected error body: %+v", e)
			}
		})
	}
}

func TestGetChart_TableDriven(t *testing.T) {
	chart := &models.Chart{Symbol: "BTC-USD", Prices: []models.ChartPoint{{Date: "2026-10-14", Price: 64000}}}

	cases := []struct {
		name     string
		svc      *mockMarketService
		query    string
		status   int
		wantDays int
	}{
		{name: "default days", svc: &mockMarketService{chart: chart}, query: "", status: http.StatusOK, wantDays: 30},
		{name: "explicit days", svc: &mockMarketService{chart: chart}, query: "?days=90", status: http.StatusOK, wantDays: 90},
		{name: "upper bound", svc: &mockMarketService{chart: chart}, query: "?days=3650", status: http.StatusOK, wantDays: 3650},
		{name: "zero", svc: &mockMarketService{}, query: "?days=0", status: http.StatusBadRequest},
		{name: "too many", svc: &mockMarketService{}, query: "?days=3651", status: http.StatusBadRequest},
		{name: "not a number", svc: &mockMarketService{}, query: "?days=abc", status: http.StatusBadRequest},
		{name: "no data", svc: &mockMarketService{err: fmt.Errorf("chart X: no chart data: %w", models.ErrNotFound)},
			query: "", status: http.StatusNotFound, wantDays: 30},
		{name: "provider down", svc: &mockMarketService{err: fmt.Errorf("chart X: %w", models.ErrUnavailable)},
			query: "", status: http.StatusServiceUnavailable, wantDays: 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMocks(tc.svc, &mockWatchlistService{})
			w := do(r, http.MethodGet, "/api/v1/stocks/btc-usd/chart"+tc.query, "")
			if w.Code != tc.status {
				t.Fatalf("want %d got %d body=%s", tc.status, w.Code, w.Body.String())
			}
			if tc.svc.gotDays != tc.wantDays {
				t.Fatalf("days passed %d, want %d", tc.svc.gotDays, tc.wantDays)
			}
			if tc.status == http.StatusOK {
				var out models.Chart
				if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Symbol != "BTC-USD" || len(out.Prices) != 1 {
					t.Fatalf("unexpected body: %+v", out)
				}
			}
		})
	}
}

func TestGetSignals(t *testing.T) {
	report := &models.SignalReport{
		Symbol:       "AAPL",
		CurrentPrice: 190,
		Signals: map[string]models.Signal{
			"ma_50": {Signal: models.SignalBelow, DistancePercent: f64(-0.26), MAValue: f64(190.5)},
		},
	}
	svc := &mockMarketService{report: report}
	r := setupRouterWithMocks(svc, &mockWatchlistService{})
	w := do(r, http.MethodGet, "/api/v1/stocks/AAPL/signals", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200 got %d", w.Code)
	}
	var out models.SignalReport
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Signals["ma_50"].Signal != models.SignalBelow {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestRefresh(t *testing.T) {
	svc := &mockMarketService{snap: &models.Snapshot{Symbol: "ETH-USD", CurrentPrice: 3000}}
	r := setupRouterWithMocks(svc, &mockWatchlistService{})
	w := do(r, http.MethodPost, "/api/v1/stocks/eth-usd/refresh", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200 got %d", w.Code)
	}
	if !svc.refreshed || svc.gotSymbol != "ETH-USD" {
		t.Fatalf("refresh not delegated: %+v", svc)
	}
}

func TestWatchlistHandlers(t *testing.T) {
	sector := "Technology"
	item := &models.WatchlistItem{ID: 1, Symbol: "NVDA", AssetType: "STOCK", Name: "NVIDIA Corp", Sector: &sector}

	cases := []struct {
		name   string
		svc    *mockWatchlistService
		method string
		path   string
		body   string
		status int
	}{
		{"list", &mockWatchlistService{items: []models.WatchlistItem{*item}}, http.MethodGet, "/api/v1/watchlist", "", http.StatusOK},
		{"list failure", &mockWatchlistService{err: errors.New("db down")}, http.MethodGet, "/api/v1/watchlist", "", http.StatusInternalServerError},
		{"add", &mockWatchlistService{item: item}, http.MethodPost, "/api/v1/watchlist", `{"symbol":"nvda","name":"NVIDIA Corp"}`, http.StatusCreated},
		{"add missing symbol", &mockWatchlistService{}, http.MethodPost, "/api/v1/watchlist", `{"name":"x"}`, http.StatusBadRequest},
		{"add malformed", &mockWatchlistService{}, http.MethodPost, "/api/v1/watchlist", `{`, http.StatusBadRequest},
		{"add duplicate", &mockWatchlistService{err: models.ErrAlreadyExists}, http.MethodPost, "/api/v1/watchlist", `{"symbol":"NVDA"}`, http.StatusBadRequest},
		{"add invalid symbol", &mockWatchlistService{err: models.ErrInvalidSymbol}, http.MethodPost, "/api/v1/watchlist", `{"symbol":"ZZZZ"}`, http.StatusBadRequest},
		{"update", &mockWatchlistService{item: item}, http.MethodPatch, "/api/v1/watchlist/NVDA", `{"sector":"Technology"}`, http.StatusOK},
		{"update missing", &mockWatchlistService{err: models.ErrNotFound}, http.MethodPatch, "/api/v1/watchlist/NOPE", `{"name":"x"}`, http.StatusNotFound},
		{"delete", &mockWatchlistService{}, http.MethodDelete, "/api/v1/watchlist/nvda", "", http.StatusOK},
		{"delete missing", &mockWatchlistService{err: models.ErrNotFound}, http.MethodDelete, "/api/v1/watchlist/NOPE", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMocks(&mockMarketService{}, tc.svc)
			w := do(r, tc.method, tc.path, tc.body)
			if w.Code != tc.status {
				t.Fatalf("want %d got %d body=%s", tc.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestWatchlistHandlers_PassThroughFields(t *testing.T) {
	svc := &mockWatchlistService{item: &models.WatchlistItem{Symbol: "NVDA"}}
	r := setupRouterWithMocks(&mockMarketService{}, svc)

	do(r, http.MethodPost, "/api/v1/watchlist", `{"symbol":"NVDA","sector":"Chips"}`)
	if svc.gotInput.Symbol != "NVDA" || svc.gotInput.Name != nil || svc.gotInput.Sector == nil || *svc.gotInput.Sector != "Chips" {
		t.Fatalf("unexpected add input: %+v", svc.gotInput)
	}

	do(r, http.MethodPatch, "/api/v1/watchlist/NVDA", `{"name":"NVIDIA"}`)
	if svc.gotPatch.Name == nil || *svc.gotPatch.Name != "NVIDIA" || svc.gotPatch.Sector != nil {
		t.Fatalf("unexpected patch: %+v", svc.gotPatch)
	}

	w := do(r, http.MethodDelete, "/api/v1/watchlist/nvda", "")
	var msg dto.MessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &msg); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if svc.removed != "NVDA" || msg.Message != "NVDA removed from watchlist" {
		t.Fatalf("removed=%q msg=%q", svc.removed, msg.Message)
	}
}
