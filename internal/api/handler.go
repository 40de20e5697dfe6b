package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/marketpulse/internal/domain/dto"
	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/middleware"
	"github.com/guttosm/marketpulse/internal/service"
)

const (
	minChartDays = 1
	maxChartDays = 3650
)

// Handler exposes market analysis, watchlist and screenshot endpoints.
//
// Responsibilities:
//   - Validate path, query, body and multipart input
//   - Delegate to the market, watchlist and screenshot services
//   - Translate domain errors into HTTP statuses via middleware.StatusFor
type Handler struct {
	market      service.MarketService
	watchlist   service.WatchlistService
	screenshots service.ScreenshotService
}

// NewHandler constructs a Handler ready to be registered with the router.
func NewHandler(market service.MarketService, watchlist service.WatchlistService, screenshots service.ScreenshotService) *Handler {
	return &Handler{market: market, watchlist: watchlist, screenshots: screenshots}
}

func symbolParam(c *gin.Context) string {
	return strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
}

// fail writes the error body for a service error.
func fail(c *gin.Context, message string, err error) {
	middleware.AbortWithError(c, middleware.StatusFor(err), message, err)
}

func failureMessage(err error, notFound string) string {
	switch middleware.StatusFor(err) {
	case http.StatusNotFound:
		return notFound
	case http.StatusServiceUnavailable:
		return "market data provider unavailable"
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusNotImplemented:
		return "feature not configured"
	default:
		return "internal error"
	}
}

// GetSnapshot godoc
// @Summary      Get asset snapshot
// @Description  Current price, 24h change, moving averages and 52-week range for a stock or crypto pair (e.g. AAPL, BTC-USD). Served from cache when fresh.
// @Tags         stocks
// @Produce      json
// @Param        symbol  path      string  true  "Ticker or crypto pair" example(AAPL)
// @Success      200     {object}  models.Snapshot    "Success"
// @Failure      400     {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse  "Not Found"
// @Failure      503     {object}  dto.ErrorResponse  "Provider Unavailable"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/stocks/{symbol} [get]
func (h *Handler) GetSnapshot(c *gin.Context) {
	symbol := symbolParam(c)
	if symbol == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("symbol is required", nil))
		return
	}

	snap, err := h.market.GetSnapshot(c.Request.Context(), symbol)
	if err != nil {
		fail(c, failureMessage(err, "symbol not found"), err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GetChart godoc
// @Summary      Get price chart
// @Description  Daily closing prices for the trailing number of days
// @Tags         stocks
// @Produce      json
// @Param        symbol  path      string  true   "Ticker or crypto pair" example(AAPL)
// @Param        days    query     int     false  "Trailing days (1-3650)" default(30)
// @Success      200     {object}  models.Chart       "Success"
// @Failure      400     {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse  "Not Found"
// @Failure      503     {object}  dto.ErrorResponse  "Provider Unavailable"
// @Router       /api/v1/stocks/{symbol}/chart [get]
func (h *Handler) GetChart(c *gin.Context) {
	symbol := symbolParam(c)
	if symbol == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("symbol is required", nil))
		return
	}

	days := service.DefaultChartDays
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("days must be an integer", err))
			return
		}
		days = n
	}
	if days < minChartDays || days > maxChartDays {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("days must be between 1 and 3650", nil))
		return
	}

	chart, err := h.market.GetChart(c.Request.Context(), symbol, days)
	if err != nil {
		fail(c, failureMessage(err, "no chart data"), err)
		return
	}
	c.JSON(http.StatusOK, chart)
}

// GetSignals godoc
// @Summary      Get moving-average signals
// @Description  Whether the current price sits above or below each moving average, with the distance in percent
// @Tags         stocks
// @Produce      json
// @Param        symbol  path      string  true  "Ticker or crypto pair" example(BTC-USD)
// @Success      200     {object}  models.SignalReport  "Success"
// @Failure      404     {object}  dto.ErrorResponse    "Not Found"
// @Failure      503     {object}  dto.ErrorResponse    "Provider Unavailable"
// @Router       /api/v1/stocks/{symbol}/signals [get]
func (h *Handler) GetSignals(c *gin.Context) {
	symbol := symbolParam(c)
	if symbol == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("symbol is required", nil))
		return
	}

	report, err := h.market.GetSignals(c.Request.Context(), symbol)
	if err != nil {
		fail(c, failureMessage(err, "symbol not found"), err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Refresh godoc
// @Summary      Refresh asset snapshot
// @Description  Rebuilds the snapshot from the providers and overwrites the cached entry. A failed rebuild keeps the previous entry.
// @Tags         stocks
// @Produce      json
// @Param        symbol  path      string  true  "Ticker or crypto pair" example(AAPL)
// @Success      200     {object}  models.Snapshot    "Success"
// @Failure      404     {object}  dto.ErrorResponse  "Not Found"
// @Failure      503     {object}  dto.ErrorResponse  "Provider Unavailable"
// @Router       /api/v1/stocks/{symbol}/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	symbol := symbolParam(c)
	if symbol == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("symbol is required", nil))
		return
	}

	snap, err := h.market.Refresh(c.Request.Context(), symbol)
	if err != nil {
		fail(c, failureMessage(err, "symbol not found"), err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// ListWatchlist godoc
// @Summary      List watchlist
// @Tags         watchlist
// @Produce      json
// @Success      200  {array}   models.WatchlistItem  "Success"
// @Failure      500  {object}  dto.ErrorResponse     "Internal Error"
// @Router       /api/v1/watchlist [get]
func (h *Handler) ListWatchlist(c *gin.Context) {
	items, err := h.watchlist.List(c.Request.Context())
	if err != nil {
		fail(c, "failed to list watchlist", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddWatchlist godoc
// @Summary      Add symbol to watchlist
// @Description  Validates the symbol against its provider and fills name and sector from provider metadata unless supplied
// @Tags         watchlist
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateWatchlistRequest  true  "Symbol to add"
// @Success      201   {object}  models.WatchlistItem        "Created"
// @Failure      400   {object}  dto.ErrorResponse           "Bad Request"
// @Failure      500   {object}  dto.ErrorResponse           "Internal Error"
// @Router       /api/v1/watchlist [post]
func (h *Handler) AddWatchlist(c *gin.Context) {
	var req dto.CreateWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body", err))
		return
	}

	item, err := h.watchlist.Add(c.Request.Context(), service.AddWatchlistInput{
		Symbol: req.Symbol,
		Name:   req.Name,
		Sector: req.Sector,
	})
	if err != nil {
		fail(c, failureMessage(err, "symbol not found"), err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateWatchlist godoc
// @Summary      Update watchlist entry
// @Tags         watchlist
// @Accept       json
// @Produce      json
// @Param        symbol  path      string                      true  "Symbol" example(AAPL)
// @Param        body    body      dto.UpdateWatchlistRequest  true  "Fields to change"
// @Success      200     {object}  models.WatchlistItem        "Success"
// @Failure      400     {object}  dto.ErrorResponse           "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse           "Not Found"
// @Router       /api/v1/watchlist/{symbol} [patch]
func (h *Handler) UpdateWatchlist(c *gin.Context) {
	var req dto.UpdateWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body", err))
		return
	}

	item, err := h.watchlist.Update(c.Request.Context(), symbolParam(c), models.WatchlistPatch{
		Name:   req.Name,
		Sector: req.Sector,
	})
	if err != nil {
		fail(c, failureMessage(err, "symbol not in watchlist"), err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteWatchlist godoc
// @Summary      Remove symbol from watchlist
// @Tags         watchlist
// @Produce      json
// @Param        symbol  path      string               true  "Symbol" example(AAPL)
// @Success      200     {object}  dto.MessageResponse  "Removed"
// @Failure      404     {object}  dto.ErrorResponse    "Not Found"
// @Router       /api/v1/watchlist/{symbol} [delete]
func (h *Handler) DeleteWatchlist(c *gin.Context) {
	symbol := symbolParam(c)
	if err := h.watchlist.Remove(c.Request.Context(), symbol); err != nil {
		fail(c, failureMessage(err, "symbol not in watchlist"), err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: symbol + " removed from watchlist"})
}
