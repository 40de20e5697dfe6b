package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/marketpulse/internal/middleware"
)

// RequestTimeout bounds every API request, provider round-trips included.
const RequestTimeout = 10 * time.Second

// RouterOptions tunes the engine built by NewRouter. Zero values fall back
// to the middleware defaults.
type RouterOptions struct {
	// RateLimitPerMinute caps requests per client IP.
	RateLimitPerMinute int
	// MaxUploadBytes bounds the in-memory part of multipart parsing.
	MaxUploadBytes int64
}

// NewRouter creates the Gin engine with middlewares, Swagger and the /api/v1
// routes. Health endpoints are registered separately by the app package.
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	if opts.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = opts.MaxUploadBytes
	}

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(opts.RateLimitPerMinute, time.Minute),
	)

	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), RequestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		stocks := v1.Group("/stocks")
		stocks.GET("/:symbol", handler.GetSnapshot)
		stocks.GET("/:symbol/chart", handler.GetChart)
		stocks.GET("/:symbol/signals", handler.GetSignals)
		stocks.POST("/:symbol/refresh", handler.Refresh)

		watchlist := v1.Group("/watchlist")
		watchlist.GET("", handler.ListWatchlist)
		watchlist.POST("", handler.AddWatchlist)
		watchlist.PATCH("/:symbol", handler.UpdateWatchlist)
		watchlist.DELETE("/:symbol", handler.DeleteWatchlist)

		screenshots := v1.Group("/screenshots")
		screenshots.GET("", handler.ListScreenshots)
		screenshots.POST("/upload", handler.UploadScreenshot)
		screenshots.GET("/:id", handler.GetScreenshot)
		screenshots.DELETE("/:id", handler.DeleteScreenshot)
		screenshots.POST("/:id/analyze", handler.AnalyzeScreenshot)
	}

	return router
}
