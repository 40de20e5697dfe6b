package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/guttosm/marketpulse/config"
	"github.com/guttosm/marketpulse/internal/analyzer"
	"github.com/guttosm/marketpulse/internal/cache"
	"github.com/guttosm/marketpulse/internal/logger"
	"github.com/guttosm/marketpulse/internal/ocr"
	"github.com/guttosm/marketpulse/internal/provider"
	"github.com/guttosm/marketpulse/internal/service"
	"github.com/guttosm/marketpulse/internal/storage"
)

// Services is the dependency graph shared by every run mode.
type Services struct {
	DB          *sql.DB
	Cache       cache.Cache
	Router      *provider.Router
	Repo        storage.WatchlistRepository
	Market      service.MarketService
	Watchlist   service.WatchlistService
	Screenshots service.ScreenshotService

	closeCache func()
}

// cacheOpener is an indirection for unit testing. It never fails: an
// unreachable Redis yields a disabled cache.
var cacheOpener = func(ctx context.Context, cfg config.RedisConfig) (cache.Cache, func()) {
	if !cfg.Enabled {
		logger.L().Info().Msg("cache_disabled_by_config")
		return cache.Disabled(), func() {}
	}
	rc := cache.NewRedisCache(ctx, cache.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	return rc, func() { _ = rc.Close() }
}

// NewProviderRouter builds the Alpha Vantage and CoinGecko adapters behind
// one symbol router.
func NewProviderRouter(cfg config.ProvidersConfig) *provider.Router {
	equity := provider.NewAlphaVantage(provider.ClientOptions{
		BaseURL: cfg.AlphaVantageURL,
		APIKey:  cfg.AlphaVantageKey,
		Timeout: cfg.Timeout,
	})
	crypto := provider.NewCoinGecko(provider.ClientOptions{
		BaseURL: cfg.CoinGeckoURL,
		APIKey:  cfg.CoinGeckoKey,
		Timeout: cfg.Timeout,
	})
	return provider.NewRouter(equity, crypto, provider.SupportedCryptoSymbols())
}

// NewScreenshotService wires uploads to the optional OCR binary and AI
// analyzer. Either one stays disabled when its setting is empty.
func NewScreenshotService(db *sql.DB, cfg config.ScreenshotsConfig) service.ScreenshotService {
	extractor := ocr.NewTesseract(cfg.TesseractPath)
	ai := analyzer.New(analyzer.Options{
		BaseURL: cfg.AnalyzerURL,
		APIKey:  cfg.AnalyzerKey,
		Model:   cfg.AnalyzerModel,
		Timeout: cfg.AnalyzerTimeout,
	})
	logger.L().Info().
		Bool("ocr", cfg.TesseractPath != "").
		Bool("ai_analysis", cfg.AnalyzerKey != "").
		Str("upload_dir", cfg.UploadDir).
		Msg("screenshot_pipeline")
	return service.NewScreenshotService(storage.NewScreenshotRepository(db), service.ScreenshotOptions{
		UploadDir: cfg.UploadDir,
		MaxBytes:  cfg.MaxUploadBytes,
		OCR:       extractor,
		Analyzer:  ai,
	})
}

// NewServices connects Postgres and Redis and assembles the services.
// Close releases both.
func NewServices(ctx context.Context, cfg config.Config) (*Services, error) {
	db, err := postgresOpener(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	c, closeCache := cacheOpener(ctx, cfg.Redis)
	router := NewProviderRouter(cfg.Providers)
	repo := storage.NewWatchlistRepository(db)

	return &Services{
		DB:          db,
		Cache:       c,
		Router:      router,
		Repo:        repo,
		Market:      service.NewMarketService(router, c),
		Watchlist:   service.NewWatchlistService(repo, router),
		Screenshots: NewScreenshotService(db, cfg.Screenshots),
		closeCache:  closeCache,
	}, nil
}

// Close releases the cache client and the database pool.
func (s *Services) Close() {
	if s.closeCache != nil {
		s.closeCache()
	}
	if s.DB != nil {
		_ = s.DB.Close()
	}
}
