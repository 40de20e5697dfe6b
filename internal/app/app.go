package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/marketpulse/config"
	"github.com/guttosm/marketpulse/internal/api"
	"github.com/guttosm/marketpulse/internal/logger"
	"github.com/guttosm/marketpulse/internal/scheduler"
	"github.com/guttosm/marketpulse/internal/seed"
)

const stopTimeout = 10 * time.Second

// InitializeApp wires the API mode: services, optional seeding, the daily
// refresh scheduler, the Gin router and the health checks.
//
// Returns:
//   - *gin.Engine: the configured router.
//   - func(): cleanup stopping the scheduler and closing Redis and Postgres.
//   - error: any initialization error.
func InitializeApp(ctx context.Context, cfg config.Config) (*gin.Engine, func(), error) {
	svcs, err := NewServices(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Seed.OnStart {
		// A bad seed file should not keep the API down.
		if _, err := seed.SeedWatchlist(ctx, svcs.Repo, svcs.Router, cfg.Seed.File); err != nil {
			logger.L().Error().Err(err).Msg("seed_on_start_failed")
		}
	}

	sched, err := scheduler.New(svcs.Watchlist, svcs.Market, scheduler.Options{
		Spec:     cfg.Refresh.Cron,
		Timezone: cfg.Refresh.Timezone,
		Parallel: cfg.Refresh.Parallel,
	})
	if err != nil {
		svcs.Close()
		return nil, nil, fmt.Errorf("failed to initialize scheduler: %w", err)
	}
	sched.Start()

	handler := api.NewHandler(svcs.Market, svcs.Watchlist, svcs.Screenshots)
	router := api.NewRouter(handler, api.RouterOptions{
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		MaxUploadBytes:     cfg.Screenshots.MaxUploadBytes,
	})
	api.NewHealthHandler(svcs.DB.Ping, svcs.Cache.Enabled).Register(router)

	cleanup := func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		sched.Stop(stopCtx)
		svcs.Close()
	}

	return router, cleanup, nil
}

// RunSeed populates an empty watchlist and returns how many rows were added.
func RunSeed(ctx context.Context, cfg config.Config) (int, error) {
	svcs, err := NewServices(ctx, cfg)
	if err != nil {
		return 0, err
	}
	defer svcs.Close()

	return seed.SeedWatchlist(ctx, svcs.Repo, svcs.Router, cfg.Seed.File)
}

// RunRefresh rebuilds the cached snapshot of every watchlist symbol once.
func RunRefresh(ctx context.Context, cfg config.Config) (scheduler.Result, error) {
	svcs, err := NewServices(ctx, cfg)
	if err != nil {
		return scheduler.Result{}, err
	}
	defer svcs.Close()

	return scheduler.RunNow(ctx, svcs.Watchlist, svcs.Market, cfg.Refresh.Parallel)
}
