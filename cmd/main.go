package main

//
//  @title           marketpulse API
//  @version         1.0
//  @description     Stock and crypto market analysis: snapshots, moving-average signals, charts and a watchlist.
//  @termsOfService  https://github.com/guttosm/marketpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/marketpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        stocks
//  @tag.description Snapshots, charts and signals for stocks and crypto pairs
//
//  @tag.name        watchlist
//  @tag.description Symbols tracked and refreshed daily
//
//  @tag.name        health
//  @tag.description Liveness and readiness checks

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/marketpulse/config"
	_ "github.com/guttosm/marketpulse/docs" // swagger docs
	"github.com/guttosm/marketpulse/internal/app"
	"github.com/guttosm/marketpulse/internal/logger"
)

// startServer starts the HTTP server in a separate goroutine.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown blocks until SIGINT or SIGTERM, then drains the server
// and runs cleanup (scheduler stop, Redis and Postgres close).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// run executes one mode to completion. api blocks until a shutdown signal.
func run(ctx context.Context, mode, port string, cfg config.Config) error {
	switch mode {
	case "api":
		logger.L().Info().Msg("starting API server")
		router, cleanup, err := app.InitializeApp(ctx, cfg)
		if err != nil {
			return fmt.Errorf("app init: %w", err)
		}
		server := startServer(router, port)
		gracefulShutdown(ctx, server, cleanup)
		return nil

	case "seed":
		added, err := app.RunSeed(ctx, cfg)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		logger.L().Info().Int("added", added).Msg("seed completed")
		return nil

	case "refresh":
		res, err := app.RunRefresh(ctx, cfg)
		if err != nil {
			return fmt.Errorf("refresh: %w", err)
		}
		if res.Failed > 0 {
			logger.L().Warn().Int("failed", res.Failed).Int("total", res.Total).Msg("refresh completed with failures")
		}
		return nil

	default:
		return fmt.Errorf("unknown mode %q (want api, seed or refresh)", mode)
	}
}

// main is the entry point of marketpulse.
//
// Modes (selected via --mode flag):
//   - api:     Serves the REST API and runs the daily refresh scheduler.
//   - seed:    Fills an empty watchlist from SEED_FILE or the built-in sample.
//   - refresh: Rebuilds every watchlist snapshot once and exits.
func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	logger.Configure(cfg.Log.Level, cfg.Log.Pretty)

	mode := flag.String("mode", "api", "Mode: api, seed or refresh")
	port := flag.String("port", cfg.Server.Port, "Port for API mode")
	seedFile := flag.String("seed-file", cfg.Seed.File, "Seed file (Symbol;AssetType;Name); empty uses the sample list")
	flag.Parse()
	cfg.Seed.File = *seedFile

	if err := cfg.Validate(); err != nil {
		logger.L().Fatal().Err(err).Msg("invalid configuration")
	}

	if err := run(ctx, *mode, *port, cfg); err != nil {
		logger.L().Fatal().Err(err).Str("mode", *mode).Msg("run failed")
	}
}
