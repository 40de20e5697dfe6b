// Package scheduler re-warms the snapshot cache for every watchlist symbol
// on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/logger"
)

const (
	DefaultSpec     = "0 0 6 * * *"
	DefaultTimezone = "America/New_York"
	DefaultParallel = 4
)

// SymbolSource lists the symbols to refresh.
type SymbolSource interface {
	Symbols(ctx context.Context) ([]string, error)
}

// Refresher rebuilds the cached snapshot of one symbol.
type Refresher interface {
	Refresh(ctx context.Context, symbol string) (*models.Snapshot, error)
}

// Options configure a Scheduler. Zero values fall back to the defaults.
type Options struct {
	Spec     string
	Timezone string
	Parallel int
}

// Result summarizes one refresh run.
type Result struct {
	Total     int
	Refreshed int
	Failed    int
}

// Scheduler runs the refresh job on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	source   SymbolSource
	refresh  Refresher
	parallel int
	spec     string

	ctx    context.Context
	cancel context.CancelFunc
}

// New validates the schedule and timezone and registers the refresh job.
// The job does not run until Start.
func New(source SymbolSource, refresher Refresher, opts Options) (*Scheduler, error) {
	if opts.Spec == "" {
		opts.Spec = DefaultSpec
	}
	if opts.Timezone == "" {
		opts.Timezone = DefaultTimezone
	}
	if opts.Parallel < 1 {
		opts.Parallel = DefaultParallel
	}

	loc, err := time.LoadLocation(opts.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", opts.Timezone, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		source:   source,
		refresh:  refresher,
		parallel: opts.Parallel,
		spec:     opts.Spec,
		ctx:      ctx,
		cancel:   cancel,
	}
	if _, err := s.cron.AddFunc(opts.Spec, s.job); err != nil {
		cancel()
		return nil, fmt.Errorf("register refresh job %q: %w", opts.Spec, err)
	}
	return s, nil
}

// Start begins firing the job in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.L().Info().Str("spec", s.spec).Int("parallel", s.parallel).Msg("scheduler_started")
}

// Stop prevents new runs, cancels the one in flight and waits for it to
// return or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	s.cancel()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	logger.L().Info().Msg("scheduler_stopped")
}

// Next reports when the job fires next; zero before Start.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) job() {
	if _, err := RunNow(s.ctx, s.source, s.refresh, s.parallel); err != nil {
		logger.L().Error().Err(err).Msg("scheduled_refresh_failed")
	}
}

// RunNow refreshes every symbol once with at most parallel concurrent
// refreshes. A failing symbol is logged and counted; it never stops the
// others. Only a failure to list the symbols is returned as an error.
func RunNow(ctx context.Context, source SymbolSource, refresher Refresher, parallel int) (Result, error) {
	if parallel < 1 {
		parallel = DefaultParallel
	}
	start := time.Now()
	log := logger.Component("scheduler")

	symbols, err := source.Symbols(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list symbols: %w", err)
	}

	var refreshed, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, parallel)

	for _, sym := range symbols {
		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
			failed.Add(1)
			continue
		}

		g.Go(func() error {
			defer func() { <-sem }()
			if _, err := refresher.Refresh(gctx, sym); err != nil {
				failed.Add(1)
				log.Warn().Str("symbol", sym).Err(err).Msg("refresh_failed")
				return nil
			}
			refreshed.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Total: len(symbols), Refreshed: int(refreshed.Load()), Failed: int(failed.Load())}
	log.Info().
		Int("total", res.Total).
		Int("refreshed", res.Refreshed).
		Int("failed", res.Failed).
		Dur("elapsed", time.Since(start)).
		Msg("refresh_completed")
	return res, nil
}
