package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/logger"
	"github.com/guttosm/marketpulse/internal/provider"
	"github.com/guttosm/marketpulse/internal/storage"
)

// AddWatchlistInput is a request to follow a symbol. Name and Sector
// override what the provider reports.
type AddWatchlistInput struct {
	Symbol string
	Name   *string
	Sector *string
}

// WatchlistService manages followed symbols.
type WatchlistService interface {
	List(ctx context.Context) ([]models.WatchlistItem, error)
	Add(ctx context.Context, in AddWatchlistInput) (*models.WatchlistItem, error)
	Update(ctx context.Context, symbol string, patch models.WatchlistPatch) (*models.WatchlistItem, error)
	Remove(ctx context.Context, symbol string) error
	Symbols(ctx context.Context) ([]string, error)
}

type watchlistService struct {
	repo   storage.WatchlistRepository
	router *provider.Router
}

func NewWatchlistService(repo storage.WatchlistRepository, router *provider.Router) WatchlistService {
	return &watchlistService{repo: repo, router: router}
}

func (s *watchlistService) List(ctx context.Context) ([]models.WatchlistItem, error) {
	return s.repo.List(ctx)
}

// Add validates the symbol with its provider and stores it with the
// provider's name and category. Metadata lookups never block the insert.
func (s *watchlistService) Add(ctx context.Context, in AddWatchlistInput) (*models.WatchlistItem, error) {
	sym := models.NormalizeSymbol(in.Symbol)
	if sym == "" {
		return nil, fmt.Errorf("symbol is required: %w", models.ErrInvalidSymbol)
	}

	_, err := s.repo.Get(ctx, sym)
	switch {
	case err == nil:
		return nil, fmt.Errorf("watchlist %s: %w", sym, models.ErrAlreadyExists)
	case !errors.Is(err, models.ErrNotFound):
		return nil, err
	}

	adapter, class := s.router.Route(sym)
	if !adapter.Validate(ctx, sym) {
		return nil, fmt.Errorf("%s: %w", sym, models.ErrInvalidSymbol)
	}

	desc := adapter.FetchDescriptor(ctx, sym)
	item := models.WatchlistItem{
		Symbol:    sym,
		AssetType: class.String(),
		Name:      desc.Name,
	}
	if desc.Category != "" && desc.Category != models.UnknownCategory {
		c := desc.Category
		item.Sector = &c
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Sector != nil {
		item.Sector = in.Sector
	}

	created, err := s.repo.Insert(ctx, item)
	if err != nil {
		return nil, err
	}
	logger.L().Info().Str("symbol", sym).Str("asset_type", item.AssetType).Msg("watchlist_added")
	return created, nil
}

func (s *watchlistService) Update(ctx context.Context, symbol string, patch models.WatchlistPatch) (*models.WatchlistItem, error) {
	return s.repo.Update(ctx, models.NormalizeSymbol(symbol), patch)
}

func (s *watchlistService) Remove(ctx context.Context, symbol string) error {
	sym := models.NormalizeSymbol(symbol)
	if err := s.repo.Delete(ctx, sym); err != nil {
		return err
	}
	logger.L().Info().Str("symbol", sym).Msg("watchlist_removed")
	return nil
}

func (s *watchlistService) Symbols(ctx context.Context) ([]string, error) {
	return s.repo.Symbols(ctx)
}
