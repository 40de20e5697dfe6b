// Package seed fills an empty watchlist from a ';'-delimited file or the
// built-in sample.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/logger"
	"github.com/guttosm/marketpulse/internal/storage"
)

// expectedHeaders must match the first line exactly (order and count).
var expectedHeaders = []string{"Symbol", "AssetType", "Name"}

// Classifier decides the asset class a symbol is served as.
// *provider.Router satisfies it.
type Classifier interface {
	Classify(symbol string) models.AssetClass
}

// SampleWatchlist is used when no seed file is configured.
var SampleWatchlist = []models.WatchlistItem{
	{Symbol: "AAPL", AssetType: "STOCK", Name: "Apple Inc."},
	{Symbol: "GOOGL", AssetType: "STOCK", Name: "Alphabet Inc."},
	{Symbol: "MSFT", AssetType: "STOCK", Name: "Microsoft Corp."},
	{Symbol: "TSLA", AssetType: "STOCK", Name: "Tesla Inc."},
	{Symbol: "NVDA", AssetType: "STOCK", Name: "NVIDIA Corp."},
	{Symbol: "BTC-USD", AssetType: "CRYPTO", Name: "Bitcoin"},
	{Symbol: "ETH-USD", AssetType: "CRYPTO", Name: "Ethereum"},
	{Symbol: "SOL-USD", AssetType: "CRYPTO", Name: "Solana"},
}

// SeedWatchlist inserts the entries from path, or SampleWatchlist when path
// is empty, but only if the watchlist has no rows yet. Every entry's
// AssetType must match what classifier decides for its symbol. It returns
// how many rows were added.
func SeedWatchlist(ctx context.Context, repo storage.WatchlistRepository, classifier Classifier, path string) (int, error) {
	existing, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count watchlist: %w", err)
	}
	if existing > 0 {
		logger.L().Info().Int("existing", existing).Msg("watchlist_seed_skipped")
		return 0, nil
	}

	items := SampleWatchlist
	if path != "" {
		items, err = loadFile(path, classifier)
	} else {
		err = checkClasses(items, classifier)
	}
	if err != nil {
		return 0, err
	}

	added, err := repo.InsertBatch(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("insert seed: %w", err)
	}
	logger.L().Info().Int("added", added).Str("source", sourceName(path)).Msg("watchlist_seeded")
	return added, nil
}

func sourceName(path string) string {
	if path == "" {
		return "sample"
	}
	return path
}

func checkClasses(items []models.WatchlistItem, c Classifier) error {
	for _, it := range items {
		if err := checkClass(it, c); err != nil {
			return err
		}
	}
	return nil
}

func checkClass(it models.WatchlistItem, c Classifier) error {
	if want := c.Classify(it.Symbol).String(); it.AssetType != want {
		return fmt.Errorf("AssetType %s for %s disagrees with routing (%s)", it.AssetType, it.Symbol, want)
	}
	return nil
}

func loadFile(path string, c Classifier) ([]models.WatchlistItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	items, err := Parse(f, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// Parse reads a seed file:
//
//	Symbol;AssetType;Name
//	AAPL;STOCK;Apple Inc.
//	BTC-USD;CRYPTO;Bitcoin
//
// A wrong header, a wrong column count, an empty symbol, an asset type
// other than STOCK or CRYPTO, or one that c classifies differently fails the
// whole file.
func Parse(r io.Reader, c Classifier) ([]models.WatchlistItem, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // checked explicitly for a better message

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedHeaders) {
		return nil, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) != expectedHeaders[i] {
			return nil, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], h)
		}
	}

	var (
		items []models.WatchlistItem
		seen  = map[string]bool{}
		line  = 1
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line after %d: %w", line, err)
		}
		line++

		if len(rec) != len(expectedHeaders) {
			return nil, fmt.Errorf("invalid column count on line %d: expected %d got %d", line, len(expectedHeaders), len(rec))
		}
		item, err := recordToItem(rec)
		if err == nil {
			err = checkClass(item, c)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if seen[item.Symbol] {
			continue
		}
		seen[item.Symbol] = true
		items = append(items, item)
	}
	return items, nil
}

func recordToItem(rec []string) (models.WatchlistItem, error) {
	symbol := models.NormalizeSymbol(rec[0])
	if symbol == "" {
		return models.WatchlistItem{}, errors.New("empty Symbol")
	}

	assetType := strings.ToUpper(strings.TrimSpace(rec[1]))
	if assetType != models.Equity.String() && assetType != models.Crypto.String() {
		return models.WatchlistItem{}, fmt.Errorf("invalid AssetType %q", rec[1])
	}

	name := strings.TrimSpace(rec[2])
	if name == "" {
		name = symbol
	}
	return models.WatchlistItem{Symbol: symbol, AssetType: assetType, Name: name}, nil
}
