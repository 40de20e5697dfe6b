package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	pq "github.com/lib/pq"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

// uniqueViolation is the Postgres SQLSTATE for duplicate keys.
const uniqueViolation = "23505"

const watchlistColumns = "id, symbol, asset_type, name, sector, added_at"

// WatchlistRepository defines the persistence contract for watchlist entries.
type WatchlistRepository interface {
	List(ctx context.Context) ([]models.WatchlistItem, error)
	Get(ctx context.Context, symbol string) (*models.WatchlistItem, error)
	Insert(ctx context.Context, item models.WatchlistItem) (*models.WatchlistItem, error)
	InsertBatch(ctx context.Context, items []models.WatchlistItem) (int, error)
	Update(ctx context.Context, symbol string, patch models.WatchlistPatch) (*models.WatchlistItem, error)
	Delete(ctx context.Context, symbol string) error
	Count(ctx context.Context) (int, error)
	Symbols(ctx context.Context) ([]string, error)
}

type watchlistRepository struct {
	db *sql.DB
}

func NewWatchlistRepository(db *sql.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*models.WatchlistItem, error) {
	var (
		it     models.WatchlistItem
		sector sql.NullString
	)
	if err := row.Scan(&it.ID, &it.Symbol, &it.AssetType, &it.Name, &sector, &it.AddedAt); err != nil {
		return nil, err
	}
	if sector.Valid {
		s := sector.String
		it.Sector = &s
	}
	return &it, nil
}

// List returns every entry, oldest first.
func (r *watchlistRepository) List(ctx context.Context) ([]models.WatchlistItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+watchlistColumns+` FROM watchlist ORDER BY added_at, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []models.WatchlistItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// Get returns the entry for symbol or a wrapped models.ErrNotFound.
func (r *watchlistRepository) Get(ctx context.Context, symbol string) (*models.WatchlistItem, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx, `SELECT `+watchlistColumns+` FROM watchlist WHERE symbol = $1`, symbol))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("watchlist %s: %w", symbol, models.ErrNotFound)
	}
	return it, err
}

// Insert adds one entry. A duplicate symbol yields models.ErrAlreadyExists.
func (r *watchlistRepository) Insert(ctx context.Context, item models.WatchlistItem) (*models.WatchlistItem, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO watchlist (symbol, asset_type, name, sector)
		VALUES ($1, $2, $3, $4)
		RETURNING `+watchlistColumns,
		item.Symbol, item.AssetType, item.Name, nullString(item.Sector))
	it, err := scanItem(row)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("watchlist %s: %w", item.Symbol, models.ErrAlreadyExists)
	}
	return it, err
}

// InsertBatch inserts entries in one transaction, skipping symbols already
// present. It returns how many rows were added.
func (r *watchlistRepository) InsertBatch(ctx context.Context, items []models.WatchlistItem) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO watchlist (symbol, asset_type, name, sector)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (symbol) DO NOTHING`)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	added := 0
	for _, it := range items {
		res, err := stmt.ExecContext(ctx, it.Symbol, it.AssetType, it.Name, nullString(it.Sector))
		if err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert %s: %w", it.Symbol, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	return added, tx.Commit()
}

// Update applies the non-nil fields of patch.
func (r *watchlistRepository) Update(ctx context.Context, symbol string, patch models.WatchlistPatch) (*models.WatchlistItem, error) {
	var (
		sets []string
		args []any
	)
	if patch.Name != nil {
		args = append(args, *patch.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.Sector != nil {
		args = append(args, nullString(patch.Sector))
		sets = append(sets, fmt.Sprintf("sector = $%d", len(args)))
	}
	if len(sets) == 0 {
		return r.Get(ctx, symbol)
	}
	args = append(args, symbol)

	query := fmt.Sprintf(`UPDATE watchlist SET %s WHERE symbol = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), watchlistColumns)
	it, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("watchlist %s: %w", symbol, models.ErrNotFound)
	}
	return it, err
}

// Delete removes the entry for symbol or returns a wrapped models.ErrNotFound.
func (r *watchlistRepository) Delete(ctx context.Context, symbol string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM watchlist WHERE symbol = $1`, symbol)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("watchlist %s: %w", symbol, models.ErrNotFound)
	}
	return nil
}

func (r *watchlistRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM watchlist`).Scan(&n)
	return n, err
}

// Symbols lists the symbols the refresh job should keep warm.
func (r *watchlistRepository) Symbols(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT symbol FROM watchlist ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func nullString(s *string) any {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return *s
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
