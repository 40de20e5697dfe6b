package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	pq "github.com/lib/pq"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

const screenshotColumns = `id, image_path, upload_timestamp, extracted_text, tickers_mentioned,
	investment_thesis, ai_analyzed, ai_analysis, recommendation, risk_rating, analysis_cost, analyzed_at`

// ScreenshotRepository persists uploaded screenshots and their analysis.
type ScreenshotRepository interface {
	List(ctx context.Context) ([]models.Screenshot, error)
	Get(ctx context.Context, id int64) (*models.Screenshot, error)
	Insert(ctx context.Context, shot models.Screenshot) (*models.Screenshot, error)
	SaveAnalysis(ctx context.Context, id int64, a models.Analysis, at time.Time) (*models.Screenshot, error)
	Delete(ctx context.Context, id int64) error
}

type screenshotRepository struct {
	db *sql.DB
}

func NewScreenshotRepository(db *sql.DB) ScreenshotRepository {
	return &screenshotRepository{db: db}
}

func scanScreenshot(row scanner) (*models.Screenshot, error) {
	var (
		s          models.Screenshot
		tickers    pq.StringArray
		analysis   sql.NullString
		rec        sql.NullString
		risk       sql.NullString
		cost       sql.NullFloat64
		analyzedAt sql.NullTime
	)
	err := row.Scan(&s.ID, &s.ImagePath, &s.UploadedAt, &s.ExtractedText, &tickers,
		&s.InvestmentThesis, &s.AIAnalyzed, &analysis, &rec, &risk, &cost, &analyzedAt)
	if err != nil {
		return nil, err
	}
	s.TickersMentioned = []string(tickers)
	if s.TickersMentioned == nil {
		s.TickersMentioned = []string{}
	}
	if analysis.Valid {
		s.AIAnalysis = &analysis.String
	}
	if rec.Valid {
		s.Recommendation = &rec.String
	}
	if risk.Valid {
		s.RiskRating = &risk.String
	}
	if cost.Valid {
		s.AnalysisCost = &cost.Float64
	}
	if analyzedAt.Valid {
		s.AnalyzedAt = &analyzedAt.Time
	}
	return &s, nil
}

// List returns every screenshot, newest first.
func (r *screenshotRepository) List(ctx context.Context) ([]models.Screenshot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+screenshotColumns+` FROM screenshots ORDER BY upload_timestamp DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.Screenshot{}
	for rows.Next() {
		s, err := scanScreenshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// Get returns the screenshot with id or a wrapped models.ErrNotFound.
func (r *screenshotRepository) Get(ctx context.Context, id int64) (*models.Screenshot, error) {
	s, err := scanScreenshot(r.db.QueryRowContext(ctx, `SELECT `+screenshotColumns+` FROM screenshots WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("screenshot %d: %w", id, models.ErrNotFound)
	}
	return s, err
}

// Insert stores the OCR output for a newly saved image.
func (r *screenshotRepository) Insert(ctx context.Context, shot models.Screenshot) (*models.Screenshot, error) {
	return scanScreenshot(r.db.QueryRowContext(ctx, `
		INSERT INTO screenshots (image_path, extracted_text, tickers_mentioned, investment_thesis)
		VALUES ($1, $2, $3, $4)
		RETURNING `+screenshotColumns,
		shot.ImagePath, shot.ExtractedText, pq.Array(shot.TickersMentioned), shot.InvestmentThesis))
}

// SaveAnalysis records an AI analysis and marks the screenshot analyzed.
func (r *screenshotRepository) SaveAnalysis(ctx context.Context, id int64, a models.Analysis, at time.Time) (*models.Screenshot, error) {
	s, err := scanScreenshot(r.db.QueryRowContext(ctx, `
		UPDATE screenshots
		SET ai_analyzed = TRUE, ai_analysis = $1, recommendation = $2, risk_rating = $3,
			analysis_cost = $4, analyzed_at = $5
		WHERE id = $6
		RETURNING `+screenshotColumns,
		a.Text, a.Recommendation, a.RiskRating, a.Cost, at, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("screenshot %d: %w", id, models.ErrNotFound)
	}
	return s, err
}

// Delete removes the row for id or returns a wrapped models.ErrNotFound.
func (r *screenshotRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM screenshots WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("screenshot %d: %w", id, models.ErrNotFound)
	}
	return nil
}
