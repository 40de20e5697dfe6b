package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/guttosm/marketpulse/internal/analyzer"
	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/logger"
	"github.com/guttosm/marketpulse/internal/ocr"
	"github.com/guttosm/marketpulse/internal/storage"
)

// DefaultMaxUploadBytes caps one uploaded image.
const DefaultMaxUploadBytes int64 = 10 << 20

const defaultImageExt = ".png"

var imageExt = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// UploadInput is one image received from a client.
type UploadInput struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ScreenshotService stores uploaded images, extracts their text and runs the
// optional paid analysis on demand.
type ScreenshotService interface {
	// Upload saves the image, runs OCR and records the result. OCR failures
	// are logged and leave the text empty.
	Upload(ctx context.Context, in UploadInput) (*models.Screenshot, error)
	// Analyze runs the AI analyzer once per screenshot; later calls return
	// the stored result.
	Analyze(ctx context.Context, id int64) (*models.Screenshot, error)
	List(ctx context.Context) ([]models.Screenshot, error)
	Get(ctx context.Context, id int64) (*models.Screenshot, error)
	// Delete removes the row and then the image file.
	Delete(ctx context.Context, id int64) error
}

// ScreenshotOptions configures a ScreenshotService. Nil collaborators fall
// back to their disabled implementations.
type ScreenshotOptions struct {
	UploadDir string
	MaxBytes  int64
	OCR       ocr.Extractor
	Analyzer  analyzer.Analyzer
	Now       func() time.Time
}

type screenshotService struct {
	repo      storage.ScreenshotRepository
	dir       string
	maxBytes  int64
	extractor ocr.Extractor
	analyzer  analyzer.Analyzer
	now       func() time.Time
}

func NewScreenshotService(repo storage.ScreenshotRepository, opts ScreenshotOptions) ScreenshotService {
	s := &screenshotService{
		repo:      repo,
		dir:       opts.UploadDir,
		maxBytes:  opts.MaxBytes,
		extractor: opts.OCR,
		analyzer:  opts.Analyzer,
		now:       opts.Now,
	}
	if s.dir == "" {
		s.dir = "uploads"
	}
	if s.maxBytes <= 0 {
		s.maxBytes = DefaultMaxUploadBytes
	}
	if s.extractor == nil {
		s.extractor = ocr.Disabled()
	}
	if s.analyzer == nil {
		s.analyzer = analyzer.Disabled()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *screenshotService) Upload(ctx context.Context, in UploadInput) (*models.Screenshot, error) {
	if !strings.HasPrefix(strings.ToLower(in.ContentType), "image/") {
		return nil, fmt.Errorf("file must be an image, got %q: %w", in.ContentType, models.ErrInvalidInput)
	}
	if in.Body == nil {
		return nil, fmt.Errorf("empty upload: %w", models.ErrInvalidInput)
	}

	path, err := s.save(in)
	if err != nil {
		return nil, err
	}

	text, err := s.extractor.Extract(ctx, path)
	if err != nil {
		logger.L().Warn().Err(err).Str("path", path).Msg("ocr skipped")
		text = ""
	}

	shot, err := s.repo.Insert(ctx, models.Screenshot{
		ImagePath:        path,
		ExtractedText:    text,
		TickersMentioned: ocr.ExtractTickers(text),
		InvestmentThesis: ocr.ExtractThesis(text),
	})
	if err != nil {
		s.removeFile(path)
		return nil, err
	}
	logger.L().Info().Int64("id", shot.ID).Strs("tickers", shot.TickersMentioned).Msg("screenshot_uploaded")
	return shot, nil
}

// save writes the body under a random name in the upload directory.
func (s *screenshotService) save(in UploadInput) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(in.Filename)))
	if !imageExt.MatchString(ext) {
		ext = defaultImageExt
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("upload dir: %w", err)
	}
	path := filepath.Join(s.dir, uuid.NewString()+ext)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	n, err := io.Copy(f, io.LimitReader(in.Body, s.maxBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	switch {
	case err != nil:
		s.removeFile(path)
		return "", fmt.Errorf("save upload: %w", err)
	case n == 0:
		s.removeFile(path)
		return "", fmt.Errorf("empty upload: %w", models.ErrInvalidInput)
	case n > s.maxBytes:
		s.removeFile(path)
		return "", fmt.Errorf("upload exceeds %d bytes: %w", s.maxBytes, models.ErrInvalidInput)
	}
	return path, nil
}

func (s *screenshotService) removeFile(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.L().Warn().Err(err).Str("path", path).Msg("failed to delete screenshot file")
	}
}

func (s *screenshotService) Analyze(ctx context.Context, id int64) (*models.Screenshot, error) {
	shot, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if shot.AIAnalyzed {
		return shot, nil
	}

	res, err := s.analyzer.Analyze(ctx, shot.ExtractedText, shot.TickersMentioned)
	if err != nil {
		return nil, fmt.Errorf("screenshot %d: %w", id, err)
	}
	saved, err := s.repo.SaveAnalysis(ctx, id, res, s.now().UTC())
	if err != nil {
		return nil, err
	}
	logger.L().Info().Int64("id", id).Str("recommendation", res.Recommendation).
		Float64("cost_usd", res.Cost).Msg("screenshot_analyzed")
	return saved, nil
}

func (s *screenshotService) List(ctx context.Context) ([]models.Screenshot, error) {
	return s.repo.List(ctx)
}

func (s *screenshotService) Get(ctx context.Context, id int64) (*models.Screenshot, error) {
	return s.repo.Get(ctx, id)
}

func (s *screenshotService) Delete(ctx context.Context, id int64) error {
	shot, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFile(shot.ImagePath)
	return nil
}
