package ocr

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"sort"
	"strings"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

// Extractor turns an image on disk into plain text.
type Extractor interface {
	Extract(ctx context.Context, imagePath string) (string, error)
}

type disabled struct{}

func (disabled) Extract(context.Context, string) (string, error) {
	return "", fmt.Errorf("ocr: %w", models.ErrNotConfigured)
}

// Disabled returns an Extractor that always reports models.ErrNotConfigured.
func Disabled() Extractor { return disabled{} }

// Tesseract shells out to the tesseract CLI.
type Tesseract struct {
	bin string
}

// NewTesseract resolves bin on PATH. An empty or missing binary yields the
// disabled extractor.
func NewTesseract(bin string) Extractor {
	if strings.TrimSpace(bin) == "" {
		return Disabled()
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return Disabled()
	}
	return &Tesseract{bin: path}
}

func (t *Tesseract) Extract(ctx context.Context, imagePath string) (string, error) {
	out, err := exec.CommandContext(ctx, t.bin, imagePath, "stdout").Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("tesseract: %s: %w", strings.TrimSpace(string(exitErr.Stderr)), err)
		}
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil
}

var (
	dollarTicker = regexp.MustCompile(`\$([A-Z]{1,5})\b`)
	wordTicker   = regexp.MustCompile(`\b([A-Z]{2,5})\b`)
)

// commonWords are uppercase tokens that look like tickers but are not.
var commonWords = map[string]bool{
	"THE": true, "AND": true, "FOR": true, "ARE": true, "BUT": true, "NOT": true,
	"YOU": true, "ALL": true, "CAN": true, "HER": true, "WAS": true, "ONE": true,
	"OUR": true, "OUT": true, "DAY": true, "GET": true, "HAS": true, "HIM": true,
	"HIS": true, "HOW": true, "ITS": true, "MAY": true, "NEW": true, "NOW": true,
	"OLD": true, "SEE": true, "TWO": true, "WAY": true, "WHO": true, "BOY": true,
	"DID": true, "LET": true, "PUT": true, "SAY": true, "SHE": true, "TOO": true,
	"USE": true, "USA": true, "USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CEO": true, "CFO": true, "IPO": true, "ETF": true, "ESG": true, "GDP": true,
	"CPI": true, "API": true, "FAQ": true, "PDF": true, "URL": true, "HTTP": true,
	"WWW": true, "COM": true, "ORG": true, "NET": true, "GOV": true, "EDU": true,
	"BTC": true, "ETH": true,
}

// ExtractTickers finds $TICKER mentions and standalone 2-5 letter uppercase
// words, minus common words. The result is sorted and never nil.
func ExtractTickers(text string) []string {
	seen := map[string]bool{}
	for _, re := range []*regexp.Regexp{dollarTicker, wordTicker} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if !commonWords[m[1]] {
				seen[m[1]] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

var thesisKeywords = []string{
	"buy", "sell", "target", "price", "growth", "revenue",
	"earnings", "profit", "bullish", "bearish", "catalyst",
	"valuation", "undervalued", "overvalued", "market cap",
	"dividend", "stock", "shares", "long", "short", "position",
	"invest", "trading", "gains", "loss", "upside", "downside",
	"rally", "dip", "breakout", "support", "resistance",
}

const (
	maxThesisLines   = 5
	thesisFallbackSz = 500
)

// ExtractThesis keeps up to five lines that mention an investing keyword.
// Without any match it falls back to the first 500 characters.
func ExtractThesis(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, kw := range thesisKeywords {
			if strings.Contains(lower, kw) {
				lines = append(lines, line)
				break
			}
		}
		if len(lines) >= maxThesisLines {
			break
		}
	}
	if len(lines) > 0 {
		return strings.Join(lines, "\n")
	}
	if r := []rune(text); len(r) > thesisFallbackSz {
		return string(r[:thesisFallbackSz])
	}
	return text
}
