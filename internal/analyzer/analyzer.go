package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

// Analyzer produces a paid, text-only review of extracted screenshot text.
type Analyzer interface {
	Analyze(ctx context.Context, text string, tickers []string) (models.Analysis, error)
}

type disabled struct{}

func (disabled) Analyze(context.Context, string, []string) (models.Analysis, error) {
	return models.Analysis{}, fmt.Errorf("ai analysis: %w", models.ErrNotConfigured)
}

// Disabled returns an Analyzer that always reports models.ErrNotConfigured.
func Disabled() Analyzer { return disabled{} }

const (
	DefaultURL     = "https://api.anthropic.com"
	DefaultModel   = "claude-3-5-haiku-20241022"
	DefaultTimeout = 30 * time.Second
	apiVersion     = "2023-06-01"
	maxTokens      = 500
)

// Per-million-token prices used to estimate the cost of one call.
var (
	inputPricePerMTok  = decimal.RequireFromString("0.25")
	outputPricePerMTok = decimal.RequireFromString("1.25")
	million            = decimal.NewFromInt(1_000_000)
)

// Options configures the messages client. An empty APIKey disables analysis.
type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Messages calls a Messages-style completion endpoint.
type Messages struct {
	client *resty.Client
	model  string
}

// New returns a Messages analyzer, or Disabled when no key is configured.
func New(opts Options) Analyzer {
	if strings.TrimSpace(opts.APIKey) == "" {
		return Disabled()
	}
	base := opts.BaseURL
	if base == "" {
		base = DefaultURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	c := resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", opts.APIKey).
		SetHeader("anthropic-version", apiVersion)
	return &Messages{client: c, model: model}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int64 `json:"input_tokens"`
		OutputTokens int64 `json:"output_tokens"`
	} `json:"usage"`
}

func prompt(text string, tickers []string) string {
	mentioned := "None"
	if len(tickers) > 0 {
		mentioned = strings.Join(tickers, ", ")
	}
	return fmt.Sprintf(`Analyze this investment advice from a social media post:

Tickers mentioned: %s
Content: %s

Provide a structured analysis with:
1. Investment thesis summary (2-3 sentences)
2. Key claims and their validity
3. Risk factors to consider
4. Recommendation (BUY/HOLD/AVOID) based on value investing principles
5. Risk rating (LOW/MEDIUM/HIGH)

Be concise (max 300 words). Focus on fundamentals, not hype.`, mentioned, text)
}

func (m *Messages) Analyze(ctx context.Context, text string, tickers []string) (models.Analysis, error) {
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(messageRequest{
			Model:     m.model,
			MaxTokens: maxTokens,
			Messages:  []message{{Role: "user", Content: prompt(text, tickers)}},
		}).
		Post("/v1/messages")
	if err != nil {
		return models.Analysis{}, fmt.Errorf("ai analysis: %v: %w", err, models.ErrUnavailable)
	}
	if resp.StatusCode() != http.StatusOK {
		return models.Analysis{}, fmt.Errorf("ai analysis: API error %d: %w", resp.StatusCode(), models.ErrUnavailable)
	}

	var body messageResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return models.Analysis{}, fmt.Errorf("ai analysis: decode: %v: %w", err, models.ErrUnavailable)
	}
	var sb strings.Builder
	for _, c := range body.Content {
		if c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	out := sb.String()
	if strings.TrimSpace(out) == "" {
		return models.Analysis{}, fmt.Errorf("ai analysis: empty response: %w", models.ErrUnavailable)
	}

	rec, risk := ParseVerdict(out)
	return models.Analysis{
		Text:           out,
		Recommendation: rec,
		RiskRating:     risk,
		Cost:           Cost(body.Usage.InputTokens, body.Usage.OutputTokens),
	}, nil
}

// Cost estimates the USD price of one call, rounded to four places.
func Cost(inputTokens, outputTokens int64) float64 {
	in := decimal.NewFromInt(inputTokens).Mul(inputPricePerMTok).Div(million)
	out := decimal.NewFromInt(outputTokens).Mul(outputPricePerMTok).Div(million)
	return in.Add(out).Round(4).InexactFloat64()
}

// ParseVerdict reads the recommendation and risk rating out of free text.
// Explicit "Recommendation: X" and "Risk rating: X" labels win; otherwise
// keywords decide, defaulting to HOLD and MEDIUM.
func ParseVerdict(text string) (recommendation, risk string) {
	up := strings.ToUpper(text)

	recommendation = labelled(up, "RECOMMENDATION:", models.RecommendationBuy, models.RecommendationAvoid, models.RecommendationHold)
	if recommendation == "" {
		switch {
		case strings.Contains(up, "BUY") && !strings.Contains(up, "AVOID"):
			recommendation = models.RecommendationBuy
		case strings.Contains(up, "AVOID"), strings.Contains(up, "SELL"):
			recommendation = models.RecommendationAvoid
		default:
			recommendation = models.RecommendationHold
		}
	}

	risk = labelled(up, "RISK RATING:", models.RiskHigh, models.RiskLow, models.RiskMedium)
	if risk == "" {
		switch {
		case strings.Contains(up, "HIGH RISK"):
			risk = models.RiskHigh
		case strings.Contains(up, "LOW RISK"):
			risk = models.RiskLow
		default:
			risk = models.RiskMedium
		}
	}
	return recommendation, risk
}

// labelled returns the first value v for which "label v" or "labelv"
// appears in up.
func labelled(up, label string, values ...string) string {
	for _, v := range values {
		if strings.Contains(up, label+" "+v) || strings.Contains(up, label+v) {
			return v
		}
	}
	return ""
}
