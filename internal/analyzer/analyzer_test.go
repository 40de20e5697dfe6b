package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

func TestParseVerdict(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		wantRec  string
		wantRisk string
	}{
		{name: "labelled", text: "Recommendation: AVOID\nRisk rating: HIGH", wantRec: "AVOID", wantRisk: "HIGH"},
		{name: "labelled without space", text: "recommendation:buy risk rating:low", wantRec: "BUY", wantRisk: "LOW"},
		{name: "keyword buy", text: "a reasonable buy, low risk overall", wantRec: "BUY", wantRisk: "LOW"},
		{name: "keyword sell", text: "time to sell. high risk", wantRec: "AVOID", wantRisk: "HIGH"},
		{name: "buy and avoid", text: "do not buy, avoid", wantRec: "AVOID", wantRisk: "MEDIUM"},
		{name: "defaults", text: "unclear", wantRec: "HOLD", wantRisk: "MEDIUM"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, risk := ParseVerdict(tc.text)
			if rec != tc.wantRec || risk != tc.wantRisk {
				t.Fatalf("want %s/%s, got %s/%s", tc.wantRec, tc.wantRisk, rec, risk)
			}
		})
	}
}

func TestCost(t *testing.T) {
	// 1200 in at 0.25/M plus 400 out at 1.25/M = 0.0003 + 0.0005
	if got := Cost(1200, 400); got != 0.0008 {
		t.Fatalf("want 0.0008, got %v", got)
	}
	if got := Cost(0, 0); got != 0 {
		t.Fatalf("want 0, got %v", got)
	}
}

func TestNew_WithoutKeyIsDisabled(t *testing.T) {
	a := New(Options{BaseURL: "http://127.0.0.1:1"})
	if _, err := a.Analyze(context.Background(), "text", nil); !errors.Is(err, models.ErrNotConfigured) {
		t.Fatalf("want ErrNotConfigured, got %v", err)
	}
}

func TestMessages_Analyze(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:   "ok",
			status: http.StatusOK,
			body:   `{"content":[{"type":"text","text":"Solid moat.\nRecommendation: BUY\nRisk rating: LOW"}],"usage":{"input_tokens":1200,"output_tokens":400}}`,
		},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"error":{"type":"rate_limit_error"}}`, wantErr: models.ErrUnavailable},
		{name: "garbage", status: http.StatusOK, body: `not json`, wantErr: models.ErrUnavailable},
		{name: "empty", status: http.StatusOK, body: `{"content":[],"usage":{}}`, wantErr: models.ErrUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got messageRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/messages" || r.Header.Get("x-api-key") != "k" || r.Header.Get("anthropic-version") == "" {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				_ = json.NewDecoder(r.Body).Decode(&got)
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			a := New(Options{BaseURL: srv.URL, APIKey: "k", Timeout: 2 * time.Second})
			res, err := a.Analyze(context.Background(), "Buying $AAPL", []string{"AAPL"})
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("analyze: %v", err)
			}
			if res.Recommendation != "BUY" || res.RiskRating != "LOW" || res.Cost != 0.0008 {
				t.Fatalf("unexpected analysis %+v", res)
			}
			if got.Model != DefaultModel || got.MaxTokens != maxTokens || len(got.Messages) != 1 ||
				!strings.Contains(got.Messages[0].Content, "Tickers mentioned: AAPL") {
				t.Fatalf("unexpected request %+v", got)
			}
		})
	}
}
