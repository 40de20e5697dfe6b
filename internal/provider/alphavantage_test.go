package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

// avServer answers each Alpha Vantage function with a canned body.
func avServer(t *testing.T, bodies map[string]string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("apikey") != "demo" {
			t.Errorf("missing apikey")
		}
		w.Header().Set("Content-Type", "application/json")
		if status != 0 {
			w.WriteHeader(status)
		}
		fn := r.URL.Query().Get("function")
		if fn == "TIME_SERIES_DAILY" {
			fn += ":" + r.URL.Query().Get("outputsize")
		}
		_, _ = w.Write([]byte(bodies[fn]))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAV(url string) *AlphaVantage {
	return NewAlphaVantage(ClientOptions{BaseURL: url, APIKey: "demo", Timeout: 2 * time.Second})
}

const avQuoteOK = `{"Global Quote": {"01. symbol": "AAPL", "05. price": "189.8400", "08. previous close": "187.0000", "09. change": "2.8400", "10. change percent": "1.5187%"}}`

func TestAlphaVantage_FetchQuote(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		status  int
		wantErr error
		check   func(t *testing.T, q models.Quote)
	}{
		{
			name: "ok",
			body: avQuoteOK,
			check: func(t *testing.T, q models.Quote) {
				if q.Price != 189.84 || q.Name != "AAPL" {
					t.Fatalf("unexpected quote %+v", q)
				}
				if q.Change24h == nil || *q.Change24h != 2.84 {
					t.Fatalf("change %v", q.Change24h)
				}
				if q.Change24hPercent == nil || *q.Change24hPercent != 1.5187 {
					t.Fatalf("change percent %v", q.Change24hPercent)
				}
			},
		},
		{
			name: "no previous close",
			body: `{"Global Quote": {"05. price": "10.00", "08. previous close": "0", "09. change": "0", "10. change percent": "0%"}}`,
			check: func(t *testing.T, q models.Quote) {
				if q.Change24h != nil || q.Change24hPercent != nil {
					t.Fatalf("change fields should be absent: %+v", q)
				}
			},
		},
		{name: "empty quote", body: `{"Global Quote": {}}`, wantErr: models.ErrNotFound},
		{name: "error message", body: `{"Error Message": "Invalid API call."}`, wantErr: models.ErrNotFound},
		{name: "rate limit note", body: `{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`, wantErr: models.ErrUnavailable},
		{name: "information", body: `{"Information": "premium endpoint"}`, wantErr: models.ErrUnavailable},
		{name: "malformed", body: `{"Global Quote": `, wantErr: models.ErrUnavailable},
		{name: "server error", body: `oops`, status: http.StatusBadGateway, wantErr: models.ErrUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := avServer(t, map[string]string{"GLOBAL_QUOTE": tc.body}, tc.status)
			q, err := newTestAV(srv.URL).FetchQuote(context.Background(), "AAPL")
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			tc.check(t, q)
		})
	}
}

func TestAlphaVantage_FetchQuote_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestAV(url).FetchQuote(context.Background(), "AAPL")
	if !errors.Is(err, models.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}

func dailyBody(start time.Time, n int) string {
	var b strings.Builder
	b.WriteString(`{"Meta Data": {}, "Time Series (Daily)": {`)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		d := start.AddDate(0, 0, i).Format("2006-01-02")
		c := 100 + i
		fmt.Fprintf(&b, `"%s": {"1. open": "%d.0", "2. high": "%d.5", "3. low": "%d.5", "4. close": "%d.0", "5. volume": "100"}`, d, c, c, c-1, c)
	}
	b.WriteString("}}")
	return b.String()
}

func TestAlphaVantage_FetchHistory_FullSortedAscending(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	srv := avServer(t, map[string]string{"TIME_SERIES_DAILY:full": dailyBody(start, 260)}, 0)

	s, err := newTestAV(srv.URL).FetchHistory(context.Background(), "AAPL", models.FullHistory)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Len() != 260 {
		t.Fatalf("want 260 observations, got %d", s.Len())
	}
	for i := 1; i < s.Len(); i++ {
		if !s.Observations[i-1].Date.Before(s.Observations[i].Date) {
			t.Fatalf("series not ascending at %d", i)
		}
	}
	first := s.Observations[0]
	if first.Close != 100 || first.High != 100.5 || first.Low != 99.5 {
		t.Fatalf("unexpected first bar %+v", first)
	}
}

func TestAlphaVantage_FetchHistory_CompactTrimmed(t *testing.T) {
	now := time.Date(2024, 3, 31, 15, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -99)
	srv := avServer(t, map[string]string{"TIME_SERIES_DAILY:compact": dailyBody(start, 100)}, 0)

	av := newTestAV(srv.URL)
	av.now = func() time.Time { return now }
	s, err := av.FetchHistory(context.Background(), "AAPL", models.Horizon{Days: 30})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	cutoff := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if s.Len() != 31 {
		t.Fatalf("want 31 observations since %s, got %d", cutoff.Format("2006-01-02"), s.Len())
	}
	if s.Observations[0].Date.Before(cutoff) {
		t.Fatalf("observation before cutoff: %v", s.Observations[0].Date)
	}
}

func TestAlphaVantage_FetchHistory_Errors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
	}{
		{name: "rate limit", body: `{"Note": "slow down"}`, want: models.ErrUnavailable},
		{name: "unknown symbol", body: `{"Error Message": "Invalid API call."}`, want: models.ErrNotFound},
		{name: "empty series", body: `{"Time Series (Daily)": {}}`, want: models.ErrUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := avServer(t, map[string]string{"TIME_SERIES_DAILY:full": tc.body}, 0)
			_, err := newTestAV(srv.URL).FetchHistory(context.Background(), "AAPL", models.FullHistory)
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAlphaVantage_FetchDescriptor(t *testing.T) {
	cases := []struct {
		name string
		body string
		want models.Descriptor
	}{
		{name: "ok", body: `{"Symbol": "AAPL", "Name": "Apple Inc", "Sector": "TECHNOLOGY"}`, want: models.Descriptor{Name: "Apple Inc", Category: "TECHNOLOGY"}},
		{name: "missing sector", body: `{"Name": "Apple Inc"}`, want: models.Descriptor{Name: "Apple Inc", Category: models.UnknownCategory}},
		{name: "rate limited", body: `{"Note": "slow down"}`, want: models.FallbackDescriptor("AAPL")},
		{name: "empty", body: `{}`, want: models.FallbackDescriptor("AAPL")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := avServer(t, map[string]string{"OVERVIEW": tc.body}, 0)
			if got := newTestAV(srv.URL).FetchDescriptor(context.Background(), "AAPL"); got != tc.want {
				t.Fatalf("want %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestAlphaVantage_Validate(t *testing.T) {
	cases := []struct {
		name string
		body string
		want bool
	}{
		{name: "known", body: avQuoteOK, want: true},
		{name: "unknown", body: `{"Global Quote": {}}`, want: false},
		{name: "rate limited counts as valid", body: `{"Note": "slow down"}`, want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := avServer(t, map[string]string{"GLOBAL_QUOTE": tc.body}, 0)
			if got := newTestAV(srv.URL).Validate(context.Background(), "AAPL"); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}
