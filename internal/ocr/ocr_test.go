package ocr

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

func TestExtractTickers(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{name: "dollar and bare", text: "Loading up on $NVDA and AMD before earnings", want: []string{"AMD", "NVDA"}},
		{name: "common words dropped", text: "THE CEO SAID BTC AND ETH ARE UP", want: []string{"SAID", "UP"}},
		{name: "single letter only with dollar", text: "$F is cheap, F alone is not", want: []string{"F"}},
		{name: "duplicates collapse", text: "$TSLA TSLA tsla", want: []string{"TSLA"}},
		{name: "nothing", text: "no tickers here", want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractTickers(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestExtractThesis(t *testing.T) {
	text := "@someone\n\nBuy the dip on $AAPL\nweather is nice\nPrice target 250\nstrong revenue growth\nlong term hold\nshort squeeze soon\nsupport at 180"
	got := ExtractThesis(text)
	lines := strings.Split(got, "\n")
	if len(lines) != 5 || lines[0] != "Buy the dip on $AAPL" || lines[4] != "short squeeze soon" {
		t.Fatalf("unexpected thesis %q", got)
	}

	long := strings.Repeat("x", 600)
	if fb := ExtractThesis(long); len(fb) != 500 {
		t.Fatalf("fallback should keep 500 chars, got %d", len(fb))
	}
	if fb := ExtractThesis("hello"); fb != "hello" {
		t.Fatalf("short fallback %q", fb)
	}
}

func TestDisabledExtractor(t *testing.T) {
	for _, e := range []Extractor{Disabled(), NewTesseract(""), NewTesseract("definitely-not-a-real-ocr-binary")} {
		if _, err := e.Extract(context.Background(), "x.png"); !errors.Is(err, models.ErrNotConfigured) {
			t.Fatalf("want ErrNotConfigured, got %v", err)
		}
	}
}
