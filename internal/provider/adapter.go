package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

// DefaultTimeout bounds every upstream call.
const DefaultTimeout = 10 * time.Second

// Adapter is the capability set every upstream market-data provider exposes.
//
// Errors returned by FetchQuote and FetchHistory always wrap
// models.ErrNotFound or models.ErrUnavailable; transport errors never leak.
type Adapter interface {
	// Name identifies the provider in logs.
	Name() string
	// Class is the asset class this adapter serves.
	Class() models.AssetClass
	// Profile describes the history horizon and metric windows for this provider.
	Profile() models.Profile

	FetchQuote(ctx context.Context, symbol string) (models.Quote, error)
	FetchHistory(ctx context.Context, symbol string, horizon models.Horizon) (models.PriceSeries, error)

	// FetchDescriptor never fails; lookup errors yield models.FallbackDescriptor.
	FetchDescriptor(ctx context.Context, symbol string) models.Descriptor

	// Validate reports false only when the provider positively rejects the
	// symbol. Any uncertainty (rate limit, outage) counts as valid.
	Validate(ctx context.Context, symbol string) bool
}

// ClientOptions configures the HTTP transport of an adapter.
type ClientOptions struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func newRestClient(opts ClientOptions, fallbackURL string) *resty.Client {
	base := opts.BaseURL
	if base == "" {
		base = fallbackURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
}

func unavailable(provider, symbol string, err error) error {
	return fmt.Errorf("%s %s: %w: %v", provider, symbol, models.ErrUnavailable, err)
}

func notFound(provider, symbol, reason string) error {
	return fmt.Errorf("%s %s: %s: %w", provider, symbol, reason, models.ErrNotFound)
}

// validateByQuote implements the shared permissive validation rule.
func validateByQuote(ctx context.Context, a Adapter, symbol string) bool {
	_, err := a.FetchQuote(ctx, symbol)
	return !errors.Is(err, models.ErrNotFound)
}
