package advisor

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/tkarvinen/spotadvisor-go/cache"
	"github.com/tkarvinen/spotadvisor-go/calc"
	"github.com/tkarvinen/spotadvisor-go/locale"
	"github.com/tkarvinen/spotadvisor-go/types"
	"github.com/tkarvinen/spotadvisor-go/window"
)

// Advisor is the façade the HTTP layer calls: resolve prices (cached or
// fresh), normalize, search, format. Failures from any step pass through
// unchanged; translation to status codes happens at the HTTP boundary.
type Advisor struct {
	logger   *slog.Logger
	provider types.PriceProvider
	cache    *cache.PriceCache // nil when caching is disabled
	cacheKey string
	vatRate  decimal.Decimal
}

func New(logger *slog.Logger, provider types.PriceProvider, priceCache *cache.PriceCache, cacheKey string, vatRate float64) *Advisor {
	return &Advisor{
		logger:   logger,
		provider: provider,
		cache:    priceCache,
		cacheKey: cacheKey,
		vatRate:  decimal.NewFromFloat(vatRate),
	}
}

// Advise answers one window request with a localized recommendation.
//
// The cache stores raw (pre-VAT) sets and normalization runs on every
// request, after the cache. Normalizing is not idempotent, so cached data
// must never be stored normalized or a hit would double-charge VAT.
func (a *Advisor) Advise(ctx context.Context, req types.WindowRequest) (string, error) {
	lang, err := locale.Parse(req.Language)
	if err != nil {
		return "", err
	}

	set, err := a.fetch(ctx)
	if err != nil {
		return "", err
	}

	slots := calc.NormalizeAll(set.Slots, a.vatRate)

	result, err := window.Find(slots, req.Now, req.DurationMinutes)
	if err != nil {
		return "", err
	}

	a.logger.Debug("window selected",
		slog.Time("start", result.Start),
		slog.Time("end", result.End),
		slog.String("avgPrice", result.AveragePrice.StringFixed(3)),
		slog.Int("slots", len(set.Slots)))

	return locale.Format(result, lang)
}

func (a *Advisor) fetch(ctx context.Context) (*types.PriceSet, error) {
	if a.cache == nil {
		return a.provider.GetPrices(ctx)
	}
	return a.cache.GetOrFetch(ctx, a.cacheKey, a.provider.GetPrices)
}
