package porssisahko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tkarvinen/spotadvisor-go/types"
)

// DefaultURL is the public quarter-hour spot price feed for Finland.
const DefaultURL = "https://api.porssisahko.net/v2/latest-prices.json"

type latestPrices struct {
	Prices []rawPrice `json:"prices"`
}

type rawPrice struct {
	Price     *decimal.Decimal `json:"price"` // cents/kWh, VAT 0
	StartDate time.Time        `json:"startDate"`
	EndDate   time.Time        `json:"endDate"`
}

type Client struct {
	url       string
	userAgent string
	client    *http.Client
}

func New(url string, timeout time.Duration, userAgent string) *Client {
	return &Client{
		url:       url,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) URL() string {
	return c.url
}

// GetPrices fetches the feed once and parses it into an ascending UTC slot
// sequence. Transport failures and unexpected status codes wrap
// ErrUpstreamUnavailable, schema problems wrap ErrUpstreamMalformed. Retry
// policy belongs to the caller so retry budgets stay visible at the
// composition point.
func (c *Client) GetPrices(ctx context.Context) (*types.PriceSet, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", types.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var payload latestPrices
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", types.ErrUpstreamMalformed, err)
	}
	if len(payload.Prices) == 0 {
		return nil, fmt.Errorf("%w: feed returned no prices", types.ErrUpstreamMalformed)
	}

	slots := make([]types.PriceSlot, 0, len(payload.Prices))
	for _, raw := range payload.Prices {
		if raw.Price == nil {
			return nil, fmt.Errorf("%w: price missing for entry starting %s", types.ErrUpstreamMalformed, raw.StartDate)
		}
		if raw.StartDate.IsZero() {
			return nil, fmt.Errorf("%w: entry without start time", types.ErrUpstreamMalformed)
		}
		slots = append(slots, types.PriceSlot{
			Start:    raw.StartDate.UTC(),
			RawPrice: *raw.Price,
		})
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })

	return &types.PriceSet{Slots: slots, FetchedAt: time.Now().UTC()}, nil
}
