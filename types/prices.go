package types

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SlotDuration is the fixed length of one pricing interval as published upstream.
const SlotDuration = 15 * time.Minute

// PriceSlot is one quarter-hour pricing interval. RawPrice is the price as
// published (cents/kWh excluding VAT), EffectivePrice is derived by the VAT
// normalizer and is zero until then. Immutable once constructed.
type PriceSlot struct {
	Start          time.Time
	RawPrice       decimal.Decimal
	EffectivePrice decimal.Decimal
}

func (s PriceSlot) End() time.Time {
	return s.Start.Add(SlotDuration)
}

// Contains reports whether t falls inside the slot's half-open interval.
func (s PriceSlot) Contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End())
}

// PriceSet is the ordered sequence of slots covering one fetched horizon.
// Slots are expected to be a gap-free ascending quarter-hour grid; gaps are
// upstream-data errors that downstream consumers tolerate defensively.
type PriceSet struct {
	Slots     []PriceSlot
	FetchedAt time.Time
}

type PriceProvider interface {
	GetPrices(ctx context.Context) (*PriceSet, error)
}
