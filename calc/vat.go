package calc

import (
	"github.com/shopspring/decimal"
	"github.com/tkarvinen/spotadvisor-go/types"
)

var one = decimal.NewFromInt(1)

// Normalize derives the VAT-inclusive effective price from the published raw
// price. No rounding happens here; display rounding belongs to the formatter
// so it never compounds across window sums. Negative raw prices, which spot
// markets legitimately produce, pass through unchanged.
func Normalize(slot types.PriceSlot, vatRate decimal.Decimal) types.PriceSlot {
	slot.EffectivePrice = slot.RawPrice.Mul(one.Add(vatRate))
	return slot
}

// NormalizeAll maps Normalize over a fetched slot sequence. Must be applied
// exactly once per raw fetch; re-applying it double-charges VAT.
func NormalizeAll(slots []types.PriceSlot, vatRate decimal.Decimal) []types.PriceSlot {
	out := make([]types.PriceSlot, len(slots))
	for i, s := range slots {
		out[i] = Normalize(s, vatRate)
	}
	return out
}

// HorizonAverage is the mean effective price over the given slots, zero when
// there are none.
func HorizonAverage(slots []types.PriceSlot) decimal.Decimal {
	if len(slots) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, s := range slots {
		sum = sum.Add(s.EffectivePrice)
	}
	return sum.Div(decimal.NewFromInt(int64(len(slots))))
}
