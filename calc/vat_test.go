package calc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tkarvinen/spotadvisor-go/types"
)

func decEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func TestNormalize(t *testing.T) {
	vat := decimal.RequireFromString("0.255")
	slot := types.PriceSlot{
		Start:    time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC),
		RawPrice: decimal.RequireFromString("10"),
	}

	got := Normalize(slot, vat)
	decEqual(t, "12.55", got.EffectivePrice)
	decEqual(t, "10", got.RawPrice) // raw price stays as published
}

func TestNormalizeNegativePricePassesThrough(t *testing.T) {
	vat := decimal.RequireFromString("0.255")
	slot := types.PriceSlot{RawPrice: decimal.RequireFromString("-2")}

	got := Normalize(slot, vat)
	decEqual(t, "-2.51", got.EffectivePrice)
}

func TestNormalizeNoRounding(t *testing.T) {
	vat := decimal.RequireFromString("0.255")
	slot := types.PriceSlot{RawPrice: decimal.RequireFromString("1.234")}

	got := Normalize(slot, vat)
	decEqual(t, "1.54867", got.EffectivePrice)
}

func TestNormalizeAll(t *testing.T) {
	vat := decimal.RequireFromString("0.25")
	slots := []types.PriceSlot{
		{RawPrice: decimal.RequireFromString("4")},
		{RawPrice: decimal.RequireFromString("8")},
	}

	got := NormalizeAll(slots, vat)
	decEqual(t, "5", got[0].EffectivePrice)
	decEqual(t, "10", got[1].EffectivePrice)
	assert.True(t, slots[0].EffectivePrice.IsZero(), "input slice must not be mutated")
}

func TestHorizonAverage(t *testing.T) {
	slots := []types.PriceSlot{
		{EffectivePrice: decimal.RequireFromString("2")},
		{EffectivePrice: decimal.RequireFromString("4")},
		{EffectivePrice: decimal.RequireFromString("9")},
	}
	decEqual(t, "5", HorizonAverage(slots))
}

func TestHorizonAverageEmpty(t *testing.T) {
	assert.True(t, HorizonAverage(nil).IsZero())
}
