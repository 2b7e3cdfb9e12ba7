package window

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tkarvinen/spotadvisor-go/calc"
	"github.com/tkarvinen/spotadvisor-go/quarters"
	"github.com/tkarvinen/spotadvisor-go/types"
)

// Find returns the cheapest contiguous window of the requested duration over
// the future part of the given slot sequence. Slots must be normalized and
// sorted ascending by start time.
//
// Eligibility: a slot is searchable when its interval has not fully elapsed,
// so the partially elapsed current slot may be the window's first slot (the
// caller asked "when should I start", and "now" is a valid answer even a few
// minutes into the quarter).
//
// The sequence is split into contiguous quarter-hour segments before the
// sliding scan, so a gap or overlap in upstream data can never be bridged by
// a recommended window. If no segment can hold the requested slot count the
// search fails with ErrInsufficientHorizon.
func Find(slots []types.PriceSlot, now time.Time, durationMinutes int) (types.WindowResult, error) {
	if durationMinutes <= 0 {
		return types.WindowResult{}, fmt.Errorf("duration must be positive, got %d", durationMinutes)
	}
	n := quarters.SlotCount(durationMinutes)

	eligible := make([]types.PriceSlot, 0, len(slots))
	for _, s := range slots {
		if s.End().After(now) {
			eligible = append(eligible, s)
		}
	}
	if len(eligible) < n {
		return types.WindowResult{}, fmt.Errorf("%w: need %d slots, have %d", types.ErrInsufficientHorizon, n, len(eligible))
	}

	var best []types.PriceSlot
	var bestSum decimal.Decimal
	for _, segment := range splitContiguous(eligible) {
		start, sum, ok := cheapestInSegment(segment, n)
		if !ok {
			continue
		}
		if best == nil || sum.LessThan(bestSum) {
			best = segment[start : start+n]
			bestSum = sum
		}
	}
	if best == nil {
		return types.WindowResult{}, fmt.Errorf("%w: no contiguous run of %d slots", types.ErrInsufficientHorizon, n)
	}

	return types.WindowResult{
		Start:               best[0].Start,
		End:                 best[n-1].End(),
		TotalCost:           bestSum,
		AveragePrice:        bestSum.Div(decimal.NewFromInt(int64(n))),
		HorizonAverage:      calc.HorizonAverage(eligible),
		RequestedMinutes:    durationMinutes,
		IsCheapestInHorizon: true,
	}, nil
}

// splitContiguous cuts the slot sequence wherever consecutive slots are not
// exactly one slot apart.
func splitContiguous(slots []types.PriceSlot) [][]types.PriceSlot {
	var segments [][]types.PriceSlot
	from := 0
	for i := 1; i < len(slots); i++ {
		if !slots[i].Start.Equal(slots[i-1].End()) {
			segments = append(segments, slots[from:i])
			from = i
		}
	}
	if from < len(slots) {
		segments = append(segments, slots[from:])
	}
	return segments
}

// cheapestInSegment slides a window of n slots across one contiguous segment,
// maintaining a moving sum so each step costs one add and one subtract. Ties
// go to the earliest start; the scan runs left to right and only a strictly
// lower sum displaces the incumbent.
func cheapestInSegment(segment []types.PriceSlot, n int) (startIdx int, sum decimal.Decimal, ok bool) {
	if len(segment) < n {
		return 0, decimal.Zero, false
	}

	run := decimal.Zero
	for i := 0; i < n; i++ {
		run = run.Add(segment[i].EffectivePrice)
	}
	bestSum := run
	bestIdx := 0
	for i := n; i < len(segment); i++ {
		run = run.Add(segment[i].EffectivePrice).Sub(segment[i-n].EffectivePrice)
		if run.LessThan(bestSum) {
			bestSum = run
			bestIdx = i - n + 1
		}
	}
	return bestIdx, bestSum, true
}
