package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// WindowRequest is one advisory query.
type WindowRequest struct {
	DurationMinutes int
	Now             time.Time
	Language        string
}

// WindowResult is the chosen contiguous run of slots. TotalCost is the sum of
// the effective slot prices over the window, AveragePrice the per-slot mean.
// HorizonAverage carries the mean effective price over the searched range so
// the formatter can phrase the window relative to it. IsCheapestInHorizon is
// true by construction of the search; the field makes the contract explicit
// to formatting and test code.
type WindowResult struct {
	Start               time.Time
	End                 time.Time
	TotalCost           decimal.Decimal
	AveragePrice        decimal.Decimal
	HorizonAverage      decimal.Decimal
	RequestedMinutes    int
	IsCheapestInHorizon bool
}

// CoveredMinutes is the actual coverage of the window, which may exceed
// RequestedMinutes since requests round up to whole slots.
func (r WindowResult) CoveredMinutes() int {
	return int(r.End.Sub(r.Start).Minutes())
}
