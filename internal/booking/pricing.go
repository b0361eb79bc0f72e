package booking

import (
	"time"

	"github.com/safar/teebay/internal/models"
	"github.com/shopspring/decimal"
)

// MaxAmount is the largest amount a NUMERIC(12,2) money column holds.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// Overlaps reports whether the inclusive ranges [a, b] and [c, d] share at
// least one day. Touching endpoints overlap.
func Overlaps(a, b, c, d time.Time) bool {
	return !a.After(d) && !b.Before(c)
}

// RentalTotal prices a rental from `from` to `to`. Elapsed time is billed in
// whole rent periods, rounded up, with at least one period. A span that is
// empty or negative costs nothing.
func RentalTotal(from, to time.Time, price decimal.Decimal, period models.RentPeriod) decimal.Decimal {
	elapsed := to.Sub(from)
	unit := period.Duration()
	if elapsed <= 0 || unit <= 0 {
		return decimal.Zero
	}

	units := int64((elapsed + unit - 1) / unit)
	if units < 1 {
		units = 1
	}

	return price.Mul(decimal.NewFromInt(units)).Round(2)
}

// ParseDate reads a calendar date in models.DateLayout as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(models.DateLayout, s)
}
