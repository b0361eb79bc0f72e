package booking

import (
	"testing"
	"time"

	"github.com/safar/teebay/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlapsInclusive(t *testing.T) {
	a, b := day("2024-01-01"), day("2024-01-07")

	tests := []struct {
		name string
		c, d string
		want bool
	}{
		{"touching end", "2024-01-07", "2024-01-10", true},
		{"day after", "2024-01-08", "2024-01-10", false},
		{"touching start", "2023-12-25", "2024-01-01", true},
		{"day before", "2023-12-25", "2023-12-31", false},
		{"contained", "2024-01-03", "2024-01-04", true},
		{"containing", "2023-12-01", "2024-02-01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(a, b, day(tt.c), day(tt.d)))
			assert.Equal(t, tt.want, Overlaps(day(tt.c), day(tt.d), a, b))
		})
	}
}

func TestRentalTotal(t *testing.T) {
	ten := decimal.NewFromInt(10)

	tests := []struct {
		name     string
		from, to time.Time
		price    decimal.Decimal
		period   models.RentPeriod
		want     string
	}{
		{"two days daily", day("2024-01-01"), day("2024-01-03"), ten, models.RentDaily, "20.00"},
		{"same day", day("2024-01-01"), day("2024-01-01"), ten, models.RentDaily, "0.00"},
		{"reversed", day("2024-01-03"), day("2024-01-01"), ten, models.RentDaily, "0.00"},
		{"partial week rounds up", day("2024-01-01"), day("2024-01-09"), ten, models.RentWeekly, "20.00"},
		{"under a month bills one", day("2024-01-01"), day("2024-01-02"), ten, models.RentMonthly, "10.00"},
		{"month is thirty days", day("2024-01-01"), day("2024-01-31"), ten, models.RentMonthly, "10.00"},
		{"hourly", day("2024-01-01"), day("2024-01-02"), decimal.RequireFromString("1.5"), models.RentHourly, "36.00"},
		{"rounds to cents", day("2024-01-01"), day("2024-01-04"), decimal.RequireFromString("3.333"), models.RentDaily, "10.00"},
		{"unknown period", day("2024-01-01"), day("2024-01-04"), ten, models.RentPeriod("YEARLY"), "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RentalTotal(tt.from, tt.to, tt.price, tt.period)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, d.Location())

	_, err = ParseDate("2024-02-30")
	assert.Error(t, err)
	_, err = ParseDate("01/02/2024")
	assert.Error(t, err)
}
