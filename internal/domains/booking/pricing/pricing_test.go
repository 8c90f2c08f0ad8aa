package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"eke/internal/domains/booking/pricing"
)

func date(day, hour int) time.Time {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC)
}

func TestDurationDays(t *testing.T) {
	testCases := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{
			name:     "TwoFullDaysMidnight",
			start:    date(1, 0),
			end:      date(3, 0),
			expected: 2,
		},
		{
			name:     "OvernightPartialDayBillsTwo",
			start:    date(1, 10),
			end:      date(2, 9),
			expected: 2,
		},
		{
			name:     "SameDayRental",
			start:    date(1, 10),
			end:      date(1, 15),
			expected: 1,
		},
		{
			name:     "SameInstant",
			start:    date(1, 10),
			end:      date(1, 10),
			expected: 0,
		},
		{
			name:     "EndExactlyAtMidnightDoesNotExtend",
			start:    date(1, 10),
			end:      date(3, 0),
			expected: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, pricing.DurationDays(tc.start, tc.end))
		})
	}
}

func TestTotalPrice(t *testing.T) {
	testCases := []struct {
		name        string
		pricePerDay string
		start       time.Time
		end         time.Time
		deposit     string
		expected    string
	}{
		{
			name:        "TwoDaysNoDeposit",
			pricePerDay: "100",
			start:       date(1, 0),
			end:         date(3, 0),
			deposit:     "0",
			expected:    "200",
		},
		{
			name:        "TwoDaysWithDeposit",
			pricePerDay: "100",
			start:       date(1, 0),
			end:         date(3, 0),
			deposit:     "50",
			expected:    "250",
		},
		{
			name:        "OvernightPartialDayBillsTwoDays",
			pricePerDay: "80",
			start:       date(1, 10),
			end:         date(2, 9),
			deposit:     "0",
			expected:    "160",
		},
		{
			name:        "FractionalRateRoundsHalfUp",
			pricePerDay: "33.335",
			start:       date(1, 0),
			end:         date(2, 0),
			deposit:     "0",
			expected:    "33.34",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rate := decimal.RequireFromString(tc.pricePerDay)
			deposit := decimal.RequireFromString(tc.deposit)

			total := pricing.TotalPrice(rate, tc.start, tc.end, deposit)

			assert.True(t, total.Equal(decimal.RequireFromString(tc.expected)),
				"expected %s, got %s", tc.expected, total.String())
		})
	}
}

func TestTotalPriceDeterministic(t *testing.T) {
	rate := decimal.RequireFromString("49.99")
	deposit := decimal.RequireFromString("20")
	start := date(5, 8)
	end := date(9, 18)

	first := pricing.TotalPrice(rate, start, end, deposit)

	for i := 0; i < 10; i++ {
		assert.True(t, first.Equal(pricing.TotalPrice(rate, start, end, deposit)))
	}
}
