// Package pricing computes the commercial terms frozen into a booking at
// creation time. The total is never recomputed afterwards, even if the
// listing's price changes.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"eke/shared/constant"
)

// DurationDays returns the rental duration in billable days, anchored to the
// calendar day the rental starts on. Partial days round up, so a pickup at
// 10:00 returned at 09:00 the next morning still bills two days.
func DurationDays(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}

	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	hours := end.Sub(dayStart).Hours()
	days := int(hours / constant.HoursPerDay)

	if hours > float64(days)*constant.HoursPerDay {
		days++
	}

	return days
}

// TotalPrice computes pricePerDay * ceil(days) + deposit, rounded half-up to
// two decimal places.
func TotalPrice(pricePerDay decimal.Decimal, start, end time.Time, deposit decimal.Decimal) decimal.Decimal {
	days := decimal.NewFromInt(int64(DurationDays(start, end)))

	return pricePerDay.Mul(days).Add(deposit).Round(2)
}
