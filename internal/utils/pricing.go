package utils

import (
	"fmt"
	"time"

	"carrental-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a date-only time.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, dateStr)
	}
	return t, nil
}

// RentalDays counts the days in [start, end], both ends included. A
// same-day rental is one day; the count never drops below one.
func RentalDays(start, end time.Time) int64 {
	days := int64(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

// TotalCostCents is days x daily price, days inclusive of both ends.
func TotalCostCents(start, end time.Time, dailyPriceCents int64) int64 {
	return RentalDays(start, end) * dailyPriceCents
}

// RefundCents applies the vehicle's refund policy percentage to the total
// cost. A vehicle without a policy refunds nothing.
func RefundCents(totalCostCents int64, policy *domain.RefundPolicy) int64 {
	if policy == nil {
		return 0
	}
	return totalCostCents * int64(policy.Percentage) / 100
}
