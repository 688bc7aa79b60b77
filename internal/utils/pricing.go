package utils

import (
	"math"
	"time"
)

const millisPerDay = 24 * 60 * 60 * 1000

// CalculateRentalPrice bills every started day as a full day: the rental span
// is converted to days with ceiling rounding, so a pickup-to-return range of
// 1 day 4 hours costs 2 days. Callers guarantee returnDate > pickupDate.
func CalculateRentalPrice(pricePerDay float64, pickupDate, returnDate time.Time) float64 {
	rangeMillis := returnDate.Sub(pickupDate).Milliseconds()
	days := math.Ceil(float64(rangeMillis) / float64(millisPerDay))
	return days * pricePerDay
}
