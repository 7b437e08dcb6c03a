package booking

import (
	"fmt"
	"math"

	"knead/models"
)

// Quote is the authoritative price derivation for a booking: the catalogue
// price for the chosen duration, the platform fee on top, and their sum.
// Prices are denormalized onto the booking at reservation time and never
// recomputed from the catalogue afterwards.
type Quote struct {
	ServicePrice float64
	PlatformFee  float64
	TotalAmount  float64
}

// durationKey maps a duration in minutes to its catalogue price key, e.g.
// 60 -> "60min".
func durationKey(minutes int) string {
	return fmt.Sprintf("%dmin", minutes)
}

// PriceQuote derives the quote for booking svc at the given duration.
func PriceQuote(svc *models.Service, duration int, feeRate float64) (Quote, error) {
	price, ok := svc.Prices[durationKey(duration)]
	if !ok || price <= 0 {
		return Quote{}, newValidationError("duration", "service %q has no price for %d minutes", svc.Title, duration)
	}
	fee := math.Round(price*feeRate*100) / 100
	return Quote{
		ServicePrice: price,
		PlatformFee:  fee,
		TotalAmount:  price + fee,
	}, nil
}
