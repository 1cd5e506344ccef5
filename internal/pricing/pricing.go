// Package pricing maps stay length to the displayed nightly rate.
package pricing

import (
	"math"

	"github.com/kmalloy/staylist/internal/listing"
)

// Tier thresholds are inclusive at the lower bound: 7 nights already
// earns the weekly rate, 30 the monthly rate.
const (
	weeklyMinNights  = 7
	monthlyMinNights = 30

	weeklyMultiplier  = 0.9
	monthlyMultiplier = 0.8
)

// ForStay returns the nightly rate for a stay of the given length,
// floor-rounded. Stays under a week (including zero or negative
// nights) pay the base price.
func ForStay(basePrice int64, nights int) int64 {
	switch {
	case nights >= monthlyMinNights:
		return int64(math.Floor(float64(basePrice) * monthlyMultiplier))
	case nights >= weeklyMinNights:
		return int64(math.Floor(float64(basePrice) * weeklyMultiplier))
	default:
		return basePrice
	}
}

// DiscountPercent reports the discount a stay length earns.
func DiscountPercent(nights int) int {
	switch {
	case nights >= monthlyMinNights:
		return 20
	case nights >= weeklyMinNights:
		return 10
	default:
		return 0
	}
}

// Reprice returns copies of the listings with the starting nightly
// price re-derived from each listing's base lister price for the given
// stay length. The inputs are never mutated; callers must re-run this
// whenever the selected nights change so displayed prices are never
// stale.
func Reprice(items []*listing.Listing, nights int) []*listing.Listing {
	priced := make([]*listing.Listing, len(items))
	for i, l := range items {
		c := *l
		c.Pricing.StartingNightly = ForStay(l.ListerPrice, nights)
		priced[i] = &c
	}
	return priced
}
