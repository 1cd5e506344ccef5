// Package display derives render-ready text from listing fields.
// Every function is pure: same input, same output, no side effects.
package display

import (
	"fmt"
	"strings"
	"time"
)

// bathroomPhrases is the fixed half-integer lookup used by the
// marketplace. Other positive counts fall back to "{n} Baths".
var bathroomPhrases = map[float64]string{
	1:   "1 Bath",
	1.5: "1.5 Baths",
	2:   "2 Baths",
	2.5: "2.5 Baths",
	3:   "3 Baths",
	3.5: "3.5 Baths",
	4:   "4 Baths",
	4.5: "4.5 Baths",
	5:   "5 Baths",
	6:   "6 Baths",
}

// currencySymbols maps ISO currency codes to display symbols. Unknown
// codes are prefixed verbatim.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CAD": "$",
}

// Bathrooms returns the display phrase for a bathroom count.
func Bathrooms(count float64) string {
	if phrase, ok := bathroomPhrases[count]; ok {
		return phrase
	}
	return fmt.Sprintf("%g Baths", count)
}

// BedroomBathroom builds the bedroom/bathroom/kitchen phrase for a
// listing card. With zero bathrooms only the bedroom count is shown;
// otherwise present fragments are joined with bullets:
//
//	"• 1 bedroom • 1.5 Baths • Full Kitchen"
func BedroomBathroom(bedrooms int, bathrooms float64, kitchenType string) string {
	if bathrooms == 0 {
		switch {
		case bedrooms == 1:
			return "1 bedroom"
		case bedrooms > 1:
			return fmt.Sprintf("%d bedrooms", bedrooms)
		}
		return ""
	}

	var parts []string
	switch {
	case bedrooms == 1:
		parts = append(parts, "1 bedroom")
	case bedrooms > 1:
		parts = append(parts, fmt.Sprintf("%d bedrooms", bedrooms))
	}
	if bathrooms > 0 {
		parts = append(parts, Bathrooms(bathrooms))
	}
	if kitchenType != "" {
		parts = append(parts, kitchenType)
	}

	if len(parts) == 0 {
		return ""
	}
	return "• " + strings.Join(parts, " • ")
}

// Price formats a nightly rate, e.g. "$1,029/night". Amounts render
// with zero decimal places.
func Price(price int64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency + " "
	}
	return symbol + groupThousands(price) + "/night"
}

// Location comma-joins whichever of borough, hood, and city are
// present, preserving that order.
func Location(borough, hood, city string) string {
	var parts []string
	for _, p := range []string{borough, hood, city} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// ProcessedImageURL appends resize parameters for imgix-hosted images:
// w, h, fit=crop and auto=format,compress. Other hosts pass through
// unchanged, as does an empty URL.
func ProcessedImageURL(rawURL string, width, height int) string {
	if rawURL == "" {
		return ""
	}
	if !strings.Contains(rawURL, "imgix") {
		return rawURL
	}

	var params []string
	if width > 0 {
		params = append(params, fmt.Sprintf("w=%d", width))
	}
	if height > 0 {
		params = append(params, fmt.Sprintf("h=%d", height))
	}
	params = append(params, "fit=crop", "auto=format,compress")

	separator := "?"
	if strings.Contains(rawURL, "?") {
		separator = "&"
	}
	return rawURL + separator + strings.Join(params, "&")
}

// Date formats a timestamp as "Jan 15, 2024". Zero times render empty.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// Availability formats a booking window, e.g.
// "Available Jan 15, 2024 - Dec 31, 2024".
func Availability(first, last time.Time) string {
	if first.IsZero() && last.IsZero() {
		return "Availability not specified"
	}

	parts := []string{"Available"}
	if !first.IsZero() {
		parts = append(parts, Date(first))
	}
	if !last.IsZero() {
		parts = append(parts, "-", Date(last))
	}
	return strings.Join(parts, " ")
}

// Truncate shortens a string to maxLen, adding "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// groupThousands renders an amount with comma separators.
func groupThousands(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	if len(s) <= 3 {
		return s
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	return strings.Join(parts, ",")
}
