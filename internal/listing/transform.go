package listing

import "time"

// Defaults substituted when the remote payload omits a field.
const (
	defaultState              = "NY"
	defaultCurrency           = "USD"
	defaultNightsAvailable    = 7
	defaultCancellationPolicy = "Flexible"
)

// FromRemote maps one raw record from the remote data API into the
// canonical Listing shape. The mapping is a fixed per-field table:
// every field is read defensively, absent or wrong-typed values take
// the documented default, and no business logic happens here beyond
// default substitution.
func FromRemote(raw map[string]any) *Listing {
	l := &Listing{
		ID:       strField(raw, "_id"),
		Name:     strField(raw, "Name"),
		Active:   boolField(raw, "Active", true),
		Approved: boolField(raw, "Approved", false),
		Code:     strField(raw, "Listing Code OP"),
		Features: Features{
			Bedrooms:    intField(raw, "Features - Qty Bedrooms"),
			Bathrooms:   numField(raw, "Features - Qty Bathrooms"),
			Beds:        intField(raw, "Features - Qty Beds"),
			Guests:      intField(raw, "Features - Qty Guests"),
			SqftArea:    optIntField(raw, "Features - SQFT Area"),
			TypeOfSpace: strField(raw, "Features - Type of Space"),
		},
		KitchenType: strField(raw, "Kitchen Type"),
		Location: Location{
			Borough: strField(raw, "Location - Borough"),
			Hood:    strField(raw, "Location - Hood"),
			City:    strField(raw, "Location - City"),
			State:   strFieldDefault(raw, "Location - State", defaultState),
			ZipCode: strField(raw, "Location - Zip Code"),
			Address: geoField(raw, "Location - Address"),
		},
		Availability: Availability{
			FirstAvailable:  dateField(raw, "First Available"),
			LastAvailable:   dateField(raw, "Last Available"),
			NightsAvailable: intFieldDefault(raw, "# of nights available", defaultNightsAvailable),
		},
		ListerPrice:        int64(numField(raw, "Lister Price Display")),
		CancellationPolicy: strFieldDefault(raw, "Cancellation Policy", defaultCancellationPolicy),
		CreatedAt:          dateField(raw, "Created"),
		UpdatedAt:          dateField(raw, "Modified"),
		// The favorites feed only ever returns favorited listings.
		IsFavorited: true,
	}

	l.Features.Photos = photosField(raw, "Features - Photos", l.Name)
	l.Pricing = pricingField(raw, l.ListerPrice)

	return l
}

func strField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func strFieldDefault(m map[string]any, key, def string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return def
}

// numField accepts any JSON number; anything else defaults to 0.
func numField(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func intField(m map[string]any, key string) int {
	return int(numField(m, key))
}

func intFieldDefault(m map[string]any, key string, def int) int {
	if _, ok := m[key]; !ok {
		return def
	}
	return intField(m, key)
}

func optIntField(m map[string]any, key string) *int64 {
	if _, ok := m[key]; !ok {
		return nil
	}
	n := int64(numField(m, key))
	if n == 0 {
		return nil
	}
	return &n
}

func boolField(m map[string]any, key string, def bool) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return def
}

// dateField parses RFC 3339 timestamps, falling back to bare dates.
// Unparseable values map to the zero time.
func dateField(m map[string]any, key string) time.Time {
	s, ok := m[key].(string)
	if !ok || s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

func geoField(m map[string]any, key string) GeoAddress {
	nested, ok := m[key].(map[string]any)
	if !ok {
		return GeoAddress{}
	}
	return GeoAddress{
		Address: strField(nested, "address"),
		Lat:     numField(nested, "lat"),
		Lng:     numField(nested, "lng"),
	}
}

// photosField accepts both shapes the remote service has used: a list
// of URL strings and a list of {url: ...} objects. Order is the
// position in the payload.
func photosField(m map[string]any, key, altText string) []Photo {
	items, ok := m[key].([]any)
	if !ok {
		return []Photo{}
	}

	photos := make([]Photo, 0, len(items))
	for i, item := range items {
		var url string
		switch v := item.(type) {
		case string:
			url = v
		case map[string]any:
			url = strField(v, "url")
		}
		if url == "" {
			continue
		}
		photos = append(photos, Photo{URL: url, Order: i, AltText: altText})
	}
	return photos
}

// pricingField reads the nested pricing_list object. A missing starting
// nightly price falls back to the base lister price so every listing
// always has a displayable rate.
func pricingField(m map[string]any, listerPrice int64) PricingList {
	p := PricingList{
		StartingNightly: listerPrice,
		Currency:        defaultCurrency,
	}

	nested, ok := m["pricing_list"].(map[string]any)
	if !ok {
		return p
	}

	if starting := int64(numField(nested, "Starting Nightly Price")); starting > 0 {
		p.StartingNightly = starting
	}
	if weekly := optIntField(nested, "Weekly Price"); weekly != nil {
		p.Weekly = weekly
	}
	if monthly := optIntField(nested, "Monthly Price"); monthly != nil {
		p.Monthly = monthly
	}
	return p
}
