// Package listing provides the canonical listing model and the mapping
// from the remote service's loosely-typed payload.
package listing

import "time"

// KitchenType values the remote service reports.
const (
	KitchenFull        = "Full Kitchen"
	KitchenKitchenette = "Kitchenette"
	KitchenNone        = "No Kitchen"
	KitchenShared      = "Shared Kitchen"
)

// SpaceType values the remote service reports.
const (
	SpaceEntirePlace = "Entire Place"
	SpacePrivateRoom = "Private Room"
	SpaceSharedRoom  = "Shared Room"
)

// Photo is one image in a listing's ordered photo sequence.
type Photo struct {
	URL     string `json:"url"`
	Order   int    `json:"order"`
	AltText string `json:"alt_text,omitempty"`
}

// GeoAddress is a geocoded street address.
type GeoAddress struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Features describes the physical layout of a listing.
// Bathrooms is fractional to allow half baths (1.5, 2.5, ...).
type Features struct {
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   float64 `json:"bathrooms"`
	Beds        int     `json:"beds"`
	Guests      int     `json:"guests"`
	SqftArea    *int64  `json:"sqft_area,omitempty"`
	TypeOfSpace string  `json:"type_of_space,omitempty"`
	Photos      []Photo `json:"photos"`
}

// Location describes where a listing is.
type Location struct {
	Borough string     `json:"borough,omitempty"`
	Hood    string     `json:"hood,omitempty"`
	City    string     `json:"city,omitempty"`
	State   string     `json:"state"`
	ZipCode string     `json:"zip_code,omitempty"`
	Address GeoAddress `json:"address"`
}

// Availability is the window a listing can be booked in.
type Availability struct {
	FirstAvailable  time.Time `json:"first_available,omitzero"`
	LastAvailable   time.Time `json:"last_available,omitzero"`
	NightsAvailable int       `json:"nights_available"`
}

// PricingList holds the listing's displayed prices.
// StartingNightly is re-derived from ListerPrice whenever the selected
// stay length changes.
type PricingList struct {
	StartingNightly int64  `json:"starting_nightly_price"`
	Weekly          *int64 `json:"weekly_price,omitempty"`
	Monthly         *int64 `json:"monthly_price,omitempty"`
	Currency        string `json:"currency"`
}

// Listing is a favorited listing as fetched from the remote service.
// Records are immutable per fetch; mutation happens only by replacing
// them in the favorites store.
type Listing struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Active             bool         `json:"active"`
	Approved           bool         `json:"approved"`
	Code               string       `json:"code,omitempty"`
	Features           Features     `json:"features"`
	KitchenType        string       `json:"kitchen_type,omitempty"`
	Location           Location     `json:"location"`
	Availability       Availability `json:"availability"`
	ListerPrice        int64        `json:"lister_price"`
	Pricing            PricingList  `json:"pricing_list"`
	CancellationPolicy string       `json:"cancellation_policy"`
	CreatedAt          time.Time    `json:"created_at,omitzero"`
	UpdatedAt          time.Time    `json:"updated_at,omitzero"`
	IsFavorited        bool         `json:"is_favorited"`
}

// PrimaryPhoto returns the URL of the lowest-ordered photo, or "" when
// the listing has no photos.
func (l *Listing) PrimaryPhoto() string {
	if len(l.Features.Photos) == 0 {
		return ""
	}
	best := l.Features.Photos[0]
	for _, p := range l.Features.Photos[1:] {
		if p.Order < best.Order {
			best = p
		}
	}
	return best.URL
}

// Pagination reports where a page sits in the full favorites list.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

// Page is one fetched page of favorited listings.
type Page struct {
	Listings   []*Listing `json:"listings"`
	Pagination Pagination `json:"pagination"`
}
