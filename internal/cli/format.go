package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kmalloy/staylist/internal/display"
	"github.com/kmalloy/staylist/internal/listing"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// listingLocation is the one-line location cell for a listing.
func listingLocation(l *listing.Listing) string {
	loc := display.Location(l.Location.Borough, l.Location.Hood, l.Location.City)
	if loc == "" {
		return "-"
	}
	return loc
}

// listingLayout is the bedroom/bathroom/kitchen cell for a listing.
func listingLayout(l *listing.Listing) string {
	layout := display.BedroomBathroom(l.Features.Bedrooms, l.Features.Bathrooms, l.KitchenType)
	if layout == "" {
		return "-"
	}
	return layout
}

// listingPrice is the formatted nightly rate cell for a listing.
func listingPrice(l *listing.Listing) string {
	return display.Price(l.Pricing.StartingNightly, l.Pricing.Currency)
}

// printListingTable prints favorited listings as a formatted table.
func printListingTable(items []*listing.Listing, nights int) error {
	if len(items) == 0 {
		fmt.Println("No favorite listings yet. Explore rentals and tap the heart to save them here.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tNAME\tLOCATION\tLAYOUT\tPRICE"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t----\t--------\t------\t-----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, l := range items {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			l.ID, display.Truncate(l.Name, 36), listingLocation(l),
			listingLayout(l), listingPrice(l)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nPrices shown for a %d-night stay.\n", nights)
	return nil
}

// printListingSummary prints full details for one listing.
func printListingSummary(l *listing.Listing, nights int) {
	fmt.Printf("%s (%s)\n", l.Name, l.ID)
	if loc := display.Location(l.Location.Borough, l.Location.Hood, l.Location.City); loc != "" {
		fmt.Printf("  Location:     %s\n", loc)
	}
	if l.Location.Address.Address != "" {
		fmt.Printf("  Address:      %s\n", l.Location.Address.Address)
	}
	if layout := display.BedroomBathroom(l.Features.Bedrooms, l.Features.Bathrooms, l.KitchenType); layout != "" {
		fmt.Printf("  Layout:       %s\n", layout)
	}
	if l.Features.TypeOfSpace != "" {
		fmt.Printf("  Space:        %s\n", l.Features.TypeOfSpace)
	}
	if l.Features.Guests > 0 {
		fmt.Printf("  Sleeps:       %d guests, %d beds\n", l.Features.Guests, l.Features.Beds)
	}
	if l.Features.SqftArea != nil {
		fmt.Printf("  Sqft:         %d\n", *l.Features.SqftArea)
	}
	fmt.Printf("  Price:        %s (%d nights)\n", listingPrice(l), nights)
	fmt.Printf("  Availability: %s\n", display.Availability(l.Availability.FirstAvailable, l.Availability.LastAvailable))
	if l.CancellationPolicy != "" {
		fmt.Printf("  Cancellation: %s\n", l.CancellationPolicy)
	}
	if photo := l.PrimaryPhoto(); photo != "" {
		fmt.Printf("  Photo:        %s\n", display.ProcessedImageURL(photo, 800, 600))
	}
}
