package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmalloy/staylist/internal/client"
	"github.com/kmalloy/staylist/internal/favorites"
	"github.com/kmalloy/staylist/internal/listing"
	"github.com/kmalloy/staylist/internal/pricing"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <listing-id>",
		Short: "Show details of a favorite listing",
		Long:  "Show full details for one favorited listing. Reads the local snapshot when possible, falling back to the server.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	listingID := args[0]
	sel := loadSchedule()

	l, err := cachedListing(listingID)
	if err != nil {
		l, err = fetchListing(cmd.Context(), listingID)
		if err != nil {
			return err
		}
	}

	priced := pricing.Reprice([]*listing.Listing{l}, sel.Nights)[0]

	if isJSON() {
		return printJSON(priced)
	}

	printListingSummary(priced, sel.Nights)
	return nil
}

// cachedListing looks the listing up in the local snapshot.
func cachedListing(listingID string) (*listing.Listing, error) {
	repo, database, err := openCacheRepo()
	if err != nil {
		return nil, err
	}
	defer closeDB(database)

	return repo.Get(listingID)
}

// fetchListing pages through the remote favorites list until the
// listing turns up.
func fetchListing(ctx context.Context, listingID string) (*listing.Listing, error) {
	userID, err := requireUserID()
	if err != nil {
		return nil, err
	}

	store := favorites.NewStore(newAPIClient(), userID, 20, client.SortPriceAsc)
	if err := store.Load(ctx); err != nil {
		return nil, err
	}
	for {
		for _, l := range store.Items() {
			if l.ID == listingID {
				return l, nil
			}
		}
		if !store.HasMore() {
			return nil, fmt.Errorf("listing %s is not in your favorites", listingID)
		}
		if err := store.LoadMore(ctx); err != nil {
			return nil, err
		}
	}
}
