package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kmalloy/staylist/internal/client"
	"github.com/kmalloy/staylist/internal/favorites"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <listing-id>",
		Short: "Remove a listing from your favorites",
		Long:  "Remove a listing from your favorites. The listing disappears immediately and is restored if the server rejects the removal.",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemove,
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	listingID := args[0]

	userID, err := requireUserID()
	if err != nil {
		return err
	}

	store := favorites.NewStore(newAPIClient(), userID, 20, client.SortPriceAsc)
	if err := store.Load(cmd.Context()); err != nil {
		return err
	}
	for !storeHas(store, listingID) && store.HasMore() {
		if err := store.LoadMore(cmd.Context()); err != nil {
			return err
		}
	}

	if !storeHas(store, listingID) {
		fmt.Printf("Listing %s is not in your favorites.\n", listingID)
		return nil
	}

	if err := store.Remove(cmd.Context(), listingID); err != nil {
		if errors.Is(err, client.ErrListingGone) {
			fmt.Printf("Listing %s is no longer available on the marketplace.\n", listingID)
			return nil
		}
		return fmt.Errorf("%w (the listing is still in your favorites)", err)
	}

	// Keep the offline snapshot in step; a stale cache entry here is
	// harmless, so failures only warn.
	if repo, database, err := openCacheRepo(); err == nil {
		if err := repo.Delete(listingID); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		closeDB(database)
	}

	if isJSON() {
		return printJSON(map[string]interface{}{
			"id":        listingID,
			"removed":   true,
			"remaining": store.Len(),
		})
	}

	fmt.Printf("Removed %s from favorites (%d remaining).\n", listingID, store.Len())
	return nil
}

func storeHas(store *favorites.Store, listingID string) bool {
	for _, l := range store.Items() {
		if l.ID == listingID {
			return true
		}
	}
	return false
}
