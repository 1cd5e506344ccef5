package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kmalloy/staylist/internal/client"
	"github.com/kmalloy/staylist/internal/favorites"
	"github.com/kmalloy/staylist/internal/listing"
	"github.com/kmalloy/staylist/internal/pricing"
	"github.com/kmalloy/staylist/internal/schedule"
)

func newListCmd() *cobra.Command {
	var (
		all      bool
		offline  bool
		perPage  int
		sortBy   string
		checkIn  string
		checkOut string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your favorite listings",
		Long:  "List your favorited listings with prices for the selected stay length. Use --all to fetch every page, or --offline to browse the last synced snapshot.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := scheduleOverride(checkIn, checkOut)
			if err != nil {
				return err
			}
			return runList(cmd, sel, all, offline, perPage, sortBy)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "fetch all pages, not just the first")
	cmd.Flags().BoolVar(&offline, "offline", false, "read the local snapshot instead of the server")
	cmd.Flags().IntVar(&perPage, "per-page", 20, "listings per page")
	cmd.Flags().StringVar(&sortBy, "sort", client.SortPriceAsc, "sort order (price_asc|price_desc)")
	cmd.Flags().StringVar(&checkIn, "check-in", "", "override check-in date for this run (YYYY-MM-DD)")
	cmd.Flags().StringVar(&checkOut, "check-out", "", "override check-out date for this run (YYYY-MM-DD)")

	return cmd
}

// scheduleOverride applies one-off date flags on top of the stored
// schedule without persisting them.
func scheduleOverride(checkIn, checkOut string) (schedule.Selection, error) {
	sel := loadSchedule()

	if checkIn != "" {
		t, err := time.Parse(dayFormat, checkIn)
		if err != nil {
			return sel, fmt.Errorf("invalid --check-in %q: use YYYY-MM-DD", checkIn)
		}
		sel.SetCheckIn(t)
	}
	if checkOut != "" {
		t, err := time.Parse(dayFormat, checkOut)
		if err != nil {
			return sel, fmt.Errorf("invalid --check-out %q: use YYYY-MM-DD", checkOut)
		}
		if err := sel.SetCheckOut(t); err != nil {
			return sel, err
		}
	}
	return sel, nil
}

func runList(cmd *cobra.Command, sel schedule.Selection, all, offline bool, perPage int, sortBy string) error {
	if sortBy != client.SortPriceAsc && sortBy != client.SortPriceDesc {
		return fmt.Errorf("invalid sort order %q (use price_asc or price_desc)", sortBy)
	}

	if offline {
		repo, database, err := openCacheRepo()
		if err != nil {
			return err
		}
		defer closeDB(database)

		items, err := repo.List()
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("Local snapshot is empty. Run 'sl sync' while online first.")
			return nil
		}
		return renderListings(pricing.Reprice(items, sel.Nights), sel.Nights, false)
	}

	userID, err := requireUserID()
	if err != nil {
		return err
	}

	store := favorites.NewStore(newAPIClient(), userID, perPage, sortBy)

	if err := store.Load(cmd.Context()); err != nil {
		// With nothing loaded the failure is fatal to the view.
		return fmt.Errorf("%w (retry with 'sl list')", err)
	}

	if all {
		for store.HasMore() {
			if err := store.LoadMore(cmd.Context()); err != nil {
				// Keep what we have; the partial list is still valid.
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
				break
			}
		}
	}

	return renderListings(pricing.Reprice(store.Items(), sel.Nights), sel.Nights, store.HasMore())
}

func renderListings(items []*listing.Listing, nights int, hasMore bool) error {
	if isJSON() {
		return printJSON(items)
	}

	if err := printListingTable(items, nights); err != nil {
		return err
	}
	if hasMore {
		fmt.Println("More favorites available; rerun with --all to fetch every page.")
	}
	return nil
}
