package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kmalloy/staylist/internal/client"
	"github.com/kmalloy/staylist/internal/favorites"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Download all favorites into the local cache",
		Long:  "Fetch every page of your favorites from the server and replace the local cache, so 'sl list --offline' and 'sl show' work without a connection.",
		RunE:  runSync,
	}
	cmd.Flags().Int("per-page", 20, "page size used while fetching")
	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	userID, err := requireUserID()
	if err != nil {
		return err
	}

	perPage, _ := cmd.Flags().GetInt("per-page")

	store := favorites.NewStore(newAPIClient(), userID, perPage, client.SortPriceAsc)
	if err := store.Load(cmd.Context()); err != nil {
		return err
	}
	for store.HasMore() {
		if err := store.LoadMore(cmd.Context()); err != nil {
			return err
		}
	}

	repo, database, err := openCacheRepo()
	if err != nil {
		return err
	}
	defer closeDB(database)

	items := store.Items()
	if err := repo.ReplaceAll(userID, items); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}

	if isJSON() {
		return printJSON(map[string]interface{}{
			"synced": len(items),
			"total":  store.Total(),
		})
	}

	fmt.Fprintf(os.Stdout, "Synced %d favorites to the local cache.\n", len(items))
	return nil
}
