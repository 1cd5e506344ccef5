package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <listing-id>",
		Short: "Add a listing to your favorites",
		Args:  cobra.ExactArgs(1),
		RunE:  runAdd,
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	listingID := args[0]

	userID, err := requireUserID()
	if err != nil {
		return err
	}

	if err := newAPIClient().AddFavorite(cmd.Context(), userID, listingID); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(map[string]interface{}{
			"id":    listingID,
			"added": true,
		})
	}

	fmt.Printf("Added %s to favorites. Run 'sl sync' to refresh your offline copy.\n", listingID)
	return nil
}
