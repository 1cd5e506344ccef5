package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSubscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe <email>",
		Short: "Get notified when new listings match your searches",
		Args:  cobra.ExactArgs(1),
		RunE:  runSubscribe,
	}
}

func runSubscribe(cmd *cobra.Command, args []string) error {
	email := strings.TrimSpace(args[0])
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%q doesn't look like an email address", email)
	}

	userID, err := requireUserID()
	if err != nil {
		return err
	}

	if err := newAPIClient().SubscribeToNewListings(cmd.Context(), email, userID); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(map[string]interface{}{
			"email":      email,
			"subscribed": true,
		})
	}

	fmt.Printf("Subscribed %s to new listing alerts.\n", email)
	return nil
}
