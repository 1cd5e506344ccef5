package cli

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connection and auth status",
		Long:  "Tests the connection to the marketplace API and checks if the stored API token is valid.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
}

func runStatus() error {
	serverURL := getServerURL()
	apiToken := getAPIToken()
	userID := getUserID()

	fmt.Printf("Server:  %s\n", serverURL)

	if userID != "" {
		fmt.Printf("User:    %s\n", userID)
	} else {
		fmt.Println("User:    not configured")
	}

	if repo, database, err := openCacheRepo(); err == nil {
		if state, err := repo.LastSync(); err == nil && state != nil {
			fmt.Printf("Cache:   %d favorites synced %s\n", state.Total, state.SyncedAt.Local().Format("2006-01-02 15:04"))
		} else {
			fmt.Println("Cache:   never synced")
		}
		closeDB(database)
	}

	if apiToken == "" {
		fmt.Println("Token:   not configured")
		fmt.Println("\nRun 'sl login' to authenticate.")
		return nil
	}

	prefix := apiToken
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	fmt.Printf("Token:   %s…\n", prefix)

	// Test the connection with a minimal listing query
	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequest("GET", strings.TrimRight(serverURL, "/")+"/obj/listing?limit=1", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiToken)

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Status:  ✗ cannot reach server (%v)\n", err)
		return nil
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	switch resp.StatusCode {
	case http.StatusOK:
		fmt.Println("Status:  ✓ connected and authenticated")
	case http.StatusUnauthorized:
		fmt.Println("Status:  ✗ invalid API token")
		fmt.Println("\nRun 'sl login' to re-authenticate.")
	default:
		fmt.Printf("Status:  ✗ unexpected response (%d)\n", resp.StatusCode)
	}

	return nil
}
