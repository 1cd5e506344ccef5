package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API token and user ID",
		Long:  "Stores your marketplace API token and account user ID for use by the other commands. Find both under Account Settings on the website.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(server)
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "server URL (default: from config or http://localhost:8080/api/1.1)")

	return cmd
}

func runLogin(serverFlag string) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Paste your API token: ")
	token, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("no API token provided")
	}

	fmt.Print("Paste your user ID: ")
	userID, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("no user ID provided")
	}

	// Load existing config to preserve other fields
	cfg, err := loadConfig()
	if err != nil {
		cfg = CLIConfig{}
	}

	cfg.APIToken = token
	cfg.UserID = userID
	if serverFlag != "" {
		cfg.ServerURL = serverFlag
	}

	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("✓ Credentials saved. You're logged in!")
	return nil
}
