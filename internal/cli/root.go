// Package cli defines the cobra command tree for staylist.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kmalloy/staylist/internal/cache"
	"github.com/kmalloy/staylist/internal/client"
	"github.com/kmalloy/staylist/internal/db"
	"github.com/kmalloy/staylist/internal/logging"
)

var (
	flagFormat  string
	flagDB      string
	flagVerbose bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sl",
		Short:         "Browse and manage your saved rental listings",
		Long:          "A client for your favorited rental listings. List saved places with stay-length pricing, unfavorite them, and keep an offline snapshot for browsing without a connection.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(flagVerbose)
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "cache database path (default: ~/.staylist/favorites.db)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newListCmd(),
		newShowCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newSyncCmd(),
		newScheduleCmd(),
		newSubscribeCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates an HTTP client for the marketplace API.
func newAPIClient() *client.Client {
	return client.New(getServerURL(), getAPIToken())
}

// requireUserID returns the configured user ID or an actionable error.
func requireUserID() (string, error) {
	userID := getUserID()
	if userID == "" {
		return "", fmt.Errorf("no user configured; run 'sl login' first")
	}
	return userID, nil
}

// openCacheRepo opens the cache database using the --db flag or the
// default path.
func openCacheRepo() (*cache.Repository, *sql.DB, error) {
	path := flagDB
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
	}
	database, err := db.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewRepository(database), database, nil
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
