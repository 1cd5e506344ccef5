package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS favorites (
		id            TEXT    PRIMARY KEY,
		name          TEXT    NOT NULL,
		borough       TEXT    NOT NULL DEFAULT '',
		hood          TEXT    NOT NULL DEFAULT '',
		city          TEXT    NOT NULL DEFAULT '',
		bedrooms      INTEGER NOT NULL DEFAULT 0,
		bathrooms     REAL    NOT NULL DEFAULT 0,
		lister_price  INTEGER NOT NULL DEFAULT 0,
		position      INTEGER NOT NULL,
		listing_json  TEXT    NOT NULL,
		cached_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sync_state (
		id        INTEGER  PRIMARY KEY CHECK (id = 1),
		user_id   TEXT     NOT NULL,
		total     INTEGER  NOT NULL DEFAULT 0,
		synced_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_favorites_position ON favorites(position)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
