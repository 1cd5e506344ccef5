// Package cache stores the last-synced favorites snapshot locally so
// listings can be browsed offline.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kmalloy/staylist/internal/listing"
)

// Repository reads and writes the cached favorites snapshot.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a cache repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// SyncState describes when and for whom the cache was last replaced.
type SyncState struct {
	UserID   string
	Total    int
	SyncedAt time.Time
}

// ReplaceAll swaps the entire cached snapshot for the given user's
// current favorites, preserving server sort order.
func (r *Repository) ReplaceAll(userID string, items []*listing.Listing) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec("DELETE FROM favorites"); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	for position, l := range items {
		data, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("marshaling listing %s: %w", l.ID, err)
		}
		_, err = tx.Exec(
			`INSERT INTO favorites (id, name, borough, hood, city, bedrooms, bathrooms, lister_price, position, listing_json)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, l.Name, l.Location.Borough, l.Location.Hood, l.Location.City,
			l.Features.Bedrooms, l.Features.Bathrooms, l.ListerPrice, position, string(data),
		)
		if err != nil {
			return fmt.Errorf("inserting listing %s: %w", l.ID, err)
		}
	}

	_, err = tx.Exec(
		`INSERT INTO sync_state (id, user_id, total, synced_at) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, total = excluded.total, synced_at = excluded.synced_at`,
		userID, len(items), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording sync state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// List returns all cached favorites in their synced order.
func (r *Repository) List() ([]*listing.Listing, error) {
	rows, err := r.db.Query("SELECT listing_json FROM favorites ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("listing cached favorites: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	var items []*listing.Listing
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning cached favorite: %w", err)
		}
		var l listing.Listing
		if err := json.Unmarshal([]byte(data), &l); err != nil {
			return nil, fmt.Errorf("decoding cached favorite: %w", err)
		}
		items = append(items, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cached favorites: %w", err)
	}

	return items, nil
}

// Get returns one cached listing by id.
func (r *Repository) Get(id string) (*listing.Listing, error) {
	var data string
	err := r.db.QueryRow("SELECT listing_json FROM favorites WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("listing %s not in cache", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying cached listing %s: %w", id, err)
	}

	var l listing.Listing
	if err := json.Unmarshal([]byte(data), &l); err != nil {
		return nil, fmt.Errorf("decoding cached listing %s: %w", id, err)
	}
	return &l, nil
}

// Delete removes one cached listing. Deleting an id that is not
// cached is not an error.
func (r *Repository) Delete(id string) error {
	if _, err := r.db.Exec("DELETE FROM favorites WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting cached listing %s: %w", id, err)
	}
	return nil
}

// LastSync returns the most recent sync state, or nil when the cache
// has never been populated.
func (r *Repository) LastSync() (*SyncState, error) {
	var state SyncState
	err := r.db.QueryRow("SELECT user_id, total, synced_at FROM sync_state WHERE id = 1").
		Scan(&state.UserID, &state.Total, &state.SyncedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying sync state: %w", err)
	}
	return &state, nil
}
