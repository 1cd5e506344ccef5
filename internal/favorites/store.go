// Package favorites owns the in-memory list of a user's favorited
// listings and keeps it consistent with the remote service.
package favorites

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kmalloy/staylist/internal/listing"
)

// Service is the remote favorites feed the store synchronizes with.
type Service interface {
	FetchFavorites(ctx context.Context, userID string, page, perPage int, sortBy string) (*listing.Page, error)
	RemoveFavorite(ctx context.Context, userID, listingID string) error
	AddFavorite(ctx context.Context, userID, listingID string) error
}

// Store accumulates pages of favorited listings and applies optimistic
// removals. It exclusively owns its items: all mutation goes through
// Load, LoadMore and Remove, and each transition is atomic under the
// store's lock. A generation counter makes load supersession exact: a
// response whose generation no longer matches the store's is discarded
// in full.
type Store struct {
	svc     Service
	userID  string
	perPage int
	sortBy  string

	mu          sync.Mutex
	gen         uint64
	items       []*listing.Listing
	currentPage int
	total       int
	hasMore     bool
	loading     bool
	loadErr     error
}

// NewStore creates a store for one user's favorites list.
func NewStore(svc Service, userID string, perPage int, sortBy string) *Store {
	if perPage < 1 {
		perPage = 20
	}
	return &Store{
		svc:     svc,
		userID:  userID,
		perPage: perPage,
		sortBy:  sortBy,
	}
}

// Load fetches page 1 and replaces the list wholesale. On failure any
// previously loaded items stay visible; only the no-items-yet case is
// a hard error state for callers. Starting a new Load supersedes any
// load still in flight.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.loadErr = nil
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	page, err := s.svc.FetchFavorites(ctx, s.userID, 1, s.perPage, s.sortBy)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		slog.Debug("discarding superseded load response", "user_id", s.userID)
		return nil
	}
	s.loading = false

	if err != nil {
		s.loadErr = fmt.Errorf("loading favorites: %w", err)
		slog.Warn("favorites load failed", "user_id", s.userID, "error", err)
		return s.loadErr
	}

	s.items = append([]*listing.Listing(nil), page.Listings...)
	s.currentPage = 1
	s.total = page.Pagination.Total
	s.hasMore = len(s.items) < s.total
	return nil
}

// Refresh reloads the list from the first page.
func (s *Store) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// LoadMore fetches the next page and appends it. Order is preserved
// and ids are trusted not to repeat across pages. A failed LoadMore
// leaves the accumulated items untouched.
func (s *Store) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if !s.hasMore {
		s.mu.Unlock()
		return nil
	}
	gen := s.gen
	next := s.currentPage + 1
	s.mu.Unlock()

	page, err := s.svc.FetchFavorites(ctx, s.userID, next, s.perPage, s.sortBy)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		slog.Debug("discarding superseded load-more response", "user_id", s.userID, "page", next)
		return nil
	}

	if err != nil {
		slog.Warn("favorites load-more failed", "user_id", s.userID, "page", next, "error", err)
		return fmt.Errorf("loading more favorites: %w", err)
	}

	merged := make([]*listing.Listing, 0, len(s.items)+len(page.Listings))
	merged = append(merged, s.items...)
	merged = append(merged, page.Listings...)
	s.items = merged
	s.currentPage = next
	s.total = page.Pagination.Total
	s.hasMore = len(s.items) < s.total
	return nil
}

// Remove unfavorites a listing optimistically: it disappears from the
// list immediately, and on remote failure the captured snapshot is
// reinserted at its old position (clamped to the current length).
// Removing an id that is not in the list is a no-op. Removals are
// keyed by id, so removals of distinct ids may overlap freely.
func (s *Store) Remove(ctx context.Context, listingID string) error {
	s.mu.Lock()
	index := -1
	for i, l := range s.items {
		if l.ID == listingID {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return nil
	}
	snapshot := s.items[index]
	s.items = deleteAt(s.items, index)
	if s.total > 0 {
		s.total--
	}
	s.mu.Unlock()

	if err := s.svc.RemoveFavorite(ctx, s.userID, listingID); err != nil {
		s.mu.Lock()
		s.items = insertAt(s.items, snapshot, index)
		s.total++
		s.mu.Unlock()
		slog.Warn("favorite removal failed, restored", "user_id", s.userID, "listing_id", listingID, "error", err)
		return fmt.Errorf("removing favorite %s: %w", listingID, err)
	}
	return nil
}

// Items returns a copy of the current list in server sort order.
func (s *Store) Items() []*listing.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*listing.Listing(nil), s.items...)
}

// Len reports how many listings are currently loaded.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Total reports the server-side size of the favorites list.
func (s *Store) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// CurrentPage reports the 1-based pagination cursor.
func (s *Store) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPage
}

// HasMore reports whether more pages remain, derived from the last
// fetched page's reported total against the accumulated count.
func (s *Store) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

// Loading reports whether an initial load or refresh is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the error from the last failed load, if any.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// deleteAt returns a fresh slice without the element at index.
func deleteAt(items []*listing.Listing, index int) []*listing.Listing {
	out := make([]*listing.Listing, 0, len(items)-1)
	out = append(out, items[:index]...)
	out = append(out, items[index+1:]...)
	return out
}

// insertAt returns a fresh slice with l inserted at index, clamped to
// the slice bounds.
func insertAt(items []*listing.Listing, l *listing.Listing, index int) []*listing.Listing {
	if index > len(items) {
		index = len(items)
	}
	out := make([]*listing.Listing, 0, len(items)+1)
	out = append(out, items[:index]...)
	out = append(out, l)
	out = append(out, items[index:]...)
	return out
}
