package favorites

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kmalloy/staylist/internal/listing"
)

type fakeService struct {
	fetchFn  func(ctx context.Context, userID string, page, perPage int, sortBy string) (*listing.Page, error)
	removeFn func(ctx context.Context, userID, listingID string) error
	addFn    func(ctx context.Context, userID, listingID string) error
}

func (f *fakeService) FetchFavorites(ctx context.Context, userID string, page, perPage int, sortBy string) (*listing.Page, error) {
	return f.fetchFn(ctx, userID, page, perPage, sortBy)
}

func (f *fakeService) RemoveFavorite(ctx context.Context, userID, listingID string) error {
	return f.removeFn(ctx, userID, listingID)
}

func (f *fakeService) AddFavorite(ctx context.Context, userID, listingID string) error {
	return f.addFn(ctx, userID, listingID)
}

// makeListings builds n listings with ids id<start>..id<start+n-1>.
func makeListings(start, n int) []*listing.Listing {
	items := make([]*listing.Listing, n)
	for i := 0; i < n; i++ {
		items[i] = &listing.Listing{
			ID:          fmt.Sprintf("id%d", start+i),
			Name:        fmt.Sprintf("Listing %d", start+i),
			ListerPrice: int64(100 * (start + i)),
			IsFavorited: true,
		}
	}
	return items
}

func pageOf(items []*listing.Listing, page, perPage, total int) *listing.Page {
	totalPages := (total + perPage - 1) / perPage
	return &listing.Page{
		Listings: items,
		Pagination: listing.Pagination{
			Total:      total,
			Page:       page,
			PerPage:    perPage,
			TotalPages: totalPages,
		},
	}
}

func ids(items []*listing.Listing) []string {
	out := make([]string, len(items))
	for i, l := range items {
		out[i] = l.ID
	}
	return out
}

func TestLoadReplacesItems(t *testing.T) {
	svc := &fakeService{
		fetchFn: func(_ context.Context, userID string, page, perPage int, sortBy string) (*listing.Page, error) {
			if userID != "user1" {
				t.Errorf("userID = %q, want user1", userID)
			}
			if page != 1 {
				t.Errorf("page = %d, want 1", page)
			}
			return pageOf(makeListings(1, 2), page, perPage, 5), nil
		},
	}

	store := NewStore(svc, "user1", 2, "price_asc")
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if store.Len() != 2 {
		t.Errorf("len = %d, want 2", store.Len())
	}
	if store.CurrentPage() != 1 {
		t.Errorf("current page = %d, want 1", store.CurrentPage())
	}
	if !store.HasMore() {
		t.Error("expected more pages (2 of 5 loaded)")
	}
	if store.Err() != nil {
		t.Errorf("unexpected error state: %v", store.Err())
	}
	if store.Loading() {
		t.Error("loading should be false after load")
	}
}

func TestLoadFailureNoItems(t *testing.T) {
	svc := &fakeService{
		fetchFn: func(context.Context, string, int, int, string) (*listing.Page, error) {
			return nil, errors.New("connection refused")
		},
	}

	store := NewStore(svc, "user1", 20, "price_asc")
	if err := store.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if store.Err() == nil {
		t.Error("expected error state to be set")
	}
	if store.Len() != 0 {
		t.Errorf("len = %d, want 0", store.Len())
	}
}

func TestLoadFailureKeepsExistingItems(t *testing.T) {
	failing := false
	svc := &fakeService{
		fetchFn: func(_ context.Context, _ string, page, perPage int, _ string) (*listing.Page, error) {
			if failing {
				return nil, errors.New("timeout")
			}
			return pageOf(makeListings(1, 3), page, perPage, 3), nil
		},
	}

	store := NewStore(svc, "user1", 20, "price_asc")
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	failing = true
	if err := store.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if store.Len() != 3 {
		t.Errorf("len = %d, want previously loaded 3", store.Len())
	}
}

func TestLoadMoreAccumulates(t *testing.T) {
	const total = 5
	svc := &fakeService{
		fetchFn: func(_ context.Context, _ string, page, perPage int, _ string) (*listing.Page, error) {
			start := (page-1)*perPage + 1
			n := perPage
			if start+n-1 > total {
				n = total - start + 1
			}
			return pageOf(makeListings(start, n), page, perPage, total), nil
		},
	}

	store := NewStore(svc, "user1", 2, "price_asc")
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	pages := 0
	for store.HasMore() {
		if err := store.LoadMore(context.Background()); err != nil {
			t.Fatalf("load more: %v", err)
		}
		pages++
	}

	if pages != 2 {
		t.Errorf("load-more calls = %d, want 2", pages)
	}
	if store.Len() != total {
		t.Errorf("len = %d, want %d", store.Len(), total)
	}
	if store.CurrentPage() != 3 {
		t.Errorf("current page = %d, want 3", store.CurrentPage())
	}
	if store.HasMore() {
		t.Error("hasMore should be false once accumulated count reaches total")
	}

	want := []string{"id1", "id2", "id3", "id4", "id5"}
	got := ids(store.Items())
	for i, id := range want {
		if got[i] != id {
			t.Errorf("items[%d] = %q, want %q (order must be preserved)", i, got[i], id)
		}
	}
}

func TestLoadMoreFailureLeavesStateUnchanged(t *testing.T) {
	svc := &fakeService{
		fetchFn: func(_ context.Context, _ string, page, perPage int, _ string) (*listing.Page, error) {
			if page > 1 {
				return nil, errors.New("server error")
			}
			return pageOf(makeListings(1, 2), page, perPage, 6), nil
		},
	}

	store := NewStore(svc, "user1", 2, "price_asc")
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := store.LoadMore(context.Background()); err == nil {
		t.Fatal("expected load-more error")
	}

	if store.Len() != 2 {
		t.Errorf("len = %d, want unchanged 2", store.Len())
	}
	if store.CurrentPage() != 1 {
		t.Errorf("current page = %d, want unchanged 1", store.CurrentPage())
	}
	if !store.HasMore() {
		t.Error("hasMore should remain true")
	}
	// A failed load-more is never the blocking error state.
	if store.Err() != nil {
		t.Errorf("unexpected blocking error: %v", store.Err())
	}
}

func TestLoadMoreWithoutMorePagesIsNoop(t *testing.T) {
	var calls atomic.Int32
	svc := &fakeService{
		fetchFn: func(_ context.Context, _ string, page, perPage int, _ string) (*listing.Page, error) {
			calls.Add(1)
			return pageOf(makeListings(1, 2), page, perPage, 2), nil
		},
	}

	store := NewStore(svc, "user1", 20, "price_asc")
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := store.LoadMore(context.Background()); err != nil {
		t.Fatalf("load more: %v", err)
	}

	if calls.Load() != 1 {
		t.Errorf("fetch calls = %d, want 1 (no fetch when hasMore is false)", calls.Load())
	}
}

func TestRemoveOptimistic(t *testing.T) {
	var removedID string
	svc := &fakeService{
		fetchFn: func(_ context.Context, _ string, page, perPage int, _ string) (*listing.Page, error) {
			return pageOf(makeListings(1, 3), page, perPage, 3), nil
		},
		removeFn: func(_ context.Context, _ string, listingID string) error {
			removedID = listingID
			return nil
		},
	}

	store := NewStore(svc, "user1", 20, "price_asc")
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := store.Remove(context.Background(), "id2"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removedID != "id2" {
		t.Errorf("remote removal id = %q, want id2", removedID)
	}

	got := ids(store.Items())
	want := []string{"id1", "id3"}
	if len(got) != len(want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("items[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if store.Total() != 2 {
		t.Errorf("total = %d, want 2", store.Total())
	}
}

func TestRemoveAbsentIDIsNoop(t *testing.T) {
	svc := &fakeService{
		fetchFn: func(_ context.Context, _ string, page, perPage int, _ string) (*listing.Page, error) {
			return pageOf(makeListings(1, 2), page, perPage, 2), nil
		},
		removeFn: func(context.Context, string, string) error {
			t.Error("remote removal must not be issued for an absent id")
			return nil
		},
	}

	store := NewStore(svc, "user1", 20, "price_asc")
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := store.Remove(context.Background(), "missing"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if store.Len() != 2 {
		t.Errorf("len = %d, want 2", store.Len())
	}
}

func TestRemoveRollbackRestoresSnapshot(t *testing.T) {
	svc := &fakeService{
		fetchFn: func(_ context.Context, _ string, page, perPage int, _ string) (*listing.Page, error) {
			return pageOf(makeListings(1, 3), page, perPage, 3), nil
		},
		removeFn: func(context.Context, string, string) error {
			return errors.New("server error")
		},
	}

	store := NewStore(svc, "user1", 20, "price_asc")
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	before := store.Items()[1]

	if err := store.Remove(context.Background(), "id2"); err == nil {
		t.Fatal("expected remove error")
	}

	items := store.Items()
	if len(items) != 3 {
		t.Fatalf("len = %d, want restored 3", len(items))
	}
	restored := items[1]
	if restored.ID != "id2" {
		t.Errorf("restored position holds %q, want id2", restored.ID)
	}
	if restored != before {
		t.Error("restored listing must be the exact pre-removal snapshot")
	}
	if store.Total() != 3 {
		t.Errorf("total = %d, want restored 3", store.Total())
	}
}

func TestOverlappingRemovalsOnDistinctIDs(t *testing.T) {
	slowStarted := make(chan struct{})
	release := make(chan struct{})
	svc := &fakeService{
		fetchFn: func(_ context.Context, _ string, page, perPage int, _ string) (*listing.Page, error) {
			return pageOf(makeListings(1, 4), page, perPage, 4), nil
		},
		removeFn: func(_ context.Context, _ string, listingID string) error {
			if listingID == "id1" {
				close(slowStarted)
				<-release
				return nil
			}
			return errors.New("server error")
		},
	}

	store := NewStore(svc, "user1", 20, "price_asc")
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := store.Remove(context.Background(), "id1"); err != nil {
			t.Errorf("remove id1: %v", err)
		}
	}()
	<-slowStarted

	// While id1's removal is in flight, id3's fails and rolls back.
	if err := store.Remove(context.Background(), "id3"); err == nil {
		t.Error("expected remove id3 to fail")
	}

	close(release)
	wg.Wait()

	// Final set: initial minus exactly the successfully removed id,
	// regardless of completion order.
	got := ids(store.Items())
	want := map[string]bool{"id2": true, "id3": true, "id4": true}
	if len(got) != len(want) {
		t.Fatalf("items = %v, want ids 2-4", got)
	}
	for _, id := range got {
		if !want[id] {
			t.Errorf("unexpected id %q in final items", id)
		}
	}
}

func TestStaleLoadResponseDiscarded(t *testing.T) {
	firstStarted := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	svc := &fakeService{
		fetchFn: func(_ context.Context, _ string, page, perPage int, _ string) (*listing.Page, error) {
			if calls.Add(1) == 1 {
				close(firstStarted)
				<-release
				return pageOf(makeListings(1, 2), page, perPage, 2), nil
			}
			return pageOf(makeListings(10, 3), page, perPage, 3), nil
		},
	}

	store := NewStore(svc, "user1", 20, "price_asc")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := store.Load(context.Background()); err != nil {
			t.Errorf("stale load should be silently discarded, got %v", err)
		}
	}()
	<-firstStarted

	// A second load supersedes the first.
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("superseding load: %v", err)
	}

	close(release)
	wg.Wait()

	got := ids(store.Items())
	want := []string{"id10", "id11", "id12"}
	if len(got) != len(want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("items[%d] = %q, want %q (stale response must not win)", i, got[i], want[i])
		}
	}
}
