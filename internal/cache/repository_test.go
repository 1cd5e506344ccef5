package cache

import (
	"path/filepath"
	"testing"

	"github.com/kmalloy/staylist/internal/db"
	"github.com/kmalloy/staylist/internal/listing"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "favorites.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Errorf("closing test database: %v", err)
		}
	})
	return NewRepository(database)
}

func sampleListings() []*listing.Listing {
	return []*listing.Listing{
		{
			ID:          "lst_1",
			Name:        "Greenpoint Studio",
			ListerPrice: 120,
			Features:    listing.Features{Bedrooms: 0, Bathrooms: 1},
			Location:    listing.Location{Borough: "Brooklyn", Hood: "Greenpoint", City: "New York", State: "NY"},
			Pricing:     listing.PricingList{StartingNightly: 120, Currency: "USD"},
			IsFavorited: true,
		},
		{
			ID:          "lst_2",
			Name:        "Astoria Two-Bedroom",
			ListerPrice: 180,
			Features:    listing.Features{Bedrooms: 2, Bathrooms: 1.5},
			Location:    listing.Location{Borough: "Queens", Hood: "Astoria", City: "New York", State: "NY"},
			Pricing:     listing.PricingList{StartingNightly: 180, Currency: "USD"},
			IsFavorited: true,
		},
	}
}

func TestReplaceAllAndList(t *testing.T) {
	repo := testRepo(t)

	if err := repo.ReplaceAll("user1", sampleListings()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	items, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].ID != "lst_1" || items[1].ID != "lst_2" {
		t.Errorf("order = %q, %q, want lst_1, lst_2", items[0].ID, items[1].ID)
	}
	if items[1].Features.Bathrooms != 1.5 {
		t.Errorf("bathrooms = %g, want 1.5 (full record must round-trip)", items[1].Features.Bathrooms)
	}
}

func TestReplaceAllOverwrites(t *testing.T) {
	repo := testRepo(t)

	if err := repo.ReplaceAll("user1", sampleListings()); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	if err := repo.ReplaceAll("user1", sampleListings()[:1]); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	items, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("len = %d, want 1 after overwrite", len(items))
	}
}

func TestGet(t *testing.T) {
	repo := testRepo(t)
	if err := repo.ReplaceAll("user1", sampleListings()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	l, err := repo.Get("lst_2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if l.Name != "Astoria Two-Bedroom" {
		t.Errorf("name = %q", l.Name)
	}

	if _, err := repo.Get("missing"); err == nil {
		t.Error("expected error for missing listing")
	}
}

func TestDelete(t *testing.T) {
	repo := testRepo(t)
	if err := repo.ReplaceAll("user1", sampleListings()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	if err := repo.Delete("lst_1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	items, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].ID != "lst_2" {
		t.Errorf("items = %v", items)
	}

	// Deleting an uncached id is fine.
	if err := repo.Delete("lst_1"); err != nil {
		t.Errorf("repeat delete: %v", err)
	}
}

func TestLastSync(t *testing.T) {
	repo := testRepo(t)

	state, err := repo.LastSync()
	if err != nil {
		t.Fatalf("last sync: %v", err)
	}
	if state != nil {
		t.Fatalf("expected nil state before any sync, got %+v", state)
	}

	if err := repo.ReplaceAll("user1", sampleListings()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	state, err = repo.LastSync()
	if err != nil {
		t.Fatalf("last sync: %v", err)
	}
	if state == nil {
		t.Fatal("expected sync state")
	}
	if state.UserID != "user1" {
		t.Errorf("user = %q", state.UserID)
	}
	if state.Total != 2 {
		t.Errorf("total = %d, want 2", state.Total)
	}
	if state.SyncedAt.IsZero() {
		t.Error("expected synced timestamp")
	}
}
