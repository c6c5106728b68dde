package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/emberfall/lorekeeper/internal/storage"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "rulings.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

// TestPutAndListRulings ensures rulings round-trip and list newest first.
func TestPutAndListRulings(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	for i, ruling := range []string{"falling into water halves damage", "potions are a bonus action"} {
		record := storage.RulingRecord{
			CampaignID: "embers",
			Session:    10 + i,
			Situation:  "table question",
			Ruling:     ruling,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		saved, err := store.PutRuling(ctx, record)
		if err != nil {
			t.Fatalf("put ruling: %v", err)
		}
		if saved.ID == 0 {
			t.Fatal("expected assigned id")
		}
	}

	records, err := store.ListRulings(ctx, "embers", 0)
	if err != nil {
		t.Fatalf("list rulings: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 rulings, got %d", len(records))
	}
	if records[0].Ruling != "potions are a bonus action" {
		t.Fatalf("expected newest first, got %+v", records[0])
	}
	if records[0].CreatedAt != base.Add(time.Minute) {
		t.Fatalf("created at = %v", records[0].CreatedAt)
	}
}

// TestListRulingsScopesByCampaign ensures one campaign's rulings never leak
// into another's list.
func TestListRulingsScopesByCampaign(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.PutRuling(ctx, storage.RulingRecord{
		CampaignID: "embers", Session: 3, Ruling: "shields add one",
	}); err != nil {
		t.Fatalf("put ruling: %v", err)
	}

	records, err := store.ListRulings(ctx, "hollow", 0)
	if err != nil {
		t.Fatalf("list rulings: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no rulings, got %+v", records)
	}
}

// TestListRulingsHonorsLimit ensures the limit caps the result set.
func TestListRulingsHonorsLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := store.PutRuling(ctx, storage.RulingRecord{
			CampaignID: "embers", Session: i, Ruling: "ruling",
		}); err != nil {
			t.Fatalf("put ruling: %v", err)
		}
	}

	records, err := store.ListRulings(ctx, "embers", 3)
	if err != nil {
		t.Fatalf("list rulings: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 rulings, got %d", len(records))
	}
}

// TestPutRulingValidatesInput ensures required fields are enforced.
func TestPutRulingValidatesInput(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.PutRuling(ctx, storage.RulingRecord{Ruling: "text"}); err == nil {
		t.Fatal("expected error for missing campaign id")
	}
	if _, err := store.PutRuling(ctx, storage.RulingRecord{CampaignID: "embers"}); err == nil {
		t.Fatal("expected error for missing ruling text")
	}
}
