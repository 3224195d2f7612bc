package crm

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vantagecrm/crm-backend/internal/data/repos/testutil"
	types "github.com/vantagecrm/crm-backend/internal/domain"
)

func backdate(t *testing.T, tx *gorm.DB, id uuid.UUID, createdAt time.Time) {
	t.Helper()
	if err := tx.Model(&types.Activity{}).Where("id = ?", id).Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("backdate activity: %v", err)
	}
}

func TestActivityListRecentOrdersAndLimits(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewActivityRepo(db, testutil.Logger(t))

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	var newest uuid.UUID
	for i := 0; i < 12; i++ {
		a := testutil.SeedActivity(t, ctx, tx, types.ActivityStatusPlanned, nil)
		backdate(t, tx, a.ID, base.Add(time.Duration(i)*time.Hour))
		newest = a.ID
	}

	got, err := repo.ListRecent(ctx, tx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(got))
	}
	if got[0].ID != newest {
		t.Fatal("newest activity must come first")
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Fatal("rows must descend by created_at")
		}
	}
}

func TestActivityListUpcomingFiltersAndOrders(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewActivityRepo(db, testutil.Logger(t))

	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	soon := now.Add(2 * time.Hour)
	later := now.Add(48 * time.Hour)

	testutil.SeedActivity(t, ctx, tx, types.ActivityStatusPlanned, &past)
	completed := later.Add(time.Hour)
	testutil.SeedActivity(t, ctx, tx, types.ActivityStatusCompleted, &completed)
	second := testutil.SeedActivity(t, ctx, tx, types.ActivityStatusPlanned, &later)
	first := testutil.SeedActivity(t, ctx, tx, types.ActivityStatusPlanned, &soon)

	got, err := repo.ListUpcoming(ctx, tx, now, types.ActivityStatusPlanned)
	if err != nil {
		t.Fatalf("ListUpcoming: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 upcoming planned activities, got %d", len(got))
	}
	if got[0].ID != first.ID || got[1].ID != second.ID {
		t.Fatal("upcoming activities must ascend by scheduled_date")
	}
}

func TestActivityListScheduledBetweenInclusive(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewActivityRepo(db, testutil.Logger(t))

	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC)
	before := start.Add(-time.Second)
	after := end.Add(time.Second)

	testutil.SeedActivity(t, ctx, tx, types.ActivityStatusPlanned, &before)
	onStart := testutil.SeedActivity(t, ctx, tx, types.ActivityStatusPlanned, &start)
	onEnd := testutil.SeedActivity(t, ctx, tx, types.ActivityStatusPlanned, &end)
	testutil.SeedActivity(t, ctx, tx, types.ActivityStatusPlanned, &after)

	got, err := repo.ListScheduledBetween(ctx, tx, start, end)
	if err != nil {
		t.Fatalf("ListScheduledBetween: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both boundary rows, got %d", len(got))
	}
	ids := map[uuid.UUID]bool{got[0].ID: true, got[1].ID: true}
	if !ids[onStart.ID] || !ids[onEnd.ID] {
		t.Fatal("boundary timestamps must be included")
	}
}
