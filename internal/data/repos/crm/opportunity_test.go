package crm

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vantagecrm/crm-backend/internal/data/repos/testutil"
)

func date(t *testing.T, value string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return &d
}

func TestOpportunityListClosingBetweenInclusiveBounds(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewOpportunityRepo(db, testutil.Logger(t))

	customer := testutil.SeedCustomer(t, ctx, tx, "Massive Dynamic")
	onStart := testutil.SeedOpportunity(t, ctx, tx, &customer.ID, "Open", "1000.00", date(t, "2026-03-01"))
	onEnd := testutil.SeedOpportunity(t, ctx, tx, &customer.ID, "Open", "2000.00", date(t, "2026-03-31"))
	testutil.SeedOpportunity(t, ctx, tx, &customer.ID, "Open", "3000.00", date(t, "2026-04-01"))
	testutil.SeedOpportunity(t, ctx, tx, &customer.ID, "Open", "4000.00", nil)

	got, err := repo.ListClosingBetween(ctx, tx, *date(t, "2026-03-01"), *date(t, "2026-03-31"))
	if err != nil {
		t.Fatalf("ListClosingBetween: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both boundary rows, got %d", len(got))
	}
	ids := map[string]bool{got[0].ID.String(): true, got[1].ID.String(): true}
	if !ids[onStart.ID.String()] || !ids[onEnd.ID.String()] {
		t.Fatal("boundary dates must be included")
	}
}

func TestOpportunityListAmountGreaterThanIsStrict(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewOpportunityRepo(db, testutil.Logger(t))

	customer := testutil.SeedCustomer(t, ctx, tx, "Vandelay")
	testutil.SeedOpportunity(t, ctx, tx, &customer.ID, "Open", "5000.00", nil)
	above := testutil.SeedOpportunity(t, ctx, tx, &customer.ID, "Open", "5000.01", nil)

	got, err := repo.ListAmountGreaterThan(ctx, tx, decimal.RequireFromString("5000.00"))
	if err != nil {
		t.Fatalf("ListAmountGreaterThan: %v", err)
	}
	if len(got) != 1 || got[0].ID != above.ID {
		t.Fatalf("threshold must be exclusive, got %d rows", len(got))
	}
}

func TestOpportunitySumAmountByStatus(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewOpportunityRepo(db, testutil.Logger(t))

	customer := testutil.SeedCustomer(t, ctx, tx, "Dunder Mifflin")
	testutil.SeedOpportunity(t, ctx, tx, &customer.ID, "Won", "1500.50", nil)
	testutil.SeedOpportunity(t, ctx, tx, &customer.ID, "Won", "2499.50", nil)
	testutil.SeedOpportunity(t, ctx, tx, &customer.ID, "Lost", "9999.99", nil)

	total, err := repo.SumAmountByStatus(ctx, tx, "Won")
	if err != nil {
		t.Fatalf("SumAmountByStatus: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("4000.00")) {
		t.Fatalf("expected 4000.00, got %s", total)
	}
}

func TestOpportunitySumAmountByStatusEmptyIsZero(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewOpportunityRepo(db, testutil.Logger(t))

	total, err := repo.SumAmountByStatus(ctx, tx, "NoSuchStatus")
	if err != nil {
		t.Fatalf("SumAmountByStatus: %v", err)
	}
	if !total.Equal(decimal.Zero) {
		t.Fatalf("expected zero for empty status, got %s", total)
	}
}

func TestOpportunityDeleteByCustomer(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewOpportunityRepo(db, testutil.Logger(t))

	a := testutil.SeedCustomer(t, ctx, tx, "Soylent")
	b := testutil.SeedCustomer(t, ctx, tx, "Omni")
	testutil.SeedOpportunity(t, ctx, tx, &a.ID, "Open", "100.00", nil)
	keep := testutil.SeedOpportunity(t, ctx, tx, &b.ID, "Open", "200.00", nil)

	if err := repo.DeleteByCustomer(ctx, tx, a.ID); err != nil {
		t.Fatalf("DeleteByCustomer: %v", err)
	}

	gone, err := repo.ListByCustomer(ctx, tx, a.ID)
	if err != nil {
		t.Fatalf("ListByCustomer: %v", err)
	}
	if len(gone) != 0 {
		t.Fatalf("expected no opportunities left, got %d", len(gone))
	}

	got, err := repo.GetByID(ctx, tx, keep.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("other customer's opportunity must survive")
	}
}
