package crm

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vantagecrm/crm-backend/internal/data/repos/testutil"
)

func TestProductGetByCodeCaseInsensitive(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewProductRepo(db, testutil.Logger(t))

	testutil.SeedProduct(t, ctx, tx, "WID-001", "49.99")

	got, err := repo.GetByCode(ctx, tx, "wid-001")
	if err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	if got == nil || got.Code != "WID-001" {
		t.Fatal("expected case-insensitive code match")
	}

	missing, err := repo.GetByCode(ctx, tx, "WID-999")
	if err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for unknown code")
	}
}

func TestProductCodeExistsIgnoresCase(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewProductRepo(db, testutil.Logger(t))

	testutil.SeedProduct(t, ctx, tx, "GAD-100", "12.00")

	exists, err := repo.CodeExists(ctx, tx, "gad-100")
	if err != nil {
		t.Fatalf("CodeExists: %v", err)
	}
	if !exists {
		t.Fatal("expected case-insensitive existence check")
	}
}

func TestProductListPriceLessThanIsStrict(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewProductRepo(db, testutil.Logger(t))

	testutil.SeedProduct(t, ctx, tx, "EQ-1", "100.00")
	under := testutil.SeedProduct(t, ctx, tx, "EQ-2", "99.99")

	got, err := repo.ListPriceLessThan(ctx, tx, decimal.RequireFromString("100.00"))
	if err != nil {
		t.Fatalf("ListPriceLessThan: %v", err)
	}
	if len(got) != 1 || got[0].ID != under.ID {
		t.Fatalf("bound must be exclusive, got %d rows", len(got))
	}
}

func TestProductListPriceBetweenInclusive(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewProductRepo(db, testutil.Logger(t))

	low := testutil.SeedProduct(t, ctx, tx, "RNG-1", "10.00")
	high := testutil.SeedProduct(t, ctx, tx, "RNG-2", "20.00")
	testutil.SeedProduct(t, ctx, tx, "RNG-3", "20.01")
	testutil.SeedProduct(t, ctx, tx, "RNG-4", "9.99")

	got, err := repo.ListPriceBetween(ctx, tx, decimal.RequireFromString("10.00"), decimal.RequireFromString("20.00"))
	if err != nil {
		t.Fatalf("ListPriceBetween: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both boundary rows, got %d", len(got))
	}
	ids := map[string]bool{got[0].ID.String(): true, got[1].ID.String(): true}
	if !ids[low.ID.String()] || !ids[high.ID.String()] {
		t.Fatal("boundary prices must be included")
	}
}

func TestProductSearchByNameContains(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewProductRepo(db, testutil.Logger(t))

	p := testutil.SeedProduct(t, ctx, tx, "SRCH-1", "5.00")
	p.Name = "Deluxe Widget Kit"
	if _, err := repo.Save(ctx, tx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	other := testutil.SeedProduct(t, ctx, tx, "SRCH-2", "6.00")
	other.Name = "Gadget"
	if _, err := repo.Save(ctx, tx, other); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.SearchByName(ctx, tx, "widget")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(got) != 1 || got[0].ID != p.ID {
		t.Fatalf("expected single contains match, got %d rows", len(got))
	}
}
