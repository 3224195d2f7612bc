package crm

import (
	"context"
	"testing"

	"github.com/vantagecrm/crm-backend/internal/data/repos/testutil"
)

func TestCustomerSearchByCompanyNameCaseInsensitive(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewCustomerRepo(db, testutil.Logger(t))

	testutil.SeedCustomer(t, ctx, tx, "Globex Corporation")
	testutil.SeedCustomer(t, ctx, tx, "Initech")

	got, err := repo.SearchByCompanyName(ctx, tx, "gLoBeX")
	if err != nil {
		t.Fatalf("SearchByCompanyName: %v", err)
	}
	if len(got) != 1 || got[0].CompanyName != "Globex Corporation" {
		t.Fatalf("expected single Globex hit, got %d", len(got))
	}
}

func TestCustomerSearchByCompanyNameEscapesWildcards(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewCustomerRepo(db, testutil.Logger(t))

	testutil.SeedCustomer(t, ctx, tx, "100% Juice Co")
	testutil.SeedCustomer(t, ctx, tx, "Totally Different")

	got, err := repo.SearchByCompanyName(ctx, tx, "100%")
	if err != nil {
		t.Fatalf("SearchByCompanyName: %v", err)
	}
	if len(got) != 1 || got[0].CompanyName != "100% Juice Co" {
		t.Fatalf("wildcard was not escaped: got %d rows", len(got))
	}
}

func TestCustomerCompanyNameExistsIgnoresCase(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewCustomerRepo(db, testutil.Logger(t))

	testutil.SeedCustomer(t, ctx, tx, "Hooli")

	exists, err := repo.CompanyNameExists(ctx, tx, "HOOLI")
	if err != nil {
		t.Fatalf("CompanyNameExists: %v", err)
	}
	if !exists {
		t.Fatal("expected case-insensitive match")
	}

	exists, err = repo.CompanyNameExists(ctx, tx, "Pied Piper")
	if err != nil {
		t.Fatalf("CompanyNameExists: %v", err)
	}
	if exists {
		t.Fatal("unexpected match for unseen name")
	}
}

func TestCustomerGetByIDMissingReturnsNil(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewCustomerRepo(db, testutil.Logger(t))

	seeded := testutil.SeedCustomer(t, ctx, tx, "Umbrella")
	if err := repo.Delete(ctx, tx, seeded.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for missing customer")
	}
}
