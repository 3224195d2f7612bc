package crm

import (
	"context"
	"testing"

	"github.com/vantagecrm/crm-backend/internal/data/repos/testutil"
)

func TestContactGetByEmailCaseInsensitive(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewContactRepo(db, testutil.Logger(t))

	customer := testutil.SeedCustomer(t, ctx, tx, "Stark Industries")
	testutil.SeedContact(t, ctx, tx, &customer.ID, "pepper@stark.example", false)

	got, err := repo.GetByEmail(ctx, tx, "PEPPER@STARK.EXAMPLE")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got == nil || got.Email != "pepper@stark.example" {
		t.Fatal("expected case-insensitive email match")
	}

	missing, err := repo.GetByEmail(ctx, tx, "nobody@stark.example")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for unknown email")
	}
}

func TestContactListPrimaryByCustomer(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewContactRepo(db, testutil.Logger(t))

	a := testutil.SeedCustomer(t, ctx, tx, "Wayne Enterprises")
	b := testutil.SeedCustomer(t, ctx, tx, "LexCorp")

	primary := testutil.SeedContact(t, ctx, tx, &a.ID, "alfred@wayne.example", true)
	testutil.SeedContact(t, ctx, tx, &a.ID, "lucius@wayne.example", false)
	testutil.SeedContact(t, ctx, tx, &b.ID, "mercy@lex.example", true)

	got, err := repo.ListPrimaryByCustomer(ctx, tx, a.ID)
	if err != nil {
		t.Fatalf("ListPrimaryByCustomer: %v", err)
	}
	if len(got) != 1 || got[0].ID != primary.ID {
		t.Fatalf("expected only the seeded primary, got %d rows", len(got))
	}

	all, err := repo.ListPrimary(ctx, tx)
	if err != nil {
		t.Fatalf("ListPrimary: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected primaries across customers, got %d", len(all))
	}
}

func TestContactSetPrimary(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewContactRepo(db, testutil.Logger(t))

	customer := testutil.SeedCustomer(t, ctx, tx, "Oscorp")
	contact := testutil.SeedContact(t, ctx, tx, &customer.ID, "harry@oscorp.example", true)

	if err := repo.SetPrimary(ctx, tx, contact.ID, false); err != nil {
		t.Fatalf("SetPrimary: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, contact.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.IsPrimary {
		t.Fatal("expected contact demoted")
	}
}

func TestContactSearchByNameMatchesFirstOrLast(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewContactRepo(db, testutil.Logger(t))

	customer := testutil.SeedCustomer(t, ctx, tx, "Acme")
	first := testutil.SeedContact(t, ctx, tx, &customer.ID, "a@acme.example", false)
	first.FirstName = "Morgan"
	first.LastName = "Reed"
	if _, err := repo.Save(ctx, tx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	last := testutil.SeedContact(t, ctx, tx, &customer.ID, "b@acme.example", false)
	last.FirstName = "Casey"
	last.LastName = "Morgenthau"
	if _, err := repo.Save(ctx, tx, last); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.SearchByName(ctx, tx, "morgen")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(got) != 1 || got[0].ID != last.ID {
		t.Fatalf("expected last-name match only, got %d rows", len(got))
	}

	got, err = repo.SearchByName(ctx, tx, "MORGAN")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("expected first-name match only, got %d rows", len(got))
	}
}

func TestContactDeleteByCustomer(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewContactRepo(db, testutil.Logger(t))

	a := testutil.SeedCustomer(t, ctx, tx, "Cyberdyne")
	b := testutil.SeedCustomer(t, ctx, tx, "Tyrell")
	testutil.SeedContact(t, ctx, tx, &a.ID, "x@cyberdyne.example", false)
	testutil.SeedContact(t, ctx, tx, &a.ID, "y@cyberdyne.example", true)
	keep := testutil.SeedContact(t, ctx, tx, &b.ID, "z@tyrell.example", false)

	if err := repo.DeleteByCustomer(ctx, tx, a.ID); err != nil {
		t.Fatalf("DeleteByCustomer: %v", err)
	}

	remaining, err := repo.ListByCustomer(ctx, tx, a.ID)
	if err != nil {
		t.Fatalf("ListByCustomer: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected no contacts left, got %d", len(remaining))
	}

	got, err := repo.GetByID(ctx, tx, keep.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("contact of other customer must survive")
	}
}
