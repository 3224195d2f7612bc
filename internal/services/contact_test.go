package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/vantagecrm/crm-backend/internal/data/repos"
	"github.com/vantagecrm/crm-backend/internal/data/repos/testutil"
	types "github.com/vantagecrm/crm-backend/internal/domain"
	"github.com/vantagecrm/crm-backend/internal/platform/apierr"
	"github.com/vantagecrm/crm-backend/internal/platform/dbctx"
)

func newContactService(t *testing.T) (ContactService, repos.ContactRepo, dbctx.Context) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	contactRepo := repos.NewContactRepo(db, log)
	svc := NewContactService(db, log, contactRepo, repos.NewCustomerRepo(db, log))
	return svc, contactRepo, dbctx.Context{Ctx: context.Background(), Tx: tx}
}

func TestContactCreatePrimaryDemotesExisting(t *testing.T) {
	svc, contactRepo, dbc := newContactService(t)

	customer := testutil.SeedCustomer(t, dbc.Ctx, dbc.Tx, "Single Primary Co")
	old := testutil.SeedContact(t, dbc.Ctx, dbc.Tx, &customer.ID, "old@sp.example", true)

	created, err := svc.Create(dbc, &types.Contact{
		FirstName:  "New",
		LastName:   "Primary",
		Email:      "new@sp.example",
		IsPrimary:  true,
		CustomerID: &customer.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.IsPrimary {
		t.Fatal("incoming contact must stay primary")
	}

	demoted, err := contactRepo.GetByID(dbc.Ctx, dbc.Tx, old.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if demoted.IsPrimary {
		t.Fatal("previous primary must be demoted")
	}

	primaries, err := contactRepo.ListPrimaryByCustomer(dbc.Ctx, dbc.Tx, customer.ID)
	if err != nil {
		t.Fatalf("ListPrimaryByCustomer: %v", err)
	}
	if len(primaries) != 1 || primaries[0].ID != created.ID {
		t.Fatalf("exactly one primary expected, got %d", len(primaries))
	}
}

func TestContactUpdateToPrimaryDemotesAllOthers(t *testing.T) {
	svc, contactRepo, dbc := newContactService(t)

	customer := testutil.SeedCustomer(t, dbc.Ctx, dbc.Tx, "Messy Data Co")
	// Two primaries can exist in unguarded data; the enforcer must clear both.
	a := testutil.SeedContact(t, dbc.Ctx, dbc.Tx, &customer.ID, "a@messy.example", true)
	b := testutil.SeedContact(t, dbc.Ctx, dbc.Tx, &customer.ID, "b@messy.example", true)
	target := testutil.SeedContact(t, dbc.Ctx, dbc.Tx, &customer.ID, "c@messy.example", false)

	updated, err := svc.Update(dbc, target.ID, &types.Contact{
		FirstName:  "Chosen",
		LastName:   "One",
		Email:      "c@messy.example",
		IsPrimary:  true,
		CustomerID: &customer.ID,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.IsPrimary {
		t.Fatal("target must be primary after update")
	}

	for _, id := range []uuid.UUID{a.ID, b.ID} {
		got, err := contactRepo.GetByID(dbc.Ctx, dbc.Tx, id)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.IsPrimary {
			t.Fatalf("contact %s must be demoted", id)
		}
	}
}

func TestContactNonPrimarySaveLeavesOthersAlone(t *testing.T) {
	svc, contactRepo, dbc := newContactService(t)

	customer := testutil.SeedCustomer(t, dbc.Ctx, dbc.Tx, "Calm Co")
	primary := testutil.SeedContact(t, dbc.Ctx, dbc.Tx, &customer.ID, "p@calm.example", true)

	if _, err := svc.Create(dbc, &types.Contact{
		FirstName:  "Second",
		LastName:   "Fiddle",
		Email:      "s@calm.example",
		CustomerID: &customer.ID,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := contactRepo.GetByID(dbc.Ctx, dbc.Tx, primary.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.IsPrimary {
		t.Fatal("existing primary must be untouched by non-primary saves")
	}
}

func TestContactCreateRejectsUnknownCustomerReference(t *testing.T) {
	svc, _, dbc := newContactService(t)

	missing := uuid.New()
	_, err := svc.Create(dbc, &types.Contact{
		FirstName:  "Orphan",
		LastName:   "Contact",
		Email:      "o@nowhere.example",
		CustomerID: &missing,
	})
	assertAPIError(t, err, apierr.CodeInvalidReference)
}

func TestContactCreateResolvesNestedCustomerReference(t *testing.T) {
	svc, _, dbc := newContactService(t)

	customer := testutil.SeedCustomer(t, dbc.Ctx, dbc.Tx, "Nested Ref Co")

	created, err := svc.Create(dbc, &types.Contact{
		FirstName: "Via",
		LastName:  "Nested",
		Email:     "v@nested.example",
		Customer:  &types.Customer{ID: customer.ID, CompanyName: "spoofed name"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.CustomerID == nil || *created.CustomerID != customer.ID {
		t.Fatal("nested reference must resolve to the customer id")
	}
	if created.Customer == nil || created.Customer.CompanyName != "Nested Ref Co" {
		t.Fatal("nested object must be replaced by the stored record")
	}
}

func TestContactListPrimaryUnknownCustomerIsNotFound(t *testing.T) {
	svc, _, dbc := newContactService(t)

	missing := uuid.New()
	_, err := svc.ListPrimary(dbc, &missing)
	assertAPIError(t, err, apierr.CodeNotFound)
}

func TestContactGetByEmailMissingIsNotFound(t *testing.T) {
	svc, _, dbc := newContactService(t)

	_, err := svc.GetByEmail(dbc, "nobody@void.example")
	assertAPIError(t, err, apierr.CodeNotFound)
}
