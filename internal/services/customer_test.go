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

func newCustomerService(t *testing.T) (CustomerService, dbctx.Context) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	svc := NewCustomerService(db, log,
		repos.NewCustomerRepo(db, log),
		repos.NewContactRepo(db, log),
		repos.NewOpportunityRepo(db, log),
	)
	return svc, dbctx.Context{Ctx: context.Background(), Tx: tx}
}

func TestCustomerCreateRejectsPresetID(t *testing.T) {
	svc, dbc := newCustomerService(t)

	_, err := svc.Create(dbc, &types.Customer{ID: uuid.New(), CompanyName: "Preset Inc"})
	assertAPIError(t, err, apierr.CodeIdentifierConflict)
}

func TestCustomerCreateRejectsDuplicateCompanyNameIgnoringCase(t *testing.T) {
	svc, dbc := newCustomerService(t)

	if _, err := svc.Create(dbc, &types.Customer{CompanyName: "Blue Sun"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(dbc, &types.Customer{CompanyName: "blue sun"})
	assertAPIError(t, err, apierr.CodeDuplicateKey)
}

func TestCustomerCreateAssignsIDAndTimestamps(t *testing.T) {
	svc, dbc := newCustomerService(t)

	created, err := svc.Create(dbc, &types.Customer{CompanyName: "Fresh Co"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("id must be server-assigned")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("timestamps must be stamped on create")
	}
}

func TestCustomerUpdateMissingIsNotFound(t *testing.T) {
	svc, dbc := newCustomerService(t)

	_, err := svc.Update(dbc, uuid.New(), &types.Customer{CompanyName: "Ghost"})
	assertAPIError(t, err, apierr.CodeNotFound)
}

func TestCustomerUpdateCarriesCreatedAtForward(t *testing.T) {
	svc, dbc := newCustomerService(t)

	created, err := svc.Create(dbc, &types.Customer{CompanyName: "Keeper"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(dbc, created.ID, &types.Customer{CompanyName: "Keeper", Status: "Inactive"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("created_at must survive updates")
	}
	if updated.Status != "Inactive" {
		t.Fatal("update must replace the record")
	}
}

func TestCustomerDeleteCascadesContactsAndOpportunities(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	contactRepo := repos.NewContactRepo(db, log)
	opportunityRepo := repos.NewOpportunityRepo(db, log)
	svc := NewCustomerService(db, log, repos.NewCustomerRepo(db, log), contactRepo, opportunityRepo)

	customer := testutil.SeedCustomer(t, ctx, tx, "Doomed Ltd")
	testutil.SeedContact(t, ctx, tx, &customer.ID, "one@doomed.example", true)
	testutil.SeedContact(t, ctx, tx, &customer.ID, "two@doomed.example", false)
	testutil.SeedOpportunity(t, ctx, tx, &customer.ID, "Open", "750.00", nil)

	if err := svc.Delete(dbc, customer.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	contacts, err := contactRepo.ListByCustomer(ctx, tx, customer.ID)
	if err != nil {
		t.Fatalf("ListByCustomer: %v", err)
	}
	if len(contacts) != 0 {
		t.Fatalf("contacts must cascade, %d left", len(contacts))
	}
	opportunities, err := opportunityRepo.ListByCustomer(ctx, tx, customer.ID)
	if err != nil {
		t.Fatalf("ListByCustomer: %v", err)
	}
	if len(opportunities) != 0 {
		t.Fatalf("opportunities must cascade, %d left", len(opportunities))
	}
}

func TestCustomerDeleteMissingIsNotFound(t *testing.T) {
	svc, dbc := newCustomerService(t)

	err := svc.Delete(dbc, uuid.New())
	assertAPIError(t, err, apierr.CodeNotFound)
}
