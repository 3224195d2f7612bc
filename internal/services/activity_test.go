package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vantagecrm/crm-backend/internal/data/repos"
	"github.com/vantagecrm/crm-backend/internal/data/repos/testutil"
	types "github.com/vantagecrm/crm-backend/internal/domain"
	"github.com/vantagecrm/crm-backend/internal/platform/apierr"
	"github.com/vantagecrm/crm-backend/internal/platform/dbctx"
)

func newActivityService(t *testing.T) (ActivityService, dbctx.Context) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	svc := NewActivityService(db, log,
		repos.NewActivityRepo(db, log),
		repos.NewCustomerRepo(db, log),
		repos.NewContactRepo(db, log),
		repos.NewOpportunityRepo(db, log),
	)
	return svc, dbctx.Context{Ctx: context.Background(), Tx: tx}
}

func TestActivityCompleteStampsStatusAndDate(t *testing.T) {
	svc, dbc := newActivityService(t)

	scheduled := time.Now().UTC().Add(24 * time.Hour)
	activity := testutil.SeedActivity(t, dbc.Ctx, dbc.Tx, types.ActivityStatusPlanned, &scheduled)

	completed, err := svc.Complete(dbc, activity.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if completed.Status != types.ActivityStatusCompleted {
		t.Fatalf("expected status %s, got %s", types.ActivityStatusCompleted, completed.Status)
	}
	if completed.CompletedDate == nil {
		t.Fatal("completed_date must be stamped")
	}
}

func TestActivityCompleteRestampsOnRepeat(t *testing.T) {
	svc, dbc := newActivityService(t)

	activity := testutil.SeedActivity(t, dbc.Ctx, dbc.Tx, types.ActivityStatusPlanned, nil)

	first, err := svc.Complete(dbc, activity.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := svc.Complete(dbc, activity.ID)
	if err != nil {
		t.Fatalf("Complete (repeat): %v", err)
	}
	if !second.CompletedDate.After(*first.CompletedDate) {
		t.Fatal("repeat completion must advance completed_date")
	}
}

func TestActivityCompleteMissingIsNotFound(t *testing.T) {
	svc, dbc := newActivityService(t)

	_, err := svc.Complete(dbc, uuid.New())
	assertAPIError(t, err, apierr.CodeNotFound)
}

func TestActivityCreateRejectsUnknownReferences(t *testing.T) {
	svc, dbc := newActivityService(t)

	missing := uuid.New()
	_, err := svc.Create(dbc, &types.Activity{
		Type:      "Call",
		Status:    types.ActivityStatusPlanned,
		ContactID: &missing,
	})
	assertAPIError(t, err, apierr.CodeInvalidReference)
}

func TestActivityCreateResolvesAllThreeReferences(t *testing.T) {
	svc, dbc := newActivityService(t)

	customer := testutil.SeedCustomer(t, dbc.Ctx, dbc.Tx, "Tri Ref Co")
	contact := testutil.SeedContact(t, dbc.Ctx, dbc.Tx, &customer.ID, "tri@ref.example", false)
	opportunity := testutil.SeedOpportunity(t, dbc.Ctx, dbc.Tx, &customer.ID, "Open", "300.00", nil)

	created, err := svc.Create(dbc, &types.Activity{
		Type:          "Meeting",
		Status:        types.ActivityStatusPlanned,
		CustomerID:    &customer.ID,
		ContactID:     &contact.ID,
		OpportunityID: &opportunity.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.CustomerID == nil || *created.CustomerID != customer.ID {
		t.Fatal("customer reference must resolve")
	}
	if created.ContactID == nil || *created.ContactID != contact.ID {
		t.Fatal("contact reference must resolve")
	}
	if created.OpportunityID == nil || *created.OpportunityID != opportunity.ID {
		t.Fatal("opportunity reference must resolve")
	}
}

func TestActivityListByCustomerUnknownIsNotFound(t *testing.T) {
	svc, dbc := newActivityService(t)

	_, err := svc.ListByCustomer(dbc, uuid.New())
	assertAPIError(t, err, apierr.CodeNotFound)
}
