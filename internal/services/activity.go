package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vantagecrm/crm-backend/internal/data/repos"
	types "github.com/vantagecrm/crm-backend/internal/domain"
	"github.com/vantagecrm/crm-backend/internal/platform/apierr"
	"github.com/vantagecrm/crm-backend/internal/platform/dbctx"
	"github.com/vantagecrm/crm-backend/internal/platform/logger"
)

const recentActivityLimit = 10

type ActivityService interface {
	List(dbc dbctx.Context) ([]*types.Activity, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Activity, error)
	ListByCustomer(dbc dbctx.Context, customerID uuid.UUID) ([]*types.Activity, error)
	ListByContact(dbc dbctx.Context, contactID uuid.UUID) ([]*types.Activity, error)
	ListByOpportunity(dbc dbctx.Context, opportunityID uuid.UUID) ([]*types.Activity, error)
	ListByType(dbc dbctx.Context, activityType string) ([]*types.Activity, error)
	ListByStatus(dbc dbctx.Context, status string) ([]*types.Activity, error)
	ListScheduledBetween(dbc dbctx.Context, startDate, endDate time.Time) ([]*types.Activity, error)
	ListRecent(dbc dbctx.Context) ([]*types.Activity, error)
	ListUpcoming(dbc dbctx.Context) ([]*types.Activity, error)
	Create(dbc dbctx.Context, activity *types.Activity) (*types.Activity, error)
	Update(dbc dbctx.Context, id uuid.UUID, activity *types.Activity) (*types.Activity, error)
	Complete(dbc dbctx.Context, id uuid.UUID) (*types.Activity, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type activityService struct {
	db              *gorm.DB
	log             *logger.Logger
	activityRepo    repos.ActivityRepo
	customerRepo    repos.CustomerRepo
	contactRepo     repos.ContactRepo
	opportunityRepo repos.OpportunityRepo
}

func NewActivityService(db *gorm.DB, log *logger.Logger, activityRepo repos.ActivityRepo, customerRepo repos.CustomerRepo, contactRepo repos.ContactRepo, opportunityRepo repos.OpportunityRepo) ActivityService {
	serviceLog := log.With("service", "ActivityService")
	return &activityService{
		db:              db,
		log:             serviceLog,
		activityRepo:    activityRepo,
		customerRepo:    customerRepo,
		contactRepo:     contactRepo,
		opportunityRepo: opportunityRepo,
	}
}

func (as *activityService) List(dbc dbctx.Context) ([]*types.Activity, error) {
	return as.activityRepo.List(dbc.Ctx, dbc.Tx)
}

func (as *activityService) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Activity, error) {
	activity, err := as.activityRepo.GetByID(dbc.Ctx, dbc.Tx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch activity: %w", err)
	}
	if activity == nil {
		return nil, apierr.NotFound(fmt.Errorf("activity %s does not exist", id))
	}
	return activity, nil
}

func (as *activityService) ListByCustomer(dbc dbctx.Context, customerID uuid.UUID) ([]*types.Activity, error) {
	customer, err := as.customerRepo.GetByID(dbc.Ctx, dbc.Tx, customerID)
	if err != nil {
		return nil, fmt.Errorf("fetch customer: %w", err)
	}
	if customer == nil {
		return nil, apierr.NotFound(fmt.Errorf("customer %s does not exist", customerID))
	}
	return as.activityRepo.ListByCustomer(dbc.Ctx, dbc.Tx, customerID)
}

func (as *activityService) ListByContact(dbc dbctx.Context, contactID uuid.UUID) ([]*types.Activity, error) {
	contact, err := as.contactRepo.GetByID(dbc.Ctx, dbc.Tx, contactID)
	if err != nil {
		return nil, fmt.Errorf("fetch contact: %w", err)
	}
	if contact == nil {
		return nil, apierr.NotFound(fmt.Errorf("contact %s does not exist", contactID))
	}
	return as.activityRepo.ListByContact(dbc.Ctx, dbc.Tx, contactID)
}

func (as *activityService) ListByOpportunity(dbc dbctx.Context, opportunityID uuid.UUID) ([]*types.Activity, error) {
	opportunity, err := as.opportunityRepo.GetByID(dbc.Ctx, dbc.Tx, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("fetch opportunity: %w", err)
	}
	if opportunity == nil {
		return nil, apierr.NotFound(fmt.Errorf("opportunity %s does not exist", opportunityID))
	}
	return as.activityRepo.ListByOpportunity(dbc.Ctx, dbc.Tx, opportunityID)
}

func (as *activityService) ListByType(dbc dbctx.Context, activityType string) ([]*types.Activity, error) {
	return as.activityRepo.ListByType(dbc.Ctx, dbc.Tx, activityType)
}

func (as *activityService) ListByStatus(dbc dbctx.Context, status string) ([]*types.Activity, error) {
	return as.activityRepo.ListByStatus(dbc.Ctx, dbc.Tx, status)
}

func (as *activityService) ListScheduledBetween(dbc dbctx.Context, startDate, endDate time.Time) ([]*types.Activity, error) {
	return as.activityRepo.ListScheduledBetween(dbc.Ctx, dbc.Tx, startDate, endDate)
}

func (as *activityService) ListRecent(dbc dbctx.Context) ([]*types.Activity, error) {
	return as.activityRepo.ListRecent(dbc.Ctx, dbc.Tx, recentActivityLimit)
}

func (as *activityService) ListUpcoming(dbc dbctx.Context) ([]*types.Activity, error) {
	return as.activityRepo.ListUpcoming(dbc.Ctx, dbc.Tx, time.Now().UTC(), types.ActivityStatusPlanned)
}

func (as *activityService) Create(dbc dbctx.Context, activity *types.Activity) (*types.Activity, error) {
	if activity.ID != uuid.Nil {
		return nil, apierr.IdentifierConflict(fmt.Errorf("create payload must not carry an id"))
	}

	var created *types.Activity
	err := runInWriteTx(as.db, dbc, func(tx *gorm.DB) error {
		if err := as.resolveReferences(dbc, tx, activity); err != nil {
			return err
		}

		now := time.Now().UTC()
		activity.ID = uuid.New()
		activity.CreatedAt = now
		activity.UpdatedAt = now

		var err error
		created, err = as.activityRepo.Create(dbc.Ctx, tx, activity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (as *activityService) Update(dbc dbctx.Context, id uuid.UUID, activity *types.Activity) (*types.Activity, error) {
	var updated *types.Activity
	err := runInWriteTx(as.db, dbc, func(tx *gorm.DB) error {
		existing, err := as.activityRepo.GetByID(dbc.Ctx, tx, id)
		if err != nil {
			return fmt.Errorf("fetch activity: %w", err)
		}
		if existing == nil {
			return apierr.NotFound(fmt.Errorf("activity %s does not exist", id))
		}

		if err := as.resolveReferences(dbc, tx, activity); err != nil {
			return err
		}

		activity.ID = id
		activity.CreatedAt = existing.CreatedAt
		activity.UpdatedAt = time.Now().UTC()

		updated, err = as.activityRepo.Save(dbc.Ctx, tx, activity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Complete sets the status to Completed and stamps the completion time. The
// transition is deliberately not idempotent: completing an already-completed
// activity succeeds and re-stamps completed_date.
func (as *activityService) Complete(dbc dbctx.Context, id uuid.UUID) (*types.Activity, error) {
	var completed *types.Activity
	err := runInWriteTx(as.db, dbc, func(tx *gorm.DB) error {
		activity, err := as.activityRepo.GetByID(dbc.Ctx, tx, id)
		if err != nil {
			return fmt.Errorf("fetch activity: %w", err)
		}
		if activity == nil {
			return apierr.NotFound(fmt.Errorf("activity %s does not exist", id))
		}

		now := time.Now().UTC()
		activity.Status = types.ActivityStatusCompleted
		activity.CompletedDate = &now
		activity.UpdatedAt = now

		completed, err = as.activityRepo.Save(dbc.Ctx, tx, activity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

func (as *activityService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return runInWriteTx(as.db, dbc, func(tx *gorm.DB) error {
		existing, err := as.activityRepo.GetByID(dbc.Ctx, tx, id)
		if err != nil {
			return fmt.Errorf("fetch activity: %w", err)
		}
		if existing == nil {
			return apierr.NotFound(fmt.Errorf("activity %s does not exist", id))
		}
		return as.activityRepo.Delete(dbc.Ctx, tx, id)
	})
}

// resolveReferences validates the three optional references independently;
// they are not mutually exclusive.
func (as *activityService) resolveReferences(dbc dbctx.Context, tx *gorm.DB, activity *types.Activity) error {
	customerID, customer, err := resolveCustomerRef(dbc.Ctx, tx, as.customerRepo, activity.CustomerID, activity.Customer)
	if err != nil {
		return err
	}
	activity.CustomerID = customerID
	activity.Customer = customer

	contactID, contact, err := resolveContactRef(dbc.Ctx, tx, as.contactRepo, activity.ContactID, activity.Contact)
	if err != nil {
		return err
	}
	activity.ContactID = contactID
	activity.Contact = contact

	opportunityID, opportunity, err := resolveOpportunityRef(dbc.Ctx, tx, as.opportunityRepo, activity.OpportunityID, activity.Opportunity)
	if err != nil {
		return err
	}
	activity.OpportunityID = opportunityID
	activity.Opportunity = opportunity

	return nil
}
