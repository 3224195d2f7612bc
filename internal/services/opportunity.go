package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vantagecrm/crm-backend/internal/data/repos"
	types "github.com/vantagecrm/crm-backend/internal/domain"
	"github.com/vantagecrm/crm-backend/internal/platform/apierr"
	"github.com/vantagecrm/crm-backend/internal/platform/dbctx"
	"github.com/vantagecrm/crm-backend/internal/platform/logger"
)

type OpportunityService interface {
	List(dbc dbctx.Context) ([]*types.Opportunity, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Opportunity, error)
	ListByCustomer(dbc dbctx.Context, customerID uuid.UUID) ([]*types.Opportunity, error)
	ListByStatus(dbc dbctx.Context, status string) ([]*types.Opportunity, error)
	ListByStage(dbc dbctx.Context, stage string) ([]*types.Opportunity, error)
	ListClosingBetween(dbc dbctx.Context, startDate, endDate time.Time) ([]*types.Opportunity, error)
	ListHighValue(dbc dbctx.Context, threshold decimal.Decimal) ([]*types.Opportunity, error)
	TotalValueByStatus(dbc dbctx.Context, status string) (decimal.Decimal, error)
	Create(dbc dbctx.Context, opportunity *types.Opportunity) (*types.Opportunity, error)
	Update(dbc dbctx.Context, id uuid.UUID, opportunity *types.Opportunity) (*types.Opportunity, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type opportunityService struct {
	db              *gorm.DB
	log             *logger.Logger
	opportunityRepo repos.OpportunityRepo
	customerRepo    repos.CustomerRepo
}

func NewOpportunityService(db *gorm.DB, log *logger.Logger, opportunityRepo repos.OpportunityRepo, customerRepo repos.CustomerRepo) OpportunityService {
	serviceLog := log.With("service", "OpportunityService")
	return &opportunityService{
		db:              db,
		log:             serviceLog,
		opportunityRepo: opportunityRepo,
		customerRepo:    customerRepo,
	}
}

func (os *opportunityService) List(dbc dbctx.Context) ([]*types.Opportunity, error) {
	return os.opportunityRepo.List(dbc.Ctx, dbc.Tx)
}

func (os *opportunityService) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Opportunity, error) {
	opportunity, err := os.opportunityRepo.GetByID(dbc.Ctx, dbc.Tx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch opportunity: %w", err)
	}
	if opportunity == nil {
		return nil, apierr.NotFound(fmt.Errorf("opportunity %s does not exist", id))
	}
	return opportunity, nil
}

func (os *opportunityService) ListByCustomer(dbc dbctx.Context, customerID uuid.UUID) ([]*types.Opportunity, error) {
	customer, err := os.customerRepo.GetByID(dbc.Ctx, dbc.Tx, customerID)
	if err != nil {
		return nil, fmt.Errorf("fetch customer: %w", err)
	}
	if customer == nil {
		return nil, apierr.NotFound(fmt.Errorf("customer %s does not exist", customerID))
	}
	return os.opportunityRepo.ListByCustomer(dbc.Ctx, dbc.Tx, customerID)
}

func (os *opportunityService) ListByStatus(dbc dbctx.Context, status string) ([]*types.Opportunity, error) {
	return os.opportunityRepo.ListByStatus(dbc.Ctx, dbc.Tx, status)
}

func (os *opportunityService) ListByStage(dbc dbctx.Context, stage string) ([]*types.Opportunity, error) {
	return os.opportunityRepo.ListByStage(dbc.Ctx, dbc.Tx, stage)
}

func (os *opportunityService) ListClosingBetween(dbc dbctx.Context, startDate, endDate time.Time) ([]*types.Opportunity, error) {
	return os.opportunityRepo.ListClosingBetween(dbc.Ctx, dbc.Tx, startDate, endDate)
}

func (os *opportunityService) ListHighValue(dbc dbctx.Context, threshold decimal.Decimal) ([]*types.Opportunity, error) {
	return os.opportunityRepo.ListAmountGreaterThan(dbc.Ctx, dbc.Tx, threshold)
}

func (os *opportunityService) TotalValueByStatus(dbc dbctx.Context, status string) (decimal.Decimal, error) {
	return os.opportunityRepo.SumAmountByStatus(dbc.Ctx, dbc.Tx, status)
}

func (os *opportunityService) Create(dbc dbctx.Context, opportunity *types.Opportunity) (*types.Opportunity, error) {
	if opportunity.ID != uuid.Nil {
		return nil, apierr.IdentifierConflict(fmt.Errorf("create payload must not carry an id"))
	}

	var created *types.Opportunity
	err := runInWriteTx(os.db, dbc, func(tx *gorm.DB) error {
		if err := os.resolveCustomer(dbc, tx, opportunity); err != nil {
			return err
		}

		now := time.Now().UTC()
		opportunity.ID = uuid.New()
		opportunity.CreatedAt = now
		opportunity.UpdatedAt = now

		var err error
		created, err = os.opportunityRepo.Create(dbc.Ctx, tx, opportunity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (os *opportunityService) Update(dbc dbctx.Context, id uuid.UUID, opportunity *types.Opportunity) (*types.Opportunity, error) {
	var updated *types.Opportunity
	err := runInWriteTx(os.db, dbc, func(tx *gorm.DB) error {
		existing, err := os.opportunityRepo.GetByID(dbc.Ctx, tx, id)
		if err != nil {
			return fmt.Errorf("fetch opportunity: %w", err)
		}
		if existing == nil {
			return apierr.NotFound(fmt.Errorf("opportunity %s does not exist", id))
		}

		if err := os.resolveCustomer(dbc, tx, opportunity); err != nil {
			return err
		}

		opportunity.ID = id
		opportunity.CreatedAt = existing.CreatedAt
		opportunity.UpdatedAt = time.Now().UTC()

		updated, err = os.opportunityRepo.Save(dbc.Ctx, tx, opportunity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (os *opportunityService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return runInWriteTx(os.db, dbc, func(tx *gorm.DB) error {
		existing, err := os.opportunityRepo.GetByID(dbc.Ctx, tx, id)
		if err != nil {
			return fmt.Errorf("fetch opportunity: %w", err)
		}
		if existing == nil {
			return apierr.NotFound(fmt.Errorf("opportunity %s does not exist", id))
		}
		return os.opportunityRepo.Delete(dbc.Ctx, tx, id)
	})
}

func (os *opportunityService) resolveCustomer(dbc dbctx.Context, tx *gorm.DB, opportunity *types.Opportunity) error {
	customerID, customer, err := resolveCustomerRef(dbc.Ctx, tx, os.customerRepo, opportunity.CustomerID, opportunity.Customer)
	if err != nil {
		return err
	}
	opportunity.CustomerID = customerID
	opportunity.Customer = customer
	return nil
}
