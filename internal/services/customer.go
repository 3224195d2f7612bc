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

type CustomerService interface {
	List(dbc dbctx.Context) ([]*types.Customer, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Customer, error)
	SearchByName(dbc dbctx.Context, name string) ([]*types.Customer, error)
	ListByStatus(dbc dbctx.Context, status string) ([]*types.Customer, error)
	ListByIndustry(dbc dbctx.Context, industry string) ([]*types.Customer, error)
	Create(dbc dbctx.Context, customer *types.Customer) (*types.Customer, error)
	Update(dbc dbctx.Context, id uuid.UUID, customer *types.Customer) (*types.Customer, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type customerService struct {
	db              *gorm.DB
	log             *logger.Logger
	customerRepo    repos.CustomerRepo
	contactRepo     repos.ContactRepo
	opportunityRepo repos.OpportunityRepo
}

func NewCustomerService(db *gorm.DB, log *logger.Logger, customerRepo repos.CustomerRepo, contactRepo repos.ContactRepo, opportunityRepo repos.OpportunityRepo) CustomerService {
	serviceLog := log.With("service", "CustomerService")
	return &customerService{
		db:              db,
		log:             serviceLog,
		customerRepo:    customerRepo,
		contactRepo:     contactRepo,
		opportunityRepo: opportunityRepo,
	}
}

func (cs *customerService) List(dbc dbctx.Context) ([]*types.Customer, error) {
	return cs.customerRepo.List(dbc.Ctx, dbc.Tx)
}

func (cs *customerService) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Customer, error) {
	customer, err := cs.customerRepo.GetByID(dbc.Ctx, dbc.Tx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch customer: %w", err)
	}
	if customer == nil {
		return nil, apierr.NotFound(fmt.Errorf("customer %s does not exist", id))
	}
	return customer, nil
}

func (cs *customerService) SearchByName(dbc dbctx.Context, name string) ([]*types.Customer, error) {
	return cs.customerRepo.SearchByCompanyName(dbc.Ctx, dbc.Tx, name)
}

func (cs *customerService) ListByStatus(dbc dbctx.Context, status string) ([]*types.Customer, error) {
	return cs.customerRepo.ListByStatus(dbc.Ctx, dbc.Tx, status)
}

func (cs *customerService) ListByIndustry(dbc dbctx.Context, industry string) ([]*types.Customer, error) {
	return cs.customerRepo.ListByIndustry(dbc.Ctx, dbc.Tx, industry)
}

func (cs *customerService) Create(dbc dbctx.Context, customer *types.Customer) (*types.Customer, error) {
	if customer.ID != uuid.Nil {
		return nil, apierr.IdentifierConflict(fmt.Errorf("create payload must not carry an id"))
	}

	var created *types.Customer
	err := runInWriteTx(cs.db, dbc, func(tx *gorm.DB) error {
		taken, err := cs.customerRepo.CompanyNameExists(dbc.Ctx, tx, customer.CompanyName)
		if err != nil {
			return fmt.Errorf("check company name: %w", err)
		}
		if taken {
			return apierr.DuplicateKey(fmt.Errorf("company name %q is taken", customer.CompanyName))
		}

		now := time.Now().UTC()
		customer.ID = uuid.New()
		customer.CreatedAt = now
		customer.UpdatedAt = now

		created, err = cs.customerRepo.Create(dbc.Ctx, tx, customer)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update is a full-record replace; the stored CreatedAt is carried forward
// and the path id wins over any body id.
func (cs *customerService) Update(dbc dbctx.Context, id uuid.UUID, customer *types.Customer) (*types.Customer, error) {
	var updated *types.Customer
	err := runInWriteTx(cs.db, dbc, func(tx *gorm.DB) error {
		existing, err := cs.customerRepo.GetByID(dbc.Ctx, tx, id)
		if err != nil {
			return fmt.Errorf("fetch customer: %w", err)
		}
		if existing == nil {
			return apierr.NotFound(fmt.Errorf("customer %s does not exist", id))
		}

		customer.ID = id
		customer.CreatedAt = existing.CreatedAt
		customer.UpdatedAt = time.Now().UTC()

		updated, err = cs.customerRepo.Save(dbc.Ctx, tx, customer)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the customer and cascades to its owned contacts and
// opportunities in the same transaction.
func (cs *customerService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return runInWriteTx(cs.db, dbc, func(tx *gorm.DB) error {
		existing, err := cs.customerRepo.GetByID(dbc.Ctx, tx, id)
		if err != nil {
			return fmt.Errorf("fetch customer: %w", err)
		}
		if existing == nil {
			return apierr.NotFound(fmt.Errorf("customer %s does not exist", id))
		}

		if err := cs.contactRepo.DeleteByCustomer(dbc.Ctx, tx, id); err != nil {
			return fmt.Errorf("delete customer contacts: %w", err)
		}
		if err := cs.opportunityRepo.DeleteByCustomer(dbc.Ctx, tx, id); err != nil {
			return fmt.Errorf("delete customer opportunities: %w", err)
		}
		return cs.customerRepo.Delete(dbc.Ctx, tx, id)
	})
}
