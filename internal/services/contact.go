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

type ContactService interface {
	List(dbc dbctx.Context) ([]*types.Contact, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Contact, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.Contact, error)
	ListByCustomer(dbc dbctx.Context, customerID uuid.UUID) ([]*types.Contact, error)
	ListPrimary(dbc dbctx.Context, customerID *uuid.UUID) ([]*types.Contact, error)
	SearchByName(dbc dbctx.Context, name string) ([]*types.Contact, error)
	Create(dbc dbctx.Context, contact *types.Contact) (*types.Contact, error)
	Update(dbc dbctx.Context, id uuid.UUID, contact *types.Contact) (*types.Contact, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type contactService struct {
	db           *gorm.DB
	log          *logger.Logger
	contactRepo  repos.ContactRepo
	customerRepo repos.CustomerRepo
}

func NewContactService(db *gorm.DB, log *logger.Logger, contactRepo repos.ContactRepo, customerRepo repos.CustomerRepo) ContactService {
	serviceLog := log.With("service", "ContactService")
	return &contactService{
		db:           db,
		log:          serviceLog,
		contactRepo:  contactRepo,
		customerRepo: customerRepo,
	}
}

func (cs *contactService) List(dbc dbctx.Context) ([]*types.Contact, error) {
	return cs.contactRepo.List(dbc.Ctx, dbc.Tx)
}

func (cs *contactService) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Contact, error) {
	contact, err := cs.contactRepo.GetByID(dbc.Ctx, dbc.Tx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch contact: %w", err)
	}
	if contact == nil {
		return nil, apierr.NotFound(fmt.Errorf("contact %s does not exist", id))
	}
	return contact, nil
}

func (cs *contactService) GetByEmail(dbc dbctx.Context, email string) (*types.Contact, error) {
	contact, err := cs.contactRepo.GetByEmail(dbc.Ctx, dbc.Tx, email)
	if err != nil {
		return nil, fmt.Errorf("fetch contact by email: %w", err)
	}
	if contact == nil {
		return nil, apierr.NotFound(fmt.Errorf("no contact with that email"))
	}
	return contact, nil
}

func (cs *contactService) ListByCustomer(dbc dbctx.Context, customerID uuid.UUID) ([]*types.Contact, error) {
	customer, err := cs.customerRepo.GetByID(dbc.Ctx, dbc.Tx, customerID)
	if err != nil {
		return nil, fmt.Errorf("fetch customer: %w", err)
	}
	if customer == nil {
		return nil, apierr.NotFound(fmt.Errorf("customer %s does not exist", customerID))
	}
	return cs.contactRepo.ListByCustomer(dbc.Ctx, dbc.Tx, customerID)
}

// ListPrimary spans all customers unless customerID narrows it to one; a
// nonexistent customer is a not-found, not an empty list.
func (cs *contactService) ListPrimary(dbc dbctx.Context, customerID *uuid.UUID) ([]*types.Contact, error) {
	if customerID == nil {
		return cs.contactRepo.ListPrimary(dbc.Ctx, dbc.Tx)
	}
	customer, err := cs.customerRepo.GetByID(dbc.Ctx, dbc.Tx, *customerID)
	if err != nil {
		return nil, fmt.Errorf("fetch customer: %w", err)
	}
	if customer == nil {
		return nil, apierr.NotFound(fmt.Errorf("customer %s does not exist", *customerID))
	}
	return cs.contactRepo.ListPrimaryByCustomer(dbc.Ctx, dbc.Tx, *customerID)
}

func (cs *contactService) SearchByName(dbc dbctx.Context, name string) ([]*types.Contact, error) {
	return cs.contactRepo.SearchByName(dbc.Ctx, dbc.Tx, name)
}

func (cs *contactService) Create(dbc dbctx.Context, contact *types.Contact) (*types.Contact, error) {
	if contact.ID != uuid.Nil {
		return nil, apierr.IdentifierConflict(fmt.Errorf("create payload must not carry an id"))
	}

	var created *types.Contact
	err := runInWriteTx(cs.db, dbc, func(tx *gorm.DB) error {
		if err := cs.resolveCustomer(dbc, tx, contact); err != nil {
			return err
		}

		now := time.Now().UTC()
		contact.ID = uuid.New()
		contact.CreatedAt = now
		contact.UpdatedAt = now

		if err := cs.enforcePrimary(dbc, tx, contact); err != nil {
			return err
		}
		var err error
		created, err = cs.contactRepo.Create(dbc.Ctx, tx, contact)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (cs *contactService) Update(dbc dbctx.Context, id uuid.UUID, contact *types.Contact) (*types.Contact, error) {
	var updated *types.Contact
	err := runInWriteTx(cs.db, dbc, func(tx *gorm.DB) error {
		existing, err := cs.contactRepo.GetByID(dbc.Ctx, tx, id)
		if err != nil {
			return fmt.Errorf("fetch contact: %w", err)
		}
		if existing == nil {
			return apierr.NotFound(fmt.Errorf("contact %s does not exist", id))
		}

		if err := cs.resolveCustomer(dbc, tx, contact); err != nil {
			return err
		}

		contact.ID = id
		contact.CreatedAt = existing.CreatedAt
		contact.UpdatedAt = time.Now().UTC()

		if err := cs.enforcePrimary(dbc, tx, contact); err != nil {
			return err
		}
		updated, err = cs.contactRepo.Save(dbc.Ctx, tx, contact)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (cs *contactService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return runInWriteTx(cs.db, dbc, func(tx *gorm.DB) error {
		existing, err := cs.contactRepo.GetByID(dbc.Ctx, tx, id)
		if err != nil {
			return fmt.Errorf("fetch contact: %w", err)
		}
		if existing == nil {
			return apierr.NotFound(fmt.Errorf("contact %s does not exist", id))
		}
		return cs.contactRepo.Delete(dbc.Ctx, tx, id)
	})
}

func (cs *contactService) resolveCustomer(dbc dbctx.Context, tx *gorm.DB, contact *types.Contact) error {
	customerID, customer, err := resolveCustomerRef(dbc.Ctx, tx, cs.customerRepo, contact.CustomerID, contact.Customer)
	if err != nil {
		return err
	}
	contact.CustomerID = customerID
	contact.Customer = customer
	return nil
}

// enforcePrimary keeps at most one primary contact per customer: when the
// incoming contact claims primary, every other primary for the same customer
// is demoted in the same transaction. The incoming contact always wins,
// however many prior primaries exist.
func (cs *contactService) enforcePrimary(dbc dbctx.Context, tx *gorm.DB, contact *types.Contact) error {
	if !contact.IsPrimary || contact.CustomerID == nil {
		return nil
	}
	primaries, err := cs.contactRepo.ListPrimaryByCustomer(dbc.Ctx, tx, *contact.CustomerID)
	if err != nil {
		return fmt.Errorf("list primary contacts: %w", err)
	}
	for _, other := range primaries {
		if other.ID == contact.ID {
			continue
		}
		if err := cs.contactRepo.SetPrimary(dbc.Ctx, tx, other.ID, false); err != nil {
			return fmt.Errorf("demote contact %s: %w", other.ID, err)
		}
		cs.log.Debug("Demoted prior primary contact", "contact_id", other.ID, "customer_id", *contact.CustomerID)
	}
	return nil
}
