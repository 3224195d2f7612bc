package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vantagecrm/crm-backend/internal/data/repos"
	types "github.com/vantagecrm/crm-backend/internal/domain"
	"github.com/vantagecrm/crm-backend/internal/platform/apierr"
)

// The resolve* helpers are the reference half of the validation gate: a write
// payload may reference a related entity either by its id column or by a
// nested object carrying an id. The helpers resolve that id against the store
// and hand back the authoritative record, so a caller can never smuggle
// arbitrary nested field values in place of a true reference. A missing row
// is an invalid_reference rejection; no reference at all passes through as
// nils.

func resolveCustomerRef(ctx context.Context, tx *gorm.DB, repo repos.CustomerRepo, refID *uuid.UUID, nested *types.Customer) (*uuid.UUID, *types.Customer, error) {
	id := referencedID(refID, func() uuid.UUID {
		if nested == nil {
			return uuid.Nil
		}
		return nested.ID
	})
	if id == nil {
		return nil, nil, nil
	}
	customer, err := repo.GetByID(ctx, tx, *id)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve customer reference: %w", err)
	}
	if customer == nil {
		return nil, nil, apierr.InvalidReference(fmt.Errorf("customer %s does not exist", *id))
	}
	return &customer.ID, customer, nil
}

func resolveContactRef(ctx context.Context, tx *gorm.DB, repo repos.ContactRepo, refID *uuid.UUID, nested *types.Contact) (*uuid.UUID, *types.Contact, error) {
	id := referencedID(refID, func() uuid.UUID {
		if nested == nil {
			return uuid.Nil
		}
		return nested.ID
	})
	if id == nil {
		return nil, nil, nil
	}
	contact, err := repo.GetByID(ctx, tx, *id)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve contact reference: %w", err)
	}
	if contact == nil {
		return nil, nil, apierr.InvalidReference(fmt.Errorf("contact %s does not exist", *id))
	}
	return &contact.ID, contact, nil
}

func resolveOpportunityRef(ctx context.Context, tx *gorm.DB, repo repos.OpportunityRepo, refID *uuid.UUID, nested *types.Opportunity) (*uuid.UUID, *types.Opportunity, error) {
	id := referencedID(refID, func() uuid.UUID {
		if nested == nil {
			return uuid.Nil
		}
		return nested.ID
	})
	if id == nil {
		return nil, nil, nil
	}
	opportunity, err := repo.GetByID(ctx, tx, *id)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve opportunity reference: %w", err)
	}
	if opportunity == nil {
		return nil, nil, apierr.InvalidReference(fmt.Errorf("opportunity %s does not exist", *id))
	}
	return &opportunity.ID, opportunity, nil
}

// referencedID picks the id column when set, falling back to the nested
// object's id.
func referencedID(refID *uuid.UUID, nestedID func() uuid.UUID) *uuid.UUID {
	if refID != nil && *refID != uuid.Nil {
		id := *refID
		return &id
	}
	if id := nestedID(); id != uuid.Nil {
		return &id
	}
	return nil
}
