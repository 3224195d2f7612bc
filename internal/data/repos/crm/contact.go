package crm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/vantagecrm/crm-backend/internal/domain"
	"github.com/vantagecrm/crm-backend/internal/platform/logger"
)

type ContactRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contact *types.Contact) (*types.Contact, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Contact, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Contact, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Contact, error)
	ListByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) ([]*types.Contact, error)
	ListPrimary(ctx context.Context, tx *gorm.DB) ([]*types.Contact, error)
	ListPrimaryByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) ([]*types.Contact, error)
	SearchByName(ctx context.Context, tx *gorm.DB, name string) ([]*types.Contact, error)
	SetPrimary(ctx context.Context, tx *gorm.DB, id uuid.UUID, isPrimary bool) error
	Save(ctx context.Context, tx *gorm.DB, contact *types.Contact) (*types.Contact, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DeleteByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) error
}

type contactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	repoLog := baseLog.With("repo", "ContactRepo")
	return &contactRepo{db: db, log: repoLog}
}

func (cr *contactRepo) Create(ctx context.Context, tx *gorm.DB, contact *types.Contact) (*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Create(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

func (cr *contactRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Contact
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// GetByEmail matches case-insensitively and returns the first hit; email is a
// lookup key, not a unique column.
func (cr *contactRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Contact
	if err := transaction.WithContext(ctx).
		Where("lower(email) = lower(?)", email).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (cr *contactRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Contact
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contactRepo) ListByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) ([]*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Contact
	if err := transaction.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contactRepo) ListPrimary(ctx context.Context, tx *gorm.DB) ([]*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Contact
	if err := transaction.WithContext(ctx).
		Where("is_primary = ?", true).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contactRepo) ListPrimaryByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) ([]*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Contact
	if err := transaction.WithContext(ctx).
		Where("customer_id = ? AND is_primary = ?", customerID, true).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contactRepo) SearchByName(ctx context.Context, tx *gorm.DB, name string) ([]*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	pattern := containsPattern(name)
	var results []*types.Contact
	if err := transaction.WithContext(ctx).
		Where(`first_name ILIKE ? ESCAPE '\' OR last_name ILIKE ? ESCAPE '\'`, pattern, pattern).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contactRepo) SetPrimary(ctx context.Context, tx *gorm.DB, id uuid.UUID, isPrimary bool) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Contact{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_primary": isPrimary,
			"updated_at": gorm.Expr("now()"),
		}).Error
}

func (cr *contactRepo) Save(ctx context.Context, tx *gorm.DB, contact *types.Contact) (*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Save(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

func (cr *contactRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Contact{}).Error
}

func (cr *contactRepo) DeleteByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&types.Contact{}).Error
}
