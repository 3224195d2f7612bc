package crm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/vantagecrm/crm-backend/internal/domain"
	"github.com/vantagecrm/crm-backend/internal/platform/logger"
)

type CustomerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, customer *types.Customer) (*types.Customer, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Customer, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Customer, error)
	SearchByCompanyName(ctx context.Context, tx *gorm.DB, name string) ([]*types.Customer, error)
	ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.Customer, error)
	ListByIndustry(ctx context.Context, tx *gorm.DB, industry string) ([]*types.Customer, error)
	CompanyNameExists(ctx context.Context, tx *gorm.DB, companyName string) (bool, error)
	Save(ctx context.Context, tx *gorm.DB, customer *types.Customer) (*types.Customer, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type customerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCustomerRepo(db *gorm.DB, baseLog *logger.Logger) CustomerRepo {
	repoLog := baseLog.With("repo", "CustomerRepo")
	return &customerRepo{db: db, log: repoLog}
}

func (cr *customerRepo) Create(ctx context.Context, tx *gorm.DB, customer *types.Customer) (*types.Customer, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByID returns (nil, nil) when no row matches; callers decide whether that
// is a not-found condition.
func (cr *customerRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Customer, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Customer
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

func (cr *customerRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Customer, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Customer
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *customerRepo) SearchByCompanyName(ctx context.Context, tx *gorm.DB, name string) ([]*types.Customer, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Customer
	if err := transaction.WithContext(ctx).
		Where(`company_name ILIKE ? ESCAPE '\'`, containsPattern(name)).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *customerRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.Customer, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Customer
	if err := transaction.WithContext(ctx).
		Where("status = ?", status).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *customerRepo) ListByIndustry(ctx context.Context, tx *gorm.DB, industry string) ([]*types.Customer, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Customer
	if err := transaction.WithContext(ctx).
		Where("industry = ?", industry).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *customerRepo) CompanyNameExists(ctx context.Context, tx *gorm.DB, companyName string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Customer{}).
		Where("lower(company_name) = lower(?)", companyName).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *customerRepo) Save(ctx context.Context, tx *gorm.DB, customer *types.Customer) (*types.Customer, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (cr *customerRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Customer{}).Error
}
