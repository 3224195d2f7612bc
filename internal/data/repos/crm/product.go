package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/vantagecrm/crm-backend/internal/domain"
	"github.com/vantagecrm/crm-backend/internal/platform/logger"
)

type ProductRepo interface {
	Create(ctx context.Context, tx *gorm.DB, product *types.Product) (*types.Product, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Product, error)
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Product, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Product, error)
	SearchByName(ctx context.Context, tx *gorm.DB, name string) ([]*types.Product, error)
	ListByCategory(ctx context.Context, tx *gorm.DB, category string) ([]*types.Product, error)
	ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.Product, error)
	ListPriceLessThan(ctx context.Context, tx *gorm.DB, maxPrice decimal.Decimal) ([]*types.Product, error)
	ListPriceBetween(ctx context.Context, tx *gorm.DB, minPrice, maxPrice decimal.Decimal) ([]*types.Product, error)
	CodeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error)
	Save(ctx context.Context, tx *gorm.DB, product *types.Product) (*types.Product, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{db: db, log: repoLog}
}

func (pr *productRepo) Create(ctx context.Context, tx *gorm.DB, product *types.Product) (*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (pr *productRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Product
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

// GetByCode resolves case-insensitively, consistent with the uniqueness rule
// on the code column.
func (pr *productRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Product
	if err := transaction.WithContext(ctx).
		Where("lower(code) = lower(?)", code).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (pr *productRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Product
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) SearchByName(ctx context.Context, tx *gorm.DB, name string) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Product
	if err := transaction.WithContext(ctx).
		Where(`name ILIKE ? ESCAPE '\'`, containsPattern(name)).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) ListByCategory(ctx context.Context, tx *gorm.DB, category string) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Product
	if err := transaction.WithContext(ctx).
		Where("category = ?", category).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Product
	if err := transaction.WithContext(ctx).
		Where("status = ?", status).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListPriceLessThan is a strict upper bound.
func (pr *productRepo) ListPriceLessThan(ctx context.Context, tx *gorm.DB, maxPrice decimal.Decimal) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Product
	if err := transaction.WithContext(ctx).
		Where("list_price < ?", maxPrice).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListPriceBetween is inclusive on both bounds.
func (pr *productRepo) ListPriceBetween(ctx context.Context, tx *gorm.DB, minPrice, maxPrice decimal.Decimal) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Product
	if err := transaction.WithContext(ctx).
		Where("list_price BETWEEN ? AND ?", minPrice, maxPrice).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) CodeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Product{}).
		Where("lower(code) = lower(?)", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pr *productRepo) Save(ctx context.Context, tx *gorm.DB, product *types.Product) (*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (pr *productRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Product{}).Error
}
