package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/vantagecrm/crm-backend/internal/domain"
	"github.com/vantagecrm/crm-backend/internal/platform/logger"
)

type OpportunityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, opportunity *types.Opportunity) (*types.Opportunity, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Opportunity, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Opportunity, error)
	ListByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) ([]*types.Opportunity, error)
	ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.Opportunity, error)
	ListByStage(ctx context.Context, tx *gorm.DB, stage string) ([]*types.Opportunity, error)
	ListClosingBetween(ctx context.Context, tx *gorm.DB, startDate, endDate time.Time) ([]*types.Opportunity, error)
	ListAmountGreaterThan(ctx context.Context, tx *gorm.DB, threshold decimal.Decimal) ([]*types.Opportunity, error)
	SumAmountByStatus(ctx context.Context, tx *gorm.DB, status string) (decimal.Decimal, error)
	Save(ctx context.Context, tx *gorm.DB, opportunity *types.Opportunity) (*types.Opportunity, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DeleteByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) error
}

type opportunityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOpportunityRepo(db *gorm.DB, baseLog *logger.Logger) OpportunityRepo {
	repoLog := baseLog.With("repo", "OpportunityRepo")
	return &opportunityRepo{db: db, log: repoLog}
}

func (or *opportunityRepo) Create(ctx context.Context, tx *gorm.DB, opportunity *types.Opportunity) (*types.Opportunity, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	if err := transaction.WithContext(ctx).Create(opportunity).Error; err != nil {
		return nil, err
	}
	return opportunity, nil
}

func (or *opportunityRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Opportunity, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Opportunity
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

func (or *opportunityRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Opportunity, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Opportunity
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *opportunityRepo) ListByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) ([]*types.Opportunity, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Opportunity
	if err := transaction.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *opportunityRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.Opportunity, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Opportunity
	if err := transaction.WithContext(ctx).
		Where("status = ?", status).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *opportunityRepo) ListByStage(ctx context.Context, tx *gorm.DB, stage string) ([]*types.Opportunity, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Opportunity
	if err := transaction.WithContext(ctx).
		Where("stage = ?", stage).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListClosingBetween is inclusive on both bounds.
func (or *opportunityRepo) ListClosingBetween(ctx context.Context, tx *gorm.DB, startDate, endDate time.Time) ([]*types.Opportunity, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Opportunity
	if err := transaction.WithContext(ctx).
		Where("closing_date BETWEEN ? AND ?", startDate, endDate).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *opportunityRepo) ListAmountGreaterThan(ctx context.Context, tx *gorm.DB, threshold decimal.Decimal) ([]*types.Opportunity, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Opportunity
	if err := transaction.WithContext(ctx).
		Where("amount > ?", threshold).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// SumAmountByStatus reports decimal zero, not NULL, when no rows match.
func (or *opportunityRepo) SumAmountByStatus(ctx context.Context, tx *gorm.DB, status string) (decimal.Decimal, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var total decimal.Decimal
	if err := transaction.WithContext(ctx).
		Model(&types.Opportunity{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (or *opportunityRepo) Save(ctx context.Context, tx *gorm.DB, opportunity *types.Opportunity) (*types.Opportunity, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	if err := transaction.WithContext(ctx).Save(opportunity).Error; err != nil {
		return nil, err
	}
	return opportunity, nil
}

func (or *opportunityRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Opportunity{}).Error
}

func (or *opportunityRepo) DeleteByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	return transaction.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&types.Opportunity{}).Error
}
