package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/vantagecrm/crm-backend/internal/domain"
	"github.com/vantagecrm/crm-backend/internal/platform/logger"
)

type ActivityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, activity *types.Activity) (*types.Activity, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Activity, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Activity, error)
	ListByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) ([]*types.Activity, error)
	ListByContact(ctx context.Context, tx *gorm.DB, contactID uuid.UUID) ([]*types.Activity, error)
	ListByOpportunity(ctx context.Context, tx *gorm.DB, opportunityID uuid.UUID) ([]*types.Activity, error)
	ListByType(ctx context.Context, tx *gorm.DB, activityType string) ([]*types.Activity, error)
	ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.Activity, error)
	ListScheduledBetween(ctx context.Context, tx *gorm.DB, startDate, endDate time.Time) ([]*types.Activity, error)
	ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Activity, error)
	ListUpcoming(ctx context.Context, tx *gorm.DB, after time.Time, status string) ([]*types.Activity, error)
	Save(ctx context.Context, tx *gorm.DB, activity *types.Activity) (*types.Activity, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type activityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityRepo(db *gorm.DB, baseLog *logger.Logger) ActivityRepo {
	repoLog := baseLog.With("repo", "ActivityRepo")
	return &activityRepo{db: db, log: repoLog}
}

func (ar *activityRepo) Create(ctx context.Context, tx *gorm.DB, activity *types.Activity) (*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if err := transaction.WithContext(ctx).Create(activity).Error; err != nil {
		return nil, err
	}
	return activity, nil
}

func (ar *activityRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Activity
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

func (ar *activityRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Activity
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *activityRepo) ListByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Activity
	if err := transaction.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *activityRepo) ListByContact(ctx context.Context, tx *gorm.DB, contactID uuid.UUID) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Activity
	if err := transaction.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *activityRepo) ListByOpportunity(ctx context.Context, tx *gorm.DB, opportunityID uuid.UUID) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Activity
	if err := transaction.WithContext(ctx).
		Where("opportunity_id = ?", opportunityID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *activityRepo) ListByType(ctx context.Context, tx *gorm.DB, activityType string) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Activity
	if err := transaction.WithContext(ctx).
		Where("type = ?", activityType).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *activityRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Activity
	if err := transaction.WithContext(ctx).
		Where("status = ?", status).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListScheduledBetween is inclusive on both bounds.
func (ar *activityRepo) ListScheduledBetween(ctx context.Context, tx *gorm.DB, startDate, endDate time.Time) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Activity
	if err := transaction.WithContext(ctx).
		Where("scheduled_date BETWEEN ? AND ?", startDate, endDate).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *activityRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Activity
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListUpcoming returns activities scheduled strictly after the given instant
// with the given status, soonest first.
func (ar *activityRepo) ListUpcoming(ctx context.Context, tx *gorm.DB, after time.Time, status string) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Activity
	if err := transaction.WithContext(ctx).
		Where("scheduled_date > ? AND status = ?", after, status).
		Order("scheduled_date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *activityRepo) Save(ctx context.Context, tx *gorm.DB, activity *types.Activity) (*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if err := transaction.WithContext(ctx).Save(activity).Error; err != nil {
		return nil, err
	}
	return activity, nil
}

func (ar *activityRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Activity{}).Error
}
