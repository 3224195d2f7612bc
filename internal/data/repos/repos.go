package repos

import (
	"gorm.io/gorm"

	"github.com/vantagecrm/crm-backend/internal/data/repos/crm"
	"github.com/vantagecrm/crm-backend/internal/platform/logger"
)

type CustomerRepo = crm.CustomerRepo
type ContactRepo = crm.ContactRepo
type OpportunityRepo = crm.OpportunityRepo
type ActivityRepo = crm.ActivityRepo
type ProductRepo = crm.ProductRepo

func NewCustomerRepo(db *gorm.DB, baseLog *logger.Logger) CustomerRepo {
	return crm.NewCustomerRepo(db, baseLog)
}
func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	return crm.NewContactRepo(db, baseLog)
}
func NewOpportunityRepo(db *gorm.DB, baseLog *logger.Logger) OpportunityRepo {
	return crm.NewOpportunityRepo(db, baseLog)
}
func NewActivityRepo(db *gorm.DB, baseLog *logger.Logger) ActivityRepo {
	return crm.NewActivityRepo(db, baseLog)
}
func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return crm.NewProductRepo(db, baseLog)
}
