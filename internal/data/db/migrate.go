package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/vantagecrm/crm-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Customer{},
		&types.Contact{},
		&types.Opportunity{},
		&types.Activity{},
		&types.Product{},
	)
}

// EnsureCRMIndexes creates the functional and partial indexes GORM tags cannot
// express: case-insensitive natural-key uniqueness and the single-primary-
// contact constraint.
func EnsureCRMIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("enable uuid-ossp: %w", err)
	}

	// Natural keys are unique case-insensitively.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_customer_company_name_ci
		ON customer (lower(company_name));
	`).Error; err != nil {
		return fmt.Errorf("create idx_customer_company_name_ci: %w", err)
	}
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_product_code_ci
		ON product (lower(code));
	`).Error; err != nil {
		return fmt.Errorf("create idx_product_code_ci: %w", err)
	}

	// At most one primary contact per customer, enforced by the store so two
	// concurrent promotions cannot both win. The contact service demotes
	// before it saves, in the same transaction, so well-formed writes never
	// trip this.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_contact_single_primary
		ON contact (customer_id)
		WHERE is_primary AND customer_id IS NOT NULL;
	`).Error; err != nil {
		return fmt.Errorf("create idx_contact_single_primary: %w", err)
	}

	// Reference columns used by the by-related-entity filters.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_contact_customer_id ON contact(customer_id);`).Error; err != nil {
		return fmt.Errorf("create idx_contact_customer_id: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_opportunity_customer_id ON opportunity(customer_id);`).Error; err != nil {
		return fmt.Errorf("create idx_opportunity_customer_id: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_activity_customer_id ON activity(customer_id);`).Error; err != nil {
		return fmt.Errorf("create idx_activity_customer_id: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_activity_contact_id ON activity(contact_id);`).Error; err != nil {
		return fmt.Errorf("create idx_activity_contact_id: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_activity_opportunity_id ON activity(opportunity_id);`).Error; err != nil {
		return fmt.Errorf("create idx_activity_opportunity_id: %w", err)
	}

	// Scheduled/recent activity listings.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_activity_scheduled_date ON activity(scheduled_date);`).Error; err != nil {
		return fmt.Errorf("create idx_activity_scheduled_date: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_activity_created_at ON activity(created_at DESC);`).Error; err != nil {
		return fmt.Errorf("create idx_activity_created_at: %w", err)
	}

	return nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureCRMIndexes(s.db); err != nil {
		s.log.Error("CRM index migration failed", "error", err)
		return err
	}
	return nil
}
