package services

import (
	"gorm.io/gorm"

	"github.com/vantagecrm/crm-backend/internal/platform/dbctx"
)

// runInWriteTx executes fn inside the caller-supplied transaction when one is
// present on dbc, otherwise opens a new read-write transaction. Every guarded
// write (validate, enforce invariants, persist) runs through here so partial
// effects are never visible.
func runInWriteTx(db *gorm.DB, dbc dbctx.Context, fn func(tx *gorm.DB) error) error {
	if dbc.Tx != nil {
		return fn(dbc.Tx)
	}
	return db.WithContext(dbc.Ctx).Transaction(fn)
}
