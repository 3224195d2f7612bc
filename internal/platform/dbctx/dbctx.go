package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
// Services open their own read-write transaction when Tx is nil.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}
