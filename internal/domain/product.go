package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product code is the natural key: required and globally unique, compared
// case-insensitively.
type Product struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code      string          `gorm:"not null;column:code" json:"code"`
	Name      string          `gorm:"not null;column:name" json:"name"`
	Category  string          `gorm:"column:category" json:"category"`
	Status    string          `gorm:"column:status" json:"status"`
	ListPrice decimal.Decimal `gorm:"type:decimal(10,2);column:list_price" json:"list_price"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Product) TableName() string { return "product" }
