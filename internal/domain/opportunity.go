package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Opportunity lifecycle statuses are free-form category strings; the values
// the frontend uses are New, Qualified, Proposal, Negotiation, Closed Won and
// Closed Lost.
type Opportunity struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string          `gorm:"not null;column:name" json:"name"`
	Description string          `gorm:"column:description" json:"description"`
	Status      string          `gorm:"not null;column:status" json:"status"`
	Stage       string          `gorm:"column:stage" json:"stage"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);column:amount" json:"amount"`
	ClosingDate *time.Time      `gorm:"type:date;column:closing_date" json:"closing_date,omitempty"`
	Probability decimal.Decimal `gorm:"type:decimal(5,2);column:probability" json:"probability"`
	Notes       string          `gorm:"size:1000;column:notes" json:"notes"`

	CustomerID *uuid.UUID `gorm:"type:uuid;column:customer_id" json:"customer_id,omitempty"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Opportunity) TableName() string { return "opportunity" }
