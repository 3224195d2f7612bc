package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contact belongs to at most one customer. At most one contact per customer
// carries IsPrimary at the end of any successful save; the contact service
// demotes prior primaries inside the save transaction and a partial unique
// index backs the invariant at the store level.
type Contact struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FirstName string    `gorm:"column:first_name" json:"first_name"`
	LastName  string    `gorm:"column:last_name" json:"last_name"`
	Email     string    `gorm:"column:email" json:"email"`
	IsPrimary bool      `gorm:"not null;default:false;column:is_primary" json:"is_primary"`

	CustomerID *uuid.UUID `gorm:"type:uuid;column:customer_id" json:"customer_id,omitempty"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Contact) TableName() string { return "contact" }
