package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActivityStatusPlanned   = "Planned"
	ActivityStatusCompleted = "Completed"
)

// Activity optionally references a customer, a contact and/or an opportunity;
// the three references are independent, not mutually exclusive.
// CompletedDate is stamped only by the complete transition.
type Activity struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Type          string     `gorm:"not null;column:type" json:"type"`
	Status        string     `gorm:"not null;column:status" json:"status"`
	ScheduledDate *time.Time `gorm:"column:scheduled_date" json:"scheduled_date,omitempty"`
	CompletedDate *time.Time `gorm:"column:completed_date" json:"completed_date,omitempty"`

	CustomerID *uuid.UUID `gorm:"type:uuid;column:customer_id" json:"customer_id,omitempty"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	ContactID *uuid.UUID `gorm:"type:uuid;column:contact_id" json:"contact_id,omitempty"`
	Contact   *Contact   `gorm:"foreignKey:ContactID" json:"contact,omitempty"`

	OpportunityID *uuid.UUID   `gorm:"type:uuid;column:opportunity_id" json:"opportunity_id,omitempty"`
	Opportunity   *Opportunity `gorm:"foreignKey:OpportunityID" json:"opportunity,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Activity) TableName() string { return "activity" }
