package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer owns its contacts and opportunities; deleting a customer cascades
// to both collections (explicit deletes in the service layer, no ORM-managed
// bidirectional graph).
type Customer struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CompanyName string    `gorm:"not null;column:company_name" json:"company_name"`
	Industry    string    `gorm:"column:industry" json:"industry"`
	Website     string    `gorm:"column:website" json:"website"`
	Status      string    `gorm:"not null;column:status" json:"status"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Customer) TableName() string { return "customer" }
