package models

import (
	"time"

	"github.com/google/uuid"
)

// Dealership tracks each dealership instance. Its cars are removed with it,
// but the owning account is protected while the dealership exists.
type Dealership struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name            string    `gorm:"column:name;not null"`
	Tagline         *string   `gorm:"column:tagline"`
	YearEstablished int       `gorm:"column:year_established;not null"`
	OwnerID         uuid.UUID `gorm:"column:owner_id;type:uuid;not null"`
	Owner           *Owner    `gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT"`
	Cars            []Car     `gorm:"foreignKey:DealershipID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// String implements fmt.Stringer.
func (d Dealership) String() string {
	return d.Name
}
