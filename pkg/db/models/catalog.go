package models

import "github.com/google/uuid"

// CarMakeOption is a vocabulary entry for car manufacturers.
type CarMakeOption struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyName string    `gorm:"column:company_name;not null"`
}

// String implements fmt.Stringer.
func (m CarMakeOption) String() string {
	return m.CompanyName
}

// CarModelOption is a vocabulary entry for car models. It belongs to exactly
// one make and goes away with it.
type CarModelOption struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	MakeID    uuid.UUID      `gorm:"column:make_id;type:uuid;not null"`
	Make      *CarMakeOption `gorm:"foreignKey:MakeID;constraint:OnDelete:CASCADE"`
	ModelName string         `gorm:"column:model_name;not null"`
}

// String implements fmt.Stringer.
func (m CarModelOption) String() string {
	return m.ModelName
}

// CarColorOption is a vocabulary entry for car colors.
type CarColorOption struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ColorName string    `gorm:"column:color_name;not null"`
}

// String implements fmt.Stringer.
func (c CarColorOption) String() string {
	return c.ColorName
}
