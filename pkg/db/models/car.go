package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/openlot/dealership-backend/pkg/errors"
	"github.com/openlot/dealership-backend/pkg/money"
)

// ErrNegativePrice rejects negative monetary values on every price path.
var ErrNegativePrice = pkgerrors.New(pkgerrors.CodeDomain, "price should not be negative")

// Car tracks an individual inventory entry and whether it has been sold.
// Prices are stored in cents; sold state is defined by sold_date alone.
//
// The accessors below only mutate the struct. Persisting a change is the
// caller's job (internal/cars services load, mutate, then save explicitly).
type Car struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	DealershipID   uuid.UUID       `gorm:"column:dealership_id;type:uuid;not null"`
	Dealership     *Dealership     `gorm:"foreignKey:DealershipID;constraint:OnDelete:CASCADE"`
	MakeID         uuid.UUID       `gorm:"column:make_id;type:uuid;not null"`
	Make           *CarMakeOption  `gorm:"foreignKey:MakeID;constraint:OnDelete:RESTRICT"`
	ModelID        uuid.UUID       `gorm:"column:model_id;type:uuid;not null"`
	Model          *CarModelOption `gorm:"foreignKey:ModelID;constraint:OnDelete:RESTRICT"`
	ColorID        uuid.UUID       `gorm:"column:color_id;type:uuid;not null"`
	Color          *CarColorOption `gorm:"foreignKey:ColorID;constraint:OnDelete:RESTRICT"`
	Year           int             `gorm:"column:year;not null"`
	Mileage        int             `gorm:"column:mileage;not null"`
	ListPriceCents int64           `gorm:"column:list_price_cents;not null"`
	SoldPriceCents *int64          `gorm:"column:sold_price_cents"`
	SoldDate       *time.Time      `gorm:"column:sold_date;type:date"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// IsSold reports whether the car has left the lot, based on sold_date.
func (c *Car) IsSold() bool {
	return c.SoldDate != nil
}

// ListPrice returns the listing price in major units.
func (c *Car) ListPrice() float64 {
	return money.FromCents(c.ListPriceCents)
}

// SetListPrice validates and sets the listing price from a major-unit amount.
func (c *Car) SetListPrice(amount float64) error {
	if amount < 0 {
		return ErrNegativePrice
	}
	c.ListPriceCents = money.ToCents(amount)
	return nil
}

// SoldPrice returns the sale price in major units. The second return is false
// when the car has never had a sale price recorded.
func (c *Car) SoldPrice() (float64, bool) {
	if c.SoldPriceCents == nil {
		return 0, false
	}
	return money.FromCents(*c.SoldPriceCents), true
}

// SetSoldPrice validates and sets the sale price from a major-unit amount.
func (c *Car) SetSoldPrice(amount float64) error {
	if amount < 0 {
		return ErrNegativePrice
	}
	cents := money.ToCents(amount)
	c.SoldPriceCents = &cents
	return nil
}

// MarkSold stamps the sale price and date together. Callers never set one
// without the other through this path.
func (c *Car) MarkSold(amount float64, soldDate time.Time) error {
	if err := c.SetSoldPrice(amount); err != nil {
		return err
	}
	day := soldDate
	c.SoldDate = &day
	return nil
}

// String implements fmt.Stringer, e.g. "Ford Escape (2007)".
func (c Car) String() string {
	makeName, modelName := "?", "?"
	if c.Make != nil {
		makeName = c.Make.CompanyName
	}
	if c.Model != nil {
		modelName = c.Model.ModelName
	}
	return fmt.Sprintf("%s %s (%d)", makeName, modelName, c.Year)
}
