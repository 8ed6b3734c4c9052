package cars

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openlot/dealership-backend/pkg/db"
	"github.com/openlot/dealership-backend/pkg/db/models"
	pkgerrors "github.com/openlot/dealership-backend/pkg/errors"
)

// Filter narrows car queries. Nil fields are ignored, so the zero value
// matches every car in the store.
type Filter struct {
	DealershipID *uuid.UUID
	OnLot        *bool
	MileageBelow *int
	MakeName     *string
	ColorName    *string
}

// Repository provides persistence for cars.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new car row. Missing referenced rows surface as not-found.
func (r *Repository) Create(ctx context.Context, car *models.Car) error {
	if err := r.db.WithContext(ctx).Create(car).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "referenced dealership or option not found")
		}
		return err
	}
	return nil
}

// FindByID loads a car with its make, model, and color preloaded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	var car models.Car
	err := r.db.WithContext(ctx).
		Preload("Make").
		Preload("Model").
		Preload("Color").
		First(&car, "id = ?", id).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "car not found")
		}
		return nil, err
	}
	return &car, nil
}

// UpdateListPrice persists a new listing price.
func (r *Repository) UpdateListPrice(ctx context.Context, car *models.Car) error {
	return r.db.WithContext(ctx).
		Model(&models.Car{}).
		Where("id = ?", car.ID).
		Update("list_price_cents", car.ListPriceCents).
		Error
}

// UpdateSoldPrice persists a new sale price without touching the sold date.
func (r *Repository) UpdateSoldPrice(ctx context.Context, car *models.Car) error {
	return r.db.WithContext(ctx).
		Model(&models.Car{}).
		Where("id = ?", car.ID).
		Update("sold_price_cents", car.SoldPriceCents).
		Error
}

// SaveSale persists the sale price and date in one statement so a reader can
// never observe one field without the other.
func (r *Repository) SaveSale(ctx context.Context, car *models.Car) error {
	return r.db.WithContext(ctx).
		Model(&models.Car{}).
		Where("id = ?", car.ID).
		Updates(map[string]any{
			"sold_price_cents": car.SoldPriceCents,
			"sold_date":        car.SoldDate,
		}).
		Error
}

// SetSoldDate persists a manual sold-date assignment. The data layer allows
// this independently of the sale operation; keeping price and date coupled is
// the caller's responsibility on this path.
func (r *Repository) SetSoldDate(ctx context.Context, id uuid.UUID, soldDate *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Car{}).
		Where("id = ?", id).
		Update("sold_date", soldDate).
		Error
}

// Delete removes a car by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Car{}).Error
}

// Count returns the number of cars matching the filter. This is the
// conditional aggregate the dealership reports build on: it counts rows
// matching a predicate, not all related rows.
func (r *Repository) Count(ctx context.Context, filter Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Car{}), filter).
		Count(&count).
		Error
	return count, err
}

// List returns the cars matching the filter with vocabulary rows preloaded.
// orderBy clauses apply in the order given; without any, insertion order from
// the underlying store is kept.
func (r *Repository) List(ctx context.Context, filter Filter, orderBy ...string) ([]models.Car, error) {
	qb := r.applyFilter(r.db.WithContext(ctx).Model(&models.Car{}), filter).
		Preload("Make").
		Preload("Model").
		Preload("Color")
	for _, clause := range orderBy {
		qb = qb.Order(clause)
	}
	var rows []models.Car
	err := qb.Find(&rows).Error
	return rows, err
}

func (r *Repository) applyFilter(qb *gorm.DB, filter Filter) *gorm.DB {
	if filter.DealershipID != nil {
		qb = qb.Where("cars.dealership_id = ?", *filter.DealershipID)
	}
	if filter.OnLot != nil {
		if *filter.OnLot {
			qb = qb.Where("cars.sold_date IS NULL")
		} else {
			qb = qb.Where("cars.sold_date IS NOT NULL")
		}
	}
	if filter.MileageBelow != nil {
		qb = qb.Where("cars.mileage < ?", *filter.MileageBelow)
	}
	if filter.MakeName != nil {
		qb = qb.Joins("JOIN car_make_options ON car_make_options.id = cars.make_id").
			Where("car_make_options.company_name = ?", *filter.MakeName)
	}
	if filter.ColorName != nil {
		qb = qb.Joins("JOIN car_color_options ON car_color_options.id = cars.color_id").
			Where("car_color_options.color_name = ?", *filter.ColorName)
	}
	return qb
}
