package dealerships

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openlot/dealership-backend/pkg/db"
	"github.com/openlot/dealership-backend/pkg/db/models"
	pkgerrors "github.com/openlot/dealership-backend/pkg/errors"
)

// Repository provides persistence for dealerships.
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

// Create inserts a new dealership row. A missing owner surfaces as not-found.
func (r *Repository) Create(ctx context.Context, dealership *models.Dealership) error {
	if err := r.db.WithContext(ctx).Create(dealership).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "owner not found")
		}
		return err
	}
	return nil
}

// FindByID loads a dealership by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Dealership, error) {
	var dealership models.Dealership
	if err := r.db.WithContext(ctx).First(&dealership, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "dealership not found")
		}
		return nil, err
	}
	return &dealership, nil
}

// List returns all dealerships ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Dealership, error) {
	var rows []models.Dealership
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// Delete removes a dealership. Its cars cascade away with it.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Dealership{}).Error
}

// ActiveEstablished returns dealerships established strictly after
// yearThreshold whose count of unsold cars is at least minCount. The lot size
// is a conditional count over the cars relation, expressed as a correlated
// subquery so it ports across backends.
func (r *Repository) ActiveEstablished(ctx context.Context, yearThreshold, minCount int) ([]models.Dealership, error) {
	lotCount := r.db.Model(&models.Car{}).
		Select("COUNT(*)").
		Where("cars.dealership_id = dealerships.id AND cars.sold_date IS NULL")

	var rows []models.Dealership
	err := r.db.WithContext(ctx).
		Model(&models.Dealership{}).
		Where("year_established > ?", yearThreshold).
		Where("(?) >= ?", lotCount, minCount).
		Find(&rows).
		Error
	return rows, err
}
