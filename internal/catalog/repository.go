package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openlot/dealership-backend/pkg/db"
	"github.com/openlot/dealership-backend/pkg/db/models"
	pkgerrors "github.com/openlot/dealership-backend/pkg/errors"
)

// Repository provides persistence for the make/model/color vocabularies.
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

// CreateMake inserts a manufacturer vocabulary entry.
func (r *Repository) CreateMake(ctx context.Context, make *models.CarMakeOption) error {
	return r.db.WithContext(ctx).Create(make).Error
}

// CreateModel inserts a model vocabulary entry under an existing make.
func (r *Repository) CreateModel(ctx context.Context, model *models.CarModelOption) error {
	err := r.db.WithContext(ctx).Create(model).Error
	if db.IsForeignKeyViolation(err) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "make not found for model option")
	}
	return err
}

// CreateColor inserts a color vocabulary entry.
func (r *Repository) CreateColor(ctx context.Context, color *models.CarColorOption) error {
	return r.db.WithContext(ctx).Create(color).Error
}

// FindMakeByName returns the make with the given company name.
func (r *Repository) FindMakeByName(ctx context.Context, name string) (*models.CarMakeOption, error) {
	var make models.CarMakeOption
	if err := r.db.WithContext(ctx).First(&make, "company_name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "make not found")
		}
		return nil, err
	}
	return &make, nil
}

// FindColorByName returns the color with the given name.
func (r *Repository) FindColorByName(ctx context.Context, name string) (*models.CarColorOption, error) {
	var color models.CarColorOption
	if err := r.db.WithContext(ctx).First(&color, "color_name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "color not found")
		}
		return nil, err
	}
	return &color, nil
}

// ListMakes returns all makes ordered by company name.
func (r *Repository) ListMakes(ctx context.Context) ([]models.CarMakeOption, error) {
	var rows []models.CarMakeOption
	err := r.db.WithContext(ctx).Order("company_name ASC").Find(&rows).Error
	return rows, err
}

// ListModelsByMake returns all model options belonging to the make.
func (r *Repository) ListModelsByMake(ctx context.Context, makeID uuid.UUID) ([]models.CarModelOption, error) {
	var rows []models.CarModelOption
	err := r.db.WithContext(ctx).
		Where("make_id = ?", makeID).
		Order("model_name ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListColors returns all colors ordered by name.
func (r *Repository) ListColors(ctx context.Context) ([]models.CarColorOption, error) {
	var rows []models.CarColorOption
	err := r.db.WithContext(ctx).Order("color_name ASC").Find(&rows).Error
	return rows, err
}

// DeleteMake removes a make. Its model options cascade away with it, but the
// delete is blocked while any car references the make.
func (r *Repository) DeleteMake(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CarMakeOption{}).Error
	if db.IsForeignKeyViolation(err) {
		return pkgerrors.Wrap(pkgerrors.CodeProtected, err, "make still referenced by a car")
	}
	return err
}

// DeleteModel removes a model option; blocked while any car references it.
func (r *Repository) DeleteModel(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CarModelOption{}).Error
	if db.IsForeignKeyViolation(err) {
		return pkgerrors.Wrap(pkgerrors.CodeProtected, err, "model still referenced by a car")
	}
	return err
}

// DeleteColor removes a color option; blocked while any car references it.
func (r *Repository) DeleteColor(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CarColorOption{}).Error
	if db.IsForeignKeyViolation(err) {
		return pkgerrors.Wrap(pkgerrors.CodeProtected, err, "color still referenced by a car")
	}
	return err
}
