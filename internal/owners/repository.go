package owners

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openlot/dealership-backend/pkg/db"
	"github.com/openlot/dealership-backend/pkg/db/models"
	pkgerrors "github.com/openlot/dealership-backend/pkg/errors"
)

// Repository provides persistence for owner accounts.
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

// Create inserts a new owner row.
func (r *Repository) Create(ctx context.Context, owner *models.Owner) error {
	if err := r.db.WithContext(ctx).Create(owner).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "owner email already registered")
		}
		return err
	}
	return nil
}

// FindByID loads an owner by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Owner, error) {
	var owner models.Owner
	if err := r.db.WithContext(ctx).First(&owner, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "owner not found")
		}
		return nil, err
	}
	return &owner, nil
}

// FindByEmail loads an owner by email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Owner, error) {
	var owner models.Owner
	if err := r.db.WithContext(ctx).First(&owner, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "owner not found")
		}
		return nil, err
	}
	return &owner, nil
}

// Delete removes an owner. The schema blocks the delete while any dealership
// still references the account.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Owner{}).Error
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.Wrap(pkgerrors.CodeProtected, err, "owner still referenced by a dealership")
		}
		return err
	}
	return nil
}
