package owners

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/openlot/dealership-backend/pkg/config"
	"github.com/openlot/dealership-backend/pkg/db/models"
	"github.com/openlot/dealership-backend/pkg/security"
	"github.com/openlot/dealership-backend/pkg/validate"
)

// Service exposes owner account operations.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.Owner, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Owner, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RegisterInput holds the payload to create an owner account.
type RegisterInput struct {
	Email     string `validate:"required,email"`
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Password  string `validate:"required,min=8"`
}

type service struct {
	repo      *Repository
	passwords config.PasswordConfig
}

// NewService constructs an owner service instance.
func NewService(repo *Repository, passwords config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("owner repository required")
	}
	return &service{repo: repo, passwords: passwords}, nil
}

// Register validates the input, hashes the password, and stores the account.
func (s *service) Register(ctx context.Context, input RegisterInput) (*models.Owner, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password, s.passwords)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	owner := &models.Owner{
		ID:           uuid.New(),
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Owner, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
