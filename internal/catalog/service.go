package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/openlot/dealership-backend/pkg/db/models"
	"github.com/openlot/dealership-backend/pkg/validate"
)

// Service exposes vocabulary management for makes, models, and colors.
type Service interface {
	AddMake(ctx context.Context, companyName string) (*models.CarMakeOption, error)
	AddModel(ctx context.Context, makeID uuid.UUID, modelName string) (*models.CarModelOption, error)
	AddColor(ctx context.Context, colorName string) (*models.CarColorOption, error)
	RemoveMake(ctx context.Context, id uuid.UUID) error
	RemoveModel(ctx context.Context, id uuid.UUID) error
	RemoveColor(ctx context.Context, id uuid.UUID) error
}

type makeInput struct {
	CompanyName string `validate:"required"`
}

type modelInput struct {
	MakeID    uuid.UUID `validate:"required"`
	ModelName string    `validate:"required"`
}

type colorInput struct {
	ColorName string `validate:"required"`
}

type service struct {
	repo *Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) AddMake(ctx context.Context, companyName string) (*models.CarMakeOption, error) {
	if err := validate.Struct(makeInput{CompanyName: companyName}); err != nil {
		return nil, err
	}
	make := &models.CarMakeOption{ID: uuid.New(), CompanyName: companyName}
	if err := s.repo.CreateMake(ctx, make); err != nil {
		return nil, err
	}
	return make, nil
}

func (s *service) AddModel(ctx context.Context, makeID uuid.UUID, modelName string) (*models.CarModelOption, error) {
	if err := validate.Struct(modelInput{MakeID: makeID, ModelName: modelName}); err != nil {
		return nil, err
	}
	model := &models.CarModelOption{ID: uuid.New(), MakeID: makeID, ModelName: modelName}
	if err := s.repo.CreateModel(ctx, model); err != nil {
		return nil, err
	}
	return model, nil
}

func (s *service) AddColor(ctx context.Context, colorName string) (*models.CarColorOption, error) {
	if err := validate.Struct(colorInput{ColorName: colorName}); err != nil {
		return nil, err
	}
	color := &models.CarColorOption{ID: uuid.New(), ColorName: colorName}
	if err := s.repo.CreateColor(ctx, color); err != nil {
		return nil, err
	}
	return color, nil
}

func (s *service) RemoveMake(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteMake(ctx, id)
}

func (s *service) RemoveModel(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteModel(ctx, id)
}

func (s *service) RemoveColor(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteColor(ctx, id)
}
