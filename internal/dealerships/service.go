package dealerships

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/openlot/dealership-backend/internal/cars"
	"github.com/openlot/dealership-backend/pkg/db/models"
	"github.com/openlot/dealership-backend/pkg/validate"
)

// Criteria for the canned red-Fords lot search.
const (
	redFordMake         = "Ford"
	redFordColor        = "Red"
	redFordMileageLimit = 30000
)

// DefaultMinLotSize is the lot-size floor used by the established-dealerships
// report. The original requirement reads "more than 3 cars" but was always
// implemented as >= 3; callers that want the literal reading pass 4.
const DefaultMinLotSize = 3

// Service exposes dealership management and the dealership-scoped queries.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Dealership, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Dealership, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ActiveEstablished(ctx context.Context, yearThreshold, minCount int) ([]models.Dealership, error)
	FindRedFordsUnder30000(ctx context.Context, dealershipID uuid.UUID) ([]models.Car, error)
}

// CreateInput holds the validated payload to create a dealership.
type CreateInput struct {
	Name            string    `validate:"required"`
	OwnerID         uuid.UUID `validate:"required"`
	YearEstablished int       `validate:"caryear"`
	Tagline         *string
}

type service struct {
	repo     *Repository
	carsRepo *cars.Repository
}

// NewService constructs a dealership service instance.
func NewService(repo *Repository, carsRepo *cars.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dealership repository required")
	}
	if carsRepo == nil {
		return nil, fmt.Errorf("car repository required")
	}
	return &service{repo: repo, carsRepo: carsRepo}, nil
}

// Create validates the payload and inserts the dealership.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.Dealership, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	dealership := &models.Dealership{
		ID:              uuid.New(),
		Name:            input.Name,
		Tagline:         input.Tagline,
		YearEstablished: input.YearEstablished,
		OwnerID:         input.OwnerID,
	}
	if err := s.repo.Create(ctx, dealership); err != nil {
		return nil, err
	}
	return dealership, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Dealership, error) {
	return s.repo.FindByID(ctx, id)
}

// Delete removes the dealership and, through the schema cascade, its cars.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ActiveEstablished lists dealerships established after yearThreshold with at
// least minCount cars still on the lot.
func (s *service) ActiveEstablished(ctx context.Context, yearThreshold, minCount int) ([]models.Dealership, error) {
	return s.repo.ActiveEstablished(ctx, yearThreshold, minCount)
}

// FindRedFordsUnder30000 returns this dealership's unsold red Fords with
// mileage under 30000, highest list price first.
func (s *service) FindRedFordsUnder30000(ctx context.Context, dealershipID uuid.UUID) ([]models.Car, error) {
	if _, err := s.repo.FindByID(ctx, dealershipID); err != nil {
		return nil, err
	}

	makeName := redFordMake
	colorName := redFordColor
	mileage := redFordMileageLimit
	onLot := true

	return s.carsRepo.List(ctx, cars.Filter{
		DealershipID: &dealershipID,
		OnLot:        &onLot,
		MileageBelow: &mileage,
		MakeName:     &makeName,
		ColorName:    &colorName,
	}, "cars.list_price_cents DESC")
}
