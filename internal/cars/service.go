package cars

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openlot/dealership-backend/pkg/db/models"
	pkgerrors "github.com/openlot/dealership-backend/pkg/errors"
	"github.com/openlot/dealership-backend/pkg/metrics"
	"github.com/openlot/dealership-backend/pkg/validate"
)

// Service exposes inventory operations on individual cars plus the store-wide
// mileage query.
type Service interface {
	Create(ctx context.Context, input CreateCarInput) (*models.Car, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Car, error)
	SetListPrice(ctx context.Context, id uuid.UUID, amount float64) (*models.Car, error)
	SetSoldPrice(ctx context.Context, id uuid.UUID, amount float64) (*models.Car, error)
	Sell(ctx context.Context, id uuid.UUID, salePrice float64) (*models.Car, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByMileageBelow(ctx context.Context, limit int) ([]models.Car, error)
}

// CreateCarInput holds the validated payload to create a car. Prices arrive
// in cents; the float accessors only exist on the model boundary.
type CreateCarInput struct {
	DealershipID   uuid.UUID `validate:"required"`
	MakeID         uuid.UUID `validate:"required"`
	ModelID        uuid.UUID `validate:"required"`
	ColorID        uuid.UUID `validate:"required"`
	Year           int       `validate:"caryear"`
	Mileage        int       `validate:"gte=0"`
	ListPriceCents int64     `validate:"gte=0"`
	SoldPriceCents *int64    `validate:"omitempty,gte=0"`
	SoldDate       *time.Time
}

type service struct {
	repo    *Repository
	metrics *metrics.InventoryMetrics
	now     func() time.Time
}

// NewService constructs a car service instance. metrics may be nil.
func NewService(repo *Repository, m *metrics.InventoryMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("car repository required")
	}
	return &service{repo: repo, metrics: m, now: time.Now}, nil
}

// Create validates the payload and inserts the car.
func (s *service) Create(ctx context.Context, input CreateCarInput) (*models.Car, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if input.SoldPriceCents != nil && input.SoldDate == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sold price requires a sold date")
	}

	car := &models.Car{
		ID:             uuid.New(),
		DealershipID:   input.DealershipID,
		MakeID:         input.MakeID,
		ModelID:        input.ModelID,
		ColorID:        input.ColorID,
		Year:           input.Year,
		Mileage:        input.Mileage,
		ListPriceCents: input.ListPriceCents,
		SoldPriceCents: input.SoldPriceCents,
		SoldDate:       input.SoldDate,
	}
	if err := s.repo.Create(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	return s.repo.FindByID(ctx, id)
}

// SetListPrice loads the car, applies the validated price, and saves it.
// A rejected amount leaves the stored row untouched.
func (s *service) SetListPrice(ctx context.Context, id uuid.UUID, amount float64) (*models.Car, error) {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := car.SetListPrice(amount); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateListPrice(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

// SetSoldPrice mirrors SetListPrice for the sale price field. It does not
// change sold state; Sell is the coupled path.
func (s *service) SetSoldPrice(ctx context.Context, id uuid.UUID, amount float64) (*models.Car, error) {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := car.SetSoldPrice(amount); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSoldPrice(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

// Sell marks the car sold today at the given price. Price and date are
// written together; a reader never observes one without the other.
func (s *service) Sell(ctx context.Context, id uuid.UUID, salePrice float64) (*models.Car, error) {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if car.IsSold() {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "car already sold")
	}
	if err := car.MarkSold(salePrice, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.SaveSale(ctx, car); err != nil {
		return nil, err
	}
	s.metrics.IncCarSold()
	return car, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ListByMileageBelow returns every car in the store, regardless of
// dealership, with mileage strictly below the limit.
func (s *service) ListByMileageBelow(ctx context.Context, limit int) ([]models.Car, error) {
	return s.repo.List(ctx, Filter{MileageBelow: &limit})
}
