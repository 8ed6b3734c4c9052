// Package seed builds the demo inventory dataset. The seeder is bound to a
// caller-provided database handle, so tests and local runs each get their own
// isolated copy instead of resetting shared tables.
package seed

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/openlot/dealership-backend/internal/cars"
	"github.com/openlot/dealership-backend/internal/catalog"
	"github.com/openlot/dealership-backend/internal/dealerships"
	"github.com/openlot/dealership-backend/internal/owners"
	"github.com/openlot/dealership-backend/pkg/config"
	"github.com/openlot/dealership-backend/pkg/db/models"
	"github.com/openlot/dealership-backend/pkg/money"
)

// DemoData holds the seeded entities, cars in seeding order.
type DemoData struct {
	Owner      *models.Owner
	Dealership *models.Dealership
	Cars       []*models.Car
}

// Seeder populates demo data through the regular service layer so seeded rows
// pass the same validation as live writes.
type Seeder struct {
	owners      owners.Service
	catalog     catalog.Service
	cars        cars.Service
	dealerships dealerships.Service
	now         func() time.Time
}

// New wires a seeder over the provided database handle.
func New(conn *gorm.DB, passwords config.PasswordConfig) (*Seeder, error) {
	ownerSvc, err := owners.NewService(owners.NewRepository(conn), passwords)
	if err != nil {
		return nil, err
	}
	catalogSvc, err := catalog.NewService(catalog.NewRepository(conn))
	if err != nil {
		return nil, err
	}
	carsRepo := cars.NewRepository(conn)
	carSvc, err := cars.NewService(carsRepo, nil)
	if err != nil {
		return nil, err
	}
	dealershipSvc, err := dealerships.NewService(dealerships.NewRepository(conn), carsRepo)
	if err != nil {
		return nil, err
	}
	return &Seeder{
		owners:      ownerSvc,
		catalog:     catalogSvc,
		cars:        carSvc,
		dealerships: dealershipSvc,
		now:         time.Now,
	}, nil
}

// Demo creates one owner, one dealership, and six cars spanning sold and
// unsold states across several makes, models, and colors.
func (s *Seeder) Demo(ctx context.Context) (*DemoData, error) {
	owner, err := s.owners.Register(ctx, owners.RegisterInput{
		Email:     "sbuschemi@comcast.org",
		FirstName: "Steve",
		LastName:  "Buschemi",
		Password:  "IWasGreatInTheIsland2005!",
	})
	if err != nil {
		return nil, fmt.Errorf("seeding owner: %w", err)
	}

	dealership, err := s.dealerships.Create(ctx, dealerships.CreateInput{
		Name:            "Rick's Loyal Car Emporium",
		OwnerID:         owner.ID,
		YearEstablished: 1988,
	})
	if err != nil {
		return nil, fmt.Errorf("seeding dealership: %w", err)
	}

	ford, err := s.catalog.AddMake(ctx, "Ford")
	if err != nil {
		return nil, err
	}
	subaru, err := s.catalog.AddMake(ctx, "Subaru")
	if err != nil {
		return nil, err
	}
	smart, err := s.catalog.AddMake(ctx, "smart")
	if err != nil {
		return nil, err
	}

	escape, err := s.catalog.AddModel(ctx, ford.ID, "Escape")
	if err != nil {
		return nil, err
	}
	forrester, err := s.catalog.AddModel(ctx, subaru.ID, "Forrester")
	if err != nil {
		return nil, err
	}
	fusion, err := s.catalog.AddModel(ctx, ford.ID, "Fusion")
	if err != nil {
		return nil, err
	}
	smartcar, err := s.catalog.AddModel(ctx, smart.ID, "car")
	if err != nil {
		return nil, err
	}
	focus, err := s.catalog.AddModel(ctx, ford.ID, "focus")
	if err != nil {
		return nil, err
	}

	black, err := s.catalog.AddColor(ctx, "Black")
	if err != nil {
		return nil, err
	}
	grey, err := s.catalog.AddColor(ctx, "Grey")
	if err != nil {
		return nil, err
	}
	red, err := s.catalog.AddColor(ctx, "Red")
	if err != nil {
		return nil, err
	}
	green, err := s.catalog.AddColor(ctx, "green")
	if err != nil {
		return nil, err
	}

	soldLongAgo := s.dateDaysAgo(400)
	soldRecently := s.dateDaysAgo(100)
	forresterSale := money.ToCents(14588.05)
	smartSale := money.ToCents(4.99)

	inputs := []cars.CreateCarInput{
		{
			DealershipID:   dealership.ID,
			MakeID:         ford.ID,
			ModelID:        escape.ID,
			ColorID:        black.ID,
			Year:           2007,
			Mileage:        100005,
			ListPriceCents: money.ToCents(4000.00),
		},
		{
			DealershipID:   dealership.ID,
			MakeID:         subaru.ID,
			ModelID:        forrester.ID,
			ColorID:        grey.ID,
			Year:           2015,
			Mileage:        30001,
			ListPriceCents: money.ToCents(14587.00),
			SoldPriceCents: &forresterSale,
			SoldDate:       &soldLongAgo,
		},
		{
			DealershipID:   dealership.ID,
			MakeID:         ford.ID,
			ModelID:        fusion.ID,
			ColorID:        red.ID,
			Year:           2011,
			Mileage:        28302,
			ListPriceCents: money.ToCents(10579.00),
		},
		{
			DealershipID:   dealership.ID,
			MakeID:         smart.ID,
			ModelID:        smartcar.ID,
			ColorID:        green.ID,
			Year:           2012,
			Mileage:        6,
			ListPriceCents: money.ToCents(5.00),
			SoldPriceCents: &smartSale,
			SoldDate:       &soldRecently,
		},
		{
			DealershipID:   dealership.ID,
			MakeID:         ford.ID,
			ModelID:        escape.ID,
			ColorID:        red.ID,
			Year:           2009,
			Mileage:        20000,
			ListPriceCents: money.ToCents(7000.00),
		},
		{
			DealershipID:   dealership.ID,
			MakeID:         ford.ID,
			ModelID:        focus.ID,
			ColorID:        grey.ID,
			Year:           2008,
			Mileage:        130000,
			ListPriceCents: money.ToCents(5400.00),
		},
	}

	data := &DemoData{Owner: owner, Dealership: dealership}
	for i, input := range inputs {
		car, err := s.cars.Create(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("seeding car %d: %w", i+1, err)
		}
		data.Cars = append(data.Cars, car)
	}
	return data, nil
}

func (s *Seeder) dateDaysAgo(days int) time.Time {
	return s.now().AddDate(0, 0, -days)
}
