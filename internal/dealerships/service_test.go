package dealerships

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/openlot/dealership-backend/internal/cars"
	"github.com/openlot/dealership-backend/pkg/db/dbtest"
	"github.com/openlot/dealership-backend/pkg/db/models"
	pkgerrors "github.com/openlot/dealership-backend/pkg/errors"
)

type fixture struct {
	svc      Service
	carsRepo *cars.Repository
	conn     *gorm.DB
	owner    uuid.UUID

	makes  map[string]uuid.UUID
	models map[string]uuid.UUID
	colors map[string]uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := dbtest.Open(t)
	carsRepo := cars.NewRepository(conn)
	svc, err := NewService(NewRepository(conn), carsRepo)
	require.NoError(t, err)

	f := &fixture{
		svc:      svc,
		carsRepo: carsRepo,
		conn:     conn,
		owner:    uuid.New(),
		makes:    map[string]uuid.UUID{},
		models:   map[string]uuid.UUID{},
		colors:   map[string]uuid.UUID{},
	}

	require.NoError(t, conn.Create(&models.Owner{ID: f.owner, Email: "sbuschemi@comcast.org", PasswordHash: "x"}).Error)

	for _, name := range []string{"Ford", "Subaru", "smart"} {
		id := uuid.New()
		require.NoError(t, conn.Create(&models.CarMakeOption{ID: id, CompanyName: name}).Error)
		f.makes[name] = id
	}
	modelOwners := map[string]string{
		"Escape":    "Ford",
		"Forrester": "Subaru",
		"Fusion":    "Ford",
		"car":       "smart",
		"focus":     "Ford",
	}
	for name, makeName := range modelOwners {
		id := uuid.New()
		require.NoError(t, conn.Create(&models.CarModelOption{ID: id, MakeID: f.makes[makeName], ModelName: name}).Error)
		f.models[name] = id
	}
	for _, name := range []string{"Black", "Grey", "Red", "green"} {
		id := uuid.New()
		require.NoError(t, conn.Create(&models.CarColorOption{ID: id, ColorName: name}).Error)
		f.colors[name] = id
	}
	return f
}

func (f *fixture) createDealership(t *testing.T, name string, year int) *models.Dealership {
	t.Helper()
	dealership, err := f.svc.Create(context.Background(), CreateInput{
		Name:            name,
		OwnerID:         f.owner,
		YearEstablished: year,
	})
	require.NoError(t, err)
	return dealership
}

type carSpec struct {
	makeName  string
	modelName string
	colorName string
	year      int
	mileage   int
	listCents int64
	soldCents *int64
	soldDays  int
}

func (f *fixture) addCar(t *testing.T, dealershipID uuid.UUID, spec carSpec) *models.Car {
	t.Helper()
	car := &models.Car{
		ID:             uuid.New(),
		DealershipID:   dealershipID,
		MakeID:         f.makes[spec.makeName],
		ModelID:        f.models[spec.modelName],
		ColorID:        f.colors[spec.colorName],
		Year:           spec.year,
		Mileage:        spec.mileage,
		ListPriceCents: spec.listCents,
		SoldPriceCents: spec.soldCents,
	}
	if spec.soldCents != nil {
		soldDate := time.Now().AddDate(0, 0, -spec.soldDays)
		car.SoldDate = &soldDate
	}
	require.NoError(t, f.carsRepo.Create(context.Background(), car))
	return car
}

// seedDemoLot builds the six-car lot used by the query tests and returns the
// cars in creation order.
func (f *fixture) seedDemoLot(t *testing.T, dealershipID uuid.UUID) []*models.Car {
	t.Helper()
	forresterSale := int64(1458805)
	smartSale := int64(499)
	specs := []carSpec{
		{"Ford", "Escape", "Black", 2007, 100005, 400000, nil, 0},
		{"Subaru", "Forrester", "Grey", 2015, 30001, 1458700, &forresterSale, 400},
		{"Ford", "Fusion", "Red", 2011, 28302, 1057900, nil, 0},
		{"smart", "car", "green", 2012, 6, 500, &smartSale, 100},
		{"Ford", "Escape", "Red", 2009, 20000, 700000, nil, 0},
		{"Ford", "focus", "Grey", 2008, 130000, 540000, nil, 0},
	}
	lot := make([]*models.Car, 0, len(specs))
	for _, spec := range specs {
		lot = append(lot, f.addCar(t, dealershipID, spec))
	}
	return lot
}

func TestCreateValidatesYearEstablished(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), CreateInput{
		Name:            "Time Traveler Motors",
		OwnerID:         f.owner,
		YearEstablished: 1907,
	})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestCreateUnknownOwnerNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), CreateInput{
		Name:            "Orphan Motors",
		OwnerID:         uuid.New(),
		YearEstablished: 1988,
	})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestDeleteCascadesCars(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dealership := f.createDealership(t, "Rick's Loyal Car Emporium", 1988)
	f.seedDemoLot(t, dealership.ID)

	require.NoError(t, f.svc.Delete(ctx, dealership.ID))

	count, err := f.carsRepo.Count(ctx, cars.Filter{DealershipID: &dealership.ID})
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = f.svc.Get(ctx, dealership.ID)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestActiveEstablished(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ricks := f.createDealership(t, "Rick's Loyal Car Emporium", 1988)
	f.seedDemoLot(t, ricks.ID) // 4 unsold of 6

	f.createDealership(t, "Fresh Lot Motors", 1999)
	old := f.createDealership(t, "Heritage Autos", 1950)
	f.seedDemoLot(t, old.ID)

	rows, err := f.svc.ActiveEstablished(ctx, 1980, DefaultMinLotSize)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ricks.ID, rows[0].ID)

	// The literal "more than 3" reading still holds with four unsold cars.
	rows, err = f.svc.ActiveEstablished(ctx, 1980, 4)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ricks.ID, rows[0].ID)

	rows, err = f.svc.ActiveEstablished(ctx, 1980, 5)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// The year comparison is strict.
	rows, err = f.svc.ActiveEstablished(ctx, 1988, DefaultMinLotSize)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListOrdersByName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createDealership(t, "Rick's Loyal Car Emporium", 1988)
	f.createDealership(t, "Heritage Autos", 1950)

	repo := NewRepository(f.conn)
	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Heritage Autos", rows[0].Name)
	assert.Equal(t, "Rick's Loyal Car Emporium", rows[1].Name)
}

func TestFindRedFordsUnder30000(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dealership := f.createDealership(t, "Rick's Loyal Car Emporium", 1988)
	lot := f.seedDemoLot(t, dealership.ID)

	rows, err := f.svc.FindRedFordsUnder30000(ctx, dealership.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Fusion ($10,579.00) lists above the red Escape ($7,000.00).
	assert.Equal(t, lot[2].ID, rows[0].ID)
	assert.Equal(t, lot[4].ID, rows[1].ID)
	assert.Equal(t, "Ford Fusion (2011)", rows[0].String())
	assert.Equal(t, "Ford Escape (2009)", rows[1].String())
}

func TestFindRedFordsUnknownDealership(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.FindRedFordsUnder30000(context.Background(), uuid.New())
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}
