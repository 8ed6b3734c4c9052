package reports

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/openlot/dealership-backend/internal/cars"
	"github.com/openlot/dealership-backend/internal/dealerships"
	"github.com/openlot/dealership-backend/internal/seed"
	"github.com/openlot/dealership-backend/pkg/config"
	"github.com/openlot/dealership-backend/pkg/db/dbtest"
)

type fakeCache struct {
	entries map[string]string
	sets    int
}

func (f *fakeCache) ReportKey(report string) string {
	return "ol:report:" + report
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	if value, ok := f.entries[key]; ok {
		return value, nil
	}
	return "", redis.Nil
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if f.entries == nil {
		f.entries = map[string]string{}
	}
	f.entries[key] = value.(string)
	f.sets++
	return nil
}

type fixture struct {
	svc  Service
	cars cars.Service
	data *seed.DemoData
	conn *gorm.DB
}

func newFixture(t *testing.T, cache Cache) *fixture {
	t.Helper()
	conn := dbtest.Open(t)

	seeder, err := seed.New(conn, config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	require.NoError(t, err)
	data, err := seeder.Demo(context.Background())
	require.NoError(t, err)

	carsRepo := cars.NewRepository(conn)
	carSvc, err := cars.NewService(carsRepo, nil)
	require.NoError(t, err)
	dealershipSvc, err := dealerships.NewService(dealerships.NewRepository(conn), carsRepo)
	require.NoError(t, err)

	svc, err := NewService(carSvc, dealershipSvc, cache, 5*time.Minute, nil, nil)
	require.NoError(t, err)
	return &fixture{svc: svc, cars: carSvc, data: data, conn: conn}
}

func TestLowMileageReport(t *testing.T) {
	f := newFixture(t, nil)

	report, err := f.svc.LowMileage(context.Background(), 100000)
	require.NoError(t, err)
	assert.Equal(t, ReportLowMileage, report.Name)
	assert.ElementsMatch(t, []string{
		"Subaru Forrester (2015)",
		"Ford Fusion (2011)",
		"smart car (2012)",
		"Ford Escape (2009)",
	}, report.Lines)
}

func TestEstablishedActiveReport(t *testing.T) {
	f := newFixture(t, nil)

	report, err := f.svc.EstablishedActive(context.Background(), 1980, dealerships.DefaultMinLotSize)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rick's Loyal Car Emporium (est. 1988)"}, report.Lines)
}

func TestRedFordsReportOrdersByListPrice(t *testing.T) {
	f := newFixture(t, nil)

	report, err := f.svc.RedFords(context.Background(), f.data.Dealership.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Ford Fusion (2011)",
		"Ford Escape (2009)",
	}, report.Lines)
}

func TestReportsServedFromCache(t *testing.T) {
	cache := &fakeCache{}
	f := newFixture(t, cache)
	ctx := context.Background()

	first, err := f.svc.LowMileage(ctx, 100000)
	require.NoError(t, err)
	require.Len(t, first.Lines, 4)
	assert.Equal(t, 1, cache.sets)
	assert.Contains(t, cache.entries, "ol:report:low_mileage:100000")

	// Selling another car would change a fresh run; the cached report wins.
	_, err = f.cars.Sell(ctx, f.data.Cars[4].ID, 6500.00)
	require.NoError(t, err)

	second, err := f.svc.LowMileage(ctx, 100000)
	require.NoError(t, err)
	assert.Equal(t, first.Lines, second.Lines)
	assert.Equal(t, 1, cache.sets)
}

func TestRunAllCollectsFailures(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	out, err := f.svc.RunAll(ctx, RunAllInput{
		MileageLimit:  100000,
		YearThreshold: 1980,
		MinLotSize:    dealerships.DefaultMinLotSize,
		DealershipID:  f.data.Dealership.ID,
	})
	require.NoError(t, err)
	require.Len(t, out, 3)

	out, err = f.svc.RunAll(ctx, RunAllInput{
		MileageLimit:  100000,
		YearThreshold: 1980,
		MinLotSize:    dealerships.DefaultMinLotSize,
		DealershipID:  uuid.New(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ReportRedFords)
	assert.Len(t, out, 2)
}
