package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/openlot/dealership-backend/internal/cars"
	"github.com/openlot/dealership-backend/internal/dealerships"
	"github.com/openlot/dealership-backend/internal/reports"
	"github.com/openlot/dealership-backend/internal/seed"
	"github.com/openlot/dealership-backend/pkg/config"
	"github.com/openlot/dealership-backend/pkg/db"
	"github.com/openlot/dealership-backend/pkg/logger"
	"github.com/openlot/dealership-backend/pkg/metrics"
	"github.com/openlot/dealership-backend/pkg/migrate"
	pkgredis "github.com/openlot/dealership-backend/pkg/redis"
)

func main() {
	ctx := context.Background()
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	runReports := flag.Bool("reports", true, "run the canned reports after seeding")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	err = migrate.MaybeRunDev(ctx, cfg, logg, dbClient)
	requireResource(ctx, logg, "migrations", err)

	if !cfg.FeatureFlags.SeedDemo {
		logg.Info(ctx, "demo seeding disabled")
		return
	}

	seeder, err := seed.New(dbClient.DB(), cfg.Password)
	requireResource(ctx, logg, "seeder", err)

	data, err := seeder.Demo(ctx)
	requireResource(ctx, logg, "demo data", err)

	ctx = logg.WithDealershipID(ctx, data.Dealership.ID.String())
	logg.Info(ctx, fmt.Sprintf("seeded %q with %d cars", data.Dealership.Name, len(data.Cars)))
	for _, car := range data.Cars {
		carCtx := logg.WithCarID(ctx, car.ID.String())
		logg.Info(carCtx, fmt.Sprintf("seeded car: model year %d, %d miles", car.Year, car.Mileage))
	}

	if !*runReports {
		return
	}

	var cache reports.Cache
	if cfg.Redis.Enabled() {
		redisClient, err := pkgredis.New(ctx, cfg.Redis)
		if err != nil {
			logg.Warn(ctx, "redis unavailable, reports run uncached")
		} else {
			defer redisClient.Close()
			cache = redisClient
		}
	}

	m := metrics.NewInventoryMetrics(prometheus.DefaultRegisterer)
	carsRepo := cars.NewRepository(dbClient.DB())
	carSvc, err := cars.NewService(carsRepo, m)
	requireResource(ctx, logg, "car service", err)
	dealershipSvc, err := dealerships.NewService(dealerships.NewRepository(dbClient.DB()), carsRepo)
	requireResource(ctx, logg, "dealership service", err)
	reportSvc, err := reports.NewService(carSvc, dealershipSvc, cache, cfg.Reports.CacheTTL, m, logg)
	requireResource(ctx, logg, "report service", err)

	out, err := reportSvc.RunAll(ctx, reports.RunAllInput{
		MileageLimit:  100000,
		YearThreshold: 1980,
		MinLotSize:    dealerships.DefaultMinLotSize,
		DealershipID:  data.Dealership.ID,
	})
	if err != nil {
		logg.Error(ctx, "some reports failed", err)
	}
	for _, report := range out {
		fmt.Printf("%s:\n", report.Name)
		if len(report.Lines) == 0 {
			fmt.Println("  (no results)")
			continue
		}
		for _, line := range report.Lines {
			fmt.Printf("  %s\n", line)
		}
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
