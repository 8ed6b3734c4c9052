// Package reports runs the canned inventory queries and renders them as
// line-oriented reports, with optional caching and metrics.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/openlot/dealership-backend/internal/cars"
	"github.com/openlot/dealership-backend/internal/dealerships"
	"github.com/openlot/dealership-backend/pkg/db/models"
	"github.com/openlot/dealership-backend/pkg/logger"
	"github.com/openlot/dealership-backend/pkg/metrics"
	pkgredis "github.com/openlot/dealership-backend/pkg/redis"
)

// Report names double as cache key suffixes and metric labels.
const (
	ReportLowMileage        = "low_mileage"
	ReportEstablishedActive = "established_active"
	ReportRedFords          = "red_fords"
)

// Report is a rendered query result.
type Report struct {
	Name        string    `json:"name"`
	GeneratedAt time.Time `json:"generated_at"`
	Lines       []string  `json:"lines"`
}

// Cache is the subset of the redis client the report cache needs.
type Cache interface {
	ReportKey(report string) string
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Service runs the canned inventory reports.
type Service interface {
	LowMileage(ctx context.Context, mileageLimit int) (*Report, error)
	EstablishedActive(ctx context.Context, yearThreshold, minCount int) (*Report, error)
	RedFords(ctx context.Context, dealershipID uuid.UUID) (*Report, error)
	RunAll(ctx context.Context, input RunAllInput) ([]*Report, error)
}

// RunAllInput parameterizes a full report sweep.
type RunAllInput struct {
	MileageLimit  int
	YearThreshold int
	MinLotSize    int
	DealershipID  uuid.UUID
}

type service struct {
	cars        cars.Service
	dealerships dealerships.Service
	cache       Cache
	cacheTTL    time.Duration
	metrics     *metrics.InventoryMetrics
	log         *logger.Logger
	now         func() time.Time
}

// NewService constructs a report service. cache, metrics, and log may be nil;
// a nil cache recomputes every run, a nil log discards output.
func NewService(carSvc cars.Service, dealershipSvc dealerships.Service, cache Cache, cacheTTL time.Duration, m *metrics.InventoryMetrics, log *logger.Logger) (Service, error) {
	if carSvc == nil {
		return nil, fmt.Errorf("car service required")
	}
	if dealershipSvc == nil {
		return nil, fmt.Errorf("dealership service required")
	}
	if log == nil {
		log = logger.New(logger.Options{ServiceName: "reports", Output: io.Discard})
	}
	return &service{
		cars:        carSvc,
		dealerships: dealershipSvc,
		cache:       cache,
		cacheTTL:    cacheTTL,
		metrics:     m,
		log:         log,
		now:         time.Now,
	}, nil
}

// LowMileage lists every car in the store with mileage strictly below the limit.
func (s *service) LowMileage(ctx context.Context, mileageLimit int) (*Report, error) {
	cacheKey := fmt.Sprintf("%s:%d", ReportLowMileage, mileageLimit)
	return s.run(ctx, ReportLowMileage, cacheKey, func(ctx context.Context) ([]string, error) {
		rows, err := s.cars.ListByMileageBelow(ctx, mileageLimit)
		if err != nil {
			return nil, err
		}
		return carLines(rows), nil
	})
}

// EstablishedActive lists dealerships established after the threshold that
// still have at least minCount cars on the lot.
func (s *service) EstablishedActive(ctx context.Context, yearThreshold, minCount int) (*Report, error) {
	cacheKey := fmt.Sprintf("%s:%d:%d", ReportEstablishedActive, yearThreshold, minCount)
	return s.run(ctx, ReportEstablishedActive, cacheKey, func(ctx context.Context) ([]string, error) {
		rows, err := s.dealerships.ActiveEstablished(ctx, yearThreshold, minCount)
		if err != nil {
			return nil, err
		}
		lines := make([]string, 0, len(rows))
		for _, dealership := range rows {
			lines = append(lines, fmt.Sprintf("%s (est. %d)", dealership.Name, dealership.YearEstablished))
		}
		return lines, nil
	})
}

// RedFords lists a dealership's unsold red Fords under 30000 miles, priciest
// first.
func (s *service) RedFords(ctx context.Context, dealershipID uuid.UUID) (*Report, error) {
	ctx = s.log.WithDealershipID(ctx, dealershipID.String())
	cacheKey := fmt.Sprintf("%s:%s", ReportRedFords, dealershipID)
	return s.run(ctx, ReportRedFords, cacheKey, func(ctx context.Context) ([]string, error) {
		rows, err := s.dealerships.FindRedFordsUnder30000(ctx, dealershipID)
		if err != nil {
			return nil, err
		}
		return carLines(rows), nil
	})
}

// RunAll executes every report and returns the ones that succeeded along with
// the combined failures.
func (s *service) RunAll(ctx context.Context, input RunAllInput) ([]*Report, error) {
	var out []*Report
	var errs error

	if report, err := s.LowMileage(ctx, input.MileageLimit); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", ReportLowMileage, err))
	} else {
		out = append(out, report)
	}
	if report, err := s.EstablishedActive(ctx, input.YearThreshold, input.MinLotSize); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", ReportEstablishedActive, err))
	} else {
		out = append(out, report)
	}
	if report, err := s.RedFords(ctx, input.DealershipID); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", ReportRedFords, err))
	} else {
		out = append(out, report)
	}
	return out, errs
}

func (s *service) run(ctx context.Context, name, cacheKey string, query func(context.Context) ([]string, error)) (*Report, error) {
	ctx = s.log.WithReport(ctx, name)

	if cached, ok := s.fromCache(ctx, cacheKey); ok {
		return cached, nil
	}

	s.metrics.IncReportRun(name)
	start := s.now()
	lines, err := query(ctx)
	s.metrics.ObserveReport(name, s.now().Sub(start))
	if err != nil {
		s.metrics.IncReportFailure(name)
		s.log.Error(ctx, "report failed", err)
		return nil, err
	}

	report := &Report{Name: name, GeneratedAt: s.now(), Lines: lines}
	s.toCache(ctx, cacheKey, report)
	return report, nil
}

func (s *service) fromCache(ctx context.Context, cacheKey string) (*Report, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cache.ReportKey(cacheKey))
	if err != nil {
		if !pkgredis.IsCacheMiss(err) {
			s.log.Warn(ctx, "report cache read failed")
		}
		return nil, false
	}
	var report Report
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		s.log.Warn(ctx, "report cache entry corrupt")
		return nil, false
	}
	return &report, true
}

func (s *service) toCache(ctx context.Context, cacheKey string, report *Report) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.ReportKey(cacheKey), string(raw), s.cacheTTL); err != nil {
		s.log.Warn(ctx, "report cache write failed")
	}
}

func carLines(rows []models.Car) []string {
	lines := make([]string, 0, len(rows))
	for _, car := range rows {
		lines = append(lines, car.String())
	}
	return lines
}
