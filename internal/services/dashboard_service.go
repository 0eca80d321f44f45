package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"salesdash/internal/analytics"
	"salesdash/internal/config"
	"salesdash/internal/dataprocessing"
	"salesdash/internal/exporter"
	"salesdash/internal/filter"
	"salesdash/internal/infrastructure"
	"salesdash/pkg/contracts/domain"
)

// ChartNames lists the chart identifiers served by the chart endpoint
var ChartNames = []string{
	"sales-over-time",
	"category",
	"subcategory",
	"products",
	"day-of-week",
	"age-groups",
	"gender",
	"payment-methods",
	"country",
}

// DashboardService owns the cleaned dataset and answers all dashboard
// queries against it. The dataset is loaded lazily, cached until the
// source file changes, and reloads are collapsed through singleflight so
// concurrent requests never trigger duplicate loads.
type DashboardService struct {
	cfg     config.DatasetConfig
	logger  *slog.Logger
	metrics *infrastructure.BusinessMetrics

	group singleflight.Group

	mu      sync.RWMutex
	dataset *domain.Dataset
	report  *dataprocessing.CleanReport
	modTime time.Time
}

// NewDashboardService creates a dashboard service
func NewDashboardService(cfg config.DatasetConfig, logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *DashboardService {
	return &DashboardService{
		cfg:     cfg,
		logger:  logger.With(slog.String("service", "dashboard")),
		metrics: metrics,
	}
}

// Dataset returns the cleaned dataset, loading it on first use and
// reloading when the source file's modification time changes.
func (s *DashboardService) Dataset(ctx context.Context) (*domain.Dataset, error) {
	info, err := os.Stat(s.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", dataprocessing.ErrDataLoad, s.cfg.Path, err)
	}

	if !s.cfg.DisableCache {
		s.mu.RLock()
		if s.dataset != nil && s.modTime.Equal(info.ModTime()) {
			ds := s.dataset
			s.mu.RUnlock()
			return ds, nil
		}
		s.mu.RUnlock()
	}

	result, err, _ := s.group.Do(s.cfg.Path, func() (interface{}, error) {
		return s.load(ctx, info.ModTime())
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Dataset), nil
}

// CleanReport returns the report from the most recent dataset load,
// or nil when no load has happened yet.
func (s *DashboardService) CleanReport() *dataprocessing.CleanReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

func (s *DashboardService) load(ctx context.Context, modTime time.Time) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	ds, report, err := dataprocessing.Load(s.cfg.Path, nil)
	duration := time.Since(start)

	if err != nil {
		infrastructure.RecordDatasetLoad(ctx, s.metrics, duration, 0, 0, err)
		s.logger.ErrorContext(ctx, "dataset load failed",
			slog.String("path", s.cfg.Path),
			slog.String("error", err.Error()))
		return nil, err
	}

	infrastructure.RecordDatasetLoad(ctx, s.metrics, duration, report.RowsOut, report.Dropped(), nil)
	s.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", s.cfg.Path),
		slog.Int("rows_in", report.RowsIn),
		slog.Int("rows_out", report.RowsOut),
		slog.Int("rows_dropped", report.Dropped()),
		slog.Duration("duration", duration))

	s.mu.Lock()
	s.dataset = ds
	s.report = report
	s.modTime = modTime
	s.mu.Unlock()

	return ds, nil
}

// SelectionInput mirrors filter.Selection but distinguishes omitted
// dimensions (nil) from explicit empty selections. An omitted dimension
// or date bound defaults to everything the dataset contains, matching
// how the dashboard's filter controls start out fully selected.
type SelectionInput struct {
	DateStart      *time.Time
	DateEnd        *time.Time
	Categories     []string
	Subcategories  []string
	Genders        []string
	AgeGroups      []string
	PaymentMethods []string
}

// Resolve expands an input against the dataset into a concrete selection.
// Nil dimensions become the full observed value list; nil date bounds
// become the dataset's date range. The subcategory default honors the
// category cascade.
func (s *DashboardService) Resolve(ctx context.Context, in SelectionInput) (filter.Selection, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return filter.Selection{}, err
	}

	dateMin, dateMax, _ := ds.DateRange()

	sel := filter.Selection{
		DateStart:      dateMin,
		DateEnd:        dateMax,
		Categories:     in.Categories,
		Subcategories:  in.Subcategories,
		Genders:        in.Genders,
		AgeGroups:      in.AgeGroups,
		PaymentMethods: in.PaymentMethods,
	}
	if in.DateStart != nil {
		sel.DateStart = *in.DateStart
	}
	if in.DateEnd != nil {
		sel.DateEnd = *in.DateEnd
	}

	opts := filter.OptionsFor(ds, in.Categories)
	if in.Categories == nil {
		sel.Categories = opts.Categories
	}
	if in.Subcategories == nil {
		sel.Subcategories = filter.SubcategoryOptions(ds, in.Categories)
	}
	if in.Genders == nil {
		sel.Genders = opts.Genders
	}
	if in.AgeGroups == nil {
		sel.AgeGroups = opts.AgeGroups
	}
	if in.PaymentMethods == nil {
		sel.PaymentMethods = opts.PaymentMethods
	}

	return sel, nil
}

// Query computes every chart table for the given selection.
// Returns ErrNoData when the selection matches nothing.
func (s *DashboardService) Query(ctx context.Context, sel filter.Selection) (*domain.DashboardTables, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	subset := filter.Apply(ds, sel)
	tables := analytics.Tables(subset)
	infrastructure.RecordQuery(ctx, s.metrics, time.Since(start), len(subset))

	if len(subset) == 0 {
		return nil, ErrNoData
	}

	return &tables, nil
}

// Chart computes a single chart table for the given selection.
// Returns ErrUnknownChart for names outside ChartNames and ErrNoData
// when the selection matches nothing.
func (s *DashboardService) Chart(ctx context.Context, name string, sel filter.Selection) (interface{}, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	subset := filter.Apply(ds, sel)
	infrastructure.RecordQuery(ctx, s.metrics, time.Since(start), len(subset))

	if len(subset) == 0 {
		return nil, ErrNoData
	}

	switch name {
	case "sales-over-time":
		return analytics.SalesOverTime(subset), nil
	case "category":
		return analytics.SalesByCategory(subset), nil
	case "subcategory":
		return analytics.SalesBySubcategory(subset), nil
	case "products":
		return analytics.TopProducts(subset), nil
	case "day-of-week":
		return analytics.SalesByDayOfWeek(subset), nil
	case "age-groups":
		return analytics.AgeGroupDistribution(subset), nil
	case "gender":
		return analytics.GenderDistribution(subset), nil
	case "payment-methods":
		return analytics.PaymentMethodDistribution(subset), nil
	case "country":
		return analytics.SalesByCountry(subset), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownChart, name)
	}
}

// FilterOptions returns the selectable values for the filter controls,
// with subcategories restricted by the given category selection.
func (s *DashboardService) FilterOptions(ctx context.Context, selectedCategories []string) (filter.Options, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return filter.Options{}, err
	}
	return filter.OptionsFor(ds, selectedCategories), nil
}

// Export streams the filtered subset as CSV to w and returns the number
// of data rows written. An empty subset still produces a header-only CSV.
func (s *DashboardService) Export(ctx context.Context, w io.Writer, sel filter.Selection) (int, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	subset := filter.Apply(ds, sel)
	err = exporter.WriteOrders(w, subset)
	infrastructure.RecordExport(ctx, s.metrics, time.Since(start), err)

	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "export completed",
		slog.Int("rows", len(subset)),
		slog.Duration("duration", time.Since(start)))

	return len(subset), nil
}
