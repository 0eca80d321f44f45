package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	ServiceName    = "salesdash"
	ServiceVersion = "1.0.0"
	MeterName      = "salesdash"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	MetricExporter string // "prometheus", "none"
	EnableMetrics  bool
}

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	MeterProvider  *sdkmetric.MeterProvider
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// DefaultOTelConfig returns a default OpenTelemetry configuration
func DefaultOTelConfig() *OTelConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: ServiceVersion,
		Environment:    env,
		MetricExporter: "prometheus",
		EnableMetrics:  true,
	}
}

// InitializeOTel initializes the OpenTelemetry metrics pipeline
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}

	ctx := context.Background()

	providers := &OTelProviders{
		Logger: logger,
	}

	if !cfg.EnableMetrics || cfg.MetricExporter == "none" {
		return providers, nil
	}

	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	switch cfg.MetricExporter {
	case "prometheus":
		exporter, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}

		providers.PrometheusHTTP = promhttp.Handler()

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)

		providers.MeterProvider = mp
		providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))

		otel.SetMeterProvider(mp)

	default:
		return nil, fmt.Errorf("unsupported metric exporter: %s", cfg.MetricExporter)
	}

	logger.InfoContext(ctx, "metrics initialized",
		slog.String("service", cfg.ServiceName),
		slog.String("exporter", cfg.MetricExporter))

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg *OTelConfig) (*resource.Resource, error) {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
		attribute.String("service.instance.id", generateInstanceID()),
	), nil
}

// BusinessMetrics holds all application-specific metrics
type BusinessMetrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Dataset metrics
	DatasetLoadsTotal   metric.Int64Counter
	DatasetLoadDuration metric.Float64Histogram
	DatasetRowsLoaded   metric.Int64Counter
	DatasetRowsDropped  metric.Int64Counter

	// Query metrics
	QueriesTotal      metric.Int64Counter
	QueryDuration     metric.Float64Histogram
	EmptyQueriesTotal metric.Int64Counter

	// Export metrics
	ExportsTotal   metric.Int64Counter
	ExportDuration metric.Float64Histogram

	// System metrics
	SystemErrors metric.Int64Counter
}

// CreateBusinessMetrics creates application-specific metrics
func CreateBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	httpRequestsTotal, err := meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	httpRequestDuration, err := meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	httpActiveRequests, err := meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	datasetLoadsTotal, err := meter.Int64Counter(
		"dataset_loads_total",
		metric.WithDescription("Total number of dataset load operations"),
	)
	if err != nil {
		return nil, err
	}

	datasetLoadDuration, err := meter.Float64Histogram(
		"dataset_load_duration_seconds",
		metric.WithDescription("Dataset load duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	datasetRowsLoaded, err := meter.Int64Counter(
		"dataset_rows_loaded_total",
		metric.WithDescription("Total number of rows that survived cleaning"),
	)
	if err != nil {
		return nil, err
	}

	datasetRowsDropped, err := meter.Int64Counter(
		"dataset_rows_dropped_total",
		metric.WithDescription("Total number of rows dropped during cleaning"),
	)
	if err != nil {
		return nil, err
	}

	queriesTotal, err := meter.Int64Counter(
		"dashboard_queries_total",
		metric.WithDescription("Total number of dashboard queries"),
	)
	if err != nil {
		return nil, err
	}

	queryDuration, err := meter.Float64Histogram(
		"dashboard_query_duration_seconds",
		metric.WithDescription("Dashboard query duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	emptyQueriesTotal, err := meter.Int64Counter(
		"dashboard_empty_queries_total",
		metric.WithDescription("Total number of queries whose filters matched no records"),
	)
	if err != nil {
		return nil, err
	}

	exportsTotal, err := meter.Int64Counter(
		"dashboard_exports_total",
		metric.WithDescription("Total number of CSV exports"),
	)
	if err != nil {
		return nil, err
	}

	exportDuration, err := meter.Float64Histogram(
		"dashboard_export_duration_seconds",
		metric.WithDescription("CSV export duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	systemErrors, err := meter.Int64Counter(
		"system_errors_total",
		metric.WithDescription("Total number of system errors"),
	)
	if err != nil {
		return nil, err
	}

	return &BusinessMetrics{
		HTTPRequestsTotal:   httpRequestsTotal,
		HTTPRequestDuration: httpRequestDuration,
		HTTPActiveRequests:  httpActiveRequests,

		DatasetLoadsTotal:   datasetLoadsTotal,
		DatasetLoadDuration: datasetLoadDuration,
		DatasetRowsLoaded:   datasetRowsLoaded,
		DatasetRowsDropped:  datasetRowsDropped,

		QueriesTotal:      queriesTotal,
		QueryDuration:     queryDuration,
		EmptyQueriesTotal: emptyQueriesTotal,

		ExportsTotal:   exportsTotal,
		ExportDuration: exportDuration,

		SystemErrors: systemErrors,
	}, nil
}

// Shutdown gracefully shuts down OpenTelemetry providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("meter provider shutdown: %w", err)
		}
	}
	return nil
}

// generateInstanceID generates a unique instance identifier
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// RecordDatasetLoad records metrics for a dataset load
func RecordDatasetLoad(ctx context.Context, m *BusinessMetrics, duration time.Duration, rowsLoaded, rowsDropped int, err error) {
	if m == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}
	attrs := metric.WithAttributes(attribute.String("status", status))

	m.DatasetLoadsTotal.Add(ctx, 1, attrs)
	m.DatasetLoadDuration.Record(ctx, duration.Seconds(), attrs)
	if err == nil {
		m.DatasetRowsLoaded.Add(ctx, int64(rowsLoaded))
		m.DatasetRowsDropped.Add(ctx, int64(rowsDropped))
	}
}

// RecordQuery records metrics for a dashboard query
func RecordQuery(ctx context.Context, m *BusinessMetrics, duration time.Duration, matched int) {
	if m == nil {
		return
	}

	m.QueriesTotal.Add(ctx, 1)
	m.QueryDuration.Record(ctx, duration.Seconds())
	if matched == 0 {
		m.EmptyQueriesTotal.Add(ctx, 1)
	}
}

// RecordExport records metrics for a CSV export
func RecordExport(ctx context.Context, m *BusinessMetrics, duration time.Duration, err error) {
	if m == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}
	attrs := metric.WithAttributes(attribute.String("status", status))

	m.ExportsTotal.Add(ctx, 1, attrs)
	m.ExportDuration.Record(ctx, duration.Seconds(), attrs)
}
