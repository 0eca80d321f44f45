package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"salesdash/internal/config"
	apierrors "salesdash/internal/errors"
	"salesdash/internal/infrastructure"
	custommw "salesdash/internal/middleware"
	"salesdash/internal/services"
	transport "salesdash/internal/transport/http"
)

// AppName is the application name used in startup logs
const AppName = "salesdash"

// Application wires configuration, services, and the HTTP server
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Router chi.Router
	Server *http.Server

	OTelProviders    *infrastructure.OTelProviders
	BusinessMetrics  *infrastructure.BusinessMetrics
	DashboardService *services.DashboardService
	HealthService    *services.HealthService
}

// NewApplication builds a fully wired application from configuration
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewApplicationWithConfig(cfg)
}

// NewApplicationWithConfig builds the application from an existing config,
// used by tests to inject temp paths and ports.
func NewApplicationWithConfig(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &Application{
		Config: cfg,
		Logger: logger,
	}

	if err := a.initializeServices(); err != nil {
		return nil, err
	}

	a.setupRouter()
	a.createServer()

	return a, nil
}

// initializeServices creates the observability providers and services
func (a *Application) initializeServices() error {
	providers, err := infrastructure.InitializeOTel(nil, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	a.OTelProviders = providers

	if providers.Meter != nil {
		metrics, err := infrastructure.CreateBusinessMetrics(providers.Meter)
		if err != nil {
			return fmt.Errorf("failed to create business metrics: %w", err)
		}
		a.BusinessMetrics = metrics
	}

	a.DashboardService = services.NewDashboardService(a.Config.Dataset, a.Logger, a.BusinessMetrics)
	a.HealthService = services.NewHealthService(a.DashboardService)

	return nil
}

// setupRouter builds the middleware chain and mounts all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	errorHandler := apierrors.NewErrorHandler(a.Logger, false)

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.SecurityHeaders)

	if !a.Config.Security.DisableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   a.Config.Security.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	if a.BusinessMetrics != nil {
		r.Use(custommw.NewHTTPMetrics(a.BusinessMetrics).Handler)
	}

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	// Prometheus scrape endpoint stays outside the API middleware group
	if a.OTelProviders != nil && a.OTelProviders.PrometheusHTTP != nil {
		r.Method(http.MethodGet, "/metrics", a.OTelProviders.PrometheusHTTP)
	}

	healthHandler := transport.NewHealthHandler(a.HealthService, a.Logger)
	dashboardHandler := transport.NewDashboardHandler(a.DashboardService, a.Logger, errorHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(custommw.Timeout(a.Config.Server.RequestTimeout))

		if !a.Config.Security.RateLimit.Disabled {
			r.Use(custommw.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		r.Mount("/dashboard", dashboardHandler.Routes())
	})

	a.Router = r
}

// createServer configures the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Addr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start launches the HTTP server and warms the dataset cache
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "starting application",
		slog.String("name", AppName),
		slog.String("version", services.Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("dataset", a.Config.Dataset.Path))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	// Warm the dataset cache so the first request doesn't pay the load.
	// A failure is not fatal; the health endpoint will report it.
	go func() {
		loadCtx, loadCancel := context.WithTimeout(ctx, a.Config.Dataset.LoadTimeout)
		defer loadCancel()
		if _, err := a.DashboardService.Dataset(loadCtx); err != nil {
			a.Logger.WarnContext(ctx, "dataset warm-up failed",
				slog.String("error", err.Error()))
		}
	}()

	a.Logger.InfoContext(ctx, "application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))

	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "error shutting down metrics",
				slog.String("error", err.Error()))
		}
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		return fmt.Errorf("log file close error: %w", err)
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run runs the application until interrupted or the server fails
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
		a.Logger.InfoContext(ctx, "context cancelled")
	}

	return a.Stop(context.Background())
}
