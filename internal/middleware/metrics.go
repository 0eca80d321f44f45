package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"salesdash/internal/infrastructure"
)

// HTTPMetrics records per-request counters and latency histograms.
// Route patterns rather than raw paths keep metric cardinality bounded.
type HTTPMetrics struct {
	metrics *infrastructure.BusinessMetrics
}

// NewHTTPMetrics creates the HTTP metrics middleware
func NewHTTPMetrics(metrics *infrastructure.BusinessMetrics) *HTTPMetrics {
	return &HTTPMetrics{metrics: metrics}
}

// Handler returns the middleware handler function
func (m *HTTPMetrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()

		m.metrics.HTTPActiveRequests.Add(ctx, 1)
		defer m.metrics.HTTPActiveRequests.Add(ctx, -1)

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		attrs := metric.WithAttributes(
			attribute.String("method", r.Method),
			attribute.String("route", routePattern(r)),
			attribute.Int("status_code", ww.Status()),
		)

		m.metrics.HTTPRequestsTotal.Add(ctx, 1, attrs)
		m.metrics.HTTPRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	})
}

// routePattern extracts the chi route pattern from the request context
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		return rctx.RoutePattern()
	}
	return r.URL.Path
}
