package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "salesdash/internal/errors"
	"salesdash/internal/services"
)

// requestDateLayout is the date format accepted in filter requests
const requestDateLayout = "2006-01-02"

// DashboardHandler handles dashboard HTTP requests with RFC 7807 compliance
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/options", h.GetOptions)
	r.Post("/query", h.Query)
	r.Get("/charts/{chart}", h.GetChart)
	r.Post("/export", h.Export)

	return r
}

// SelectionRequest is the JSON body for query and export requests.
// Omitted dimensions default to every value in the dataset; an explicit
// empty list deliberately excludes all records for that dimension.
type SelectionRequest struct {
	DateStart      *string  `json:"date_start" validate:"omitempty,datetime=2006-01-02"`
	DateEnd        *string  `json:"date_end" validate:"omitempty,datetime=2006-01-02"`
	Categories     []string `json:"categories"`
	Subcategories  []string `json:"subcategories"`
	Genders        []string `json:"genders"`
	AgeGroups      []string `json:"age_groups"`
	PaymentMethods []string `json:"payment_methods"`
}

// toInput converts a validated request into a service selection input
func (req *SelectionRequest) toInput() (services.SelectionInput, error) {
	in := services.SelectionInput{
		Categories:     req.Categories,
		Subcategories:  req.Subcategories,
		Genders:        req.Genders,
		AgeGroups:      req.AgeGroups,
		PaymentMethods: req.PaymentMethods,
	}

	if req.DateStart != nil {
		ts, err := time.Parse(requestDateLayout, *req.DateStart)
		if err != nil {
			return in, apierrors.ErrValidation("date_start", "must be a date in YYYY-MM-DD format")
		}
		in.DateStart = &ts
	}
	if req.DateEnd != nil {
		ts, err := time.Parse(requestDateLayout, *req.DateEnd)
		if err != nil {
			return in, apierrors.ErrValidation("date_end", "must be a date in YYYY-MM-DD format")
		}
		in.DateEnd = &ts
	}

	if in.DateStart != nil && in.DateEnd != nil && in.DateEnd.Before(*in.DateStart) {
		return in, apierrors.ErrValidation("date_end", "must not be before date_start")
	}

	return in, nil
}

// decodeSelection parses and validates the request body
func (h *DashboardHandler) decodeSelection(r *http.Request) (services.SelectionInput, error) {
	var req SelectionRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		return services.SelectionInput{}, apierrors.InvalidRequestWithError(err)
	}

	if err := h.validate.Struct(&req); err != nil {
		return services.SelectionInput{}, h.validationProblem(err)
	}

	return req.toInput()
}

// validationProblem converts validator errors to an APIError with field details
func (h *DashboardHandler) validationProblem(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apierrors.ErrValidationFailed
	}

	details := make([]apierrors.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed validation rule %q", fe.Tag()),
		})
	}
	return apierrors.NewValidationErrors(details)
}

// parseQuerySelection builds a selection input from URL query parameters.
// List dimensions accept repeated keys or comma-separated values; an
// absent key leaves the dimension at its default.
func parseQuerySelection(values url.Values) (services.SelectionInput, error) {
	var in services.SelectionInput

	if raw := values.Get("date_start"); raw != "" {
		ts, err := time.Parse(requestDateLayout, raw)
		if err != nil {
			return in, apierrors.ErrValidation("date_start", "must be a date in YYYY-MM-DD format")
		}
		in.DateStart = &ts
	}
	if raw := values.Get("date_end"); raw != "" {
		ts, err := time.Parse(requestDateLayout, raw)
		if err != nil {
			return in, apierrors.ErrValidation("date_end", "must be a date in YYYY-MM-DD format")
		}
		in.DateEnd = &ts
	}

	in.Categories = queryList(values, "categories")
	in.Subcategories = queryList(values, "subcategories")
	in.Genders = queryList(values, "genders")
	in.AgeGroups = queryList(values, "age_groups")
	in.PaymentMethods = queryList(values, "payment_methods")

	return in, nil
}

// queryList collects the values for a repeated query key, splitting each
// on commas. A missing key yields nil so defaults apply.
func queryList(values url.Values, key string) []string {
	raw, present := values[key]
	if !present {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// GetOptions handles GET /api/dashboard/options
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories := queryList(r.URL.Query(), "categories")

	opts, err := h.service.FilterOptions(ctx, categories)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   opts,
	})
}

// Query handles POST /api/dashboard/query
func (h *DashboardHandler) Query(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	in, err := h.decodeSelection(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	sel, err := h.service.Resolve(ctx, in)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	tables, err := h.service.Query(ctx, sel)
	if err != nil {
		if errors.Is(err, services.ErrNoData) {
			h.renderNoData(w, r)
			return
		}
		h.logger.ErrorContext(ctx, "query failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   tables,
		"count":  tables.RecordCount,
	})
}

// GetChart handles GET /api/dashboard/charts/{chart}
func (h *DashboardHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chartName := chi.URLParam(r, "chart")

	in, err := parseQuerySelection(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	sel, err := h.service.Resolve(ctx, in)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	data, err := h.service.Chart(ctx, chartName, sel)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownChart):
			h.errorHandler.HandleError(w, r, apierrors.New(
				http.StatusNotFound,
				"CHART_NOT_FOUND",
				fmt.Sprintf("Unknown chart %q", chartName),
			))
		case errors.Is(err, services.ErrNoData):
			h.renderNoData(w, r)
		default:
			h.errorHandler.HandleError(w, r, err)
		}
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   data,
		"chart":  chartName,
	})
}

// Export handles POST /api/dashboard/export, streaming the filtered
// subset as a CSV attachment.
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	in, err := h.decodeSelection(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	sel, err := h.service.Resolve(ctx, in)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("orders_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	rows, err := h.service.Export(ctx, w, sel)
	if err != nil {
		// Headers may already be sent; log and abort the stream
		h.logger.ErrorContext(ctx, "export failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID))
		return
	}

	h.logger.InfoContext(ctx, "export served",
		slog.Int("rows", rows),
		slog.String("filename", filename),
		slog.String("request_id", reqID))
}

// renderNoData emits the envelope for a selection that matched no records
func (h *DashboardHandler) renderNoData(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":  "no_data",
		"data":    nil,
		"count":   0,
		"message": "No records match the current filter selection",
	})
}
