package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "salesdash/internal/errors"
	"salesdash/internal/filter"
	"salesdash/internal/services"
	"salesdash/pkg/contracts/domain"
)

// stubService implements DashboardServiceInterface with function fields
type stubService struct {
	options func(ctx context.Context, categories []string) (filter.Options, error)
	resolve func(ctx context.Context, in services.SelectionInput) (filter.Selection, error)
	query   func(ctx context.Context, sel filter.Selection) (*domain.DashboardTables, error)
	chart   func(ctx context.Context, name string, sel filter.Selection) (interface{}, error)
	export  func(ctx context.Context, w io.Writer, sel filter.Selection) (int, error)
}

func (s *stubService) FilterOptions(ctx context.Context, categories []string) (filter.Options, error) {
	return s.options(ctx, categories)
}

func (s *stubService) Resolve(ctx context.Context, in services.SelectionInput) (filter.Selection, error) {
	if s.resolve == nil {
		return filter.Selection{}, nil
	}
	return s.resolve(ctx, in)
}

func (s *stubService) Query(ctx context.Context, sel filter.Selection) (*domain.DashboardTables, error) {
	return s.query(ctx, sel)
}

func (s *stubService) Chart(ctx context.Context, name string, sel filter.Selection) (interface{}, error) {
	return s.chart(ctx, name, sel)
}

func (s *stubService) Export(ctx context.Context, w io.Writer, sel filter.Selection) (int, error) {
	return s.export(ctx, w, sel)
}

func newHandler(svc DashboardServiceInterface) *DashboardHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDashboardHandler(svc, logger, apierrors.NewErrorHandler(logger, false))
}

func decodeBody(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestGetOptions(t *testing.T) {
	var gotCategories []string
	svc := &stubService{
		options: func(ctx context.Context, categories []string) (filter.Options, error) {
			gotCategories = categories
			return filter.Options{Categories: []string{"Clothing", "Electronics"}}, nil
		},
	}

	r := httptest.NewRequest(http.MethodGet, "/options?categories=Electronics,Clothing", nil)
	w := httptest.NewRecorder()
	newHandler(svc).Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Electronics", "Clothing"}, gotCategories)

	body := decodeBody(t, w.Body.Bytes())
	assert.Equal(t, "success", body["status"])
}

func TestQuery_Success(t *testing.T) {
	svc := &stubService{
		query: func(ctx context.Context, sel filter.Selection) (*domain.DashboardTables, error) {
			return &domain.DashboardTables{RecordCount: 7}, nil
		},
	}

	r := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(`{"categories":["Electronics"]}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newHandler(svc).Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w.Body.Bytes())
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(7), body["count"])
}

func TestQuery_NoData(t *testing.T) {
	svc := &stubService{
		query: func(ctx context.Context, sel filter.Selection) (*domain.DashboardTables, error) {
			return nil, services.ErrNoData
		},
	}

	r := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(`{"categories":[]}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newHandler(svc).Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w.Body.Bytes())
	assert.Equal(t, "no_data", body["status"])
	assert.Equal(t, float64(0), body["count"])
}

func TestQuery_InvalidJSON(t *testing.T) {
	svc := &stubService{}

	r := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(`{not json`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newHandler(svc).Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuery_InvalidDate(t *testing.T) {
	svc := &stubService{}

	r := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(`{"date_start":"01/02/2024"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newHandler(svc).Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w.Body.Bytes())
	assert.Equal(t, apierrors.TypeValidation, body["type"])
}

func TestQuery_DateEndBeforeStart(t *testing.T) {
	svc := &stubService{}

	payload := `{"date_start":"2024-02-01","date_end":"2024-01-01"}`
	r := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(payload))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newHandler(svc).Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuery_OmittedVsEmptyDimensions(t *testing.T) {
	var gotInput services.SelectionInput
	svc := &stubService{
		resolve: func(ctx context.Context, in services.SelectionInput) (filter.Selection, error) {
			gotInput = in
			return filter.Selection{}, nil
		},
		query: func(ctx context.Context, sel filter.Selection) (*domain.DashboardTables, error) {
			return &domain.DashboardTables{}, nil
		},
	}

	payload := `{"categories":[],"genders":["Female"]}`
	r := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(payload))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newHandler(svc).Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, gotInput.Categories)
	assert.Empty(t, gotInput.Categories)
	assert.Equal(t, []string{"Female"}, gotInput.Genders)
	assert.Nil(t, gotInput.Subcategories)
}

func TestGetChart_Success(t *testing.T) {
	svc := &stubService{
		chart: func(ctx context.Context, name string, sel filter.Selection) (interface{}, error) {
			assert.Equal(t, "sales-over-time", name)
			return []domain.DailySales{}, nil
		},
	}

	r := httptest.NewRequest(http.MethodGet, "/charts/sales-over-time", nil)
	w := httptest.NewRecorder()
	newHandler(svc).Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w.Body.Bytes())
	assert.Equal(t, "sales-over-time", body["chart"])
}

func TestGetChart_Unknown(t *testing.T) {
	svc := &stubService{
		chart: func(ctx context.Context, name string, sel filter.Selection) (interface{}, error) {
			return nil, services.ErrUnknownChart
		},
	}

	r := httptest.NewRequest(http.MethodGet, "/charts/bogus", nil)
	w := httptest.NewRecorder()
	newHandler(svc).Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w.Body.Bytes())
	assert.Equal(t, apierrors.TypeChartNotFound, body["type"])
}

func TestGetChart_QueryParams(t *testing.T) {
	var gotInput services.SelectionInput
	svc := &stubService{
		resolve: func(ctx context.Context, in services.SelectionInput) (filter.Selection, error) {
			gotInput = in
			return filter.Selection{}, nil
		},
		chart: func(ctx context.Context, name string, sel filter.Selection) (interface{}, error) {
			return []domain.GroupSales{}, nil
		},
	}

	url := "/charts/category?date_start=2024-01-01&categories=Electronics&categories=Clothing&genders=Female,Male"
	r := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	newHandler(svc).Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotInput.DateStart)
	assert.Equal(t, "2024-01-01", gotInput.DateStart.Format("2006-01-02"))
	assert.Equal(t, []string{"Electronics", "Clothing"}, gotInput.Categories)
	assert.Equal(t, []string{"Female", "Male"}, gotInput.Genders)
	assert.Nil(t, gotInput.AgeGroups)
}

func TestExport(t *testing.T) {
	svc := &stubService{
		export: func(ctx context.Context, w io.Writer, sel filter.Selection) (int, error) {
			_, err := w.Write([]byte("order_id,customer_id\nO-1,C-1\n"))
			return 1, err
		},
	}

	r := httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(`{}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newHandler(svc).Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "O-1,C-1")
}

func TestQuery_DatasetUnavailable(t *testing.T) {
	svc := &stubService{
		resolve: func(ctx context.Context, in services.SelectionInput) (filter.Selection, error) {
			return filter.Selection{}, apierrors.DatasetLoadError(context.DeadlineExceeded)
		},
	}

	r := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(`{}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newHandler(svc).Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
