package http

import (
	"context"
	"io"

	"salesdash/internal/filter"
	"salesdash/internal/services"
	"salesdash/pkg/contracts/domain"
)

// DashboardServiceInterface defines what handlers need from the
// dashboard service, kept narrow so tests can substitute a stub.
type DashboardServiceInterface interface {
	FilterOptions(ctx context.Context, selectedCategories []string) (filter.Options, error)
	Resolve(ctx context.Context, in services.SelectionInput) (filter.Selection, error)
	Query(ctx context.Context, sel filter.Selection) (*domain.DashboardTables, error)
	Chart(ctx context.Context, name string, sel filter.Selection) (interface{}, error)
	Export(ctx context.Context, w io.Writer, sel filter.Selection) (int, error)
}
