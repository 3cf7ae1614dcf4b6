// Package loader fetches each resource from the backend and degrades to a
// fixed demo dataset when the fetch fails. Loaders never return errors: the
// failure is logged, announced once as a switch to cached data, and the mock
// dataset is substituted. There is no retry and no live/mock merging.
package loader

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/obsidiancapital/investor-portal/internal/aggregate"
	"github.com/obsidiancapital/investor-portal/internal/domain/models"
	"github.com/obsidiancapital/investor-portal/internal/notify"
)

// Result carries the settled data for a resource. UsedFallback is true when
// the demo dataset was substituted for a failed fetch.
type Result[T any] struct {
	Data         T
	UsedFallback bool
}

// Backend is the slice of the API client the loaders consume.
type Backend interface {
	GetOverview(ctx context.Context) ([]models.MonthlyRevenue, error)
	GetFundAllocations(ctx context.Context) ([]models.FundAllocation, error)
	GetSales(ctx context.Context) ([]models.SaleRecord, error)
	GetReports(ctx context.Context) ([]models.Report, error)
}

// Loaders bundles the per-resource fetch-with-fallback operations.
type Loaders struct {
	backend  Backend
	notifier notify.Notifier
	logger   *zap.Logger
}

// New builds the loader set.
func New(backend Backend, notifier notify.Notifier, logger *zap.Logger) *Loaders {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loaders{backend: backend, notifier: notifier, logger: logger}
}

// withFallback runs fetch and substitutes mock on any failure. This is the
// one place the degrade-to-demo-data policy lives.
func withFallback[T any](ctx context.Context, l *Loaders, resource string, fetch func(context.Context) (T, error), mock func() T) Result[T] {
	data, err := fetch(ctx)
	if err != nil {
		l.logger.Warn("falling back to demo data", zap.String("resource", resource), zap.Error(err))
		if l.notifier != nil {
			l.notifier.Error("Error", "Failed to load "+resource+" data. Using cached data instead.")
		}
		return Result[T]{Data: mock(), UsedFallback: true}
	}
	return Result[T]{Data: data}
}

// Allocations fetches the fund allocation list.
func (l *Loaders) Allocations(ctx context.Context) Result[[]models.FundAllocation] {
	return withFallback(ctx, l, "fund allocation", l.backend.GetFundAllocations, mockAllocations)
}

// Sales fetches the sale list.
func (l *Loaders) Sales(ctx context.Context) Result[[]models.SaleRecord] {
	return withFallback(ctx, l, "sales", l.backend.GetSales, mockSales)
}

// Reports fetches the report list.
func (l *Loaders) Reports(ctx context.Context) Result[[]models.Report] {
	return withFallback(ctx, l, "reports", l.backend.GetReports, mockReports)
}

// Dashboard issues the three underlying fetches concurrently, waits for all
// of them, and derives the summary. Fallback is whole-batch: if any of the
// three fails the entire dashboard switches to demo data.
func (l *Loaders) Dashboard(ctx context.Context) Result[models.DashboardSummary] {
	return withFallback(ctx, l, "dashboard", l.fetchDashboard, mockDashboard)
}

func (l *Loaders) fetchDashboard(ctx context.Context) (models.DashboardSummary, error) {
	var (
		wg          sync.WaitGroup
		overview    []models.MonthlyRevenue
		allocations []models.FundAllocation
		sales       []models.SaleRecord

		overviewErr, allocationsErr, salesErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		overview, overviewErr = l.backend.GetOverview(ctx)
	}()
	go func() {
		defer wg.Done()
		allocations, allocationsErr = l.backend.GetFundAllocations(ctx)
	}()
	go func() {
		defer wg.Done()
		sales, salesErr = l.backend.GetSales(ctx)
	}()
	wg.Wait()

	for _, err := range []error{overviewErr, allocationsErr, salesErr} {
		if err != nil {
			return models.DashboardSummary{}, err
		}
	}

	monthly := mockMonthlyRevenue()
	if len(overview) > 0 {
		monthly = overview
	}

	return aggregate.BuildDashboardSummary(allocations, sales, monthly), nil
}
