package controller

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/obsidiancapital/investor-portal/internal/aggregate"
	"github.com/obsidiancapital/investor-portal/internal/domain/models"
	"github.com/obsidiancapital/investor-portal/internal/loader"
	"github.com/obsidiancapital/investor-portal/internal/notify"
)

// AllocationPoster is the slice of the API client the allocations page
// submits through.
type AllocationPoster interface {
	AddFundAllocation(ctx context.Context, req models.NewAllocationRequest) error
}

// AllocationsController drives the fund-allocation page.
type AllocationsController struct {
	viewState[models.FundAllocation]
	fetch    func(context.Context) loader.Result[[]models.FundAllocation]
	poster   AllocationPoster
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewAllocations builds the controller around a fetch-with-fallback loader
// and a poster for form submissions.
func NewAllocations(fetch func(context.Context) loader.Result[[]models.FundAllocation], poster AllocationPoster, notifier notify.Notifier, logger *zap.Logger) *AllocationsController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AllocationsController{
		fetch:    fetch,
		poster:   poster,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Refresh re-fetches the allocation list. The displayed data stays in place
// until the new data settles, and a response from a superseded refresh is
// discarded.
func (c *AllocationsController) Refresh(ctx context.Context) {
	seq := c.beginRefresh()
	res := c.fetch(ctx)
	if !c.completeRefresh(seq, res.Data) {
		c.logger.Debug("discarded superseded allocation refresh", zap.Uint64("seq", seq))
	}
}

// AllocationForm carries the raw form inputs. Numeric fields arrive as
// strings and are coerced during validation.
type AllocationForm struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Notes    string `json:"notes"`
}

// Submit validates the form, POSTs it, and on success prepends a synthesized
// allocation with a temporary id. On any failure the page state is left
// untouched so the user can retry with their input intact.
func (c *AllocationsController) Submit(ctx context.Context, form AllocationForm) error {
	verr := &ValidationError{}
	category := requireMinLength(verr, "category", form.Category, 2, "Category is required")
	amount := requirePositiveNumber(verr, "amount", form.Amount, "Amount must be positive")
	if err := verr.asError(); err != nil {
		return err
	}

	c.setSubmitting(true)
	defer c.setSubmitting(false)

	today := c.now().Format("2006-01-02")
	req := models.NewAllocationRequest{
		Category: category,
		Amount:   amount,
		Notes:    form.Notes,
		Date:     today,
	}
	if err := c.poster.AddFundAllocation(ctx, req); err != nil {
		return err
	}

	// Temporary id until the next refresh replaces it with the server's.
	c.prepend(models.FundAllocation{
		ID:       c.now().UnixMilli(),
		Category: category,
		Amount:   amount,
		Date:     today,
		Notes:    form.Notes,
	})

	if c.notifier != nil {
		c.notifier.Info("Fund allocation added",
			fmt.Sprintf("$%.2f has been allocated to %s", amount, category))
	}
	return nil
}

// AllocationsView is the page's render model.
type AllocationsView struct {
	State           string                   `json:"state"`
	Submitting      bool                     `json:"submitting"`
	SelectedID      int64                    `json:"selected_id,omitempty"`
	HoveredCategory string                   `json:"hovered_category,omitempty"`
	Allocations     []models.FundAllocation  `json:"allocations"`
	Recent          []models.FundAllocation  `json:"recent"`
	TotalAllocated  float64                  `json:"total_allocated"`
	CategoryShares  []models.AllocationShare `json:"category_shares"`
}

// View derives the render model from the current records.
func (c *AllocationsController) View() AllocationsView {
	records, state, submitting, selectedID, hovered := c.snapshot()

	byCategory := aggregate.GroupSum(records,
		func(a models.FundAllocation) string { return a.Category },
		func(a models.FundAllocation) float64 { return a.Amount })

	shares := make([]models.AllocationShare, 0, byCategory.Len())
	for _, share := range aggregate.PercentShares(byCategory) {
		shares = append(shares, models.AllocationShare{Name: share.Key, Value: share.Value})
	}

	recent := records
	if len(recent) > 5 {
		recent = recent[:5]
	}

	return AllocationsView{
		State:           state.String(),
		Submitting:      submitting,
		SelectedID:      selectedID,
		HoveredCategory: hovered,
		Allocations:     records,
		Recent:          recent,
		TotalAllocated:  aggregate.Sum(records, func(a models.FundAllocation) float64 { return a.Amount }),
		CategoryShares:  shares,
	}
}
