package controller

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/obsidiancapital/investor-portal/internal/domain/models"
	"github.com/obsidiancapital/investor-portal/internal/loader"
)

// DashboardController drives the summary page. Unlike the list pages its
// state is a single derived summary, but the refresh mechanics are the same:
// Loading→Ready once per cycle, superseded responses discarded, displayed
// data kept until new data settles.
type DashboardController struct {
	mu         sync.Mutex
	summary    models.DashboardSummary
	state      PageState
	selectedID int64
	issuedSeq  uint64

	fetch  func(context.Context) loader.Result[models.DashboardSummary]
	logger *zap.Logger
}

// NewDashboard builds the controller.
func NewDashboard(fetch func(context.Context) loader.Result[models.DashboardSummary], logger *zap.Logger) *DashboardController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardController{fetch: fetch, logger: logger}
}

// Refresh re-derives the dashboard summary.
func (c *DashboardController) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.state = StateLoading
	c.issuedSeq++
	seq := c.issuedSeq
	c.mu.Unlock()

	res := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.issuedSeq {
		c.logger.Debug("discarded superseded dashboard refresh", zap.Uint64("seq", seq))
		return
	}
	c.summary = res.Data
	c.state = StateReady
}

// Select toggles the highlighted transaction row.
func (c *DashboardController) Select(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selectedID == id {
		c.selectedID = 0
		return
	}
	c.selectedID = id
}

// DashboardView is the page's render model.
type DashboardView struct {
	State               string `json:"state"`
	SelectedTransaction int64  `json:"selected_transaction,omitempty"`
	models.DashboardSummary
}

// View returns the current summary.
func (c *DashboardController) View() DashboardView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return DashboardView{
		State:               c.state.String(),
		SelectedTransaction: c.selectedID,
		DashboardSummary:    c.summary,
	}
}
