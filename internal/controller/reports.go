package controller

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/obsidiancapital/investor-portal/internal/domain/models"
	"github.com/obsidiancapital/investor-portal/internal/loader"
	"github.com/obsidiancapital/investor-portal/internal/notify"
)

// ReportPoster is the slice of the API client the reports page submits
// through.
type ReportPoster interface {
	AddReport(ctx context.Context, req models.NewReportRequest) error
}

// ReportsController drives the reports page.
type ReportsController struct {
	viewState[models.Report]
	fetch    func(context.Context) loader.Result[[]models.Report]
	poster   ReportPoster
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewReports builds the controller.
func NewReports(fetch func(context.Context) loader.Result[[]models.Report], poster ReportPoster, notifier notify.Notifier, logger *zap.Logger) *ReportsController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportsController{
		fetch:    fetch,
		poster:   poster,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Refresh re-fetches the report list, discarding superseded responses.
func (c *ReportsController) Refresh(ctx context.Context) {
	seq := c.beginRefresh()
	res := c.fetch(ctx)
	if !c.completeRefresh(seq, res.Data) {
		c.logger.Debug("discarded superseded reports refresh", zap.Uint64("seq", seq))
	}
}

// ReportForm carries the raw form inputs for a new report.
type ReportForm struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Summary string `json:"summary"`
}

// Submit validates the form, POSTs it, and prepends a synthesized draft on
// success. New reports are always created as drafts.
func (c *ReportsController) Submit(ctx context.Context, form ReportForm) error {
	verr := &ValidationError{}
	title := requireMinLength(verr, "title", form.Title, 5, "Title must be at least 5 characters")
	reportType := requireMinLength(verr, "type", form.Type, 1, "Report type is required")
	if reportType != "" && !models.IsValidReportType(reportType) {
		verr.add("type", "Unknown report type")
	}
	summary := requireMinLength(verr, "summary", form.Summary, 10, "Summary must be at least 10 characters")
	if err := verr.asError(); err != nil {
		return err
	}

	c.setSubmitting(true)
	defer c.setSubmitting(false)

	today := c.now().Format("2006-01-02")
	req := models.NewReportRequest{
		Title:   title,
		Content: summary,
		Type:    reportType,
		Date:    today,
	}
	if err := c.poster.AddReport(ctx, req); err != nil {
		return err
	}

	c.prepend(models.Report{
		ID:      c.now().UnixMilli(),
		Title:   title,
		Type:    reportType,
		Content: summary,
		Date:    today,
		Status:  models.ReportStatusDraft,
	})

	if c.notifier != nil {
		c.notifier.Info("Report created", "Your report has been saved as a draft")
	}
	return nil
}

// ReportsView is the page's render model, with the published/draft splits
// the page tabs render from.
type ReportsView struct {
	State      string          `json:"state"`
	Submitting bool            `json:"submitting"`
	SelectedID int64           `json:"selected_id,omitempty"`
	Reports    []models.Report `json:"reports"`
	Published  []models.Report `json:"published"`
	Drafts     []models.Report `json:"drafts"`
	Types      []string        `json:"types"`
}

// View derives the render model from the current records.
func (c *ReportsController) View() ReportsView {
	records, state, submitting, selectedID, _ := c.snapshot()

	published := make([]models.Report, 0, len(records))
	drafts := make([]models.Report, 0, len(records))
	for _, r := range records {
		switch r.Status {
		case models.ReportStatusPublished:
			published = append(published, r)
		case models.ReportStatusDraft:
			drafts = append(drafts, r)
		}
	}

	return ReportsView{
		State:      state.String(),
		Submitting: submitting,
		SelectedID: selectedID,
		Reports:    records,
		Published:  published,
		Drafts:     drafts,
		Types:      models.ReportTypes,
	}
}

// Reports returns a copy of the current record list, for the export handler.
func (c *ReportsController) Reports() []models.Report {
	records, _, _, _, _ := c.snapshot()
	return records
}
