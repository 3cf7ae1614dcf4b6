package controller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/obsidiancapital/investor-portal/internal/domain/models"
	"github.com/obsidiancapital/investor-portal/internal/loader"
)

type countingReportPoster struct {
	calls atomic.Int32
	last  models.NewReportRequest
	err   error
}

func (p *countingReportPoster) AddReport(ctx context.Context, req models.NewReportRequest) error {
	p.calls.Add(1)
	p.last = req
	return p.err
}

func reportsFetch(data []models.Report) func(context.Context) loader.Result[[]models.Report] {
	return func(context.Context) loader.Result[[]models.Report] {
		return loader.Result[[]models.Report]{Data: data}
	}
}

func TestReportsSubmitAlwaysDraft(t *testing.T) {
	poster := &countingReportPoster{}
	c := NewReports(reportsFetch(nil), poster, nil, nil)
	c.now = fixedTime
	c.Refresh(context.Background())

	form := ReportForm{
		Title:   "Q2 Performance Review",
		Type:    "quarterly",
		Summary: "Revenue grew 12% quarter over quarter.",
	}
	if err := c.Submit(context.Background(), form); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	view := c.View()
	if len(view.Reports) != 1 {
		t.Fatalf("len = %d, want 1", len(view.Reports))
	}
	if got := view.Reports[0].Status; got != models.ReportStatusDraft {
		t.Errorf("status = %s, want draft regardless of input", got)
	}
	if len(view.Drafts) != 1 || len(view.Published) != 0 {
		t.Errorf("splits = %d drafts / %d published, want 1/0", len(view.Drafts), len(view.Published))
	}
	if poster.last.Title != "Q2 Performance Review" || poster.last.Type != "quarterly" {
		t.Errorf("posted request = %+v", poster.last)
	}
}

func TestReportsSubmitValidation(t *testing.T) {
	tests := []struct {
		name      string
		form      ReportForm
		badFields []string
	}{
		{
			name:      "short title",
			form:      ReportForm{Title: "Q2", Type: "monthly", Summary: "A long enough summary."},
			badFields: []string{"title"},
		},
		{
			name:      "unknown type",
			form:      ReportForm{Title: "Annual Overview", Type: "weekly", Summary: "A long enough summary."},
			badFields: []string{"type"},
		},
		{
			name:      "short summary",
			form:      ReportForm{Title: "Annual Overview", Type: "financial", Summary: "Too short"},
			badFields: []string{"summary"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poster := &countingReportPoster{}
			c := NewReports(reportsFetch(nil), poster, nil, nil)

			err := c.Submit(context.Background(), tt.form)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if len(verr.Fields) != len(tt.badFields) || verr.Fields[0].Field != tt.badFields[0] {
				t.Errorf("fields = %v, want %v", verr.Fields, tt.badFields)
			}
			if poster.calls.Load() != 0 {
				t.Errorf("poster calls = %d, want 0", poster.calls.Load())
			}
		})
	}
}

func TestReportsViewSplits(t *testing.T) {
	records := []models.Report{
		{ID: 1, Title: "March", Status: models.ReportStatusPublished},
		{ID: 2, Title: "April", Status: models.ReportStatusDraft},
		{ID: 3, Title: "May", Status: models.ReportStatusPublished},
	}
	c := NewReports(reportsFetch(records), &countingReportPoster{}, nil, nil)
	c.Refresh(context.Background())

	view := c.View()
	if len(view.Published) != 2 || view.Published[0].ID != 1 || view.Published[1].ID != 3 {
		t.Errorf("Published = %v, want ids 1 and 3 in order", view.Published)
	}
	if len(view.Drafts) != 1 || view.Drafts[0].ID != 2 {
		t.Errorf("Drafts = %v, want id 2", view.Drafts)
	}
	if len(view.Types) == 0 {
		t.Error("Types empty, want the report type list")
	}
}
