package models

// Report statuses. New reports are always created as drafts.
const (
	ReportStatusDraft     = "draft"
	ReportStatusPublished = "published"
)

// ReportTypes lists the accepted report categories.
var ReportTypes = []string{
	"monthly",
	"quarterly",
	"financial",
	"market",
	"strategic",
	"operational",
}

// Report represents an investor-facing report document.
type Report struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Type    string `json:"type"`
	Content string `json:"content"`
	Date    string `json:"date"` // YYYY-MM-DD
	Status  string `json:"status"`
}

// NewReportRequest is the POST payload for creating a report draft.
type NewReportRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"type"`
	Date    string `json:"date"`
}

// IsValidReportType reports whether t is one of the accepted categories.
func IsValidReportType(t string) bool {
	for _, known := range ReportTypes {
		if t == known {
			return true
		}
	}
	return false
}
