package models

// FundAllocation represents an investor fund allocation as returned by the
// backend. Allocations are immutable once created; the client never edits or
// deletes them.
type FundAllocation struct {
	ID       int64   `json:"id"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"` // YYYY-MM-DD
	Notes    string  `json:"notes,omitempty"`
}

// NewAllocationRequest is the POST payload for recording an allocation.
type NewAllocationRequest struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Notes    string  `json:"notes,omitempty"`
	Date     string  `json:"date"`
}
