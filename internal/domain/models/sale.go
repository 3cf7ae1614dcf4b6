package models

// SaleRecord represents a completed GPU resale. Profit and ProfitMargin are
// computed by the client when the record is created and trusted as stored
// thereafter; they are not recomputed from prices on read.
type SaleRecord struct {
	ID            int64   `json:"id"`
	GPUModel      string  `json:"gpu_model"`
	PurchasePrice float64 `json:"purchase_price"`
	ResalePrice   float64 `json:"resale_price"`
	Quantity      int     `json:"quantity"`
	Profit        float64 `json:"profit"`
	ProfitMargin  float64 `json:"profit_margin"`
	Customer      string  `json:"customer"`
	Date          string  `json:"date"` // YYYY-MM-DD
	Notes         string  `json:"notes,omitempty"`
}

// NewSaleRequest is the POST payload for recording a sale. Profit and margin
// are filled in by the caller before submission.
type NewSaleRequest struct {
	GPUModel      string  `json:"gpu_model"`
	PurchasePrice float64 `json:"purchase_price"`
	ResalePrice   float64 `json:"resale_price"`
	Quantity      int     `json:"quantity"`
	Profit        float64 `json:"profit"`
	ProfitMargin  float64 `json:"profit_margin"`
	Customer      string  `json:"customer"`
	Notes         string  `json:"notes,omitempty"`
	Date          string  `json:"date"`
}

// KnownGPUModels lists the models offered in the sale form.
var KnownGPUModels = []string{
	"RTX 4090",
	"RTX 4080",
	"RTX 4070",
	"RTX 3090",
	"RTX 3080",
	"RTX 3070",
}
