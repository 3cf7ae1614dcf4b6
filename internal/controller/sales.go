package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/obsidiancapital/investor-portal/internal/aggregate"
	"github.com/obsidiancapital/investor-portal/internal/domain/models"
	"github.com/obsidiancapital/investor-portal/internal/loader"
	"github.com/obsidiancapital/investor-portal/internal/notify"
)

// SalePoster is the slice of the API client the sales page submits through.
type SalePoster interface {
	AddSale(ctx context.Context, req models.NewSaleRequest) error
}

// SalesController drives the GPU sales and revenue page.
type SalesController struct {
	viewState[models.SaleRecord]
	fetch    func(context.Context) loader.Result[[]models.SaleRecord]
	poster   SalePoster
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewSales builds the controller.
func NewSales(fetch func(context.Context) loader.Result[[]models.SaleRecord], poster SalePoster, notifier notify.Notifier, logger *zap.Logger) *SalesController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesController{
		fetch:    fetch,
		poster:   poster,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Refresh re-fetches the sale list, keeping displayed data until the new
// data settles and discarding superseded responses.
func (c *SalesController) Refresh(ctx context.Context) {
	seq := c.beginRefresh()
	res := c.fetch(ctx)
	if !c.completeRefresh(seq, res.Data) {
		c.logger.Debug("discarded superseded sales refresh", zap.Uint64("seq", seq))
	}
}

// SaleForm carries the raw form inputs for a new sale.
type SaleForm struct {
	GPUModel      string `json:"gpu_model"`
	PurchasePrice string `json:"purchase_price"`
	SalePrice     string `json:"sale_price"`
	Quantity      string `json:"quantity"`
	Customer      string `json:"customer"`
	Notes         string `json:"notes"`
}

// Submit validates the form, derives profit and margin, POSTs the record,
// and prepends a synthesized sale on success. Derived money fields are
// computed here, at creation time, and trusted thereafter.
func (c *SalesController) Submit(ctx context.Context, form SaleForm) error {
	verr := &ValidationError{}
	model := requireMinLength(verr, "gpu_model", form.GPUModel, 1, "GPU model is required")
	purchase := requirePositiveNumber(verr, "purchase_price", form.PurchasePrice, "Purchase price must be positive")
	sale := requirePositiveNumber(verr, "sale_price", form.SalePrice, "Sale price must be positive")
	quantity := requirePositiveInt(verr, "quantity", form.Quantity, "Quantity must be a positive integer")
	customer := requireMinLength(verr, "customer", form.Customer, 1, "Customer name is required")
	if err := verr.asError(); err != nil {
		return err
	}

	c.setSubmitting(true)
	defer c.setSubmitting(false)

	profit, margin := aggregate.SaleFinancials(purchase, sale, quantity)
	today := c.now().Format("2006-01-02")

	req := models.NewSaleRequest{
		GPUModel:      model,
		PurchasePrice: purchase,
		ResalePrice:   sale,
		Quantity:      quantity,
		Profit:        profit,
		ProfitMargin:  margin,
		Customer:      customer,
		Notes:         form.Notes,
		Date:          today,
	}
	if err := c.poster.AddSale(ctx, req); err != nil {
		return err
	}

	c.prepend(models.SaleRecord{
		ID:            c.now().UnixMilli(),
		GPUModel:      model,
		PurchasePrice: purchase,
		ResalePrice:   sale,
		Quantity:      quantity,
		Profit:        profit,
		ProfitMargin:  margin,
		Customer:      customer,
		Date:          today,
		Notes:         form.Notes,
	})

	if c.notifier != nil {
		c.notifier.Info("Sale recorded",
			fmt.Sprintf("%d %s units sold to %s", quantity, model, customer))
	}
	return nil
}

// Sales returns a copy of the current record list, for the export handler.
func (c *SalesController) Sales() []models.SaleRecord {
	records, _, _, _, _ := c.snapshot()
	return records
}

// ProfitPoint is one point of the profit trend chart.
type ProfitPoint struct {
	Name   string  `json:"name"`
	Profit float64 `json:"profit"`
}

// SalesView is the page's render model.
type SalesView struct {
	State        string               `json:"state"`
	Submitting   bool                 `json:"submitting"`
	SelectedID   int64                `json:"selected_id,omitempty"`
	HoveredModel string               `json:"hovered_model,omitempty"`
	Sales        []models.SaleRecord  `json:"sales"`
	TotalProfit  float64              `json:"total_profit"`
	TotalRevenue float64              `json:"total_revenue"`
	AvgMargin    float64              `json:"avg_margin"`
	ProfitTrend  []ProfitPoint        `json:"profit_trend"`
	SalesByModel []models.ModelSales  `json:"sales_by_model"`
	GPUModels    []string             `json:"gpu_models"`
}

// View derives the render model from the current records.
func (c *SalesController) View() SalesView {
	records, state, submitting, selectedID, hovered := c.snapshot()

	totalProfit := aggregate.Sum(records, func(s models.SaleRecord) float64 { return s.Profit })
	totalRevenue := aggregate.Sum(records, func(s models.SaleRecord) float64 {
		qty := s.Quantity
		if qty == 0 {
			qty = 1
		}
		return s.ResalePrice * float64(qty)
	})

	avgMargin := 0.0
	if len(records) > 0 {
		sum := aggregate.Sum(records, func(s models.SaleRecord) float64 { return s.ProfitMargin })
		avgMargin, _ = decimal.NewFromFloat(sum).
			Div(decimal.NewFromInt(int64(len(records)))).
			Round(1).
			Float64()
	}

	ordered := aggregate.SortByDateAscending(records, func(s models.SaleRecord) string { return s.Date })
	trend := make([]ProfitPoint, 0, len(ordered))
	for _, s := range ordered {
		trend = append(trend, ProfitPoint{Name: s.Date, Profit: s.Profit})
	}

	byModel := aggregate.GroupSum(records,
		func(s models.SaleRecord) string { return s.GPUModel },
		func(s models.SaleRecord) float64 {
			qty := s.Quantity
			if qty == 0 {
				qty = 1
			}
			return float64(qty)
		})
	salesByModel := make([]models.ModelSales, 0, byModel.Len())
	for _, model := range byModel.Keys() {
		salesByModel = append(salesByModel, models.ModelSales{Name: model, Sales: int(byModel.Get(model))})
	}

	return SalesView{
		State:        state.String(),
		Submitting:   submitting,
		SelectedID:   selectedID,
		HoveredModel: hovered,
		Sales:        records,
		TotalProfit:  totalProfit,
		TotalRevenue: totalRevenue,
		AvgMargin:    avgMargin,
		ProfitTrend:  trend,
		SalesByModel: salesByModel,
		GPUModels:    models.KnownGPUModels,
	}
}
