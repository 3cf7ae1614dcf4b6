package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/obsidiancapital/investor-portal/internal/domain/models"
)

// Transaction type tags used in the recent-transactions table.
const (
	TransactionTypeAllocation = "Fund Allocation"
	TransactionTypeSale       = "GPU Sale"
)

// SaleFinancials computes the derived money fields for a sale: profit is
// (resale - purchase) * quantity, margin is profit over total purchase cost
// as a percentage, rounded to one decimal. A zero cost yields a zero margin.
func SaleFinancials(purchasePrice, resalePrice float64, quantity int) (profit, margin float64) {
	qty := decimal.NewFromInt(int64(quantity))
	cost := decimal.NewFromFloat(purchasePrice).Mul(qty)
	gain := decimal.NewFromFloat(resalePrice).Mul(qty).Sub(cost)

	profit, _ = gain.Float64()
	if cost.IsZero() {
		return profit, 0
	}

	margin, _ = gain.Div(cost).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return profit, margin
}

// MergeRecentTransactions folds allocations and sales into one table, newest
// first, truncated to limit. Allocations contribute their amount, sales their
// profit. The sort is stable: for equal dates allocations keep their place
// ahead of sales because they are concatenated first.
func MergeRecentTransactions(allocations []models.FundAllocation, sales []models.SaleRecord, limit int) []models.TransactionView {
	merged := make([]models.TransactionView, 0, len(allocations)+len(sales))

	for _, a := range allocations {
		merged = append(merged, models.TransactionView{
			ID:     a.ID,
			Type:   TransactionTypeAllocation,
			Amount: a.Amount,
			Date:   a.Date,
			Status: "completed",
		})
	}
	for _, s := range sales {
		merged = append(merged, models.TransactionView{
			ID:     s.ID,
			Type:   TransactionTypeSale,
			Amount: s.Profit,
			Date:   s.Date,
			Status: "completed",
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return parseDay(merged[i].Date).After(parseDay(merged[j].Date))
	})

	if limit >= 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// BuildDashboardSummary derives the full dashboard from the allocation and
// sale collections plus the server-supplied monthly revenue series.
func BuildDashboardSummary(allocations []models.FundAllocation, sales []models.SaleRecord, monthly []models.MonthlyRevenue) models.DashboardSummary {
	totalInvestment := Sum(allocations, func(a models.FundAllocation) float64 { return a.Amount })

	totalRevenue := Sum(sales, func(s models.SaleRecord) float64 {
		qty := s.Quantity
		if qty == 0 {
			qty = 1
		}
		return s.ResalePrice * float64(qty)
	})

	totalProfit := Sum(sales, func(s models.SaleRecord) float64 { return s.Profit })

	profitMargin := 0.0
	if totalInvestment > 0 {
		profitMargin, _ = decimal.NewFromFloat(totalProfit).
			Div(decimal.NewFromFloat(totalInvestment)).
			Mul(decimal.NewFromInt(100)).
			Round(1).
			Float64()
	}

	byModel := GroupSum(sales, func(s models.SaleRecord) string { return s.GPUModel }, func(s models.SaleRecord) float64 {
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

	byCategory := GroupSum(allocations, func(a models.FundAllocation) string { return a.Category }, func(a models.FundAllocation) float64 { return a.Amount })
	shares := make([]models.AllocationShare, 0, byCategory.Len())
	for _, share := range PercentShares(byCategory) {
		shares = append(shares, models.AllocationShare{Name: share.Key, Value: share.Value})
	}

	return models.DashboardSummary{
		TotalInvestment:    totalInvestment,
		TotalRevenue:       totalRevenue,
		TotalProfit:        totalProfit,
		ProfitMargin:       profitMargin,
		RecentTransactions: MergeRecentTransactions(allocations, sales, 5),
		MonthlyRevenue:     monthly,
		AllocationShares:   shares,
		SalesByModel:       salesByModel,
	}
}
