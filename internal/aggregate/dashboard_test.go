package aggregate

import (
	"reflect"
	"testing"

	"github.com/obsidiancapital/investor-portal/internal/domain/models"
)

func TestSaleFinancials(t *testing.T) {
	tests := []struct {
		name       string
		purchase   float64
		resale     float64
		quantity   int
		wantProfit float64
		wantMargin float64
	}{
		{"standard sale", 1000, 1200, 5, 1000, 20.0},
		{"loss", 1200, 1100, 2, -200, -8.3},
		{"single unit", 700, 850, 1, 150, 21.4},
		{"zero quantity", 1000, 1200, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profit, margin := SaleFinancials(tt.purchase, tt.resale, tt.quantity)
			if profit != tt.wantProfit {
				t.Errorf("profit = %v, want %v", profit, tt.wantProfit)
			}
			if margin != tt.wantMargin {
				t.Errorf("margin = %v, want %v", margin, tt.wantMargin)
			}
		})
	}
}

func TestMergeRecentTransactions(t *testing.T) {
	t.Run("allocation wins a date tie", func(t *testing.T) {
		allocations := []models.FundAllocation{{ID: 10, Amount: 25000, Date: "2025-04-01"}}
		sales := []models.SaleRecord{{ID: 20, Profit: 1800, Date: "2025-04-01"}}

		merged := MergeRecentTransactions(allocations, sales, 5)
		if len(merged) != 2 {
			t.Fatalf("len = %d, want 2", len(merged))
		}
		if merged[0].Type != TransactionTypeAllocation || merged[1].Type != TransactionTypeSale {
			t.Errorf("tie-break order = [%s, %s], want allocation first", merged[0].Type, merged[1].Type)
		}
		if merged[1].Amount != 1800 {
			t.Errorf("sale amount = %v, want profit 1800", merged[1].Amount)
		}
	})

	t.Run("sorts newest first and truncates", func(t *testing.T) {
		allocations := []models.FundAllocation{
			{ID: 1, Date: "2025-03-15", Amount: 50000},
			{ID: 2, Date: "2025-05-05", Amount: 70000},
		}
		sales := []models.SaleRecord{
			{ID: 3, Date: "2025-04-10", Profit: 900},
			{ID: 4, Date: "2025-04-15", Profit: 1200},
		}

		merged := MergeRecentTransactions(allocations, sales, 3)
		if len(merged) != 3 {
			t.Fatalf("len = %d, want truncation to 3", len(merged))
		}
		gotDates := []string{merged[0].Date, merged[1].Date, merged[2].Date}
		want := []string{"2025-05-05", "2025-04-15", "2025-04-10"}
		if !reflect.DeepEqual(gotDates, want) {
			t.Errorf("dates = %v, want %v", gotDates, want)
		}
	})

	t.Run("empty inputs yield an empty table", func(t *testing.T) {
		if got := MergeRecentTransactions(nil, nil, 5); len(got) != 0 {
			t.Errorf("merged = %v, want empty", got)
		}
	})
}

func TestBuildDashboardSummary(t *testing.T) {
	allocations := []models.FundAllocation{
		{ID: 1, Category: "GPU Purchases", Amount: 150000, Date: "2025-03-15"},
		{ID: 2, Category: "Reserves", Amount: 50000, Date: "2025-04-22"},
	}
	sales := []models.SaleRecord{
		{ID: 3, GPUModel: "RTX 4090", ResalePrice: 1450, Quantity: 5, Profit: 1250, Date: "2025-03-20"},
		{ID: 4, GPUModel: "RTX 4080", ResalePrice: 1150, Quantity: 8, Profit: 1600, Date: "2025-03-25"},
	}
	monthly := []models.MonthlyRevenue{{Name: "Mar", Revenue: 32000}}

	summary := BuildDashboardSummary(allocations, sales, monthly)

	if summary.TotalInvestment != 200000 {
		t.Errorf("TotalInvestment = %v, want 200000", summary.TotalInvestment)
	}
	if want := 1450*5 + 1150*8; summary.TotalRevenue != float64(want) {
		t.Errorf("TotalRevenue = %v, want %d", summary.TotalRevenue, want)
	}
	if summary.TotalProfit != 2850 {
		t.Errorf("TotalProfit = %v, want 2850", summary.TotalProfit)
	}
	// 2850 / 200000 * 100 rounded to one decimal.
	if summary.ProfitMargin != 1.4 {
		t.Errorf("ProfitMargin = %v, want 1.4", summary.ProfitMargin)
	}

	wantShares := []models.AllocationShare{
		{Name: "GPU Purchases", Value: 75},
		{Name: "Reserves", Value: 25},
	}
	if !reflect.DeepEqual(summary.AllocationShares, wantShares) {
		t.Errorf("AllocationShares = %v, want %v", summary.AllocationShares, wantShares)
	}

	wantByModel := []models.ModelSales{
		{Name: "RTX 4090", Sales: 5},
		{Name: "RTX 4080", Sales: 8},
	}
	if !reflect.DeepEqual(summary.SalesByModel, wantByModel) {
		t.Errorf("SalesByModel = %v, want %v", summary.SalesByModel, wantByModel)
	}

	if !reflect.DeepEqual(summary.MonthlyRevenue, monthly) {
		t.Errorf("MonthlyRevenue = %v, want passthrough %v", summary.MonthlyRevenue, monthly)
	}

	if len(summary.RecentTransactions) != 4 {
		t.Fatalf("RecentTransactions len = %d, want 4", len(summary.RecentTransactions))
	}
	if summary.RecentTransactions[0].Date != "2025-04-22" {
		t.Errorf("newest transaction date = %s, want 2025-04-22", summary.RecentTransactions[0].Date)
	}

	t.Run("zero investment yields zero margin", func(t *testing.T) {
		s := BuildDashboardSummary(nil, sales, nil)
		if s.ProfitMargin != 0 {
			t.Errorf("ProfitMargin = %v, want 0", s.ProfitMargin)
		}
	})
}
