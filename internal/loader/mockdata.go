package loader

import "github.com/obsidiancapital/investor-portal/internal/domain/models"

// Fixed demo datasets substituted when a live fetch fails, so the portal
// stays populated. Copy functions hand out fresh slices; callers mutate their
// page state freely.

func mockAllocations() []models.FundAllocation {
	return []models.FundAllocation{
		{ID: 1, Amount: 50000, Date: "2025-03-15", Category: "GPU Purchases", Notes: "Initial investment for Q1 2025"},
		{ID: 2, Amount: 25000, Date: "2025-03-28", Category: "Operating Costs", Notes: "Staff and facility costs for Q1"},
		{ID: 3, Amount: 75000, Date: "2025-04-10", Category: "GPU Purchases", Notes: "Expansion for Q2 inventory"},
		{ID: 4, Amount: 30000, Date: "2025-04-22", Category: "Reserves", Notes: "Emergency fund"},
		{ID: 5, Amount: 70000, Date: "2025-05-05", Category: "GPU Purchases", Notes: "New models acquisition"},
	}
}

func mockSales() []models.SaleRecord {
	return []models.SaleRecord{
		{
			ID: 1, Date: "2025-03-20", GPUModel: "RTX 4090",
			PurchasePrice: 1200, ResalePrice: 1450, Quantity: 5,
			Profit: 1250, ProfitMargin: 20.8,
			Customer: "TechCorp Inc.", Notes: "Bulk order for new gaming cafe",
		},
		{
			ID: 2, Date: "2025-03-25", GPUModel: "RTX 4080",
			PurchasePrice: 950, ResalePrice: 1150, Quantity: 8,
			Profit: 1600, ProfitMargin: 21.1,
			Customer: "GameStation", Notes: "Regular client, repeat order",
		},
		{
			ID: 3, Date: "2025-04-02", GPUModel: "RTX 4070",
			PurchasePrice: 700, ResalePrice: 850, Quantity: 12,
			Profit: 1800, ProfitMargin: 21.4,
			Customer: "MiningOps LLC", Notes: "New client, potential for larger orders",
		},
		{
			ID: 4, Date: "2025-04-10", GPUModel: "RTX 3090",
			PurchasePrice: 800, ResalePrice: 950, Quantity: 6,
			Profit: 900, ProfitMargin: 18.8,
			Customer: "VR Solutions", Notes: "For VR development workstations",
		},
		{
			ID: 5, Date: "2025-04-15", GPUModel: "RTX 4090",
			PurchasePrice: 1200, ResalePrice: 1500, Quantity: 4,
			Profit: 1200, ProfitMargin: 25.0,
			Customer: "AI Research Lab", Notes: "Premium pricing for urgent delivery",
		},
	}
}

func mockReports() []models.Report {
	return []models.Report{
		{
			ID: 1, Title: "Q1 2025 Financial Summary", Type: "quarterly", Date: "2025-03-31",
			Status: models.ReportStatusPublished,
			Content: "Summary of Q1 2025 financial performance including revenue, expenses, and profit analysis.",
		},
		{
			ID: 2, Title: "GPU Market Analysis - March 2025", Type: "market", Date: "2025-03-15",
			Status: models.ReportStatusPublished,
			Content: "Analysis of current GPU market trends, pricing fluctuations, and future projections.",
		},
		{
			ID: 3, Title: "Investor Profit Distribution - Q1", Type: "financial", Date: "2025-04-05",
			Status: models.ReportStatusDraft,
			Content: "Detailed breakdown of Q1 profit distribution among investors based on allocation percentages.",
		},
		{
			ID: 4, Title: "Strategic Outlook - 2025", Type: "strategic", Date: "2025-01-10",
			Status: models.ReportStatusPublished,
			Content: "Long-term strategic plan for 2025, including market positioning, growth targets, and risk assessment.",
		},
		{
			ID: 5, Title: "April 2025 Performance Update", Type: "monthly", Date: "2025-05-01",
			Status: models.ReportStatusDraft,
			Content: "Monthly performance update for April 2025, highlighting key achievements and challenges.",
		},
	}
}

func mockMonthlyRevenue() []models.MonthlyRevenue {
	return []models.MonthlyRevenue{
		{Name: "Jan", Revenue: 18000},
		{Name: "Feb", Revenue: 22000},
		{Name: "Mar", Revenue: 32000},
		{Name: "Apr", Revenue: 28000},
		{Name: "May", Revenue: 35000},
		{Name: "Jun", Revenue: 42000},
	}
}

func mockDashboard() models.DashboardSummary {
	return models.DashboardSummary{
		TotalInvestment: 250000,
		TotalRevenue:    312500,
		TotalProfit:     62500,
		ProfitMargin:    25,
		RecentTransactions: []models.TransactionView{
			{ID: 1, Type: "Fund Allocation", Amount: 50000, Date: "2025-03-15", Status: "completed"},
			{ID: 2, Type: "GPU Purchase", Amount: -35000, Date: "2025-03-18", Status: "completed"},
			{ID: 3, Type: "GPU Sale", Amount: 42000, Date: "2025-03-25", Status: "completed"},
			{ID: 4, Type: "Fund Allocation", Amount: 25000, Date: "2025-04-01", Status: "pending"},
		},
		MonthlyRevenue: mockMonthlyRevenue(),
		AllocationShares: []models.AllocationShare{
			{Name: "GPU Purchases", Value: 65},
			{Name: "Operating Costs", Value: 15},
			{Name: "Reserves", Value: 20},
		},
		SalesByModel: []models.ModelSales{
			{Name: "RTX 4090", Sales: 42},
			{Name: "RTX 4080", Sales: 38},
			{Name: "RTX 4070", Sales: 55},
			{Name: "RTX 3090", Sales: 25},
			{Name: "RTX 3080", Sales: 30},
		},
	}
}
