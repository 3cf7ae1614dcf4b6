package models

// MonthlyRevenue is one point of the server-supplied revenue trend series.
type MonthlyRevenue struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// AllocationShare is a category's rounded percentage of the total allocation.
type AllocationShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ModelSales is the number of units sold for one GPU model.
type ModelSales struct {
	Name  string `json:"name"`
	Sales int    `json:"sales"`
}

// TransactionView is a row of the recent-transactions table, merged from fund
// allocations and sales.
type TransactionView struct {
	ID     int64   `json:"id"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
	Status string  `json:"status"`
}

// DashboardSummary is wholly derived from the allocation and sale collections
// plus the server-supplied monthly revenue series. It is never persisted.
type DashboardSummary struct {
	TotalInvestment    float64           `json:"total_investment"`
	TotalRevenue       float64           `json:"total_revenue"`
	TotalProfit        float64           `json:"total_profit"`
	ProfitMargin       float64           `json:"profit_margin"`
	RecentTransactions []TransactionView `json:"recent_transactions"`
	MonthlyRevenue     []MonthlyRevenue  `json:"monthly_revenue"`
	AllocationShares   []AllocationShare `json:"allocation_data"`
	SalesByModel       []ModelSales      `json:"sales_data"`
}
