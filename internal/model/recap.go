package model

// RecapSummary aggregates a period's bookkeeping totals.
type RecapSummary struct {
	Monthly        []MonthlyRecap
	TotalPurchases int64
	TotalSales     int64
	TotalExpenses  int64
	NetProfit      int64
}

// MonthlyRecap is the per-month breakdown inside a yearly recap.
type MonthlyRecap struct {
	MonthName string
	Month     int
	Purchases int64
	Sales     int64
	Expenses  int64
	Profit    int64
}
