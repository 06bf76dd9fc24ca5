package model

// Expense is a single operating expense entry outside device purchases.
type Expense struct {
	ID          string
	Description string
	CreatedAt   string
	Amount      int64
}

// ExpenseSummary is the period expense report the backend returns: the
// itemized extra expenses plus the admin-fee and shipping totals it has
// already aggregated from imports.
type ExpenseSummary struct {
	Extras        []Expense
	AdminFeeTotal int64
	ShippingTotal int64
}

// ExtrasTotal sums the itemized extra expenses.
func (s ExpenseSummary) ExtrasTotal() int64 {
	var total int64
	for _, e := range s.Extras {
		total += e.Amount
	}
	return total
}

// Total returns admin fees + shipping + extras.
func (s ExpenseSummary) Total() int64 {
	return s.AdminFeeTotal + s.ShippingTotal + s.ExtrasTotal()
}
