package analytics

import (
	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

// Usage describes how much one category is used across the whole ledger.
type Usage struct {
	CategoryID core.ID         `json:"categoryId"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
	Average    decimal.Decimal `json:"average"`
	// Share is Count as a percentage of all expenses, one decimal.
	Share decimal.Decimal `json:"share"`
}

// HasDependents reports whether deleting the category would leave
// expenses pointing at it.
func (u Usage) HasDependents() bool {
	return u.Count > 0
}

// CategoryUsage ignores date ranges: it always covers every expense.
func CategoryUsage(snap core.Snapshot, id core.ID) Usage {
	u := Usage{CategoryID: id, Total: decimal.Zero, Average: decimal.Zero, Share: decimal.Zero}
	for _, x := range snap.Expenses {
		if x.CategoryID == id {
			u.Count++
			u.Total = u.Total.Add(x.Amount)
		}
	}
	if u.Count > 0 {
		u.Average = u.Total.Div(decimal.NewFromInt(int64(u.Count))).Round(2)
	}
	if n := len(snap.Expenses); n > 0 {
		u.Share = decimal.NewFromInt(int64(u.Count) * 100).Div(decimal.NewFromInt(int64(n))).Round(1)
	}
	return u
}

// UsageByCategory returns the usage of every current category in
// collection order.
func UsageByCategory(snap core.Snapshot) []Usage {
	out := make([]Usage, 0, len(snap.Categories))
	for _, c := range snap.Categories {
		out = append(out, CategoryUsage(snap, c.ID))
	}
	return out
}
