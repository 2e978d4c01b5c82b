// Package analytics computes derived views over a ledger snapshot: range
// totals, category breakdowns, time series, insights, budget status and
// per-category usage. Every function is pure with respect to its snapshot.
package analytics

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

// CategoryTotal is one group of a category breakdown. Display metadata is
// taken from the current category collection.
type CategoryTotal struct {
	Name  string          `json:"name"`
	Color string          `json:"color"`
	Icon  string          `json:"icon"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// inRange calls fn for every expense of snap dated within r.
func inRange(snap core.Snapshot, r core.DateRange, fn func(core.Expense)) {
	for _, x := range snap.Expenses {
		if r.Contains(x.Date) {
			fn(x)
		}
	}
}

// TotalInRange sums the amounts dated within r. A zero bound is unbounded.
func TotalInRange(snap core.Snapshot, r core.DateRange) decimal.Decimal {
	total := decimal.Zero
	inRange(snap, r, func(x core.Expense) {
		total = total.Add(x.Amount)
	})
	return total
}

// TotalsByCategory groups the expenses within r by resolved category name.
// Dangling references fall into the "Unknown" group. Groups are ordered by
// total descending, then name ascending.
func TotalsByCategory(snap core.Snapshot, r core.DateRange) []CategoryTotal {
	ix := snap.Index()
	groups := map[string]*CategoryTotal{}
	var order []string

	inRange(snap, r, func(x core.Expense) {
		c := ix.Resolve(x.CategoryID)
		g, ok := groups[c.Name]
		if !ok {
			g = &CategoryTotal{Name: c.Name, Color: c.Color, Icon: c.Icon, Total: decimal.Zero}
			groups[c.Name] = g
			order = append(order, c.Name)
		}
		g.Total = g.Total.Add(x.Amount)
		g.Count++
	})

	out := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		out = append(out, *groups[name])
	}
	slices.SortFunc(out, func(a, b CategoryTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}
