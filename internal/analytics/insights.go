package analytics

import (
	"cmp"
	"fmt"

	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

// Insight is one headline figure of a summary view.
type Insight struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Amount string `json:"amount"`
	Icon   string `json:"icon"`
	Color  string `json:"color"` // display class, e.g. text-red-600
}

const (
	TitleTopCategory      = "Top Spending Category"
	TitleAverageDaily     = "Average Daily Spending"
	TitleLargestExpense   = "Largest Single Expense"
	TitleFrequentCategory = "Most Frequent Category"
)

// Insights derives the headline figures for span. An empty ledger has no
// insights; a ledger with nothing in span still reports the daily average.
// Ties between categories go to the smaller name, ties between expenses
// to the earlier date, then description, then id.
func Insights(snap core.Snapshot, span Span, f Formatter) []Insight {
	if len(snap.Expenses) == 0 {
		return nil
	}
	ix := snap.Index()
	totals := TotalsByCategory(snap, span.Range)

	var out []Insight

	if len(totals) > 0 {
		top := totals[0]
		out = append(out, Insight{
			Title:  TitleTopCategory,
			Value:  top.Name,
			Amount: f.Format(top.Total),
			Icon:   top.Icon,
			Color:  "text-red-600",
		})
	}

	days := span.Days
	if days <= 0 {
		days = 1
	}
	avg := TotalInRange(snap, span.Range).Div(decimal.NewFromInt(int64(days)))
	out = append(out, Insight{
		Title:  TitleAverageDaily,
		Value:  f.Format(avg),
		Amount: fmt.Sprintf("over %d days", days),
		Icon:   "📅",
		Color:  "text-blue-600",
	})

	if largest, ok := largestExpense(snap, span.Range); ok {
		icon := "💰"
		if ix.Known(largest.CategoryID) {
			icon = ix.Resolve(largest.CategoryID).Icon
		}
		out = append(out, Insight{
			Title:  TitleLargestExpense,
			Value:  largest.Description,
			Amount: f.Format(largest.Amount),
			Icon:   icon,
			Color:  "text-purple-600",
		})
	}

	if freq, ok := mostFrequent(totals); ok {
		icon := "🔄"
		if c, found := categoryNamed(snap.Categories, freq.Name); found {
			icon = c.Icon
		}
		out = append(out, Insight{
			Title:  TitleFrequentCategory,
			Value:  freq.Name,
			Amount: fmt.Sprintf("%d transactions", freq.Count),
			Icon:   icon,
			Color:  "text-green-600",
		})
	}

	return out
}

func largestExpense(snap core.Snapshot, r core.DateRange) (core.Expense, bool) {
	var best core.Expense
	found := false
	inRange(snap, r, func(x core.Expense) {
		if !found || beats(x, best) {
			best, found = x, true
		}
	})
	return best, found
}

// beats reports whether a outranks b as the largest expense.
func beats(a, b core.Expense) bool {
	if c := a.Amount.Cmp(b.Amount); c != 0 {
		return c > 0
	}
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	if c := cmp.Compare(a.Description, b.Description); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}

func mostFrequent(totals []CategoryTotal) (CategoryTotal, bool) {
	if len(totals) == 0 {
		return CategoryTotal{}, false
	}
	best := totals[0]
	for _, t := range totals[1:] {
		if t.Count > best.Count || (t.Count == best.Count && t.Name < best.Name) {
			best = t
		}
	}
	return best, true
}

func categoryNamed(categories []core.Category, name string) (core.Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}
	return core.Category{}, false
}
