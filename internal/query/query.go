// Package query filters and sorts the expenses of a snapshot.
package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"ledger/internal/core"
)

type SortKey string

const (
	SortByDate        SortKey = "date"
	SortByAmount      SortKey = "amount"
	SortByDescription SortKey = "description"
	SortByCategory    SortKey = "category"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Criteria are ANDed together. Zero fields do not filter.
type Criteria struct {
	CategoryID core.ID
	Search     string
	From       core.Date
	To         core.Date
}

// Order is a sort key plus direction. The zero Order keeps storage order.
type Order struct {
	Key       SortKey
	Direction Direction
}

// DefaultOrder is newest date first.
var DefaultOrder = Order{Key: SortByDate, Direction: Descending}

// Result is the filtered, sorted view. Count and Total describe the
// filtered set and do not depend on the order.
type Result struct {
	Expenses []core.Expense
	Count    int
	Total    decimal.Decimal
}

// Toggle returns the order after a user selects key: the same key flips
// direction, a new key starts descending.
func (o Order) Toggle(key SortKey) Order {
	if o.Key == key {
		if o.Direction == Ascending {
			return Order{Key: key, Direction: Descending}
		}
		return Order{Key: key, Direction: Ascending}
	}
	return Order{Key: key, Direction: Descending}
}

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortByDate, SortByAmount, SortByDescription, SortByCategory:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Ascending, Descending:
		return d, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q", s)
	}
}

// Engine runs queries with a fixed collation locale.
type Engine struct {
	locale language.Tag
}

func NewEngine(locale language.Tag) *Engine {
	return &Engine{locale: locale}
}

// Run filters snap.Expenses by c and stable-sorts the result by o. The
// snapshot is not modified.
func (e *Engine) Run(snap core.Snapshot, c Criteria, o Order) Result {
	matched := Filter(snap.Expenses, c)

	res := Result{Expenses: matched, Count: len(matched), Total: decimal.Zero}
	for _, x := range matched {
		res.Total = res.Total.Add(x.Amount)
	}

	if o.Key != "" {
		e.sort(matched, snap.Index(), o)
	}
	return res
}

// Filter returns a new slice with the expenses matching c, in input order.
func Filter(expenses []core.Expense, c Criteria) []core.Expense {
	needle := strings.ToLower(c.Search)
	window := core.DateRange{From: c.From, To: c.To}

	out := make([]core.Expense, 0, len(expenses))
	for _, x := range expenses {
		if c.CategoryID != "" && x.CategoryID != c.CategoryID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(x.Description), needle) &&
			!strings.Contains(strings.ToLower(x.Notes), needle) {
			continue
		}
		if !window.Contains(x.Date) {
			continue
		}
		out = append(out, x)
	}
	return out
}

func (e *Engine) sort(items []core.Expense, ix core.CategoryIndex, o Order) {
	// Collators keep internal buffers and are not safe for concurrent use.
	col := collate.New(e.locale)

	var compare func(a, b core.Expense) int
	switch o.Key {
	case SortByDate:
		compare = func(a, b core.Expense) int { return a.Date.Compare(b.Date.Time) }
	case SortByAmount:
		compare = func(a, b core.Expense) int { return a.Amount.Cmp(b.Amount) }
	case SortByDescription:
		compare = func(a, b core.Expense) int { return col.CompareString(a.Description, b.Description) }
	case SortByCategory:
		compare = func(a, b core.Expense) int {
			return col.CompareString(ix.Resolve(a.CategoryID).Name, ix.Resolve(b.CategoryID).Name)
		}
	default:
		return
	}

	if o.Direction == Ascending {
		slices.SortStableFunc(items, compare)
		return
	}
	slices.SortStableFunc(items, func(a, b core.Expense) int { return cmp.Compare(0, compare(a, b)) })
}
