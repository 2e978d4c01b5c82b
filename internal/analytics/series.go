package analytics

import (
	"strconv"

	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

var (
	monthLabels   = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	weekdayLabels = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
)

// Series is a label sequence with a parallel value sequence.
type Series struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

// ColoredSeries adds one display color per value.
type ColoredSeries struct {
	Series
	Colors []string `json:"colors"`
}

func newSeries(labels []string) Series {
	values := make([]decimal.Decimal, len(labels))
	for i := range values {
		values[i] = decimal.Zero
	}
	return Series{Labels: labels, Values: values}
}

// Sum adds up all values.
func (s Series) Sum() decimal.Decimal {
	return core.Sum(s.Values...)
}

// MonthlySeries has one bucket per month of year, January first.
func MonthlySeries(snap core.Snapshot, year int) Series {
	s := newSeries(monthLabels)
	inRange(snap, core.Year(year), func(x core.Expense) {
		i := x.Date.Month() - 1
		s.Values[i] = s.Values[i].Add(x.Amount)
	})
	return s
}

// WeeklySeries buckets the expenses within r by day of week, Sunday first.
// Buckets span the whole range rather than individual weeks.
func WeeklySeries(snap core.Snapshot, r core.DateRange) Series {
	s := newSeries(weekdayLabels)
	inRange(snap, r, func(x core.Expense) {
		i := int(x.Date.Weekday())
		s.Values[i] = s.Values[i].Add(x.Amount)
	})
	return s
}

// DailySeries has one bucket per day of the given month, labelled 1..n.
func DailySeries(snap core.Snapshot, year, month int) Series {
	n := core.DaysIn(year, month)
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i + 1)
	}
	s := newSeries(labels)

	r := core.DateRange{From: core.NewDate(year, month, 1), To: core.NewDate(year, month, n)}
	inRange(snap, r, func(x core.Expense) {
		i := x.Date.Day() - 1
		s.Values[i] = s.Values[i].Add(x.Amount)
	})
	return s
}

// CategorySeries turns a breakdown into chart input, preserving its order.
func CategorySeries(totals []CategoryTotal) ColoredSeries {
	cs := ColoredSeries{
		Series: Series{
			Labels: make([]string, len(totals)),
			Values: make([]decimal.Decimal, len(totals)),
		},
		Colors: make([]string, len(totals)),
	}
	for i, t := range totals {
		cs.Labels[i] = t.Name
		cs.Values[i] = t.Total
		cs.Colors[i] = t.Color
	}
	return cs
}
