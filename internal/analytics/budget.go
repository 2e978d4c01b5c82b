package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

// PeriodWindow is the strategy that maps a day to the budget period
// containing it.
type PeriodWindow interface {
	Window(today core.Date) core.DateRange
}

type DayWindow struct{}

func (DayWindow) Window(today core.Date) core.DateRange {
	return core.DateRange{From: today, To: today}
}

// WeekWindow runs Sunday through Saturday.
type WeekWindow struct{}

func (WeekWindow) Window(today core.Date) core.DateRange {
	start := today.AddDays(-int(today.Weekday()))
	return core.DateRange{From: start, To: start.AddDays(6)}
}

type MonthWindow struct{}

func (MonthWindow) Window(today core.Date) core.DateRange {
	y, m := today.Year(), today.Month()
	return core.DateRange{From: core.NewDate(y, m, 1), To: core.NewDate(y, m, core.DaysIn(y, m))}
}

type YearWindow struct{}

func (YearWindow) Window(today core.Date) core.DateRange {
	return core.Year(today.Year())
}

var periodWindows = map[core.Period]PeriodWindow{
	core.Daily:   DayWindow{},
	core.Weekly:  WeekWindow{},
	core.Monthly: MonthWindow{},
	core.Yearly:  YearWindow{},
}

// WindowFor returns the window strategy of a budget period.
func WindowFor(p core.Period) (PeriodWindow, error) {
	w, ok := periodWindows[p]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidPeriod, p)
	}
	return w, nil
}

// Status is a budget measured against its current period.
type Status struct {
	BudgetID   core.ID         `json:"budgetId"`
	CategoryID core.ID         `json:"categoryId,omitempty"`
	Period     core.Period     `json:"period"`
	From       core.Date       `json:"from"`
	To         core.Date       `json:"to"`
	Limit      decimal.Decimal `json:"limit"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percent    decimal.Decimal `json:"percent"`
	Over       bool            `json:"over"`
}

// BudgetStatus sums the spending that counts against b in the period
// containing now. A budget with no category covers every expense.
func BudgetStatus(snap core.Snapshot, b core.Budget, now time.Time) (Status, error) {
	w, err := WindowFor(b.Period)
	if err != nil {
		return Status{}, err
	}
	r := w.Window(core.Today(now))

	spent := decimal.Zero
	inRange(snap, r, func(x core.Expense) {
		if b.CategoryID == "" || x.CategoryID == b.CategoryID {
			spent = spent.Add(x.Amount)
		}
	})

	percent := decimal.Zero
	if b.Amount.IsPositive() {
		percent = spent.Div(b.Amount).Mul(decimal.NewFromInt(100)).Round(1)
	}

	return Status{
		BudgetID:   b.ID,
		CategoryID: b.CategoryID,
		Period:     b.Period,
		From:       r.From,
		To:         r.To,
		Limit:      b.Amount,
		Spent:      spent,
		Remaining:  b.Amount.Sub(spent),
		Percent:    percent,
		Over:       spent.GreaterThan(b.Amount),
	}, nil
}
