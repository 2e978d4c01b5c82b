package analytics

import (
	"fmt"
	"strings"
	"time"

	"ledger/internal/core"
)

// Kind selects the date window of a summary view.
type Kind string

const (
	KindWeek  Kind = "week"
	KindMonth Kind = "month"
	KindYear  Kind = "year"
	KindAll   Kind = "all"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindWeek, KindMonth, KindYear, KindAll:
		return k, nil
	case "":
		return KindYear, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// Span is a resolved window plus the day count used for daily averages.
type Span struct {
	Kind  Kind
	Range core.DateRange
	Days  int
}

// NewSpan resolves kind against now. year is only used by KindYear.
func NewSpan(kind Kind, now time.Time, year int) Span {
	return Span{Kind: kind, Range: Window(kind, now, year), Days: ElapsedDays(kind, now)}
}

// Window returns the date range of kind:
//
//	week   the seven days before today, through today
//	month  the first of the current month through today
//	year   Jan 1 to Dec 31 of year
//	all    unbounded
func Window(kind Kind, now time.Time, year int) core.DateRange {
	today := core.Today(now)
	switch kind {
	case KindWeek:
		return core.DateRange{From: today.AddDays(-7), To: today}
	case KindMonth:
		return core.DateRange{From: core.NewDate(today.Year(), today.Month(), 1), To: today}
	case KindYear:
		return core.Year(year)
	default:
		return core.DateRange{}
	}
}

// ElapsedDays is the divisor for average daily spending. Year and all-time
// use a flat 365.
func ElapsedDays(kind Kind, now time.Time) int {
	switch kind {
	case KindWeek:
		return 7
	case KindMonth:
		return now.Day()
	default:
		return 365
	}
}
