package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

var d = decimal.RequireFromString

func expense(id, desc, amount, cat string, y, m, day int) core.Expense {
	return core.Expense{
		ID:          core.ID(id),
		Description: desc,
		Amount:      d(amount),
		CategoryID:  core.ID(cat),
		Date:        core.NewDate(y, m, day),
	}
}

func snapshot(expenses ...core.Expense) core.Snapshot {
	return core.Snapshot{Expenses: expenses, Categories: core.DefaultCategories()}
}

func TestSingleExpense(t *testing.T) {
	snap := snapshot(expense("e1", "Coffee", "4.50", "1", 2024, 3, 1))
	year := core.Year(2024)

	if got := TotalInRange(snap, year); !got.Equal(d("4.50")) {
		t.Fatalf("TotalInRange = %s, want 4.50", got)
	}

	groups := TotalsByCategory(snap, year)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if g.Name != "Food & Dining" || g.Color != "#FF6B6B" || g.Count != 1 || !g.Total.Equal(d("4.50")) {
		t.Errorf("unexpected group %+v", g)
	}
}

func TestTotalInRangeBounds(t *testing.T) {
	snap := snapshot(
		expense("a", "a", "1", "1", 2024, 1, 1),
		expense("b", "b", "2", "1", 2024, 1, 31),
		expense("c", "c", "4", "1", 2024, 2, 1),
	)
	tests := []struct {
		name string
		r    core.DateRange
		want string
	}{
		{"unbounded", core.DateRange{}, "7"},
		{"inclusive both ends", core.DateRange{From: core.NewDate(2024, 1, 1), To: core.NewDate(2024, 1, 31)}, "3"},
		{"open start", core.DateRange{To: core.NewDate(2024, 1, 1)}, "1"},
		{"open end", core.DateRange{From: core.NewDate(2024, 1, 31)}, "6"},
		{"empty window", core.DateRange{From: core.NewDate(2025, 1, 1)}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalInRange(snap, tt.r); !got.Equal(d(tt.want)) {
				t.Errorf("TotalInRange = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTotalsByCategoryDanglingAndOrder(t *testing.T) {
	snap := snapshot(
		expense("a", "bus", "10", "2", 2024, 1, 5),
		expense("b", "taxi", "20", "2", 2024, 1, 6),
		expense("c", "lunch", "30", "1", 2024, 1, 7),
		expense("d", "film", "5", "4", 2024, 1, 8),
	)
	// category 2 deleted; its expenses stay and resolve to Unknown
	snap.Categories = append(snap.Categories[:1:1], snap.Categories[2:]...)

	groups := TotalsByCategory(snap, core.DateRange{})
	want := []struct {
		name  string
		total string
	}{
		{"Food & Dining", "30"},
		{"Unknown", "30"},
		{"Entertainment", "5"},
	}
	if len(groups) != len(want) {
		t.Fatalf("got %d groups, want %d: %+v", len(groups), len(want), groups)
	}
	for i, w := range want {
		if groups[i].Name != w.name || !groups[i].Total.Equal(d(w.total)) {
			t.Errorf("group %d = %s %s, want %s %s", i, groups[i].Name, groups[i].Total, w.name, w.total)
		}
	}
	if groups[1].Color != core.UnknownCategory.Color || groups[1].Count != 2 {
		t.Errorf("unknown group = %+v", groups[1])
	}

	sum := decimal.Zero
	for _, g := range groups {
		sum = sum.Add(g.Total)
	}
	if total := TotalInRange(snap, core.DateRange{}); !sum.Equal(total) {
		t.Errorf("group sum %s != range total %s", sum, total)
	}
}

func TestTotalsByCategoryUsesCurrentMetadata(t *testing.T) {
	snap := snapshot(expense("a", "bus", "10", "2", 2024, 1, 5))
	snap.Categories[1].Color = "#000000"
	if g := TotalsByCategory(snap, core.DateRange{}); g[0].Color != "#000000" {
		t.Fatalf("expected recoloured group, got %s", g[0].Color)
	}
}

func TestMonthlySeries(t *testing.T) {
	snap := snapshot(
		expense("a", "a", "10", "1", 2024, 1, 15),
		expense("b", "b", "20", "1", 2024, 2, 10),
		expense("c", "c", "99", "1", 2023, 2, 10),
	)
	s := MonthlySeries(snap, 2024)
	if len(s.Values) != 12 || len(s.Labels) != 12 {
		t.Fatalf("expected 12 buckets")
	}
	if s.Labels[0] != "Jan" || s.Labels[11] != "Dec" {
		t.Errorf("unexpected labels %v", s.Labels)
	}
	for i, want := range []string{"10", "20", "0", "0", "0", "0", "0", "0", "0", "0", "0", "0"} {
		if !s.Values[i].Equal(d(want)) {
			t.Errorf("month %d = %s, want %s", i+1, s.Values[i], want)
		}
	}
	if year := TotalInRange(snap, core.Year(2024)); !s.Sum().Equal(year) {
		t.Errorf("monthly sum %s != year total %s", s.Sum(), year)
	}
}

func TestWeeklySeries(t *testing.T) {
	snap := snapshot(
		expense("a", "a", "1", "1", 2024, 3, 10), // Sunday
		expense("b", "b", "2", "1", 2024, 3, 17), // Sunday
		expense("c", "c", "4", "1", 2024, 3, 13), // Wednesday
		expense("d", "d", "8", "1", 2024, 4, 13), // out of range
	)
	s := WeeklySeries(snap, core.DateRange{From: core.NewDate(2024, 3, 1), To: core.NewDate(2024, 3, 31)})
	if len(s.Values) != 7 || s.Labels[0] != "Sunday" {
		t.Fatalf("unexpected series %+v", s)
	}
	if !s.Values[0].Equal(d("3")) || !s.Values[3].Equal(d("4")) || !s.Sum().Equal(d("7")) {
		t.Errorf("unexpected buckets %v", s.Values)
	}
}

func TestDailySeries(t *testing.T) {
	snap := snapshot(
		expense("a", "a", "1", "1", 2024, 2, 1),
		expense("b", "b", "2", "1", 2024, 2, 29),
		expense("c", "c", "4", "1", 2024, 3, 1),
	)
	tests := []struct {
		year, month, days int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{2024, 4, 30},
		{2024, 12, 31},
	}
	for _, tt := range tests {
		s := DailySeries(snap, tt.year, tt.month)
		if len(s.Values) != tt.days || len(s.Labels) != tt.days {
			t.Errorf("%d-%02d: got %d buckets, want %d", tt.year, tt.month, len(s.Values), tt.days)
		}
		if s.Labels[0] != "1" {
			t.Errorf("labels start at %q", s.Labels[0])
		}
	}

	feb := DailySeries(snap, 2024, 2)
	if !feb.Values[0].Equal(d("1")) || !feb.Values[28].Equal(d("2")) || !feb.Sum().Equal(d("3")) {
		t.Errorf("unexpected february %v", feb.Values)
	}
}

func TestCategorySeries(t *testing.T) {
	totals := []CategoryTotal{
		{Name: "A", Color: "#111111", Total: d("3")},
		{Name: "B", Color: "#222222", Total: d("1")},
	}
	cs := CategorySeries(totals)
	if len(cs.Labels) != 2 || cs.Labels[1] != "B" || cs.Colors[0] != "#111111" || !cs.Values[0].Equal(d("3")) {
		t.Fatalf("unexpected series %+v", cs)
	}
}

func TestWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	tests := []struct {
		kind     Kind
		from, to core.Date
		days     int
	}{
		{KindWeek, core.NewDate(2024, 3, 8), core.NewDate(2024, 3, 15), 7},
		{KindMonth, core.NewDate(2024, 3, 1), core.NewDate(2024, 3, 15), 15},
		{KindYear, core.NewDate(2023, 1, 1), core.NewDate(2023, 12, 31), 365},
		{KindAll, core.Date{}, core.Date{}, 365},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			r := Window(tt.kind, now, 2023)
			if !r.From.Equal(tt.from) || !r.To.Equal(tt.to) {
				t.Errorf("Window = %s..%s, want %s..%s", r.From, r.To, tt.from, tt.to)
			}
			if got := ElapsedDays(tt.kind, now); got != tt.days {
				t.Errorf("ElapsedDays = %d, want %d", got, tt.days)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind(""); err != nil || k != KindYear {
		t.Fatalf("empty kind: %v %v", k, err)
	}
	if k, err := ParseKind("Month"); err != nil || k != KindMonth {
		t.Fatalf("Month: %v %v", k, err)
	}
	if _, err := ParseKind("decade"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestFormatter(t *testing.T) {
	if got := NewFormatter("").Format(d("4.5")); got != "$4.50" {
		t.Errorf("default = %q", got)
	}
	if got := NewFormatter("€").Format(d("1234.567")); got != "€1234.57" {
		t.Errorf("euro = %q", got)
	}
}
