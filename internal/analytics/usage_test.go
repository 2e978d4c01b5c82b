package analytics

import (
	"testing"

	"ledger/internal/core"
)

func TestCategoryUsage(t *testing.T) {
	snap := snapshot(
		expense("a", "a", "10", "1", 2024, 1, 1),
		expense("b", "b", "20", "1", 2023, 1, 1),
		expense("c", "c", "5", "2", 2024, 1, 1),
	)

	u := CategoryUsage(snap, "1")
	if u.Count != 2 || !u.Total.Equal(d("30")) || !u.Average.Equal(d("15")) || !u.Share.Equal(d("66.7")) {
		t.Errorf("usage = %+v", u)
	}
	if !u.HasDependents() {
		t.Error("expected dependents")
	}

	unused := CategoryUsage(snap, "3")
	if unused.Count != 0 || !unused.Average.IsZero() || !unused.Share.IsZero() || unused.HasDependents() {
		t.Errorf("unused = %+v", unused)
	}
}

func TestCategoryUsageEmptyLedger(t *testing.T) {
	u := CategoryUsage(snapshot(), "1")
	if !u.Share.IsZero() || !u.Total.IsZero() {
		t.Fatalf("usage = %+v", u)
	}
}

func TestUsageByCategory(t *testing.T) {
	snap := snapshot(expense("a", "a", "10", "9", 2024, 1, 1))
	all := UsageByCategory(snap)
	if len(all) != len(core.DefaultCategories()) {
		t.Fatalf("got %d entries", len(all))
	}
	if all[8].CategoryID != "9" || all[8].Count != 1 || !all[8].Share.Equal(d("100")) {
		t.Errorf("last = %+v", all[8])
	}
}
