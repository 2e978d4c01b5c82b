package core

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestIDUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want ID
	}{
		{`"abc"`, "abc"},
		{`1`, "1"},
		{`1700000000000.123`, "1700000000000.123"},
		{`null`, ""},
	}
	for _, tc := range cases {
		var id ID
		if err := json.Unmarshal([]byte(tc.in), &id); err != nil {
			t.Fatalf("%s: unexpected error %v", tc.in, err)
		}
		if id != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.in, tc.want, id)
		}
	}

	var id ID
	if err := json.Unmarshal([]byte(`{}`), &id); err == nil {
		t.Fatalf("expected error for object id")
	}
}

func TestExpenseInputValidate(t *testing.T) {
	good := ExpenseInput{
		Description: "ok",
		Amount:      decimal.NewFromInt(1),
		CategoryID:  "1",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		in   ExpenseInput
		want error
	}{
		{ExpenseInput{Description: " ", Amount: decimal.NewFromInt(1), CategoryID: "1"}, ErrEmptyDescription},
		{ExpenseInput{Description: "a", Amount: decimal.Zero, CategoryID: "1"}, ErrInvalidAmount},
		{ExpenseInput{Description: "a", Amount: decimal.NewFromInt(-3), CategoryID: "1"}, ErrInvalidAmount},
		{ExpenseInput{Description: "a", Amount: decimal.NewFromInt(1)}, ErrMissingCategory},
	}
	for i, tc := range bads {
		if err := tc.in.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestExpensePatchApply(t *testing.T) {
	orig := Expense{
		ID:          "x",
		Description: "Coffee",
		Amount:      decimal.RequireFromString("4.50"),
		CategoryID:  "1",
		Date:        NewDate(2024, 3, 1),
		Notes:       "oat",
	}
	amount := decimal.NewFromInt(7)
	got := ExpensePatch{Amount: &amount}.Apply(orig)

	if !got.Amount.Equal(amount) {
		t.Fatalf("amount not applied: %s", got.Amount)
	}
	got.Amount = orig.Amount
	if got != orig {
		t.Fatalf("patch touched other fields: %+v", got)
	}
}

func TestExpensePatchValidate(t *testing.T) {
	empty := ""
	zero := decimal.Zero
	noDate := Date{}

	if err := (ExpensePatch{}).Validate(); err != nil {
		t.Fatalf("empty patch should be valid, got %v", err)
	}
	if err := (ExpensePatch{Description: &empty}).Validate(); !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}
	if err := (ExpensePatch{Amount: &zero}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := (ExpensePatch{Date: &noDate}).Validate(); !errors.Is(err, ErrMissingDate) {
		t.Fatalf("expected ErrMissingDate, got %v", err)
	}
}

func TestBudgetInputValidate(t *testing.T) {
	if err := (BudgetInput{Amount: decimal.NewFromInt(100), Period: Monthly}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (BudgetInput{Amount: decimal.NewFromInt(100), Period: "fortnightly"}).Validate(); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestCategoryIndexResolve(t *testing.T) {
	ix := NewCategoryIndex(DefaultCategories())

	if got := ix.Resolve("2"); got.Name != "Transportation" {
		t.Fatalf("expected Transportation, got %q", got.Name)
	}

	got := ix.Resolve("gone")
	if got.Name != UnknownCategory.Name || got.Icon != UnknownCategory.Icon {
		t.Fatalf("expected unknown fallback, got %+v", got)
	}
	if got.ID != "gone" {
		t.Fatalf("fallback should carry the requested id, got %q", got.ID)
	}
	if ix.Known("gone") {
		t.Fatalf("dangling id reported as known")
	}
}

func TestDefaultCategoriesDistinct(t *testing.T) {
	cats := DefaultCategories()
	if len(cats) != 9 {
		t.Fatalf("expected 9 seed categories, got %d", len(cats))
	}
	ids := map[ID]bool{}
	colors := map[string]bool{}
	for _, c := range cats {
		if ids[c.ID] {
			t.Fatalf("duplicate id %q", c.ID)
		}
		ids[c.ID] = true
		colors[c.Color] = true
	}
	if len(colors) != len(cats) {
		t.Fatalf("seed colors are not distinct")
	}
}
