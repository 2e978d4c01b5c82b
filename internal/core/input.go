package core

import "github.com/shopspring/decimal"

// Creation shapes. The ledger store accepts them as-is; Validate is run by
// the transport before the store is called.
type (
	ExpenseInput struct {
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		CategoryID  ID              `json:"categoryId"`
		Date        Date            `json:"date"` // zero = today
		Notes       string          `json:"notes,omitempty"`
	}

	CategoryInput struct {
		Name  string `json:"name"`
		Color string `json:"color"`
		Icon  string `json:"icon"`
	}

	BudgetInput struct {
		CategoryID ID              `json:"categoryId,omitempty"`
		Amount     decimal.Decimal `json:"amount"`
		Period     Period          `json:"period"`
	}
)

// Partial updates. A nil field keeps the prior value.
type (
	ExpensePatch struct {
		Description *string          `json:"description,omitempty"`
		Amount      *decimal.Decimal `json:"amount,omitempty"`
		CategoryID  *ID              `json:"categoryId,omitempty"`
		Date        *Date            `json:"date,omitempty"`
		Notes       *string          `json:"notes,omitempty"`
	}

	CategoryPatch struct {
		Name  *string `json:"name,omitempty"`
		Color *string `json:"color,omitempty"`
		Icon  *string `json:"icon,omitempty"`
	}

	BudgetPatch struct {
		CategoryID *ID              `json:"categoryId,omitempty"`
		Amount     *decimal.Decimal `json:"amount,omitempty"`
		Period     *Period          `json:"period,omitempty"`
	}
)

func (in ExpenseInput) Validate() error {
	return Expense{
		Description: in.Description,
		Amount:      in.Amount,
		CategoryID:  in.CategoryID,
	}.validate()
}

func (in CategoryInput) Validate() error {
	return Category{Name: in.Name}.validate()
}

func (in BudgetInput) Validate() error {
	return Budget{Amount: in.Amount, Period: in.Period}.validate()
}

// Apply merges p onto e. ID and CreatedAt are never touched.
func (p ExpensePatch) Apply(e Expense) Expense {
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.CategoryID != nil {
		e.CategoryID = *p.CategoryID
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	return e
}

// Validate checks the fields the patch sets, using the same rules as
// creation.
func (p ExpensePatch) Validate() error {
	if p.Date != nil && p.Date.IsZero() {
		return ErrMissingDate
	}
	probe := p.Apply(Expense{Description: "-", Amount: decimal.NewFromInt(1), CategoryID: "-"})
	return probe.validate()
}

func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	return c
}

func (p CategoryPatch) Validate() error {
	return p.Apply(Category{Name: "-"}).validate()
}

func (p BudgetPatch) Apply(b Budget) Budget {
	if p.CategoryID != nil {
		b.CategoryID = *p.CategoryID
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.Period != nil {
		b.Period = *p.Period
	}
	return b
}

func (p BudgetPatch) Validate() error {
	return p.Apply(Budget{Amount: decimal.NewFromInt(1), Period: Monthly}).validate()
}
