package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

type (
	// ID identifies a ledger entity. Legacy records stored numeric ids, so
	// an ID accepts either a JSON string or a JSON number.
	ID string

	// Period describes the repeating window a budget applies to.
	Period string

	Expense struct {
		ID          ID              `json:"id"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		CategoryID  ID              `json:"categoryId"`
		Date        Date            `json:"date"`
		Notes       string          `json:"notes,omitempty"`
		CreatedAt   time.Time       `json:"createdAt"`
	}

	Category struct {
		ID    ID     `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
		Icon  string `json:"icon"`
	}

	Budget struct {
		ID         ID              `json:"id"`
		CategoryID ID              `json:"categoryId,omitempty"` // empty = all categories
		Amount     decimal.Decimal `json:"amount"`
		Period     Period          `json:"period"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrLongDescription  = errors.New("description too long (max 200 characters)")
	ErrMissingCategory  = errors.New("missing category")
	ErrMissingDate      = errors.New("missing date")
	ErrEmptyName        = errors.New("empty name")
	ErrInvalidPeriod    = errors.New("invalid period")
)

func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts "abc", 12 and 1700000000000.123.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// IsValid returns true if p is one of the known periods.
func (p Period) IsValid() bool {
	switch p {
	case Daily, Weekly, Monthly, Yearly:
		return true
	default:
		return false
	}
}

func (e Expense) validate() error {
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return ErrLongDescription
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(string(e.CategoryID)) == "" {
		return ErrMissingCategory
	}
	return nil
}

func (c Category) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (b Budget) validate() error {
	if !b.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !b.Period.IsValid() {
		return ErrInvalidPeriod
	}
	return nil
}
