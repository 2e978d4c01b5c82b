package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ledger/internal/analytics"
	"ledger/internal/core"
	"ledger/internal/query"
)

const maxBodyBytes = 1 << 20

// errBadRequest marks malformed requests, as opposed to well-formed
// requests carrying invalid values.
var errBadRequest = errors.New("bad request")

// decodeJSON reads one JSON object from r into v. Unknown fields are
// rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", errBadRequest, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: empty body", errBadRequest)
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err)
	}
	return nil
}

// rawAmount keeps the amount text as sent so it can be parsed with the
// ledger's rules: "4.50", "4,50" and 4.5 are all accepted.
type rawAmount string

func (a *rawAmount) UnmarshalJSON(b []byte) error {
	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		s = string(b)
	}
	*a = rawAmount(s)
	return nil
}

func (a rawAmount) parse() (decimal.Decimal, error) {
	return core.ParseAmount(string(a))
}

// expenseRequest is the body of POST and PATCH /api/expenses.
type expenseRequest struct {
	Description *string    `json:"description"`
	Amount      *rawAmount `json:"amount"`
	CategoryID  *core.ID   `json:"categoryId"`
	Date        *string    `json:"date"`
	Notes       *string    `json:"notes"`
}

func (req expenseRequest) input() (core.ExpenseInput, error) {
	in := core.ExpenseInput{
		Description: sanitizeInput(deref(req.Description)),
		Notes:       sanitizeInput(deref(req.Notes)),
	}
	if req.CategoryID != nil {
		in.CategoryID = core.ID(strings.TrimSpace(string(*req.CategoryID)))
	}
	if req.Amount == nil {
		return in, core.ErrInvalidAmount
	}
	amount, err := req.Amount.parse()
	if err != nil {
		return in, err
	}
	in.Amount = amount
	if s := strings.TrimSpace(deref(req.Date)); s != "" {
		d, err := core.ParseDate(s)
		if err != nil {
			return in, err
		}
		in.Date = d
	}
	return in, in.Validate()
}

func (req expenseRequest) patch() (core.ExpensePatch, error) {
	var p core.ExpensePatch
	if req.Description != nil {
		v := sanitizeInput(*req.Description)
		p.Description = &v
	}
	if req.Notes != nil {
		v := sanitizeInput(*req.Notes)
		p.Notes = &v
	}
	if req.CategoryID != nil {
		v := core.ID(strings.TrimSpace(string(*req.CategoryID)))
		p.CategoryID = &v
	}
	if req.Amount != nil {
		amount, err := req.Amount.parse()
		if err != nil {
			return p, err
		}
		p.Amount = &amount
	}
	if req.Date != nil {
		var d core.Date
		if s := strings.TrimSpace(*req.Date); s != "" {
			parsed, err := core.ParseDate(s)
			if err != nil {
				return p, err
			}
			d = parsed
		}
		p.Date = &d
	}
	return p, p.Validate()
}

type categoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

func (req categoryRequest) input() (core.CategoryInput, error) {
	in := core.CategoryInput{
		Name:  sanitizeInput(deref(req.Name)),
		Color: sanitizeInput(deref(req.Color)),
		Icon:  sanitizeInput(deref(req.Icon)),
	}
	return in, in.Validate()
}

func (req categoryRequest) patch() (core.CategoryPatch, error) {
	p := core.CategoryPatch{
		Name:  sanitized(req.Name),
		Color: sanitized(req.Color),
		Icon:  sanitized(req.Icon),
	}
	return p, p.Validate()
}

type budgetRequest struct {
	CategoryID *core.ID     `json:"categoryId"`
	Amount     *rawAmount   `json:"amount"`
	Period     *core.Period `json:"period"`
}

func (req budgetRequest) input() (core.BudgetInput, error) {
	var in core.BudgetInput
	if req.CategoryID != nil {
		in.CategoryID = *req.CategoryID
	}
	if req.Period != nil {
		in.Period = *req.Period
	}
	if req.Amount == nil {
		return in, core.ErrInvalidAmount
	}
	amount, err := req.Amount.parse()
	if err != nil {
		return in, err
	}
	in.Amount = amount
	return in, in.Validate()
}

func (req budgetRequest) patch() (core.BudgetPatch, error) {
	p := core.BudgetPatch{CategoryID: req.CategoryID, Period: req.Period}
	if req.Amount != nil {
		amount, err := req.Amount.parse()
		if err != nil {
			return p, err
		}
		p.Amount = &amount
	}
	return p, p.Validate()
}

// parseCriteria reads category, q, from and to.
func parseCriteria(q url.Values) (query.Criteria, error) {
	c := query.Criteria{
		CategoryID: core.ID(strings.TrimSpace(q.Get("category"))),
		Search:     q.Get("q"),
	}
	var err error
	if c.From, err = optionalDate(q, "from"); err != nil {
		return c, err
	}
	if c.To, err = optionalDate(q, "to"); err != nil {
		return c, err
	}
	return c, nil
}

// parseOrder reads sort and dir. Without sort the default order applies;
// sort without dir is descending.
func parseOrder(q url.Values) (query.Order, error) {
	s := strings.TrimSpace(q.Get("sort"))
	if s == "" {
		return query.DefaultOrder, nil
	}
	key, err := query.ParseSortKey(s)
	if err != nil {
		return query.Order{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	o := query.Order{Key: key, Direction: query.Descending}
	if d := strings.TrimSpace(q.Get("dir")); d != "" {
		if o.Direction, err = query.ParseDirection(d); err != nil {
			return query.Order{}, fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}
	return o, nil
}

func optionalDate(q url.Values, name string) (core.Date, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return core.Date{}, nil
	}
	d, err := core.ParseDate(v)
	if err != nil {
		return core.Date{}, fmt.Errorf("%w: %s: %v", errBadRequest, name, err)
	}
	return d, nil
}

// parseYear returns the year query parameter or the current year.
func parseYear(q url.Values, now time.Time) (int, error) {
	v := strings.TrimSpace(q.Get("year"))
	if v == "" {
		return now.Year(), nil
	}
	y, err := strconv.Atoi(v)
	if err != nil || y < 1 || y > 9999 {
		return 0, fmt.Errorf("%w: invalid year %q", errBadRequest, v)
	}
	return y, nil
}

// parseYearMonth returns year and month query parameters, defaulting to
// the current month.
func parseYearMonth(q url.Values, now time.Time) (year, month int, err error) {
	if year, err = parseYear(q, now); err != nil {
		return 0, 0, err
	}
	v := strings.TrimSpace(q.Get("month"))
	if v == "" {
		return year, int(now.Month()), nil
	}
	month, err = strconv.Atoi(v)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: invalid month %q", errBadRequest, v)
	}
	return year, month, nil
}

func parseKind(q url.Values) (analytics.Kind, error) {
	k, err := analytics.ParseKind(q.Get("period"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return k, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func sanitized(s *string) *string {
	if s == nil {
		return nil
	}
	v := sanitizeInput(*s)
	return &v
}
