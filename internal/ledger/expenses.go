package ledger

import (
	"context"

	"ledger/internal/core"
	"ledger/internal/storage"
)

func expenseID(e core.Expense) core.ID { return e.ID }

// AddExpense stores a new expense at the head of the collection. The input
// is not validated here. A zero Date defaults to today.
func (s *Store) AddExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, error) {
	s.lock()
	defer s.unlock()

	id, err := s.freshID(has(s.expenses, expenseID))
	if err != nil {
		return core.Expense{}, err
	}
	now := s.now()
	e := core.Expense{
		ID:          id,
		Description: in.Description,
		Amount:      in.Amount,
		CategoryID:  in.CategoryID,
		Date:        in.Date,
		Notes:       in.Notes,
		CreatedAt:   now,
	}
	if e.Date.IsZero() {
		e.Date = core.Today(now)
	}

	next := prepend(s.expenses, e)
	if err := s.commit(ctx, storage.SlotExpenses, OpCreate, id, next, func() { s.expenses = next }); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

// UpdateExpense merges patch onto the expense with id. found is false,
// and nothing is written, when id is absent.
func (s *Store) UpdateExpense(ctx context.Context, id core.ID, patch core.ExpensePatch) (updated core.Expense, found bool, err error) {
	s.lock()
	defer s.unlock()

	i := indexOf(s.expenses, id, expenseID)
	if i < 0 {
		return core.Expense{}, false, nil
	}
	updated = patch.Apply(s.expenses[i])

	next := replaced(s.expenses, i, updated)
	if err := s.commit(ctx, storage.SlotExpenses, OpUpdate, id, next, func() { s.expenses = next }); err != nil {
		return core.Expense{}, true, err
	}
	return updated, true, nil
}

// DeleteExpense removes the expense with id. Deleting an absent id is a
// no-op.
func (s *Store) DeleteExpense(ctx context.Context, id core.ID) (found bool, err error) {
	s.lock()
	defer s.unlock()

	i := indexOf(s.expenses, id, expenseID)
	if i < 0 {
		return false, nil
	}

	next := without(s.expenses, i)
	if err := s.commit(ctx, storage.SlotExpenses, OpDelete, id, next, func() { s.expenses = next }); err != nil {
		return true, err
	}
	return true, nil
}

// Expense looks up a single expense.
func (s *Store) Expense(id core.ID) (core.Expense, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.expenses, id, expenseID)
}
