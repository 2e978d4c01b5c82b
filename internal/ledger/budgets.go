package ledger

import (
	"context"

	"ledger/internal/core"
	"ledger/internal/storage"
)

func budgetID(b core.Budget) core.ID { return b.ID }

func (s *Store) AddBudget(ctx context.Context, in core.BudgetInput) (core.Budget, error) {
	s.lock()
	defer s.unlock()

	id, err := s.freshID(has(s.budgets, budgetID))
	if err != nil {
		return core.Budget{}, err
	}
	b := core.Budget{ID: id, CategoryID: in.CategoryID, Amount: in.Amount, Period: in.Period}

	next := appended(s.budgets, b)
	if err := s.commit(ctx, storage.SlotBudgets, OpCreate, id, next, func() { s.budgets = next }); err != nil {
		return core.Budget{}, err
	}
	return b, nil
}

func (s *Store) UpdateBudget(ctx context.Context, id core.ID, patch core.BudgetPatch) (updated core.Budget, found bool, err error) {
	s.lock()
	defer s.unlock()

	i := indexOf(s.budgets, id, budgetID)
	if i < 0 {
		return core.Budget{}, false, nil
	}
	updated = patch.Apply(s.budgets[i])

	next := replaced(s.budgets, i, updated)
	if err := s.commit(ctx, storage.SlotBudgets, OpUpdate, id, next, func() { s.budgets = next }); err != nil {
		return core.Budget{}, true, err
	}
	return updated, true, nil
}

func (s *Store) DeleteBudget(ctx context.Context, id core.ID) (found bool, err error) {
	s.lock()
	defer s.unlock()

	i := indexOf(s.budgets, id, budgetID)
	if i < 0 {
		return false, nil
	}

	next := without(s.budgets, i)
	if err := s.commit(ctx, storage.SlotBudgets, OpDelete, id, next, func() { s.budgets = next }); err != nil {
		return true, err
	}
	return true, nil
}

func (s *Store) Budget(id core.ID) (core.Budget, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.budgets, id, budgetID)
}
