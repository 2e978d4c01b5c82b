package ledger

import (
	"context"

	"ledger/internal/core"
	"ledger/internal/storage"
)

func categoryID(c core.Category) core.ID { return c.ID }

func (s *Store) AddCategory(ctx context.Context, in core.CategoryInput) (core.Category, error) {
	s.lock()
	defer s.unlock()

	id, err := s.freshID(has(s.categories, categoryID))
	if err != nil {
		return core.Category{}, err
	}
	c := core.Category{ID: id, Name: in.Name, Color: in.Color, Icon: in.Icon}

	next := appended(s.categories, c)
	if err := s.commit(ctx, storage.SlotCategories, OpCreate, id, next, func() { s.categories = next }); err != nil {
		return core.Category{}, err
	}
	return c, nil
}

func (s *Store) UpdateCategory(ctx context.Context, id core.ID, patch core.CategoryPatch) (updated core.Category, found bool, err error) {
	s.lock()
	defer s.unlock()

	i := indexOf(s.categories, id, categoryID)
	if i < 0 {
		return core.Category{}, false, nil
	}
	updated = patch.Apply(s.categories[i])

	next := replaced(s.categories, i, updated)
	if err := s.commit(ctx, storage.SlotCategories, OpUpdate, id, next, func() { s.categories = next }); err != nil {
		return core.Category{}, true, err
	}
	return updated, true, nil
}

// DeleteCategory removes the category only. Expenses that reference it
// keep their CategoryID and resolve to core.UnknownCategory from then on.
func (s *Store) DeleteCategory(ctx context.Context, id core.ID) (found bool, err error) {
	s.lock()
	defer s.unlock()

	i := indexOf(s.categories, id, categoryID)
	if i < 0 {
		return false, nil
	}

	next := without(s.categories, i)
	if err := s.commit(ctx, storage.SlotCategories, OpDelete, id, next, func() { s.categories = next }); err != nil {
		return true, err
	}
	return true, nil
}

func (s *Store) Category(id core.ID) (core.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.categories, id, categoryID)
}
