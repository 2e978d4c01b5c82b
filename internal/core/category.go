package core

// UnknownCategory is what a dangling CategoryID resolves to.
var UnknownCategory = Category{
	Name:  "Unknown",
	Color: "#9B9B9B",
	Icon:  "📦",
}

// DefaultCategories returns the seed set installed when the categories
// slot is absent or unreadable.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Food & Dining", Color: "#FF6B6B", Icon: "🍽️"},
		{ID: "2", Name: "Transportation", Color: "#4ECDC4", Icon: "🚗"},
		{ID: "3", Name: "Shopping", Color: "#45B7D1", Icon: "🛍️"},
		{ID: "4", Name: "Entertainment", Color: "#96CEB4", Icon: "🎬"},
		{ID: "5", Name: "Bills & Utilities", Color: "#FECA57", Icon: "📄"},
		{ID: "6", Name: "Healthcare", Color: "#FF9FF3", Icon: "🏥"},
		{ID: "7", Name: "Education", Color: "#54A0FF", Icon: "📚"},
		{ID: "8", Name: "Travel", Color: "#5F27CD", Icon: "✈️"},
		{ID: "9", Name: "Other", Color: "#9B9B9B", Icon: "📦"},
	}
}

// CategoryIndex resolves category ids, falling back to UnknownCategory.
type CategoryIndex map[ID]Category

func NewCategoryIndex(categories []Category) CategoryIndex {
	ix := make(CategoryIndex, len(categories))
	for _, c := range categories {
		if _, dup := ix[c.ID]; dup {
			continue
		}
		ix[c.ID] = c
	}
	return ix
}

// Resolve returns the category for id, or UnknownCategory carrying id when
// nothing matches.
func (ix CategoryIndex) Resolve(id ID) Category {
	if c, ok := ix[id]; ok {
		return c
	}
	unknown := UnknownCategory
	unknown.ID = id
	return unknown
}

// Known reports whether id resolves to a current category.
func (ix CategoryIndex) Known(id ID) bool {
	_, ok := ix[id]
	return ok
}
