package core

// Snapshot is the ledger at one instant. Its slices are never modified
// after the snapshot is taken.
type Snapshot struct {
	Expenses   []Expense
	Categories []Category
	Budgets    []Budget
	Version    uint64
}

// Index builds the category resolver for this snapshot.
func (s Snapshot) Index() CategoryIndex {
	return NewCategoryIndex(s.Categories)
}
