// Package storage defines the durable key-value contract the ledger
// persists through, plus the SQLite implementation.
package storage

import (
	"context"
	"errors"
)

// Slot names. Each holds one full collection as a JSON array.
const (
	SlotExpenses   = "expenses"
	SlotCategories = "categories"
	SlotBudgets    = "budgets"
)

// ErrNotFound is returned by Load when a slot has never been written.
var ErrNotFound = errors.New("slot not found")

// Store persists raw record collections under named slots.
type Store interface {
	// Load returns the bytes last saved under slot, or ErrNotFound.
	Load(ctx context.Context, slot string) ([]byte, error)

	// Save replaces the contents of slot.
	Save(ctx context.Context, slot string, data []byte) error

	Close() error
}
