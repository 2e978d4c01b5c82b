// Package ledger owns the canonical expense, category and budget
// collections and keeps them durable through a storage.Store.
//
// Every mutation runs mutate-then-persist under one lock. The new
// collection replaces the old one only after the storage adapter accepted
// the write, so a failed save leaves memory untouched and the error is
// returned to the caller. Collections are copy-on-write: a Snapshot handed
// out earlier is never modified.
//
// Hydration degrades silently: a slot that is absent or cannot be decoded
// starts empty (categories start from core.DefaultCategories). A corrupt
// slot is logged at WARN and is overwritten by the next mutation of that
// collection.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ledger/internal/core"
	"ledger/internal/log"
	"ledger/internal/storage"
)

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change describes one committed mutation.
type Change struct {
	Slot    string
	Op      Op
	ID      core.ID
	Version uint64
	At      time.Time
}

type Store struct {
	mu         sync.RWMutex
	kv         storage.Store
	expenses   []core.Expense
	categories []core.Category
	budgets    []core.Budget
	version    uint64
	pending    []Change

	now    func() time.Time
	newID  func() core.ID
	logger *log.Logger

	obsMu     sync.Mutex
	observers map[int]func(Change)
	nextObs   int
}

type Option func(*Store)

// WithClock sets the source of CreatedAt and of the default expense date.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen func() core.ID) Option {
	return func(s *Store) { s.newID = gen }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l.WithComponent(log.ComponentLedger) }
}

// NewID returns a time-ordered UUIDv7. google/uuid keeps v7 values
// monotonic within a process, so same-millisecond calls stay distinct.
func NewID() core.ID {
	id, err := uuid.NewV7()
	if err != nil {
		return core.ID(uuid.NewString())
	}
	return core.ID(id.String())
}

// New hydrates a Store from kv. It fails only when kv itself cannot be
// read; undecodable slots degrade as described in the package doc.
func New(ctx context.Context, kv storage.Store, opts ...Option) (*Store, error) {
	s := &Store{
		kv:        kv,
		now:       time.Now,
		newID:     NewID,
		logger:    log.Wrap(nil, log.ComponentLedger),
		observers: map[int]func(Change){},
	}
	for _, opt := range opts {
		opt(s)
	}

	var categoriesFound bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.expenses, _, err = hydrate[core.Expense](gctx, s, storage.SlotExpenses)
		return err
	})
	g.Go(func() (err error) {
		s.categories, categoriesFound, err = hydrate[core.Category](gctx, s, storage.SlotCategories)
		return err
	})
	g.Go(func() (err error) {
		s.budgets, _, err = hydrate[core.Budget](gctx, s, storage.SlotBudgets)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !categoriesFound {
		s.categories = core.DefaultCategories()
	}

	s.logger.Info("Ledger hydrated",
		log.FieldOperation, log.OpHydrate,
		"expenses", len(s.expenses),
		"categories", len(s.categories),
		"budgets", len(s.budgets),
		"default_categories", !categoriesFound)

	return s, nil
}

// hydrate loads one slot. found is false when the slot is missing, null or
// undecodable.
func hydrate[T any](ctx context.Context, s *Store, slot string) (items []T, found bool, err error) {
	data, err := s.kv.Load(ctx, slot)
	if errors.Is(err, storage.ErrNotFound) {
		return []T{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ledger: load %s: %w", slot, err)
	}
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("Persisted slot is corrupt, starting empty",
			log.FieldSlot, slot,
			log.FieldError, err,
			"bytes", len(data))
		return []T{}, false, nil
	}
	if items == nil {
		return []T{}, false, nil
	}
	return items, true, nil
}

// Snapshot returns the current state. The slices must not be modified.
func (s *Store) Snapshot() core.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.Snapshot{
		Expenses:   s.expenses,
		Categories: s.categories,
		Budgets:    s.budgets,
		Version:    s.version,
	}
}

// Version increments on every committed mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe registers fn to be called after every committed mutation.
// Calls happen outside the store lock, on the mutating goroutine.
func (s *Store) Subscribe(fn func(Change)) (cancel func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		delete(s.observers, id)
	}
}

func (s *Store) lock() {
	s.mu.Lock()
}

// unlock releases the write lock and then delivers the changes committed
// while it was held.
func (s *Store) unlock() {
	changes := s.pending
	s.pending = nil
	s.mu.Unlock()

	if len(changes) == 0 {
		return
	}
	s.obsMu.Lock()
	fns := make([]func(Change), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.obsMu.Unlock()

	for _, c := range changes {
		for _, fn := range fns {
			fn(c)
		}
	}
}

// commit persists next under slot and, on success, runs install and
// records the change. Caller holds the write lock.
func (s *Store) commit(ctx context.Context, slot string, op Op, id core.ID, next any, install func()) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("ledger: encode %s: %w", slot, err)
	}
	if err := s.kv.Save(ctx, slot, data); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist ledger change",
			log.NewFields().WithMutation(string(op), slot, string(id), s.version).WithError(err).ToSlice()...)
		return fmt.Errorf("ledger: persist %s: %w", slot, err)
	}

	install()
	s.version++
	s.pending = append(s.pending, Change{Slot: slot, Op: op, ID: id, Version: s.version, At: s.now()})

	s.logger.DebugContext(ctx, "Ledger change committed",
		log.NewFields().WithMutation(string(op), slot, string(id), s.version).ToSlice()...)
	return nil
}

// freshID draws ids until one is not taken.
func (s *Store) freshID(taken func(core.ID) bool) (core.ID, error) {
	for i := 0; i < 16; i++ {
		id := s.newID()
		if id != "" && !taken(id) {
			return id, nil
		}
	}
	return "", errors.New("ledger: id generator keeps returning used ids")
}

func has[T any](items []T, key func(T) core.ID) func(core.ID) bool {
	return func(id core.ID) bool {
		return indexOf(items, id, key) >= 0
	}
}

func indexOf[T any](items []T, id core.ID, key func(T) core.ID) int {
	for i, item := range items {
		if key(item) == id {
			return i
		}
	}
	return -1
}

func find[T any](items []T, id core.ID, key func(T) core.ID) (T, bool) {
	if i := indexOf(items, id, key); i >= 0 {
		return items[i], true
	}
	var zero T
	return zero, false
}

// replaced returns a copy of items with items[i] set to v.
func replaced[T any](items []T, i int, v T) []T {
	next := make([]T, len(items))
	copy(next, items)
	next[i] = v
	return next
}

// without returns a copy of items minus items[i].
func without[T any](items []T, i int) []T {
	next := make([]T, 0, len(items)-1)
	next = append(next, items[:i]...)
	return append(next, items[i+1:]...)
}

func prepend[T any](items []T, v T) []T {
	next := make([]T, 0, len(items)+1)
	next = append(next, v)
	return append(next, items...)
}

func appended[T any](items []T, v T) []T {
	next := make([]T, 0, len(items)+1)
	next = append(next, items...)
	return append(next, v)
}
