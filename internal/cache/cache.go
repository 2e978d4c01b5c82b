// Package cache holds derived views keyed by ledger version, so a mutation
// makes every older entry unreachable without explicit invalidation.
package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"ledger/internal/log"
)

// Cache is the read side the HTTP layer depends on.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	Size() int
}

// Cleaner is implemented by caches whose entries expire.
type Cleaner interface {
	CleanExpired() int
}

// Key builds a cache key scoped to a ledger version. Params are quoted so
// user input containing the separator cannot collide with another query.
func Key(version uint64, view string, params ...string) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(version, 10))
	b.WriteByte('|')
	b.WriteString(view)
	for _, p := range params {
		b.WriteByte('|')
		b.WriteString(strconv.Quote(p))
	}
	return b.String()
}

// GetOrCompute returns the cached value for key, computing and storing it
// on a miss. Concurrent misses may compute the same value twice.
func GetOrCompute[T any](c Cache[T], key string, compute func() T) T {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := compute()
	c.Set(key, v)
	return v
}

// Manager periodically sweeps expired entries of its registered caches.
type Manager struct {
	caches []Cleaner
	logger *log.Logger
	done   chan struct{}
}

func NewManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Wrap(nil, log.ComponentCache)
	} else {
		logger = logger.WithComponent(log.ComponentCache)
	}
	return &Manager{logger: logger}
}

// Register adds a cache. It must be called before Run.
func (m *Manager) Register(c Cleaner) {
	m.caches = append(m.caches, c)
}

// Sweep cleans every registered cache once and returns the total removed.
func (m *Manager) Sweep() int {
	total := 0
	for _, c := range m.caches {
		total += c.CleanExpired()
	}
	return total
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.logger.Debug("Expired cache entries removed", log.FieldCount, n)
			}
		case <-ctx.Done():
			return nil
		}
	}
}
