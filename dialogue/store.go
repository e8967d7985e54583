package dialogue

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultStoreSize = 512
	defaultStoreTTL  = 30 * time.Minute
)

// Store persists dialogue contexts between turns. Implementations define
// their own eviction policy so session lifetime is explicit rather than
// implicit process lifetime.
type Store interface {
	// Get returns the context for a session, creating it on first use.
	Get(sessionID string) (*Context, error)

	// Delete removes a session's context.
	Delete(sessionID string)
}

// storeEntry pairs a context with its storage time for TTL eviction.
type storeEntry struct {
	ctx      *Context
	storedAt time.Time
}

// LRUStore is an in-memory Store bounded by entry count (LRU) and entry
// age (TTL). Expired entries are recreated on access as fresh sessions.
type LRUStore struct {
	cache  *lru.Cache[string, *storeEntry]
	ttl    time.Duration
	window int
	now    func() time.Time
}

// LRUStoreOptions configures an LRUStore.
type LRUStoreOptions struct {
	// MaxSessions bounds the number of live sessions.
	MaxSessions int
	// TTL is how long an idle session survives.
	TTL time.Duration
	// HistoryWindow bounds each session's message history.
	HistoryWindow int
}

// NewLRUStore creates a bounded in-memory session store.
func NewLRUStore(optFns ...func(o *LRUStoreOptions)) (*LRUStore, error) {
	opts := LRUStoreOptions{
		MaxSessions:   defaultStoreSize,
		TTL:           defaultStoreTTL,
		HistoryWindow: 20,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	cache, err := lru.New[string, *storeEntry](opts.MaxSessions)
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	return &LRUStore{cache: cache, ttl: opts.TTL, window: opts.HistoryWindow, now: time.Now}, nil
}

// Get implements Store. A hit refreshes the entry's TTL.
func (s *LRUStore) Get(sessionID string) (*Context, error) {
	if entry, ok := s.cache.Get(sessionID); ok {
		if s.ttl <= 0 || s.now().Sub(entry.storedAt) < s.ttl {
			entry.storedAt = s.now()
			return entry.ctx, nil
		}
		s.cache.Remove(sessionID)
	}

	ctx := NewContext(sessionID, s.window)
	s.cache.Add(sessionID, &storeEntry{ctx: ctx, storedAt: s.now()})
	return ctx, nil
}

// Delete implements Store.
func (s *LRUStore) Delete(sessionID string) { s.cache.Remove(sessionID) }

// Len returns the number of live sessions.
func (s *LRUStore) Len() int { return s.cache.Len() }
