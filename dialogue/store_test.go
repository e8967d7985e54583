package dialogue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUStore_CreatesOnFirstUse(t *testing.T) {
	store, err := NewLRUStore()
	require.NoError(t, err)

	ctx, err := store.Get("session-1")
	require.NoError(t, err)
	assert.Equal(t, "session-1", ctx.SessionID)
	assert.Equal(t, PhaseGreeting, ctx.CurrentPhase())

	// same session returns the same context
	again, err := store.Get("session-1")
	require.NoError(t, err)
	assert.Same(t, ctx, again)
	assert.Equal(t, 1, store.Len())
}

func TestLRUStore_EvictsBeyondCapacity(t *testing.T) {
	store, err := NewLRUStore(func(o *LRUStoreOptions) { o.MaxSessions = 2 })
	require.NoError(t, err)

	first, err := store.Get("session-1")
	require.NoError(t, err)
	_, err = store.Get("session-2")
	require.NoError(t, err)
	_, err = store.Get("session-3")
	require.NoError(t, err)

	assert.Equal(t, 2, store.Len())

	// the least recently used session was evicted and comes back fresh
	recreated, err := store.Get("session-1")
	require.NoError(t, err)
	assert.NotSame(t, first, recreated)
}

func TestLRUStore_ExpiresAfterTTL(t *testing.T) {
	store, err := NewLRUStore(func(o *LRUStoreOptions) { o.TTL = time.Minute })
	require.NoError(t, err)

	current := time.Now()
	store.now = func() time.Time { return current }

	ctx, err := store.Get("session-ttl")
	require.NoError(t, err)
	ctx.SetPhase(PhaseTeaching)

	// within the TTL the session survives
	current = current.Add(30 * time.Second)
	same, err := store.Get("session-ttl")
	require.NoError(t, err)
	assert.Same(t, ctx, same)

	// a hit refreshes the TTL, so expiry counts from the last access
	current = current.Add(59 * time.Second)
	same, err = store.Get("session-ttl")
	require.NoError(t, err)
	assert.Same(t, ctx, same)

	// past the TTL the session is recreated in the greeting phase
	current = current.Add(2 * time.Minute)
	fresh, err := store.Get("session-ttl")
	require.NoError(t, err)
	assert.NotSame(t, ctx, fresh)
	assert.Equal(t, PhaseGreeting, fresh.CurrentPhase())
}

func TestLRUStore_Delete(t *testing.T) {
	store, err := NewLRUStore()
	require.NoError(t, err)

	ctx, err := store.Get("session-del")
	require.NoError(t, err)
	store.Delete("session-del")

	fresh, err := store.Get("session-del")
	require.NoError(t, err)
	assert.NotSame(t, ctx, fresh)
}

func TestLRUStore_HistoryWindowApplied(t *testing.T) {
	store, err := NewLRUStore(func(o *LRUStoreOptions) { o.HistoryWindow = 4 })
	require.NoError(t, err)

	ctx, err := store.Get("session-window")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		ctx.AppendTurn("question", "answer")
	}
	assert.Len(t, ctx.Messages(), 4)
}
