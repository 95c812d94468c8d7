package handoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newMemoryStoreAt(clock *fakeClock, ttl time.Duration) *MemoryStore {
	s := NewMemoryStore(ttl)
	s.now = clock.now
	return s
}

func TestMemoryStore_PutGetClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	_, err := s.Get(ctx, "sess-1", "nbne_booking_id")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Put(ctx, "sess-1", "nbne_booking_id", "42"))
	got, err := s.Get(ctx, "sess-1", "nbne_booking_id")
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	// перезапись
	require.NoError(t, s.Put(ctx, "sess-1", "nbne_booking_id", "43"))
	got, err = s.Get(ctx, "sess-1", "nbne_booking_id")
	require.NoError(t, err)
	assert.Equal(t, "43", got)

	require.NoError(t, s.Clear(ctx, "sess-1", "nbne_booking_id"))
	_, err = s.Get(ctx, "sess-1", "nbne_booking_id")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// удаление отсутствующего ключа не ошибка
	assert.NoError(t, s.Clear(ctx, "sess-1", "nbne_booking_id"))
}

func TestMemoryStore_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	require.NoError(t, s.Put(ctx, "tab-a", "nbne_booking_id", "1"))
	require.NoError(t, s.Put(ctx, "tab-b", "nbne_booking_id", "2"))

	a, err := s.Get(ctx, "tab-a", "nbne_booking_id")
	require.NoError(t, err)
	b, err := s.Get(ctx, "tab-b", "nbne_booking_id")
	require.NoError(t, err)

	assert.Equal(t, "1", a)
	assert.Equal(t, "2", b)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)}
	s := newMemoryStoreAt(clock, 10*time.Minute)

	require.NoError(t, s.Put(ctx, "sess", "k", "v"))

	clock.t = clock.t.Add(9 * time.Minute)
	_, err := s.Get(ctx, "sess", "k")
	require.NoError(t, err)

	clock.t = clock.t.Add(time.Minute)
	_, err = s.Get(ctx, "sess", "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.Zero(t, s.Len())
}

func TestMemoryStore_PutSweepsExpired(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)}
	s := newMemoryStoreAt(clock, time.Minute)

	require.NoError(t, s.Put(ctx, "old-1", "k", "v"))
	require.NoError(t, s.Put(ctx, "old-2", "k", "v"))
	assert.Equal(t, 2, s.Len())

	clock.t = clock.t.Add(2 * time.Minute)
	require.NoError(t, s.Put(ctx, "new", "k", "v"))
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_EmptySession(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	assert.ErrorIs(t, s.Put(ctx, "", "k", "v"), ErrEmptySession)
	_, err := s.Get(ctx, "", "k")
	assert.ErrorIs(t, err, ErrEmptySession)
	assert.ErrorIs(t, s.Clear(ctx, "", "k"), ErrEmptySession)
}
