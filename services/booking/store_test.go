package booking

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labbook/models"
)

func newTestStore(t *testing.T) *RedisSessionStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSessionStore(client)
}

func TestRedisSessionStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := sessionAt(t, models.StepPayment, scheduledLocation())
	require.NoError(t, store.Save(ctx, session))

	loaded, err := store.Get(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, session.SessionID, loaded.SessionID)
	assert.Equal(t, models.StepPayment, loaded.Step)
	assert.Equal(t, session.TotalCents, loaded.TotalCents)
	require.NotNil(t, loaded.Location)
	assert.True(t, loaded.Location.Policy.RequiresScheduling)
}

func TestRedisSessionStoreMissingSession(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := NewSession(testAccount, "default", 500, monday10)
	require.NoError(t, store.Save(ctx, session))
	require.NoError(t, store.Delete(ctx, session.SessionID))

	_, err := store.Get(ctx, session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionStoreExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := NewRedisSessionStore(client)
	ctx := context.Background()

	session := NewSession(testAccount, "default", 500, monday10)
	require.NoError(t, store.Save(ctx, session))

	mr.FastForward(SessionTTL + 1)
	_, err := store.Get(ctx, session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
