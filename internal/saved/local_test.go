package saved

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLocalStore connects to Redis DB 15 on localhost:6379 and skips the
// test when it is unavailable.
func newTestLocalStore(t *testing.T) (*LocalStore, uuid.UUID) {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("skipping: Redis not available: %v", err)
	}

	user := uuid.New()
	t.Cleanup(func() {
		client.Del(ctx, key(user))
		client.Close()
	})
	return NewLocalStore(client), user
}

func TestLocalStore(t *testing.T) {
	store, user := newTestLocalStore(t)
	ctx := context.Background()
	older, newer := uuid.New(), uuid.New()

	clock := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return clock }
	require.NoError(t, store.Save(ctx, user, older))
	clock = clock.Add(time.Second)
	require.NoError(t, store.Save(ctx, user, newer))

	ok, err := store.IsSaved(ctx, user, older)
	require.NoError(t, err)
	assert.True(t, ok)

	ids, err := store.List(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{newer, older}, ids)

	require.NoError(t, store.Remove(ctx, user, older))
	ok, err = store.IsSaved(ctx, user, older)
	require.NoError(t, err)
	assert.False(t, ok)
}
