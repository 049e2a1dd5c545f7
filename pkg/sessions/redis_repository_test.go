package sessions

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against the server named by REDIS_ADDR, skipped when unset.
func TestRedisRepository(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASS")})
	repo := NewRedisRepository(client, "multiuser:test:"+uuid.NewString()+":")
	defer repo.Close()

	id := uuid.New()
	_, found, err := repo.Load(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Save(ctx, id, map[string]string{"a": "1", "b": "2"}, time.Minute))
	require.NoError(t, repo.Save(ctx, id, map[string]string{"a": "3"}, time.Minute))

	values, found, err := repo.Load(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, map[string]string{"a": "3"}, values)

	ttl, err := client.TTL(ctx, repo.key(id)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, repo.Delete(ctx, id))
	_, found, err = repo.Load(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)
}
