package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisRepository stores each session as a Redis hash with a TTL
type RedisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRepository creates a Redis-backed repository. Keys are prefix + session id.
func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	return &RedisRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisRepository) key(id uuid.UUID) string {
	return r.prefix + id.String()
}

func (r *RedisRepository) Load(ctx context.Context, id uuid.UUID) (map[string]string, bool, error) {
	values, err := r.client.HGetAll(ctx, r.key(id)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to load session: %w", err)
	}
	// A missing key reads as an empty hash
	if len(values) == 0 {
		return nil, false, nil
	}
	return values, true, nil
}

// Save replaces the hash. Sessions without values are removed, Redis has no
// empty hashes.
func (r *RedisRepository) Save(ctx context.Context, id uuid.UUID, values map[string]string, ttl time.Duration) error {
	key := r.key(id)
	args := make([]interface{}, 0, len(values)*2)
	for k, v := range values {
		args = append(args, k, v)
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(args) > 0 {
			pipe.HSet(ctx, key, args...)
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op since Redis expires session keys itself
func (r *RedisRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}
