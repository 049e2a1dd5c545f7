package sessions

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/tendant/simple-idm-multiuser/pkg/config"
)

// NewRepository creates a session repository for the configured backend.
// Redis and Postgres connections are checked before returning.
func NewRepository(ctx context.Context, cfg config.SessionConfig) (Repository, error) {
	switch cfg.Backend {
	case config.SessionBackendMemory, "":
		return NewInMemoryRepository(), nil
	case config.SessionBackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis address required for redis session repository")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return NewRedisRepository(client, cfg.RedisPrefix), nil
	case config.SessionBackendPostgres:
		if cfg.PostgresURL == "" {
			return nil, fmt.Errorf("database url required for postgres session repository")
		}
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		repo := NewPostgresRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported session backend: %s (supported: memory, redis, postgres)", cfg.Backend)
	}
}
