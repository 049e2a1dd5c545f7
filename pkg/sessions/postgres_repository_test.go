package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDatabase(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("idm_db"),
		postgres.WithUsername("idm"),
		postgres.WithPassword("pwd"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

func TestPostgresRepository(t *testing.T) {
	pool, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewPostgresRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.EnsureSchema(ctx), "schema creation must be idempotent")

	id := uuid.New()
	_, found, err := repo.Load(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Save(ctx, id, map[string]string{"class": "users.Customer"}, time.Hour))
	require.NoError(t, repo.Save(ctx, id, map[string]string{"class": "users.Staff"}, time.Hour))

	values, found, err := repo.Load(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, map[string]string{"class": "users.Staff"}, values)

	expired := uuid.New()
	require.NoError(t, repo.Save(ctx, expired, map[string]string{"k": "v"}, -time.Minute))
	_, found, err = repo.Load(ctx, expired)
	require.NoError(t, err)
	assert.False(t, found)

	removed, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	require.NoError(t, repo.Delete(ctx, id))
	_, found, err = repo.Load(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)
}
