package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for session storage
type Repository interface {
	// Load returns the values of session id; found is false when the session
	// does not exist or has expired
	Load(ctx context.Context, id uuid.UUID) (values map[string]string, found bool, err error)

	// Save replaces the values of session id and extends its lifetime by ttl
	Save(ctx context.Context, id uuid.UUID, values map[string]string, ttl time.Duration) error

	// Delete removes session id
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes expired sessions and returns how many were removed
	DeleteExpired(ctx context.Context) (int64, error)

	// Close releases the underlying connections
	Close() error
}
