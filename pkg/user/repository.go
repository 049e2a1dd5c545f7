package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for user storage
type Repository interface {
	// Create stores a new user, assigning its ID and timestamps
	Create(ctx context.Context, u User) error
	// Get returns the user with id
	Get(ctx context.Context, id uuid.UUID) (User, error)
	// Update replaces a stored user
	Update(ctx context.Context, u User) error
	// List returns all users in creation order
	List(ctx context.Context) ([]User, error)
}
