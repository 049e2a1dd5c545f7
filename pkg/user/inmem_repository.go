package user

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]User
	order []uuid.UUID
	now   func() time.Time
}

// NewInMemoryRepository creates a new in-memory user repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users: make(map[uuid.UUID]User),
		now:   time.Now,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account := u.Base()
	for _, existing := range r.users {
		if account.Email != "" && strings.EqualFold(existing.Base().Email, account.Email) {
			return apperrors.Newf(apperrors.ErrCodeAlreadyExists, "email already registered: %s", account.Email)
		}
		if account.Username != "" && strings.EqualFold(existing.Base().Username, account.Username) {
			return apperrors.Newf(apperrors.ErrCodeAlreadyExists, "username already taken: %s", account.Username)
		}
	}

	now := r.now()
	account.ID = uuid.New()
	account.CreatedAt = now
	account.LastModifiedAt = now

	r.users[account.ID] = u
	r.order = append(r.order, account.ID)
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id uuid.UUID) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", id.String())
	}
	return u, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account := u.Base()
	existing, ok := r.users[account.ID]
	if !ok {
		return apperrors.NotFound("user", account.ID.String())
	}
	if existing.UserClass() != u.UserClass() {
		return apperrors.InvalidInput("user", "cannot change the user type of an existing user")
	}

	account.LastModifiedAt = r.now()
	r.users[account.ID] = u
	return nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.users[id])
	}
	return out, nil
}

// restore stores u as is, keeping its ID and timestamps
func (r *InMemoryRepository) restore(u User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := u.Base().ID
	if _, exists := r.users[id]; !exists {
		r.order = append(r.order, id)
	}
	r.users[id] = u
}

// remove drops id, undoing a Create
func (r *InMemoryRepository) remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}
