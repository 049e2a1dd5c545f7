package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRecord struct {
	values    map[string]string
	expiresAt time.Time
}

// InMemoryRepository implements Repository in process memory
type InMemoryRepository struct {
	mutex    sync.RWMutex
	sessions map[uuid.UUID]memoryRecord
	now      func() time.Time
}

// NewInMemoryRepository creates a new in-memory session repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		sessions: make(map[uuid.UUID]memoryRecord),
		now:      time.Now,
	}
}

func (r *InMemoryRepository) Load(ctx context.Context, id uuid.UUID) (map[string]string, bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	record, ok := r.sessions[id]
	if !ok || !r.now().Before(record.expiresAt) {
		return nil, false, nil
	}
	return copyValues(record.values), true, nil
}

func (r *InMemoryRepository) Save(ctx context.Context, id uuid.UUID, values map[string]string, ttl time.Duration) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.sessions[id] = memoryRecord{
		values:    copyValues(values),
		expiresAt: r.now().Add(ttl),
	}
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.sessions, id)
	return nil
}

// DeleteExpired drops expired sessions and returns how many were removed
func (r *InMemoryRepository) DeleteExpired(ctx context.Context) (int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.now()
	var removed int64
	for id, record := range r.sessions {
		if !now.Before(record.expiresAt) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (r *InMemoryRepository) Close() error {
	return nil
}

func copyValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
