package sessions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-idm-multiuser/pkg/config"
)

type failingRepository struct {
	InMemoryRepository
}

func (*failingRepository) Load(ctx context.Context, id uuid.UUID) (map[string]string, bool, error) {
	return nil, false, errors.New("connection refused")
}

func newTestManager(repo Repository) *Manager {
	cfg := config.DefaultSessionConfig()
	cfg.TTL = time.Hour
	return NewManager(repo, cfg)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "multiuser_session" {
			return c
		}
	}
	return nil
}

func TestManager_RoundTrip(t *testing.T) {
	repo := NewInMemoryRepository()
	manager := newTestManager(repo)

	write := manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := FromContext(r.Context())
		require.NotNil(t, sess)
		sess.Set("selected", "users.Staff")
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	write.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)

	var got string
	read := manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = FromContext(r.Context()).Get("selected")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	read.ServeHTTP(rec, req)

	assert.Equal(t, "users.Staff", got)
	assert.Nil(t, sessionCookie(t, rec), "existing session must not be reissued")
}

func TestManager_UnchangedSessionNotSaved(t *testing.T) {
	repo := NewInMemoryRepository()
	manager := newTestManager(repo)

	handler := manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	id, err := uuid.Parse(cookie.Value)
	require.NoError(t, err)

	_, found, err := repo.Load(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestManager_MalformedCookie(t *testing.T) {
	manager := newTestManager(NewInMemoryRepository())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "multiuser_session", Value: "not-a-uuid"})

	sess, err := manager.Load(req)
	require.NoError(t, err)
	assert.True(t, sess.IsNew())
}

func TestManager_RepositoryFailure(t *testing.T) {
	manager := newTestManager(&failingRepository{})

	called := false
	handler := manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "multiuser_session", Value: uuid.NewString()})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "RESOURCE_UNAVAILABLE")
}

func TestManager_Destroy(t *testing.T) {
	repo := NewInMemoryRepository()
	manager := newTestManager(repo)
	ctx := context.Background()

	sess := NewSession()
	sess.Set("k", "v")
	require.NoError(t, manager.Save(ctx, sess))

	rec := httptest.NewRecorder()
	require.NoError(t, manager.Destroy(rec, httptest.NewRequest(http.MethodPost, "/logout", nil), sess))

	_, found, _ := repo.Load(ctx, sess.ID)
	assert.False(t, found)
	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, -1, cookie.MaxAge)
}

func TestManager_DestroyedSessionNotResaved(t *testing.T) {
	repo := NewInMemoryRepository()
	manager := newTestManager(repo)

	var id uuid.UUID
	handler := manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := FromContext(r.Context())
		id = sess.ID
		sess.Set("k", "v")
		require.NoError(t, manager.Destroy(w, r, sess))
		w.WriteHeader(http.StatusNoContent)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/", nil))

	_, found, err := repo.Load(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, found)
}

func storedSessions(repo *InMemoryRepository) int {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	return len(repo.sessions)
}

func TestManager_Sweep(t *testing.T) {
	repo := NewInMemoryRepository()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	manager := newTestManager(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		sess := NewSession()
		sess.Set("k", "v")
		require.NoError(t, manager.Save(ctx, sess))
	}

	removed, err := manager.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)

	now = now.Add(2 * time.Hour)
	removed, err = manager.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.Equal(t, 0, storedSessions(repo))
}

func TestManager_RunSweepsExpiredSessions(t *testing.T) {
	repo := NewInMemoryRepository()
	start := time.Now()
	repo.now = func() time.Time { return start }
	manager := newTestManager(repo)

	sess := NewSession()
	sess.Set("k", "v")
	require.NoError(t, manager.Save(context.Background(), sess))
	require.Equal(t, 1, storedSessions(repo))

	repo.mutex.Lock()
	repo.now = func() time.Time { return start.Add(2 * time.Hour) }
	repo.mutex.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go manager.Run(ctx, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return storedSessions(repo) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestNewRepository(t *testing.T) {
	ctx := context.Background()

	repo, err := NewRepository(ctx, config.DefaultSessionConfig())
	require.NoError(t, err)
	assert.IsType(t, &InMemoryRepository{}, repo)

	_, err = NewRepository(ctx, config.SessionConfig{Backend: "memcached"})
	assert.ErrorContains(t, err, "unsupported session backend")

	_, err = NewRepository(ctx, config.SessionConfig{Backend: config.SessionBackendRedis})
	assert.ErrorContains(t, err, "redis address required")

	_, err = NewRepository(ctx, config.SessionConfig{Backend: config.SessionBackendPostgres})
	assert.ErrorContains(t, err, "database url required")
}

func TestStoreFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, StoreFromRequest(r))

	sess := NewSession()
	store := StoreFromRequest(r.WithContext(NewContext(r.Context(), sess)))
	require.NotNil(t, store)
	store.Set("k", "v")
	v, ok := sess.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
