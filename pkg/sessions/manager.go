package sessions

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-idm-multiuser/pkg/config"
	"github.com/tendant/simple-idm-multiuser/pkg/discriminator"
	apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
	"github.com/tendant/simple-idm-multiuser/pkg/metrics"
	"github.com/tendant/simple-idm-multiuser/pkg/utils"
)

type contextKey struct{}

// NewContext returns a copy of ctx carrying sess
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session of the request, or nil
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(contextKey{}).(*Session)
	return sess
}

// StoreFromRequest returns the session of r for the user discriminator, or
// nil when the request carries none.
func StoreFromRequest(r *http.Request) discriminator.SessionStore {
	if sess := FromContext(r.Context()); sess != nil {
		return sess
	}
	return nil
}

// Manager attaches sessions to HTTP requests
type Manager struct {
	repo       Repository
	cookies    CookieSetter
	cookieName string
	ttl        time.Duration
	now        func() time.Time
}

// NewManager creates a session manager from the session settings
func NewManager(repo Repository, cfg config.SessionConfig) *Manager {
	return &Manager{
		repo:       repo,
		cookies:    NewCookieSetter(cfg.CookieHttpOnly, cfg.CookieSecure),
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		now:        time.Now,
	}
}

// Load returns the session referenced by the request cookie, or a new one
// when the cookie is absent, malformed or points to an expired session.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return NewSession(), nil
	}

	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		slog.Debug("Ignoring malformed session cookie", "cookie", m.cookieName)
		return NewSession(), nil
	}

	start := m.now()
	values, found, err := m.repo.Load(r.Context(), id)
	metrics.RecordSessionOp("load", m.now().Sub(start), err)
	if err != nil {
		return nil, err
	}
	if !found {
		return NewSession(), nil
	}
	return loadedSession(id, values), nil
}

// Save writes sess when it changed
func (m *Manager) Save(ctx context.Context, sess *Session) error {
	if !sess.Dirty() || sess.Destroyed() {
		return nil
	}
	start := m.now()
	err := m.repo.Save(ctx, sess.ID, sess.Values(), m.ttl)
	metrics.RecordSessionOp("save", m.now().Sub(start), err)
	return err
}

// Sweep removes expired sessions from the repository
func (m *Manager) Sweep(ctx context.Context) (int64, error) {
	start := m.now()
	removed, err := m.repo.DeleteExpired(ctx)
	metrics.RecordSessionOp("sweep", m.now().Sub(start), err)
	return removed, err
}

// Run sweeps expired sessions every interval until ctx is done
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := m.Sweep(ctx)
			if err != nil {
				slog.Error("Failed to sweep expired sessions", "error", err)
				continue
			}
			if removed > 0 {
				slog.Debug("Swept expired sessions", "removed", removed)
			}
		}
	}
}

// Destroy removes sess and clears the cookie
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request, sess *Session) error {
	start := m.now()
	err := m.repo.Delete(r.Context(), sess.ID)
	metrics.RecordSessionOp("delete", m.now().Sub(start), err)
	if err != nil {
		return err
	}
	sess.markDestroyed()
	return m.cookies.ClearCookie(w, m.cookieName)
}

// Middleware loads the session before the handler and saves it afterwards.
// The cookie is issued up front since headers may already be written when
// the handler returns.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.Load(r)
		if err != nil {
			utils.RenderError(w, r, apperrors.Wrap(err, apperrors.ErrCodeResourceUnavailable, "session storage unavailable"))
			return
		}

		if sess.IsNew() {
			if err := m.cookies.SetCookie(w, m.cookieName, sess.ID.String(), m.now().Add(m.ttl)); err != nil {
				slog.Error("Failed to set session cookie", "error", err)
			}
		}

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), sess)))

		if err := m.Save(r.Context(), sess); err != nil {
			slog.Error("Failed to save session", "session_id", sess.ID, "error", err)
		}
	})
}
