package discriminator

import (
	"context"
	"net/http"

	apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
)

type contextKey struct{}

// SessionResolver returns the session of a request, or nil when there is none.
type SessionResolver func(r *http.Request) SessionStore

// NewContext returns a copy of ctx carrying d.
func NewContext(ctx context.Context, d *Discriminator) context.Context {
	return context.WithValue(ctx, contextKey{}, d)
}

// FromContext returns the Discriminator stored in ctx.
func FromContext(ctx context.Context) (*Discriminator, bool) {
	d, ok := ctx.Value(contextKey{}).(*Discriminator)
	return d, ok && d != nil
}

// FromRequest returns the Discriminator bound to r by Middleware.
func FromRequest(r *http.Request) (*Discriminator, error) {
	d, ok := FromContext(r.Context())
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "no user discriminator bound to request")
	}
	return d, nil
}

// SelectByKey selects and persists the class whose selector key is key.
func SelectByKey(d *Discriminator, key string) (Descriptor, error) {
	desc, ok := d.Table().Lookup(key)
	if !ok {
		return Descriptor{}, apperrors.Newf(apperrors.ErrCodeUnknownUserClass, "no such user type %q", key).
			WithDetail("user_type", key)
	}
	if err := d.SetClass(desc.Class, true); err != nil {
		return Descriptor{}, err
	}
	return desc, nil
}

// Middleware binds a fresh Discriminator to every request.
func Middleware(table *Table, catalog *Catalog, sessionFrom SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var session SessionStore
			if sessionFrom != nil {
				session = sessionFrom(r)
			}
			d := table.Bind(session, catalog)
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), d)))
		})
	}
}
