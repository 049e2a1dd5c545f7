// Package sessions keeps per-visitor key/value state on the server side.
//
// A Manager middleware reads the session id from a cookie, loads the stored
// values once, and exposes them to handlers as a *Session. Values changed
// during the request are written back when the handler returns.
//
//	repo, err := sessions.NewRepository(ctx, sessionConfig)
//	manager := sessions.NewManager(repo, sessionConfig)
//	r.Use(manager.Middleware)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		sess := sessions.FromContext(r.Context())
//		sess.Set("theme", "dark")
//	}
//
// *Session satisfies discriminator.SessionStore, so the selected user type is
// kept alongside any other session values.
//
// Repositories: memory (single process), redis and postgres.
package sessions
