// Package router mounts the multi-user routes on a chi router.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	pkgconfig "github.com/tendant/simple-idm-multiuser/pkg/config"
	"github.com/tendant/simple-idm-multiuser/pkg/discriminator"
	profileapi "github.com/tendant/simple-idm-multiuser/pkg/profile/api"
	"github.com/tendant/simple-idm-multiuser/pkg/ratelimit"
	registrationapi "github.com/tendant/simple-idm-multiuser/pkg/registration/api"
	"github.com/tendant/simple-idm-multiuser/pkg/sessions"
	usertypeapi "github.com/tendant/simple-idm-multiuser/pkg/usertype/api"
)

// Config holds all the dependencies and handlers needed to setup routes
type Config struct {
	// Prefix configuration for all routes
	PrefixConfig pkgconfig.PrefixConfig

	// User type table and the factories and form types it names
	UserTypes *discriminator.Table
	Catalog   *discriminator.Catalog

	// Sessions attaches a session to every request
	Sessions *sessions.Manager

	// RateLimit guards the feature routes when set
	RateLimit *ratelimit.Middleware

	// Handlers for each feature
	RegistrationHandle *registrationapi.Handle
	ProfileHandle      *profileapi.Handle
	UserTypeHandle     *usertypeapi.Handle

	// MetricsHandler is mounted at /metrics when set
	MetricsHandler http.Handler
}

// SetupRoutes mounts all multi-user routes on the provided router
func SetupRoutes(router chi.Router, cfg Config) {
	if cfg.MetricsHandler != nil {
		router.Handle("/metrics", cfg.MetricsHandler)
	}

	router.Group(func(r chi.Router) {
		if cfg.RateLimit != nil {
			r.Use(cfg.RateLimit.Handler)
		}
		// Every feature route works on the user type selected for the session
		r.Use(cfg.Sessions.Middleware)
		r.Use(discriminator.Middleware(cfg.UserTypes, cfg.Catalog, sessions.StoreFromRequest))

		if cfg.RegistrationHandle != nil {
			r.Mount(cfg.PrefixConfig.Register, registrationapi.Handler(cfg.RegistrationHandle))
		}
		if cfg.ProfileHandle != nil {
			r.Mount(cfg.PrefixConfig.Profile, profileapi.Handler(cfg.ProfileHandle))
		}
		if cfg.UserTypeHandle != nil {
			r.Mount(cfg.PrefixConfig.UserTypes, usertypeapi.Handler(cfg.UserTypeHandle))
		}
	})

	slog.Info("Multi-user routes mounted",
		"register", cfg.PrefixConfig.Register,
		"profile", cfg.PrefixConfig.Profile,
		"user_types", cfg.PrefixConfig.UserTypes)
}
