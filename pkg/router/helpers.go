package router

import (
	"context"
	"fmt"

	pkgconfig "github.com/tendant/simple-idm-multiuser/pkg/config"
	"github.com/tendant/simple-idm-multiuser/pkg/discriminator"
	"github.com/tendant/simple-idm-multiuser/pkg/metrics"
	"github.com/tendant/simple-idm-multiuser/pkg/profile"
	profileapi "github.com/tendant/simple-idm-multiuser/pkg/profile/api"
	"github.com/tendant/simple-idm-multiuser/pkg/registration"
	"github.com/tendant/simple-idm-multiuser/pkg/ratelimit"
	registrationapi "github.com/tendant/simple-idm-multiuser/pkg/registration/api"
	"github.com/tendant/simple-idm-multiuser/pkg/sessions"
	"github.com/tendant/simple-idm-multiuser/pkg/user"
	usertypeapi "github.com/tendant/simple-idm-multiuser/pkg/usertype/api"
)

// MinimalOptions contains the configuration needed to serve the multi-user routes
type MinimalOptions struct {
	// Required
	UserTypes discriminator.Config // User type configuration, first entry is the default

	// Optional - defaults will be used if not provided
	Catalog        *discriminator.Catalog   // Factories and form types (default: user.DefaultCatalog())
	SessionConfig  *pkgconfig.SessionConfig // Session settings (default: in-memory sessions)
	PrefixConfig   *pkgconfig.PrefixConfig  // API route prefixes (default: /api/...)
	UserRepository user.Repository          // User storage (default: in-memory)
	RateLimit      *ratelimit.Config        // Request limits (default: no limiting)
	DisableMetrics bool                     // Do not mount /metrics
}

// NewMinimalConfig creates a router configuration with sane defaults.
// The returned close function releases the session backend.
//
// Example:
//
//	cfg, closeFn, err := router.NewMinimalConfig(ctx, router.MinimalOptions{
//	    UserTypes: userTypes,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer closeFn()
//	router.SetupRoutes(r, cfg)
func NewMinimalConfig(ctx context.Context, opts MinimalOptions) (Config, func() error, error) {
	table, err := discriminator.NewTable(opts.UserTypes)
	if err != nil {
		metrics.RecordConfigError()
		return Config{}, nil, err
	}

	catalog := opts.Catalog
	if catalog == nil {
		catalog = user.DefaultCatalog()
	}
	if err := table.Check(catalog); err != nil {
		metrics.RecordConfigError()
		return Config{}, nil, err
	}

	sessionConfig := pkgconfig.DefaultSessionConfig()
	if opts.SessionConfig != nil {
		sessionConfig = *opts.SessionConfig
	}
	if err := sessionConfig.Validate(); err != nil {
		return Config{}, nil, fmt.Errorf("invalid session config: %w", err)
	}
	sessionRepo, err := sessions.NewRepository(ctx, sessionConfig)
	if err != nil {
		return Config{}, nil, err
	}

	prefixConfig := pkgconfig.DefaultPrefixes()
	if opts.PrefixConfig != nil {
		prefixConfig = *opts.PrefixConfig
	}
	if err := prefixConfig.Validate(); err != nil {
		sessionRepo.Close()
		return Config{}, nil, err
	}

	users := opts.UserRepository
	if users == nil {
		users = user.NewInMemoryRepository()
	}

	sessionManager := sessions.NewManager(sessionRepo, sessionConfig)
	cfg := Config{
		PrefixConfig:       prefixConfig,
		UserTypes:          table,
		Catalog:            catalog,
		Sessions:           sessionManager,
		RegistrationHandle: registrationapi.NewHandle(registration.NewRegistrationService(users)),
		ProfileHandle:      profileapi.NewHandle(profile.NewProfileService(users)),
		UserTypeHandle:     usertypeapi.NewHandle(sessionManager),
	}
	if opts.RateLimit != nil {
		cfg.RateLimit = ratelimit.NewMiddleware(*opts.RateLimit, prefixConfig.Register)
	}
	if !opts.DisableMetrics {
		cfg.MetricsHandler = metrics.Handler()
	}
	return cfg, sessionRepo.Close, nil
}
