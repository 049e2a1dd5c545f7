package config

import "time"

// Session backend kinds
const (
	SessionBackendMemory   = "memory"
	SessionBackendRedis    = "redis"
	SessionBackendPostgres = "postgres"
)

// SessionConfig contains server-side session settings.
// Fields carry cleanenv tags; use DefaultSessionConfig() when populating manually.
type SessionConfig struct {
	// Backend selects where session values live: memory, redis or postgres
	Backend string `env:"SESSION_BACKEND" env-default:"memory"`

	// CookieName is the name of the cookie carrying the session id
	CookieName string `env:"SESSION_COOKIE_NAME" env-default:"multiuser_session"`

	// TTL is how long an idle session is kept
	TTL time.Duration `env:"SESSION_TTL" env-default:"24h"`

	// SweepInterval is how often expired sessions are removed
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" env-default:"10m"`

	CookieSecure   bool `env:"COOKIE_SECURE" env-default:"false"`
	CookieHttpOnly bool `env:"COOKIE_HTTP_ONLY" env-default:"true"`

	// Redis backend
	RedisAddr     string `env:"REDIS_ADDR" env-default:""`
	RedisPassword string `env:"REDIS_PASS" env-default:""`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`
	RedisPrefix   string `env:"SESSION_REDIS_PREFIX" env-default:"multiuser:session:"`

	// Postgres backend
	PostgresURL string `env:"SESSION_PG_URL" env-default:""`
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Backend:        SessionBackendMemory,
		CookieName:     "multiuser_session",
		TTL:            24 * time.Hour,
		SweepInterval:  10 * time.Minute,
		CookieHttpOnly: true,
		RedisPrefix:    "multiuser:session:",
	}
}

// NewSessionConfigFromEnv loads SessionConfig from the standard environment variables
// without going through cleanenv.
func NewSessionConfigFromEnv() SessionConfig {
	def := DefaultSessionConfig()
	return SessionConfig{
		Backend:        GetEnvOrDefault("SESSION_BACKEND", def.Backend),
		CookieName:     GetEnvOrDefault("SESSION_COOKIE_NAME", def.CookieName),
		TTL:            GetEnvDuration("SESSION_TTL", def.TTL),
		SweepInterval:  GetEnvDuration("SESSION_SWEEP_INTERVAL", def.SweepInterval),
		CookieSecure:   GetEnvBool("COOKIE_SECURE", def.CookieSecure),
		CookieHttpOnly: GetEnvBool("COOKIE_HTTP_ONLY", def.CookieHttpOnly),
		RedisAddr:      GetEnvOrDefault("REDIS_ADDR", ""),
		RedisPassword:  GetEnvOrDefault("REDIS_PASS", ""),
		RedisDB:        GetEnvInt("REDIS_DB", 0),
		RedisPrefix:    GetEnvOrDefault("SESSION_REDIS_PREFIX", def.RedisPrefix),
		PostgresURL:    GetEnvOrDefault("SESSION_PG_URL", ""),
	}
}

// Validate checks the session settings for the selected backend
func (c *SessionConfig) Validate() error {
	return Validate(func() ValidationErrors {
		errs := CollectErrors(
			RequireOneOf("backend", c.Backend, []string{SessionBackendMemory, SessionBackendRedis, SessionBackendPostgres}),
			RequireNonEmpty("cookie_name", c.CookieName),
			RequirePositiveDuration("ttl", c.TTL),
			RequirePositiveDuration("sweep_interval", c.SweepInterval),
		)

		switch c.Backend {
		case SessionBackendRedis:
			errs = append(errs, CollectErrors(RequireNonEmpty("redis_addr", c.RedisAddr))...)
		case SessionBackendPostgres:
			errs = append(errs, CollectErrors(RequireNonEmpty("postgres_url", c.PostgresURL))...)
		}

		return errs
	})
}
