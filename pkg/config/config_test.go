package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *SessionConfig)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *SessionConfig) {},
		},
		{
			name:    "unknown backend",
			mutate:  func(c *SessionConfig) { c.Backend = "memcached" },
			wantErr: "backend: must be one of",
		},
		{
			name:    "redis without address",
			mutate:  func(c *SessionConfig) { c.Backend = SessionBackendRedis },
			wantErr: "redis_addr: is required",
		},
		{
			name: "redis with address",
			mutate: func(c *SessionConfig) {
				c.Backend = SessionBackendRedis
				c.RedisAddr = "localhost:6379"
			},
		},
		{
			name:    "postgres without url",
			mutate:  func(c *SessionConfig) { c.Backend = SessionBackendPostgres },
			wantErr: "postgres_url: is required",
		},
		{
			name:    "zero ttl",
			mutate:  func(c *SessionConfig) { c.TTL = 0 },
			wantErr: "ttl: must be positive",
		},
		{
			name:    "zero sweep interval",
			mutate:  func(c *SessionConfig) { c.SweepInterval = 0 },
			wantErr: "sweep_interval: must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSessionConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidationErrorsAggregate(t *testing.T) {
	cfg := SessionConfig{Backend: "nope"}
	err := cfg.Validate()
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 4)
	assert.Contains(t, err.Error(), "configuration validation failed:")
	assert.Contains(t, errs.Fields(), "cookie_name")
}

func TestRequireUnique(t *testing.T) {
	seen := map[string]bool{}
	assert.Nil(t, RequireUnique("class", "User", seen))
	assert.Nil(t, RequireUnique("class", "Admin", seen))
	err := RequireUnique("class", "User", seen)
	require.NotNil(t, err)
	assert.Equal(t, `class: duplicate value "User"`, err.Error())
}

func TestNewSessionConfigFromEnv(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("COOKIE_SECURE", "yes")

	cfg := NewSessionConfigFromEnv()
	assert.Equal(t, SessionBackendRedis, cfg.Backend)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 90*time.Minute, cfg.TTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "multiuser_session", cfg.CookieName)
	assert.NoError(t, cfg.Validate())
}

func TestGetEnvHelpersFallback(t *testing.T) {
	t.Setenv("MULTIUSER_TEST_INT", "not-a-number")
	t.Setenv("MULTIUSER_TEST_DURATION", "soon")
	t.Setenv("MULTIUSER_TEST_BOOL", "maybe")

	assert.Equal(t, 7, GetEnvInt("MULTIUSER_TEST_INT", 7))
	assert.Equal(t, time.Second, GetEnvDuration("MULTIUSER_TEST_DURATION", time.Second))
	assert.True(t, GetEnvBool("MULTIUSER_TEST_BOOL", true))
	assert.Equal(t, "fallback", GetEnvOrDefault("MULTIUSER_TEST_UNSET", "fallback"))
}

func TestBuildPrefixesFromBase(t *testing.T) {
	p := BuildPrefixesFromBase("/api/v1/")
	assert.Equal(t, "/api/v1/register", p.Register)
	assert.Equal(t, "/api/v1/profile", p.Profile)
	assert.Equal(t, "/api/v1/user-types", p.UserTypes)
	assert.NoError(t, p.Validate())
}

func TestLoadPrefixConfig(t *testing.T) {
	t.Setenv("API_PREFIX_BASE", "/v2")
	t.Setenv("API_PREFIX_PROFILE", "/account")

	p := LoadPrefixConfig()
	assert.Equal(t, "/v2/register", p.Register)
	assert.Equal(t, "/account", p.Profile)
	assert.Equal(t, "/v2/user-types", p.UserTypes)
}

func TestPrefixConfigValidate(t *testing.T) {
	p := DefaultPrefixes()
	p.Profile = ""
	assert.ErrorContains(t, p.Validate(), "missing: Profile")

	p = DefaultPrefixes()
	p.UserTypes = "user-types"
	assert.ErrorContains(t, p.Validate(), "must start with '/'")
}
