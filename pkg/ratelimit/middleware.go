package ratelimit

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
	"github.com/tendant/simple-idm-multiuser/pkg/metrics"
	"github.com/tendant/simple-idm-multiuser/pkg/utils"
)

// Config holds rate limiting configuration
type Config struct {
	Enabled bool `env:"RATE_LIMIT_ENABLED" env-default:"true"`

	GlobalCapacity   int     `env:"RATE_LIMIT_GLOBAL_CAPACITY" env-default:"1000"`
	GlobalRefillRate float64 `env:"RATE_LIMIT_GLOBAL_REFILL_RATE" env-default:"16.67"`

	PerIPCapacity   int     `env:"RATE_LIMIT_IP_CAPACITY" env-default:"100"`
	PerIPRefillRate float64 `env:"RATE_LIMIT_IP_REFILL_RATE" env-default:"1.67"`

	// Registration submissions create users, so they get their own per-IP budget
	RegistrationCapacity   int     `env:"RATE_LIMIT_REGISTRATION_CAPACITY" env-default:"10"`
	RegistrationRefillRate float64 `env:"RATE_LIMIT_REGISTRATION_REFILL_RATE" env-default:"0.17"`

	BucketTTL time.Duration `env:"RATE_LIMIT_BUCKET_TTL" env-default:"1h"`

	// Trust X-Forwarded-For and X-Real-IP when resolving the client address
	TrustProxyHeaders bool `env:"RATE_LIMIT_TRUST_PROXY_HEADERS" env-default:"false"`

	IncludeHeaders bool `env:"RATE_LIMIT_INCLUDE_HEADERS" env-default:"true"`
}

// DefaultConfig returns the defaults used when no environment is set
func DefaultConfig() Config {
	return Config{
		Enabled:                true,
		GlobalCapacity:         1000,
		GlobalRefillRate:       1000.0 / 60.0,
		PerIPCapacity:          100,
		PerIPRefillRate:        100.0 / 60.0,
		RegistrationCapacity:   10,
		RegistrationRefillRate: 10.0 / 60.0,
		BucketTTL:              time.Hour,
		IncludeHeaders:         true,
	}
}

// Middleware rejects requests over the global, per-IP or registration budget
type Middleware struct {
	config             Config
	registrationPrefix string
	globalLimiter      *RateLimiter
	ipLimiter          *RateLimiter
	registrationLimit  *RateLimiter
}

// NewMiddleware creates the limiters for config. POST requests below
// registrationPrefix also draw from the registration budget.
func NewMiddleware(config Config, registrationPrefix string) *Middleware {
	m := &Middleware{
		config:             config,
		registrationPrefix: strings.TrimRight(registrationPrefix, "/"),
	}
	if config.GlobalCapacity > 0 {
		m.globalLimiter = NewRateLimiter(config.GlobalCapacity, config.GlobalRefillRate, 0)
	}
	if config.PerIPCapacity > 0 {
		m.ipLimiter = NewRateLimiter(config.PerIPCapacity, config.PerIPRefillRate, config.BucketTTL)
	}
	if config.RegistrationCapacity > 0 && m.registrationPrefix != "" {
		m.registrationLimit = NewRateLimiter(config.RegistrationCapacity, config.RegistrationRefillRate, config.BucketTTL)
	}
	return m
}

// Handler returns the rate limiting middleware handler
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.config.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		if m.globalLimiter != nil && !m.globalLimiter.Allow("global") {
			m.rateLimitExceeded(w, r, "global")
			return
		}

		ip := m.clientIP(r)
		if m.ipLimiter != nil && ip != "" && !m.ipLimiter.Allow(ip) {
			m.rateLimitExceeded(w, r, "ip")
			return
		}

		if m.registrationLimit != nil && m.isRegistration(r) && !m.registrationLimit.Allow(ip) {
			m.rateLimitExceeded(w, r, "registration")
			return
		}

		if m.config.IncludeHeaders && m.ipLimiter != nil {
			w.Header().Set("X-RateLimit-Limit-IP", strconv.Itoa(m.config.PerIPCapacity))
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) isRegistration(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}
	path := r.URL.Path
	return path == m.registrationPrefix || strings.HasPrefix(path, m.registrationPrefix+"/")
}

func (m *Middleware) rateLimitExceeded(w http.ResponseWriter, r *http.Request, limiter string) {
	slog.Warn("Rate limit exceeded",
		"limiter", limiter,
		"ip", m.clientIP(r),
		"path", r.URL.Path,
		"method", r.Method,
	)
	metrics.RecordRateLimited(limiter)

	w.Header().Set("Retry-After", "60")
	err := apperrors.New(apperrors.ErrCodeRateLimited, "too many requests, please try again later").
		WithDetails(map[string]interface{}{"limiter": limiter})
	utils.RenderError(w, r, err)
}

// clientIP resolves the address a request is accounted to
func (m *Middleware) clientIP(r *http.Request) string {
	if m.config.TrustProxyHeaders {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Run sweeps idle buckets every interval until ctx is done
func (m *Middleware) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := 0
			if m.ipLimiter != nil {
				removed += m.ipLimiter.Sweep()
			}
			if m.registrationLimit != nil {
				removed += m.registrationLimit.Sweep()
			}
			if removed > 0 {
				slog.Debug("Swept idle rate limit buckets", "removed", removed)
			}
		}
	}
}

// GetStats returns statistics about all limiters
func (m *Middleware) GetStats() map[string]Stats {
	stats := make(map[string]Stats)
	if m.globalLimiter != nil {
		stats["global"] = m.globalLimiter.GetStats()
	}
	if m.ipLimiter != nil {
		stats["ip"] = m.ipLimiter.GetStats()
	}
	if m.registrationLimit != nil {
		stats["registration"] = m.registrationLimit.GetStats()
	}
	return stats
}

// Reset refills every bucket held for ip
func (m *Middleware) Reset(ip string) {
	if m.ipLimiter != nil {
		m.ipLimiter.Reset(ip)
	}
	if m.registrationLimit != nil {
		m.registrationLimit.Reset(ip)
	}
}
