// Package config provides configuration loading and validation helpers shared
// by the multi-user-type services.
//
// # Environment Variable Helpers
//
//	host := config.GetEnvOrDefault("REDIS_ADDR", "localhost:6379")
//	debug := config.GetEnvBool("DEBUG", false)
//	ttl := config.GetEnvDuration("SESSION_TTL", 24*time.Hour)
//
// # Configuration Validation
//
// Validators return *ValidationError (nil when valid). CollectErrors gathers
// them and Validate combines several validator functions into one error:
//
//	func (c *SessionConfig) Validate() error {
//		return config.Validate(func() config.ValidationErrors {
//			return config.CollectErrors(
//				config.RequireNonEmpty("cookie_name", c.CookieName),
//				config.RequirePositiveDuration("ttl", c.TTL),
//			)
//		})
//	}
//
// # Struct Configuration
//
// Service configuration structs carry cleanenv tags so commands can populate
// them with cleanenv.ReadEnv after loading an optional .env file.
package config
