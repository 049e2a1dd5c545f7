package user

import (
	"fmt"
)

// RepositoryConfig contains configuration for creating a user repository
type RepositoryConfig struct {
	// Store selects the persistence type: memory or file
	Store string `env:"USER_STORE" env-default:"memory"`
	// DataDir is required for file-based repositories
	DataDir string `env:"USER_DATA_DIR" env-default:""`
}

// NewRepository creates a new user repository based on the persistence type
func NewRepository(cfg RepositoryConfig) (Repository, error) {
	switch cfg.Store {
	case "", "memory":
		return NewInMemoryRepository(), nil
	case "file":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("dataDir required for file repository")
		}
		return NewFileRepository(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unsupported persistence type: %s (supported: memory, file)", cfg.Store)
	}
}
