package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tendant/chi-demo/app"
	pkgconfig "github.com/tendant/simple-idm-multiuser/pkg/config"
	"github.com/tendant/simple-idm-multiuser/pkg/ratelimit"
	"github.com/tendant/simple-idm-multiuser/pkg/user"
)

type Config struct {
	// User types
	UserTypesFile string `env:"MULTIUSER_USER_TYPES_FILE" env-default:"configs/usertypes.yaml"`

	// Sessions
	Session pkgconfig.SessionConfig

	// Users
	Users user.RepositoryConfig

	// Request limits
	RateLimit ratelimit.Config

	// Server
	AppConfig app.AppConfig
}

var userTypesFile string

var rootCmd = &cobra.Command{
	Use:          "multiuser",
	Short:        "Registration and profile service for multiple user types",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userTypesFile, "user-types", "u", "", "User type configuration file (overrides MULTIUSER_USER_TYPES_FILE)")
}

// loadConfig reads the process configuration from .env and the environment
func loadConfig() (Config, error) {
	loadEnvFile()

	config := Config{}
	if err := cleanenv.ReadEnv(&config); err != nil {
		return Config{}, err
	}
	if userTypesFile != "" {
		config.UserTypesFile = userTypesFile
	}
	return config, nil
}

// loadEnvFile loads environment variables from .env file if it exists
func loadEnvFile() {
	execPath, err := os.Executable()
	if err != nil {
		return
	}

	execDir := filepath.Dir(execPath)
	envFile := filepath.Join(execDir, ".env")

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		cwd, _ := os.Getwd()
		envFile = filepath.Join(cwd, ".env")
	}

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		slog.Debug("No .env file found (using environment variables or defaults)")
		return
	}

	slog.Info("Loading configuration from .env file", "path", envFile)
	if err := godotenv.Load(envFile); err != nil {
		slog.Warn("Failed to load .env file", "error", err)
	}
}
