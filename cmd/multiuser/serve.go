package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/tendant/chi-demo/app"
	pkgconfig "github.com/tendant/simple-idm-multiuser/pkg/config"
	"github.com/tendant/simple-idm-multiuser/pkg/discriminator"
	"github.com/tendant/simple-idm-multiuser/pkg/router"
	"github.com/tendant/simple-idm-multiuser/pkg/user"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to read configuration: %w", err)
		}
		return serve(cmd.Context(), config)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, config Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	userTypes, err := discriminator.LoadFile(config.UserTypesFile)
	if err != nil {
		return err
	}

	users, err := user.NewRepository(config.Users)
	if err != nil {
		return fmt.Errorf("failed to create user repository: %w", err)
	}

	prefixConfig := pkgconfig.LoadPrefixConfig()
	routerConfig, closeSessions, err := router.NewMinimalConfig(ctx, router.MinimalOptions{
		UserTypes:      userTypes,
		SessionConfig:  &config.Session,
		PrefixConfig:   &prefixConfig,
		UserRepository: users,
		RateLimit:      &config.RateLimit,
	})
	if err != nil {
		slog.Error("Failed to configure routes", "user_types_file", config.UserTypesFile, "error", err)
		return err
	}
	defer closeSessions()

	sweepCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go routerConfig.Sessions.Run(sweepCtx, config.Session.SweepInterval)
	if routerConfig.RateLimit != nil {
		go routerConfig.RateLimit.Run(sweepCtx, 10*time.Minute)
	}

	// Setup HTTP server
	server := app.DefaultApp()
	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)
	router.SetupRoutes(server.R, routerConfig)

	slog.Info("Multi-user service ready",
		"user_types", routerConfig.UserTypes.Classes(),
		"default", routerConfig.UserTypes.Default(),
		"session_backend", config.Session.Backend,
		"user_store", config.Users.Store)

	// Start server
	server.Run()
	return nil
}
