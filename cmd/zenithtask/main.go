package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/zenithtask/zenithtask/api"
	"github.com/zenithtask/zenithtask/internal/auth"
	"github.com/zenithtask/zenithtask/internal/logger"
	"github.com/zenithtask/zenithtask/pkg/config"
	"github.com/zenithtask/zenithtask/pkg/repository"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "zenithtask",
		Short: "ZenithTask task and project management API",
	}
	rootCmd.AddCommand(serveCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			log := logger.New(cfg.IsDev())

			db, err := repository.Open(cfg)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}

			store := repository.NewStore(db)
			tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenExpireMinutes)*time.Minute)

			router := api.NewRouter(store, tokens, log)

			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			log.Info("starting server", "addr", addr, "env", cfg.Env)
			return router.Run(addr)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if _, err := repository.Open(cfg); err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			fmt.Println("migrations applied")
			return nil
		},
	}
}
