package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/careerpath/internal/config"
	"github.com/jonathan/careerpath/internal/db"
	"github.com/jonathan/careerpath/internal/server"
	"github.com/jonathan/careerpath/internal/server/ratelimit"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the HTTP server behind the web app: authentication, onboarding results,
catalog pages, career matching, resume export and the resume assistant.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()
	ctx := cmd.Context()

	if a.cfg.DatabaseURL == "" {
		return fmt.Errorf("database_url is required (set CAREERPATH_DATABASE_URL)")
	}
	jwtConfig, err := config.NewJWTConfig(nil)
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	passwordConfig, err := config.NewPasswordConfig(nil)
	if err != nil {
		return fmt.Errorf("failed to create password config: %w", err)
	}

	database, err := db.Connect(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()
	if err := database.Migrate(ctx); err != nil {
		return err
	}

	provider, closeProvider, err := newAssistant(ctx, a)
	if err != nil {
		return err
	}
	defer closeProvider()

	addr := a.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	srv, err := server.New(server.Config{
		Addr:            addr,
		AllowedOrigins:  a.cfg.Server.AllowedOrigins,
		SecureCookies:   a.cfg.Server.SecureCookies,
		ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
	}, server.Deps{
		DB:        database,
		Catalog:   a.catalog,
		Assistant: provider,
		JWT:       jwtConfig,
		Passwords: passwordConfig,
		RateLimit: ratelimit.LoadConfig(nil),
		Logger:    a.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	a.logger.Info("careerpath API ready", zap.String("addr", addr), zap.String("assistant", a.cfg.Assistant.Mode))
	return srv.Run(ctx)
}
