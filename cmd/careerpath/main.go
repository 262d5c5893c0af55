// Package main provides the careerpath command: the HTTP API server plus terminal
// tools for the interest quiz, career pages and resume export.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/careerpath/internal/catalog"
	"github.com/jonathan/careerpath/internal/config"
	"github.com/jonathan/careerpath/internal/logger"
)

var (
	configPath string
	debugLogs  bool
	jsonLogs   bool
)

var rootCmd = &cobra.Command{
	Use:   "careerpath",
	Short: "Career guidance and resume builder",
	Long: "careerpath matches interests to ML careers, shows career and learning paths, " +
		"builds resumes and serves the REST API behind the web app.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./careerpath.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json", false, "Log as JSON")
}

// app is what every subcommand starts from.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	catalog *catalog.Catalog
}

func loadApp(cmd *cobra.Command) (*app, error) {
	v := config.New()
	if err := v.BindPFlag("debug", cmd.Flags().Lookup("debug")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("json", cmd.Flags().Lookup("json")); err != nil {
		return nil, err
	}
	cfg, err := config.Load(v, configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.JSON, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		cat, err = catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			return nil, err
		}
		log.Debug("loaded catalog override", zap.String("path", cfg.CatalogFile))
	}

	return &app{cfg: cfg, logger: log, catalog: cat}, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
