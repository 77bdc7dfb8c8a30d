package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/adavadkardhruv13/Polaris-backend/application/service"
	"github.com/adavadkardhruv13/Polaris-backend/domain/pitch"
	"github.com/adavadkardhruv13/Polaris-backend/infrastructure/api"
	"github.com/adavadkardhruv13/Polaris-backend/infrastructure/extractor"
	"github.com/adavadkardhruv13/Polaris-backend/infrastructure/persistence"
	"github.com/adavadkardhruv13/Polaris-backend/infrastructure/provider"
	"github.com/adavadkardhruv13/Polaris-backend/internal/config"
	"github.com/adavadkardhruv13/Polaris-backend/internal/database"
	"github.com/adavadkardhruv13/Polaris-backend/internal/log"
	"github.com/adavadkardhruv13/Polaris-backend/internal/metrics"
)

const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                   Server host to bind to (default: 0.0.0.0)
  PORT                   Server port to listen on (default: 8000)
  DB_URL                 Database URL (default: sqlite:///polaris.db)
  LOG_LEVEL              Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT             Log format: pretty, json (default: pretty)

  MIN_PITCH_LENGTH       Minimum accepted pitch length (default: 90)
  MAX_PITCH_LENGTH       Maximum accepted pitch length (default: 50000)
  MAX_FILE_SIZE          Maximum upload size in bytes (default: 10485760)
  ALLOWED_FILE_TYPES     Accepted upload MIME types (default: application/pdf)
  RATE_LIMIT_PER_MINUTE  Per-IP limit on the analysis endpoints (default: 10)
  CORS_ORIGINS           Comma-separated allowed origins
  PROMPT_PATH            Path to a prompt template override

  OPENAI_*               Analysis model configuration
    BASE_URL             Base URL for an OpenAI-compatible endpoint
    MODEL                Model identifier (default: gpt-4.1)
    API_KEY              API key for authentication
    TIMEOUT              Request timeout in seconds (default: 60)
    MAX_TOKENS           Completion token ceiling (default: 4000)
    MAX_RETRIES          Retry attempts, 0 disables retrying (default: 0)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8000)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = applyServeOverrides(cfg, host, port)

	logger := log.Configure(cfg)
	slogger := logger.Slog()

	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	slogger.LogAttrs(context.Background(), slog.LevelInfo, "starting polaris", attrs...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.NewDatabase(ctx, cfg.DBURL())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	if err := db.ConfigurePool(25, 5, time.Hour); err != nil {
		return fmt.Errorf("configure connection pool: %w", err)
	}
	if err := persistence.Migrate(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	endpoint := cfg.OpenAI()
	if !endpoint.IsConfigured() {
		logger.Warn("OPENAI_API_KEY is not set, analysis endpoints will fail")
	}
	generator := provider.NewOpenAIProviderFromEndpoint(endpoint)

	validator := pitch.NewValidator(
		cfg.MinPitchLength(),
		cfg.MaxPitchLength(),
		cfg.MaxFileSize(),
		cfg.AllowedFileTypes(),
	)

	m := metrics.New()

	analyzerOpts := []service.AnalyzerOption{
		service.WithMaxTokens(endpoint.MaxTokens()),
	}
	if path := cfg.PromptPath(); path != "" {
		prompt, err := service.LoadPromptTemplate(path)
		if err != nil {
			return err
		}
		analyzerOpts = append(analyzerOpts, service.WithPromptTemplate(prompt))
	}

	analyzer := service.NewAnalyzer(
		generator,
		validator,
		extractor.DefaultPipeline(logger),
		logger,
		m,
		analyzerOpts...,
	)
	investors := service.NewInvestors(persistence.NewInvestorStore(db, logger), logger)

	apiServer := api.NewAPIServer(analyzer, investors, db, cfg, m, logger, version)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("received shutdown signal")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
		cancel()
	}()

	if err := apiServer.ListenAndServe(cfg.Addr()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
