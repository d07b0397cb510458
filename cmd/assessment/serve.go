package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/revops-assessment/internal/catalog"
	"github.com/jonathan/revops-assessment/internal/pipeline"
	"github.com/jonathan/revops-assessment/internal/server"
	"github.com/jonathan/revops-assessment/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that exposes the questionnaire, scoring and submission endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT and config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := catalog.Default()
	composer, closeComposer, err := newComposer(ctx, cfg, c, logger)
	if err != nil {
		return err
	}
	defer closeComposer()

	dispatcher, err := newDispatcher(ctx, cfg, c, logger)
	if err != nil {
		return fmt.Errorf("failed to configure delivery: %w", err)
	}

	srv, err := server.New(server.Options{
		Port:            cfg.Server.Port,
		AllowedOrigin:   cfg.Server.AllowedOrigin,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Pipeline:        pipeline.New(c, composer, logger),
		Dispatcher:      dispatcher,
		RateLimiter:     ratelimit.NewLimiter(cfg.RateLimiterConfig()),
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("assessment service configured",
		zap.Int("port", cfg.Server.Port),
		zap.Bool("generation", composer.Generative()),
		zap.String("variant", string(cfg.Variant())),
		zap.Strings("sinks", dispatcher.Sinks()))

	return srv.Start(ctx)
}
