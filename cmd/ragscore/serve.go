package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragscore/internal/config"
	logpkg "github.com/kailas-cloud/ragscore/internal/logger"
	"github.com/kailas-cloud/ragscore/internal/metrics"
	"github.com/kailas-cloud/ragscore/internal/term"
	chiTransport "github.com/kailas-cloud/ragscore/internal/transport/chi"
	"github.com/kailas-cloud/ragscore/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the evaluation HTTP API server",
	Long:  "Start an HTTP server exposing the evaluation API, configured by config/<ENV>.yaml.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting ragscore API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("metrics", cfg.Evaluation.Metrics),
	)

	// Register evaluation metrics explicitly (no init())
	metrics.RegisterEvaluationMetrics()

	var extractorOpts []term.Option
	if len(cfg.Evaluation.ExtraStopwords) > 0 {
		extractorOpts = append(extractorOpts, term.WithExtraStopwords(cfg.Evaluation.ExtraStopwords...))
	}
	extractor := term.NewExtractor(extractorOpts...)

	server := chiTransport.NewServer(extractor, cfg.MetricNames(), logger)
	router := server.Router(cfg.Auth.APIKeys)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-quit:
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
