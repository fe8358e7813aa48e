package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bryanwahyu/leadscope/internal/infra/httpserver"
	"github.com/bryanwahyu/leadscope/internal/middleware"
	"github.com/bryanwahyu/leadscope/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	for name := range cfg.Auth.APIKeys {
		if err := middleware.ValidateClientID(name); err != nil {
			return fmt.Errorf("auth.apiKeys[%q]: %w", name, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	svc, err := buildService(ctx, cfg, log, st)
	if err != nil {
		return err
	}

	sched := scheduler.New(log)
	if err := sched.AddJob("cache-cleanup", cfg.Cleanup.Schedule,
		scheduler.CleanupJob(st.cache, time.Now, middleware.AddCachePurged)); err != nil {
		return err
	}
	sched.Start()
	defer func() { <-sched.Stop().Done() }()

	opts := httpserver.Options{
		Logger:      log.Named("http"),
		APIKeys:     cfg.Auth.APIKeys,
		CORSOrigins: cfg.Server.CORSOrigins,
		Checks:      st.checks,
	}
	opts.RateLimit.Capacity = cfg.RateLimit.Capacity
	opts.RateLimit.RefillRate = cfg.RateLimit.RefillRate

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpserver.NewRouter(ctx, svc, opts),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", addr),
			zap.String("ai", cfg.AI.Provider),
			zap.String("scraper", cfg.Scraper.Mode),
			zap.String("database", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// graceful shutdown; a running batch may need the full timeout
	log.Info("shutting down server")
	ctx2, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Warn("shutdown error", zap.Error(err))
	}
	return nil
}
