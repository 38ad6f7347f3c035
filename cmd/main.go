/*
Package main is the entry point for the Geopolitik lobby server.

It loads configuration, initializes the global logger, opens the configured
store and optional object storage, serves the HTTP API and shuts everything
down in order on SIGINT or SIGTERM.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"geopolitik/internal/app/chat"
	"geopolitik/internal/app/lobby"
	"geopolitik/internal/app/storage"
	"geopolitik/internal/app/store"
	"geopolitik/internal/configs"
	"geopolitik/internal/handler"
	"geopolitik/internal/pkg/logx"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Str("store", cfg.StoreDriver).
		Bool("object_storage", cfg.ObjectStorageEnabled()).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	openCtx, cancelOpen := context.WithTimeout(ctx, 15*time.Second)
	st, err := store.Open(openCtx, cfg)
	cancelOpen()
	if err != nil {
		logx.Fatal(err, "Failed to open store")
	}

	deps := &handler.AppDeps{
		Config: cfg,
		Users:  st,
		Lobby:  lobby.NewService(st, cfg.JWTSecret),
		Chat:   chat.NewService(st, st),
	}

	if cfg.ObjectStorageEnabled() {
		objects, err := storage.NewService(ctx, storage.Config{
			BucketName:      cfg.S3BucketName,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
		if err != nil {
			logx.Fatal(err, "Failed to initialize object storage")
		}
		deps.Storage = objects
	} else {
		logx.Warn("Object storage is not configured; avatar uploads are disabled.")
	}

	router, stopLimiters := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Geopolitik server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	stopLimiters()

	if err := st.Close(shutdownCtx); err != nil {
		logx.Error(err, "Failed to close store")
	}

	logx.Info("Server gracefully stopped.")
}
