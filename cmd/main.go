/*
Package main is the entry point for the gestor-doc chat relay server.

It is responsible for loading configuration, initializing the global logging
system, connecting to the identity/profile database, wiring the chat registry
and translation adapter, and gracefully handling operating system interrupt
signals (SIGINT, SIGTERM) for a smooth shutdown.
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

	"github.com/ReyMar81/gestor-doc/internal/app/auth"
	"github.com/ReyMar81/gestor-doc/internal/app/chat"
	"github.com/ReyMar81/gestor-doc/internal/app/db"
	"github.com/ReyMar81/gestor-doc/internal/app/profile"
	"github.com/ReyMar81/gestor-doc/internal/app/translate"
	"github.com/ReyMar81/gestor-doc/internal/configs"
	"github.com/ReyMar81/gestor-doc/internal/handler"
	"github.com/ReyMar81/gestor-doc/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Int("chat_daily_limit", cfg.ChatDailyLimit).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the identity/profile store and apply migrations
	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to initialize database")
	}
	defer pool.Close()

	deps := &handler.AppDeps{
		Config:     cfg,
		Registry:   chat.NewRegistry(),
		Tokens:     auth.NewPGTokenResolver(pool),
		Profiles:   profile.NewService(profile.NewPGStore(pool), cfg.ChatDailyLimit),
		Translator: translate.NewGoogleTranslator(cfg.TranslateEndpoint, cfg.TranslateTimeout),
	}

	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Chat relay server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	deps.Registry.Shutdown()

	logx.Info("Server gracefully stopped.")
}
