package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bizchat/internal/config"
	"bizchat/internal/handlers"
	"bizchat/internal/logging"
	"bizchat/internal/repository"
	"bizchat/internal/router"
	"bizchat/internal/services"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	if _, err := logging.Init(cfg.Log); err != nil {
		slog.Warn("✗ Log file unavailable, logging disabled", "error", err)
	}
	slog.Info("🚀 Starting bizchat relay...", "env", cfg.Env)

	// ──── Step 2: Load Business Profiles ────
	profiles, err := repository.LoadProfileRepo(cfg.BusinessProfilesFile)
	if err != nil {
		slog.Error("✗ Business profiles failed to load", "error", err)
		os.Exit(1)
	}
	slog.Info("✓ Business profiles loaded", "count", profiles.Len(), "default_business", cfg.DefaultBusiness)

	// ──── Step 3: Initialize Gemini Client ────
	var generator services.Generator
	configured := cfg.GeminiAPIKey != ""
	if configured {
		geminiService, err := services.NewGeminiService(context.Background(), cfg.GeminiAPIKey, cfg.GeminiEndpoint)
		if err != nil {
			slog.Error("✗ Gemini client initialization failed", "error", err)
			os.Exit(1)
		}
		defer geminiService.Close()
		generator = geminiService
		slog.Info("✓ Gemini client initialized", "default_model", cfg.GeminiModel)
	} else {
		slog.Warn("✗ GEMINI_API_KEY not set; chat requests will fail until it is configured")
	}

	// ──── Step 4: Wire Relay ────
	relayService := services.NewRelayService(generator, profiles, cfg.GeminiModel, cfg.DefaultBusiness)
	relayHandler := handlers.NewRelayHandler(relayService, configured)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(relayHandler, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		slog.Info("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	slog.Info(fmt.Sprintf("✓ Relay ready on http://localhost:%s", cfg.Port))

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}
