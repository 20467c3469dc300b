package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/numguess/numguess/internal/api"
	"github.com/numguess/numguess/internal/factory"
	"github.com/numguess/numguess/internal/services/room"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(),
	}))
	slog.SetDefault(logger)

	// Build game rules from environment
	roomCfg, err := roomConfigFromEnv()
	if err != nil {
		logger.Error("invalid game configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create application factory
	app, err := factory.New(factory.Config{
		Room:   roomCfg,
		Logger: logger,
	})
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create router
	router := api.NewRouter(api.RouterConfig{
		Logger:     logger,
		Controller: app.Controller,
		Notifier:   app.Notifier,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = os.Getenv("HOST")
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("value", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.Int("guess_min", roomCfg.MinValue),
		slog.Int("guess_max", roomCfg.MaxValue),
		slog.Int("max_guesses", roomCfg.MaxGuesses),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// logLevel reads LOG_LEVEL, defaulting to info
func logLevel() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// roomConfigFromEnv builds the game rules, starting from the defaults
func roomConfigFromEnv() (room.Config, error) {
	cfg := room.DefaultConfig()

	var err error
	if cfg.MinValue, err = intEnv("GUESS_MIN", cfg.MinValue); err != nil {
		return cfg, err
	}
	if cfg.MaxValue, err = intEnv("GUESS_MAX", cfg.MaxValue); err != nil {
		return cfg, err
	}
	if cfg.MaxGuesses, err = intEnv("GUESS_MAX_ATTEMPTS", cfg.MaxGuesses); err != nil {
		return cfg, err
	}

	if raw := os.Getenv("ROUND_RESTART_DELAY"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, fmt.Errorf("ROUND_RESTART_DELAY: %w", err)
		}
		cfg.RestartDelay = d
	}

	return cfg, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
