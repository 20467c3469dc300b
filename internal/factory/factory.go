package factory

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/numguess/numguess/internal/dependencies/clock"
	"github.com/numguess/numguess/internal/dependencies/random"
	"github.com/numguess/numguess/internal/services/room"
)

// App contains all wired application components
type App struct {
	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Controller *room.Controller
	Notifier   *room.Notifier
}

// Config holds configuration for the application factory
type Config struct {
	// Room holds the game rules (optional)
	// If zero value, defaults to room.DefaultConfig()
	Room room.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Use default game rules if not provided
	roomCfg := cfg.Room
	if roomCfg == (room.Config{}) {
		roomCfg = room.DefaultConfig()
	}
	if err := roomCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid room config: %w", err)
	}

	return newWithDependencies(roomCfg, clock.New(), random.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(roomCfg room.Config, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	controller := room.NewController(roomCfg, clk, rnd, logger)
	notifier := room.NewNotifier(controller, clk, logger)

	return &App{
		Clock:      clk,
		Random:     rnd,
		Controller: controller,
		Notifier:   notifier,
	}
}
