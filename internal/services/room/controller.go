package room

import (
	"log/slog"
	"sync"

	"github.com/numguess/numguess/internal/dependencies/clock"
	"github.com/numguess/numguess/internal/dependencies/random"
	"github.com/numguess/numguess/internal/model"
)

// Controller owns the single shared room: the player directory, the
// connection registry and the round state machine. One lock guards all
// three, so every mutation is serialized; nothing under the lock performs
// network I/O.
type Controller struct {
	mu        sync.RWMutex
	directory *directory
	registry  *registry
	round     round

	cfg    Config
	clock  clock.Clock
	random random.Random
	logger *slog.Logger
}

// NewController creates a Controller with the first round already drawn
func NewController(cfg Config, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Controller {
	c := &Controller{
		directory: newDirectory(),
		registry:  newRegistry(),
		cfg:       cfg,
		clock:     clk,
		random:    rnd,
		logger:    logger,
	}
	c.round = round{secret: c.drawSecret(), active: true, number: 1}
	return c
}

// drawSecret picks a value in [MinValue, MaxValue]
func (c *Controller) drawSecret() int {
	span := c.cfg.MaxValue - c.cfg.MinValue + 1
	return c.cfg.MinValue + c.random.Intn(span)
}

// Config returns the game parameters
func (c *Controller) Config() Config {
	return c.cfg
}

// Join adds a named player bound to conn and registers the connection,
// atomically. It returns the player and the total player count after the
// join.
func (c *Controller) Join(name string, conn model.Conn) (*model.Player, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player := &model.Player{Name: name, Conn: conn}
	if err := c.directory.add(player); err != nil {
		return nil, c.directory.len(), err
	}
	c.registry.add(conn)

	total := c.directory.len()
	c.logger.Info("player joined",
		slog.String("player", name),
		slog.Int("total_players", total),
	)
	return player, total, nil
}

// Leave removes whatever player is bound to conn along with the
// connection itself, and returns the removed player plus the remaining
// player count. Idempotent: only the first call for a conn returns a
// player, so callers key the single player_left announcement off the
// non-nil result.
func (c *Controller) Leave(conn model.Conn) (*model.Player, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player := c.directory.byConn(conn)
	if player != nil {
		c.directory.remove(player.Name)
	}
	c.registry.remove(conn)
	remaining := c.directory.len()

	if player != nil {
		c.logger.Info("player left",
			slog.String("player", player.Name),
			slog.Int("total_players", remaining),
		)
	}
	return player, remaining
}

// ProcessGuess runs one guess through the round state machine. The caller
// has already validated that value is an integer within the configured
// range. Guesses after exhaustion keep counting and re-evaluating: a late
// correct guess still wins, with the points floored at 1.
func (c *Controller) ProcessGuess(playerName string, value int) GuessOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.round.active {
		return GuessOutcome{Kind: OutcomeInactive, Guess: value}
	}
	player := c.directory.get(playerName)
	if player == nil {
		return GuessOutcome{Kind: OutcomeIgnored, Guess: value}
	}

	player.Guesses++

	if value == c.round.secret {
		earned := points(c.cfg.MaxGuesses, player.Guesses)
		player.Score += earned
		c.round.winner = player.Name
		c.round.active = false

		c.logger.Info("round won",
			slog.String("player", player.Name),
			slog.Int("round", c.round.number),
			slog.Int("attempts", player.Guesses),
			slog.Int("points", earned),
		)
		return GuessOutcome{
			Kind:         OutcomeWon,
			Guess:        value,
			Winner:       player.Name,
			Secret:       c.round.secret,
			GuessesTaken: player.Guesses,
			Points:       earned,
		}
	}

	if player.Guesses >= c.cfg.MaxGuesses {
		return GuessOutcome{Kind: OutcomeExhausted, Guess: value}
	}

	hint := model.HintTooHigh
	if value < c.round.secret {
		hint = model.HintTooLow
	}
	return GuessOutcome{
		Kind:      OutcomeHint,
		Guess:     value,
		Hint:      hint,
		Remaining: c.cfg.MaxGuesses - player.Guesses,
	}
}

// StartNewRound draws a fresh secret, bumps the round number and clears
// per-round player state. It runs from the restart timer, but is safe to
// call directly.
func (c *Controller) StartNewRound() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.round = round{secret: c.drawSecret(), active: true, number: c.round.number + 1}
	c.directory.resetGuesses()

	c.logger.Info("round started", slog.Int("round", c.round.number))
	return c.round.number
}

// Snapshot returns a consistent view of the room. The secret is never
// part of it.
func (c *Controller) Snapshot() model.GameSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return model.GameSnapshot{
		Round:        c.round.number,
		IsActive:     c.round.active,
		Leaderboard:  c.directory.leaderboard(),
		TotalPlayers: c.directory.len(),
	}
}

// GameInfo describes the current round for a joining player
func (c *Controller) GameInfo() model.GameInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return model.GameInfo{
		Range:      [2]int{c.cfg.MinValue, c.cfg.MaxValue},
		MaxGuesses: c.cfg.MaxGuesses,
		Round:      c.round.number,
	}
}

// Connections snapshots the registry for fan-out, minus excluding when
// non-nil
func (c *Controller) Connections(excluding model.Conn) []model.Conn {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.registry.snapshot(excluding)
}

// PlayerCount returns the current directory size
func (c *Controller) PlayerCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.directory.len()
}

// Interface for dependency injection
type ControllerInterface interface {
	Join(name string, conn model.Conn) (*model.Player, int, error)
	Leave(conn model.Conn) (*model.Player, int)
	ProcessGuess(playerName string, value int) GuessOutcome
	StartNewRound() int
	Snapshot() model.GameSnapshot
	GameInfo() model.GameInfo
	Connections(excluding model.Conn) []model.Conn
	PlayerCount() int
	Config() Config
}

var _ ControllerInterface = (*Controller)(nil)
