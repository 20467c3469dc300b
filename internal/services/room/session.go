package room

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/numguess/numguess/internal/model"
)

// Session dispatches the inbound messages of one connection. The
// transport owns the socket and its read loop; it calls HandleMessage per
// frame and Close exactly once on teardown.
type Session struct {
	conn     model.Conn
	ctrl     *Controller
	notifier *Notifier
	logger   *slog.Logger
}

// NewSession binds a connection to the room
func NewSession(conn model.Conn, ctrl *Controller, notifier *Notifier, logger *slog.Logger) *Session {
	return &Session{conn: conn, ctrl: ctrl, notifier: notifier, logger: logger}
}

// HandleMessage decodes and dispatches a single inbound frame. Malformed
// JSON earns an error reply; an unrecognized action is dropped.
func (s *Session) HandleMessage(raw []byte) {
	var cmd model.ClientCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		s.notifier.SendTo(s.conn, model.NewError("Invalid message format"))
		return
	}

	switch cmd.Action {
	case model.ActionJoin:
		s.handleJoin(cmd.Name)
	case model.ActionGuess:
		s.handleGuess(cmd.Player, cmd.Guess)
	case model.ActionGetState:
		s.notifier.SendTo(s.conn, model.NewGameState(s.ctrl.Snapshot()))
	default:
		s.logger.Debug("unknown action ignored", slog.String("action", string(cmd.Action)))
	}
}

func (s *Session) handleJoin(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		s.notifier.SendTo(s.conn, model.NewError("Player name must not be empty"))
		return
	}

	player, total, err := s.ctrl.Join(name, s.conn)
	if err != nil {
		s.notifier.SendTo(s.conn, model.NewError(joinErrorMessage(name, err)))
		return
	}

	// Confirm to the joiner, announce to the rest, then hand the joiner
	// the current standings, in that order.
	s.notifier.SendTo(s.conn, model.NewJoined(player.Name, s.ctrl.GameInfo()))
	s.notifier.Broadcast(model.NewPlayerJoined(player.Name, total), s.conn)
	s.notifier.SendTo(s.conn, model.NewGameState(s.ctrl.Snapshot()))
}

func (s *Session) handleGuess(playerName string, raw json.RawMessage) {
	value, err := parseGuess(raw)
	if err != nil {
		s.notifier.SendTo(s.conn, model.NewError("Guess must be an integer"))
		return
	}

	cfg := s.ctrl.Config()
	if value < cfg.MinValue || value > cfg.MaxValue {
		s.notifier.SendTo(s.conn, model.NewError(
			fmt.Sprintf("Guess must be between %d and %d", cfg.MinValue, cfg.MaxValue)))
		return
	}

	outcome := s.ctrl.ProcessGuess(playerName, value)
	switch outcome.Kind {
	case OutcomeIgnored:
		// Unknown player: drop without a reply.
	case OutcomeInactive:
		s.notifier.SendTo(s.conn, model.NewError("Round is not active"))
	case OutcomeHint:
		s.notifier.SendTo(s.conn, model.NewGuessResult(outcome.Guess, outcome.Hint, outcome.Remaining))
		s.notifier.Broadcast(model.NewPlayerGuessed(playerName, outcome.Guess, outcome.Remaining), s.conn)
	case OutcomeExhausted:
		s.notifier.SendTo(s.conn, model.NewOutOfGuesses())
	case OutcomeWon:
		s.notifier.Broadcast(model.NewGameWon(outcome.Winner, outcome.Secret, outcome.GuessesTaken, outcome.Points), nil)
		s.scheduleRestart()
	}
}

// scheduleRestart arms the one-shot round restart. The callback only
// touches the shared controller and notifier, so it fires regardless of
// what happens to this session in the meantime.
func (s *Session) scheduleRestart() {
	ctrl, notifier := s.ctrl, s.notifier
	cfg := ctrl.Config()

	ctrl.clock.AfterFunc(cfg.RestartDelay, func() {
		number := ctrl.StartNewRound()
		notifier.Broadcast(model.NewRoundStarted(number, cfg.MinValue, cfg.MaxValue), nil)
	})
}

// Close tears the session down: at most one directory removal and one
// player_left announcement per connection, no matter how often the
// transport retries.
func (s *Session) Close() {
	if player, remaining := s.ctrl.Leave(s.conn); player != nil {
		s.notifier.Broadcast(model.NewPlayerLeft(player.Name, remaining), nil)
	}
}

// parseGuess accepts only JSON integers: floats, strings, bools, null and
// a missing field are validation errors rather than decode errors. The
// null literal needs its own check because unmarshaling it into an int is
// a no-op rather than an error.
func parseGuess(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, errors.New("missing guess")
	}
	var value int
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, err
	}
	return value, nil
}

func joinErrorMessage(name string, err error) string {
	switch {
	case errors.Is(err, model.ErrNameTaken):
		return fmt.Sprintf("Player '%s' already exists", name)
	case errors.Is(err, model.ErrAlreadyJoined):
		return "This connection has already joined"
	default:
		return "Could not join the game"
	}
}
