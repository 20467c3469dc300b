package room

import (
	"encoding/json"
	"log/slog"

	"github.com/numguess/numguess/internal/dependencies/clock"
	"github.com/numguess/numguess/internal/model"
)

// Notifier delivers events to connections: best-effort direct replies and
// room-wide broadcasts with stale-connection cleanup.
type Notifier struct {
	ctrl   *Controller
	clock  clock.Clock
	logger *slog.Logger
}

// NewNotifier creates a Notifier over the given room
func NewNotifier(ctrl *Controller, clk clock.Clock, logger *slog.Logger) *Notifier {
	return &Notifier{ctrl: ctrl, clock: clk, logger: logger}
}

// SendTo serializes event and sends it to a single connection. Replies
// carry no timestamp. Failures are logged and otherwise ignored: teardown
// or the next broadcast collects the stale connection.
func (n *Notifier) SendTo(conn model.Conn, event model.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("event marshal failed",
			slog.String("event", string(event.EventType())),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := conn.Send(data); err != nil {
		n.logger.Debug("direct send dropped",
			slog.String("event", string(event.EventType())),
			slog.String("error", err.Error()),
		)
	}
}

// Broadcast stamps event with the current time, serializes it once and
// fans it out to every registered connection except excluding. Stale
// connections are cleaned up after the pass, each with its own
// player_left broadcast. Cleanup converges: a removed connection is out
// of every later registry snapshot, so it cannot fail twice.
func (n *Notifier) Broadcast(event model.Event, excluding model.Conn) {
	event.Stamp(n.clock.Now())

	data, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("event marshal failed",
			slog.String("event", string(event.EventType())),
			slog.String("error", err.Error()),
		)
		return
	}

	var stale []model.Conn
	for _, conn := range n.ctrl.Connections(excluding) {
		if err := conn.Send(data); err != nil {
			stale = append(stale, conn)
		}
	}

	for _, conn := range stale {
		n.logger.Debug("removing stale connection",
			slog.String("event", string(event.EventType())),
		)
		if player, remaining := n.ctrl.Leave(conn); player != nil {
			n.Broadcast(model.NewPlayerLeft(player.Name, remaining), nil)
		}
	}
}
