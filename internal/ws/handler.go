package ws

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/numguess/numguess/internal/services/room"
)

// Handler upgrades HTTP requests to websocket connections and hands each
// one a game session.
type Handler struct {
	ctrl     *room.Controller
	notifier *room.Notifier
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewHandler(ctrl *room.Controller, notifier *room.Notifier, logger *slog.Logger) *Handler {
	return &Handler{
		ctrl:     ctrl,
		notifier: notifier,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The CLI client and tests connect from arbitrary origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeWS handles a websocket upgrade request.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	id := uuid.NewString()
	logger := h.logger.With(slog.String("conn_id", id))
	logger.Info("connection opened", slog.String("remote_addr", r.RemoteAddr))

	client := newClient(id, conn, logger)
	session := room.NewSession(client, h.ctrl, h.notifier, logger)

	go client.writePump()
	go client.readPump(session)
}
