package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/numguess/numguess/internal/api/response"
	"github.com/numguess/numguess/internal/middleware"
	"github.com/numguess/numguess/internal/services/room"
	"github.com/numguess/numguess/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Controller *room.Controller
	Notifier   *room.Notifier
}

// NewRouter creates a new router with the websocket endpoint and the
// read-only JSON API configured.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	wsHandler := ws.NewHandler(cfg.Controller, cfg.Notifier, cfg.Logger)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// The websocket route skips the logging middleware: its wrapped
	// ResponseWriter hides http.Hijacker from the upgrader.
	r.Handle("/ws", recoveryMiddleware(http.HandlerFunc(wsHandler.ServeWS))).Methods(http.MethodGet)

	// JSON API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/state", stateHandler(cfg.Controller)).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// stateHandler reports the same snapshot players receive in game_state
// events, for observers that only speak plain HTTP.
func stateHandler(ctrl *room.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, ctrl.Snapshot())
	}
}
