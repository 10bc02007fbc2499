package httpx

import (
	"fmt"
	"log/slog"
	"net/http"

	"room-relay/internal/app"
	"room-relay/internal/ws"
	"room-relay/pkg/metrics"
)

// NewRouter wires up the relay's HTTP surface: health, metrics, and the
// websocket endpoint. Everything else about the protocol lives on the
// persistent connection.
func NewRouter(cfg app.Config, logger *slog.Logger, hub *ws.Hub) http.Handler {
	mw := NewMiddleware(cfg)

	mux := http.NewServeMux()

	// Health / readiness / metrics
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/readyz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"rooms":%d}`, hub.Registry().Len())
	}))
	mux.Handle("/metrics", metrics.Handler())

	// WebSocket endpoint
	mux.Handle("/ws", http.HandlerFunc(hub.ServeWS))

	return mw.Wrap(mux)
}
