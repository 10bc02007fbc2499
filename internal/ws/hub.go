package ws

import (
	"log/slog"
	"net/http"
	"sync"

	"room-relay/internal/app"
	"room-relay/pkg/metrics"
)

// Hub accepts websocket connections and runs each one's receive loop.
// It owns no room state itself; the registry does.
type Hub struct {
	cfg app.Config
	log *slog.Logger
	reg *Registry
	d   *Dispatcher
}

// NewHub wires the hub to its registry and dispatcher.
func NewHub(cfg app.Config, logger *slog.Logger, reg *Registry) *Hub {
	return &Hub{cfg: cfg, log: logger, reg: reg, d: NewDispatcher(reg, logger)}
}

// Registry exposes the room registry, mainly for readiness checks.
func (h *Hub) Registry() *Registry { return h.reg }

// ServeWS handles one /ws connection for its whole lifetime: upgrade,
// read-dispatch loop, then the disconnect path. The loop's natural
// termination (client close, network drop) runs the same cleanup as an
// explicit leave, exactly once.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	wsc, err := Accept(w, r, h.cfg.CORSAllow)
	if err != nil {
		h.log.Error("ws.accept", "err", err)
		return
	}
	wsc.SetReadLimit(h.cfg.ReadLimit)

	c := NewConn(wsc, h.cfg.SendBuffer, h.cfg.PingInterval)
	sess := NewSession()
	metrics.ConnectionsActive.Inc()
	h.log.Debug("ws.connected", "conn", c.ID(), "remote", r.RemoteAddr)

	// The transport can signal close more than once (read error plus
	// server shutdown); cleanup must run a single time.
	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.d.Disconnect(c, sess)
			_ = c.Close()
			metrics.ConnectionsActive.Dec()
			h.log.Debug("ws.disconnected", "conn", c.ID())
		})
	}
	defer cleanup()

	go c.WriteLoop(ctx)

	for {
		raw, ok := c.Read(ctx)
		if !ok {
			return
		}
		h.d.Dispatch(c, sess, raw)
	}
}
