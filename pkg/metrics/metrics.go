// Package metrics exposes the relay's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ConnectionsActive tracks currently open websocket connections.
	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relay_connections_active",
		Help: "Open websocket connections.",
	})

	// RoomsActive tracks rooms with at least one member.
	RoomsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relay_rooms_active",
		Help: "Rooms with at least one member.",
	})

	// FramesRelayed counts frames delivered to recipients by broadcasts.
	FramesRelayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_frames_relayed_total",
		Help: "Frames enqueued to broadcast recipients.",
	})

	// FramesDropped counts best-effort deliveries that were skipped
	// (closed connection or full send queue).
	FramesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_frames_dropped_total",
		Help: "Broadcast deliveries skipped for closed or slow connections.",
	})

	// ErrorReplies counts error events sent back to misbehaving clients.
	ErrorReplies = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_error_replies_total",
		Help: "Protocol error replies sent to clients.",
	})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
