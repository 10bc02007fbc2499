package ws

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"
)

// Conn wraps one client's websocket with an identity, an outbound queue,
// and a liveness flag. A Conn is never reused across transports.
type Conn struct {
	id     string
	ws     *websocket.Conn
	out    chan []byte
	closed atomic.Bool
	ping   time.Duration
}

// Accept upgrades HTTP to websocket, restricted to the configured origins.
func Accept(w http.ResponseWriter, r *http.Request, origins []string) (*websocket.Conn, error) {
	return websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns:  origins,
		CompressionMode: websocket.CompressionDisabled,
	})
}

// NewConn wraps an accepted websocket connection.
func NewConn(ws *websocket.Conn, sendBuffer int, ping time.Duration) *Conn {
	if sendBuffer <= 0 {
		sendBuffer = 256
	}
	if ping <= 0 {
		ping = 20 * time.Second
	}
	return &Conn{
		id:   uuid.NewString(),
		ws:   ws,
		out:  make(chan []byte, sendBuffer),
		ping: ping,
	}
}

// ID returns the connection's unique identity.
func (c *Conn) ID() string { return c.id }

// Open reports whether the connection is still live for delivery.
func (c *Conn) Open() bool { return !c.closed.Load() }

// Enqueue queues an outbound frame. Delivery is best-effort: frames for a
// closed connection or a full queue are dropped, reported by the return.
func (c *Conn) Enqueue(frame []byte) bool {
	if c.closed.Load() {
		return false
	}
	select {
	case c.out <- frame:
		return true
	default:
		return false
	}
}

// Read blocks until the next text/binary frame.
// Returns false once the transport is gone.
func (c *Conn) Read(ctx context.Context) ([]byte, bool) {
	for {
		typ, data, err := c.ws.Read(ctx)
		if err != nil {
			return nil, false
		}
		if typ == websocket.MessageText || typ == websocket.MessageBinary {
			return data, true
		}
	}
}

// WriteLoop drains the outbound queue and pings periodically.
// Exits when ctx is cancelled.
func (c *Conn) WriteLoop(ctx context.Context) {
	t := time.NewTicker(c.ping)
	defer t.Stop()

	for {
		select {
		case b := <-c.out:
			_ = c.ws.Write(ctx, websocket.MessageText, b)
		case <-t.C:
			_ = c.ws.Ping(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Close marks the connection dead and closes the websocket normally.
func (c *Conn) Close() error {
	c.closed.Store(true)
	if c.ws == nil {
		return nil
	}
	return c.ws.Close(websocket.StatusNormalClosure, "bye")
}
