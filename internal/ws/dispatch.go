package ws

import (
	"fmt"
	"log/slog"
	"strings"

	"room-relay/pkg/metrics"
)

// Reply texts for protocol violations. These are part of the wire
// contract; clients match on them.
const (
	replyBadJSON      = "Invalid JSON format."
	replyFieldsNeeded = "Room and username are required."
	replyFieldsEmpty  = "Room and username cannot be empty."
	replyNotInRoom    = "You are not in a room."
	replyJoinFirst    = "You must join a room before chatting."
	replyEmptyText    = "Message cannot be empty."
)

// Dispatcher routes one connection's inbound frames: parse, validate
// against the session, mutate the registry, broadcast. Every handler runs
// to completion on the connection's read goroutine; faults become error
// replies to that connection only.
type Dispatcher struct {
	reg *Registry
	log *slog.Logger
}

// NewDispatcher wires the router to a registry.
func NewDispatcher(reg *Registry, log *slog.Logger) *Dispatcher {
	return &Dispatcher{reg: reg, log: log}
}

// Dispatch handles one inbound frame from c.
func (d *Dispatcher) Dispatch(c *Conn, sess *Session, raw []byte) {
	in, err := DecodeInbound(raw)
	if err != nil {
		d.reject(c, replyBadJSON)
		return
	}

	switch in.Type {
	case TypeJoin:
		d.handleJoin(c, sess, in)
	case TypeLeave:
		d.handleLeave(c, sess)
	case TypeMessage:
		d.handleMessage(c, sess, in)
	default:
		d.reject(c, fmt.Sprintf("Unknown type: %s", in.Type))
	}
}

// Disconnect runs the implicit-leave path when the transport goes away.
// Safe to call for unjoined sessions; callers guard against running it
// more than once per connection.
func (d *Dispatcher) Disconnect(c *Conn, sess *Session) {
	if !sess.Joined() {
		return
	}
	d.leaveCurrent(c, sess)
}

func (d *Dispatcher) handleJoin(c *Conn, sess *Session, in Inbound) {
	room, roomOK := asString(in.Room)
	username, userOK := asString(in.Username)
	if !roomOK || !userOK {
		d.reject(c, replyFieldsNeeded)
		return
	}
	room = strings.TrimSpace(room)
	username = strings.TrimSpace(username)
	if room == "" || username == "" {
		d.reject(c, replyFieldsEmpty)
		return
	}

	// A second join while already in a room is an implicit leave: the
	// old room is notified and membership moved, never leaked.
	if sess.Joined() {
		d.leaveCurrent(c, sess)
	}

	rm := d.reg.Join(room, c)
	sess.Join(room, username)
	metrics.RoomsActive.Set(float64(d.reg.Len()))

	sent, dropped := rm.Broadcast(systemFrame(username+" joined the room"), c)
	metrics.FramesRelayed.Add(float64(sent))
	metrics.FramesDropped.Add(float64(dropped))
	d.log.Info("room.join", "room", room, "user", username, "conn", c.ID(), "members", rm.Len())
}

func (d *Dispatcher) handleLeave(c *Conn, sess *Session) {
	if !sess.Joined() {
		d.reject(c, replyNotInRoom)
		return
	}
	d.leaveCurrent(c, sess)
}

func (d *Dispatcher) handleMessage(c *Conn, sess *Session, in Inbound) {
	if !sess.Joined() {
		d.reject(c, replyJoinFirst)
		return
	}
	text, ok := asString(in.Text)
	if !ok || strings.TrimSpace(text) == "" {
		d.reject(c, replyEmptyText)
		return
	}

	rm := d.reg.Room(sess.Room())
	if rm == nil {
		// Session says joined but the room is gone; should not happen.
		d.reject(c, replyJoinFirst)
		return
	}
	// The original text is relayed untrimmed.
	sent, dropped := rm.Broadcast(messageFrame(sess.Username(), text), c)
	metrics.FramesRelayed.Add(float64(sent))
	metrics.FramesDropped.Add(float64(dropped))
	d.log.Debug("room.message", "room", sess.Room(), "user", sess.Username(), "sent", sent)
}

// leaveCurrent removes c from its current room, notifies the remaining
// members, and resets the session.
func (d *Dispatcher) leaveCurrent(c *Conn, sess *Session) {
	room, username := sess.Leave()
	rm := d.reg.Leave(room, c)
	metrics.RoomsActive.Set(float64(d.reg.Len()))
	if rm == nil {
		return
	}
	sent, dropped := rm.Broadcast(systemFrame(username+" left the room"), c)
	metrics.FramesRelayed.Add(float64(sent))
	metrics.FramesDropped.Add(float64(dropped))
	d.log.Info("room.leave", "room", room, "user", username, "conn", c.ID(), "members", rm.Len())
}

// reject sends an error event to the offending connection only.
func (d *Dispatcher) reject(c *Conn, text string) {
	metrics.ErrorReplies.Inc()
	c.Enqueue(errorFrame(text))
}
