package ws

import (
	"encoding/json"
	"errors"
)

// Inbound event types a client may send.
const (
	TypeJoin    = "join"
	TypeLeave   = "leave"
	TypeMessage = "message"
)

// Outbound event types the server emits.
const (
	TypeSystem = "system"
	TypeError  = "error"
)

// errMalformed marks a frame that did not parse as the expected envelope.
var errMalformed = errors.New("malformed frame")

// Inbound is the decoded client envelope. Field payloads stay raw so the
// dispatcher can tell a missing or non-string value from an empty one.
type Inbound struct {
	Type     string
	Room     json.RawMessage
	Username json.RawMessage
	Text     json.RawMessage
}

// DecodeInbound parses a raw frame into the envelope. Anything that is not
// a JSON object with a string type field counts as malformed; in
// particular null, a bare value, and an object with no usable type all
// fail here rather than reaching the unrecognized-type branch.
func DecodeInbound(raw []byte) (Inbound, error) {
	var env struct {
		Type     json.RawMessage `json:"type"`
		Room     json.RawMessage `json:"room"`
		Username json.RawMessage `json:"username"`
		Text     json.RawMessage `json:"text"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return Inbound{}, errMalformed
	}
	typ, ok := asString(env.Type)
	if !ok {
		return Inbound{}, errMalformed
	}
	return Inbound{Type: typ, Room: env.Room, Username: env.Username, Text: env.Text}, nil
}

// asString unwraps a raw field, reporting whether it was a JSON string.
// A JSON null is not a string even though encoding/json would decode it
// into one without error.
func asString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// SystemEvent is a room-wide notice about membership changes.
type SystemEvent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ErrorEvent is sent to the offending connection only.
type ErrorEvent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// MessageEvent relays one user's chat line to the rest of the room.
type MessageEvent struct {
	Type string `json:"type"`
	User string `json:"user"`
	Text string `json:"text"`
}

func systemFrame(text string) []byte {
	b, _ := json.Marshal(SystemEvent{Type: TypeSystem, Text: text})
	return b
}

func errorFrame(text string) []byte {
	b, _ := json.Marshal(ErrorEvent{Type: TypeError, Text: text})
	return b
}

func messageFrame(user, text string) []byte {
	b, _ := json.Marshal(MessageEvent{Type: TypeMessage, User: user, Text: text})
	return b
}
