package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInbound(t *testing.T) {
	in, err := DecodeInbound([]byte(`{"type":"join","room":"lobby","username":"alice"}`))
	require.NoError(t, err)
	assert.Equal(t, "join", in.Type)

	room, ok := asString(in.Room)
	require.True(t, ok)
	assert.Equal(t, "lobby", room)
}

func TestDecodeInboundMalformed(t *testing.T) {
	for _, raw := range []string{
		``, `{`, `[]`, `42`, `"leave"`, `{"type":12}`,
		// Parseable JSON that still is not an object with a string type.
		`null`, `{}`, `{"type":null}`, `{"type":[]}`,
	} {
		_, err := DecodeInbound([]byte(raw))
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestDecodeInboundEmptyTypeIsNotMalformed(t *testing.T) {
	in, err := DecodeInbound([]byte(`{"type":""}`))
	require.NoError(t, err)
	assert.Equal(t, "", in.Type)
}

func TestAsStringRejectsNonStrings(t *testing.T) {
	in, err := DecodeInbound([]byte(`{"type":"message","text":123}`))
	require.NoError(t, err)

	_, ok := asString(in.Text)
	assert.False(t, ok)

	// Absent field is not a string either.
	_, ok = asString(in.Room)
	assert.False(t, ok)

	// Neither is an explicit null, which encoding/json would otherwise
	// decode into a string without error.
	in, err = DecodeInbound([]byte(`{"type":"message","text":null}`))
	require.NoError(t, err)
	_, ok = asString(in.Text)
	assert.False(t, ok)
}

func TestOutboundFrameShapes(t *testing.T) {
	assert.JSONEq(t, `{"type":"system","text":"bob joined the room"}`, string(systemFrame("bob joined the room")))
	assert.JSONEq(t, `{"type":"error","text":"You are not in a room."}`, string(errorFrame("You are not in a room.")))
	assert.JSONEq(t, `{"type":"message","user":"alice","text":"hi"}`, string(messageFrame("alice", "hi")))
}
