package ws

// Session is the per-connection view of room membership: which room the
// connection is in and under what display name. Both fields are set or
// both are empty; a connection is either fully joined or not at all.
// Only the owning connection's read loop touches its session, so no
// locking is needed here.
type Session struct {
	room     string
	username string
}

// NewSession starts in the unjoined state.
func NewSession() *Session {
	return &Session{}
}

// Joined reports whether the connection currently occupies a room.
func (s *Session) Joined() bool { return s.room != "" }

// Room returns the current room name, empty when unjoined.
func (s *Session) Room() string { return s.room }

// Username returns the display name, empty when unjoined.
func (s *Session) Username() string { return s.username }

// Join records membership. Values are expected trimmed and non-empty.
func (s *Session) Join(room, username string) {
	s.room = room
	s.username = username
}

// Leave resets to unjoined and returns the previous room and name.
func (s *Session) Leave() (room, username string) {
	room, username = s.room, s.username
	s.room, s.username = "", ""
	return room, username
}
