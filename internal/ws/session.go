package ws

import "chatrelay/internal/chat"

// sessionState tracks one connection through its lifecycle:
//
//	connected ──join──▶ inRoom ──disconnect──▶ closed
//	    └────────────disconnect──────────────▶ closed
//
// closed is terminal; a connection ID is never reused.
type sessionState int

const (
	stateConnected sessionState = iota // transport up, no identity yet
	stateInRoom                        // joined, identity registered
	stateClosed                        // torn down
)

func (s sessionState) String() string {
	switch s {
	case stateConnected:
		return "connected"
	case stateInRoom:
		return "in_room"
	case stateClosed:
		return "closed"
	}
	return "unknown"
}

// session is the per-connection lifecycle record. Only the connection's
// reader goroutine touches it, so no lock guards the state field.
type session struct {
	conn  chat.Conn
	state sessionState
}

// ConnContext is handed to every event handler.
type ConnContext struct {
	sess *session
	srv  *WsServer
}
