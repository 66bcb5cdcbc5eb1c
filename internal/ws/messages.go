package ws

import "encoding/json"

// Client→server event names. Server→client names live in package chat.
const (
	eventJoinRoom    = "join_room"
	eventSendMessage = "send_message"
	eventTyping      = "typing"
)

// Envelope wraps every inbound frame: {"event":"...","body":{...}}.
type Envelope struct {
	Event string          `json:"event"`
	Body  json.RawMessage `json:"body,omitempty"`
}

// ──────────────────────────── Request DTOs ──────────────────────────────────

// JoinRoomBody is the body for "join_room".
type JoinRoomBody struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// SendMessageBody is the body for "send_message". Room and username travel in
// the payload, as in the reference protocol; the server stamps the time.
type SendMessageBody struct {
	Room     string `json:"room"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// TypingBody is the body for "typing".
type TypingBody struct {
	Room     string `json:"room"`
	Username string `json:"username"`
	IsTyping bool   `json:"isTyping"`
}
