package chat

// Server→client event names.
const (
	EventUserJoined     = "user_joined"
	EventRoomUsers      = "room_users"
	EventReceiveMessage = "receive_message"
	EventUserTyping     = "user_typing"
	EventUserLeft       = "user_left"
)

// Event is one outbound frame: {"event":"<name>","body":{...}}.
type Event struct {
	Name string `json:"event"`
	Body any    `json:"body,omitempty"`
}

// ──────────────────────────── Event bodies ──────────────────────────────────
//
// The room_users body is the bare ordered name array, not a wrapper object.

type UserJoinedBody struct {
	Username string `json:"username"`
}

type UserLeftBody struct {
	Username string `json:"username"`
}

type ReceiveMessageBody struct {
	Username string `json:"username"`
	Message  string `json:"message"`
	Time     string `json:"time"` // server clock, RFC 3339 UTC
}

type UserTypingBody struct {
	Username string `json:"username"`
	IsTyping bool   `json:"isTyping"`
}
