package chat

import (
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrInvalidIdentity = errors.New("username and room must be non-empty")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrEmptyRoom       = errors.New("room is empty")
	ErrNotInRoom       = errors.New("connection has not joined a room")
	ErrAlreadyInRoom   = errors.New("connection already joined a room")
)

// Conn is the transport-side handle for one live connection. Send must be
// safe for concurrent use and must fail, not block, when the peer is gone.
type Conn interface {
	ID() string
	Send(e Event) error
	Close() error
}

// Broadcaster delivers events to the connections of a room. Implemented by
// ws.Hub; membership mutations are serialized by Service.
type Broadcaster interface {
	Join(room string, c Conn)
	Leave(room string, connID string)
	Broadcast(room string, e Event)
	BroadcastExcept(room string, e Event, exceptConnID string)
}

// Service owns the room/presence semantics: who is in which room, what gets
// broadcast on join, message, typing and disconnect.
//
// One mutex serializes every registry mutation together with the membership
// snapshot and the broadcasts it feeds. Without that, a join and a disconnect
// racing on the same room could publish snapshots out of order relative to
// the events that caused them.
type Service struct {
	mu  sync.Mutex
	reg *Registry
	bc  Broadcaster
	now func() time.Time
	log *zap.Logger
}

func NewService(bc Broadcaster, log *zap.Logger) *Service {
	return &Service{
		reg: NewRegistry(),
		bc:  bc,
		now: time.Now,
		log: log,
	}
}

// Join registers the connection in room under username and announces it:
// user_joined to everyone already there, then the refreshed room_users
// snapshot to the whole room including the joiner.
func (s *Service) Join(c Conn, username, room string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reg.Lookup(c.ID()); ok {
		// Changing room or name is modeled as leave-then-rejoin.
		return ErrAlreadyInRoom
	}
	if err := s.reg.Register(c.ID(), username, room); err != nil {
		return err
	}
	s.bc.Join(room, c)
	s.bc.BroadcastExcept(room, Event{Name: EventUserJoined, Body: UserJoinedBody{Username: username}}, c.ID())
	s.bc.Broadcast(room, Event{Name: EventRoomUsers, Body: s.reg.MembersOf(room)})

	s.log.Debug("chat.join",
		zap.String("conn_id", c.ID()),
		zap.String("username", username),
		zap.String("room", room),
	)
	return nil
}

// SendMessage stamps the server time and broadcasts the message to the whole
// room, sender included; the sender renders its own echo.
func (s *Service) SendMessage(connID, room, username, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reg.Lookup(connID); !ok {
		return ErrNotInRoom
	}
	if strings.TrimSpace(room) == "" {
		return ErrEmptyRoom
	}
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}

	body := ReceiveMessageBody{
		Username: username,
		Message:  message,
		Time:     s.now().UTC().Format(time.RFC3339),
	}
	s.bc.Broadcast(room, Event{Name: EventReceiveMessage, Body: body})
	return nil
}

// Typing relays the latest typing signal to the other room members. Nothing
// is stored server-side; the indicator is ephemeral client state.
func (s *Service) Typing(connID, room, username string, isTyping bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reg.Lookup(connID); !ok {
		return ErrNotInRoom
	}
	if strings.TrimSpace(room) == "" {
		return ErrEmptyRoom
	}

	s.bc.BroadcastExcept(room, Event{Name: EventUserTyping, Body: UserTypingBody{Username: username, IsTyping: isTyping}}, connID)
	return nil
}

// Disconnect tears down whatever state the connection accumulated:
// deregister, drop from the room, user_left plus a fresh snapshot for the
// remaining members. Idempotent, and a no-op for connections that never
// joined.
func (s *Service) Disconnect(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.reg.Lookup(connID)
	if !ok {
		return
	}
	s.reg.Unregister(connID)
	s.bc.Leave(id.Room, connID)
	s.bc.Broadcast(id.Room, Event{Name: EventUserLeft, Body: UserLeftBody{Username: id.Username}})
	s.bc.Broadcast(id.Room, Event{Name: EventRoomUsers, Body: s.reg.MembersOf(id.Room)})

	s.log.Debug("chat.leave",
		zap.String("conn_id", connID),
		zap.String("username", id.Username),
		zap.String("room", id.Room),
	)
}
