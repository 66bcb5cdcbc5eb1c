package ws

import (
	"sync"

	"chatrelay/internal/chat"
)

// Hub keeps connection sets per room name and fans events out to them. It
// implements chat.Broadcaster.
//
// The hub's own lock only protects its maps; the ordering guarantee (no
// interleaving of a membership change with the snapshot broadcast it feeds)
// comes from chat.Service serializing all calls.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

func NewHub() *Hub { return &Hub{rooms: make(map[string]*room)} }

func (h *Hub) Join(roomName string, c chat.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[roomName]
	if !ok {
		r = newRoom()
		h.rooms[roomName] = r
	}
	r.add(c)
}

// Leave removes the connection from the room and drops the room itself once
// the last member is gone.
func (h *Hub) Leave(roomName, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[roomName]
	if !ok {
		return
	}
	r.remove(connID)
	if r.empty() {
		delete(h.rooms, roomName)
	}
}

// Broadcast delivers e to every connection currently in the room.
func (h *Hub) Broadcast(roomName string, e chat.Event) {
	h.broadcast(roomName, e, nil)
}

// BroadcastExcept delivers e to every connection in the room but one, used so
// a sender never receives an echo of its own join/leave/typing signal.
func (h *Hub) BroadcastExcept(roomName string, e chat.Event, exceptConnID string) {
	h.broadcast(roomName, e, func(id string) bool { return id != exceptConnID })
}

func (h *Hub) broadcast(roomName string, e chat.Event, include func(connID string) bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if r, ok := h.rooms[roomName]; ok {
		r.broadcast(e, include)
	}
}
