package ws

import (
	"chatrelay/internal/chat"
)

// room is the set of live connections currently joined to one chat room,
// keyed by connection ID.
type room struct {
	conns map[string]chat.Conn
}

func newRoom() *room { return &room{conns: map[string]chat.Conn{}} }

func (r *room) add(c chat.Conn) {
	r.conns[c.ID()] = c
}

func (r *room) remove(connID string) {
	delete(r.conns, connID)
}

func (r *room) empty() bool { return len(r.conns) == 0 }

// broadcast delivers e to every member the include predicate admits (nil
// means everyone). Delivery is fire-and-forget: a failed write closes the
// connection so its reader loop observes the error and runs the normal
// disconnect teardown; no error surfaces to the caller.
func (r *room) broadcast(e chat.Event, include func(connID string) bool) {
	var failed []chat.Conn
	for id, c := range r.conns {
		if include != nil && !include(id) {
			continue
		}
		if err := c.Send(e); err != nil {
			failed = append(failed, c)
		}
	}
	for _, c := range failed {
		_ = c.Close()
	}
}
