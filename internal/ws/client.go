package ws

import (
	"sync"
	"time"

	"chatrelay/internal/chat"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// clientConn wraps one websocket connection. The mutex serializes writes so
// each recipient sees frames in FIFO order; the ID is assigned once at accept
// time and never reused for another transport session.
type clientConn struct {
	id      string
	rawConn *websocket.Conn
	mu      sync.Mutex
}

func newClientConn(raw *websocket.Conn) *clientConn {
	return &clientConn{id: uuid.NewString(), rawConn: raw}
}

func (c *clientConn) ID() string { return c.id }

// Send implements chat.Conn.
func (c *clientConn) Send(e chat.Event) error {
	return c.writeJSON(e)
}

func (c *clientConn) Close() error {
	return c.rawConn.Close()
}

func (c *clientConn) write(mt int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.rawConn.WriteMessage(mt, data)
}

func (c *clientConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.rawConn.WriteJSON(v)
}
