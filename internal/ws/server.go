package ws

import (
	"context"
	"net/http"
	"time"

	"chatrelay/internal/chat"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 54 * time.Second // must be < pongWait
	maxFrameSize = 4096

	dispatchTimeout = 2 * time.Second
)

type WsServer struct {
	hub      *Hub
	router   *Router
	chatSvc  *chat.Service
	upgrader websocket.Upgrader
}

func NewWsServer(h *Hub, chatSvc *chat.Service, clientOrigin string) *WsServer {
	srv := &WsServer{
		hub:     h,
		router:  NewRouter(),
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(clientOrigin),
		},
	}
	srv.registerHandlers() // ← all WS events configured here
	return srv
}

// originChecker admits the configured client origin plus non-browser clients
// that send no Origin header at all.
func originChecker(allowed string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || origin == allowed
	}
}

// ---------------------------------------------------------------------------
//  Public: Gin entry-point
// ---------------------------------------------------------------------------

func (s *WsServer) Handle(ginCtx *gin.Context) {
	rawConn, err := s.upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.upgrade", zap.Error(err))
		return
	}
	rawConn.SetReadLimit(maxFrameSize)

	conn := newClientConn(rawConn)
	zap.L().Debug("ws.connected", zap.String("conn_id", conn.ID()))

	go s.reader(conn)
	go s.pinger(conn)
}

// ---------------------------------------------------------------------------
//  Private helpers
// ---------------------------------------------------------------------------

func (s *WsServer) registerHandlers() {
	// 🔹 join_room ----------------------------------------------------------
	Register(
		s.router,
		eventJoinRoom,
		func(ctx context.Context, cc *ConnContext, req JoinRoomBody) error {
			if cc.sess.state != stateConnected {
				return chat.ErrAlreadyInRoom
			}
			if err := s.chatSvc.Join(cc.sess.conn, req.Username, req.Room); err != nil {
				return err
			}
			cc.sess.state = stateInRoom
			return nil
		},
	)

	// 🔹 send_message -------------------------------------------------------
	Register(
		s.router,
		eventSendMessage,
		func(ctx context.Context, cc *ConnContext, req SendMessageBody) error {
			if cc.sess.state != stateInRoom {
				return chat.ErrNotInRoom
			}
			return s.chatSvc.SendMessage(cc.sess.conn.ID(), req.Room, req.Username, req.Message)
		},
	)

	// 🔹 typing -------------------------------------------------------------
	Register(
		s.router,
		eventTyping,
		func(ctx context.Context, cc *ConnContext, req TypingBody) error {
			if cc.sess.state != stateInRoom {
				return chat.ErrNotInRoom
			}
			return s.chatSvc.Typing(cc.sess.conn.ID(), req.Room, req.Username, req.IsTyping)
		},
	)
}

// reader drives the session: every inbound frame is dispatched from this one
// goroutine, and the deferred teardown runs on every exit path so a transport
// disconnect is never left unprocessed.
func (s *WsServer) reader(conn *clientConn) {
	sess := &session{conn: conn, state: stateConnected}
	defer func() {
		sess.state = stateClosed
		s.chatSvc.Disconnect(conn.ID())
		_ = conn.Close()
		zap.L().Debug("ws.disconnected", zap.String("conn_id", conn.ID()))
	}()

	_ = conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	conn.rawConn.SetPongHandler(func(string) error {
		return conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	cc := &ConnContext{sess: sess, srv: s}

	for {
		var env Envelope
		if err := conn.rawConn.ReadJSON(&env); err != nil {
			return // client closed or errored
		}

		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		err := s.router.dispatch(ctx, cc, env)
		cancel()

		if err != nil {
			// Invalid and unknown requests degrade to silent no-ops on the
			// wire; the reference protocol sends no feedback.
			zap.L().Debug("ws.dropped",
				zap.String("conn_id", conn.ID()),
				zap.String("event", env.Event),
				zap.Stringer("state", sess.state),
				zap.Error(err),
			)
		}
	}
}

func (s *WsServer) pinger(conn *clientConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.write(websocket.PingMessage, nil); err != nil {
			_ = conn.Close()
			return
		}
	}
}
