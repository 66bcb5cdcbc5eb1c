package http_server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"chatrelay/internal/ws"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type httpServer struct {
	listenPort   uint16
	clientOrigin string
	srv          http.Server
	ln           net.Listener
	wsSrv        *ws.WsServer
	ctx          context.Context
}

func NewHttpServer(ctx context.Context, listenPort uint16, clientOrigin string, wsSrv *ws.WsServer) *httpServer {
	return &httpServer{
		listenPort:   listenPort,
		clientOrigin: clientOrigin,
		wsSrv:        wsSrv,
		ctx:          ctx,
	}
}

func (h *httpServer) Start() error {
	var err error
	listenAddr := fmt.Sprintf(":%d", h.listenPort)
	h.ln, err = net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	routerEngine := gin.New()

	routerEngine.Use(ginzap.Ginzap(zap.L(), time.RFC3339, true))
	routerEngine.Use(ginzap.RecoveryWithZap(zap.L(), true))

	// Cross-origin access is limited to the configured client origin.
	routerEngine.Use(cors.New(cors.Config{
		AllowOrigins: []string{h.clientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	// Liveness check.
	routerEngine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Real-time Chat API is running"})
	})

	// websocket endpoint
	routerEngine.GET("/ws", h.wsSrv.Handle)

	h.srv = http.Server{
		Handler: routerEngine,
	}

	return h.srv.Serve(h.ln)
}

// Dispose gracefully shuts the HTTP server down.
// It waits up to 10 s for in-flight requests to finish.
func (h *httpServer) Dispose() error {
	// Create a context that times-out after 10 s.
	ctx, cancel := context.WithTimeout(h.ctx, 10*time.Second)
	defer cancel()

	// Ask the server to shut down.
	if err := h.srv.Shutdown(ctx); err != nil {
		zap.L().Error("http_dispose", zap.Error(err))
		return err // e.g. active conns didn't finish in time
	}

	// If the context's deadline expired, log it for observability.
	if ctx.Err() == context.DeadlineExceeded {
		zap.L().Error("http_dispose", zap.Error(errors.New("shutdown timed out")))
		log.Println("shutdown timeout (10 s)")
	}

	return nil
}
