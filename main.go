package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"chatrelay/internal/chat"
	"chatrelay/internal/config"
	"chatrelay/internal/http/http_server"
	"chatrelay/internal/ws"

	"go.uber.org/zap"
)

var (
	Log, _ = zap.NewDevelopment()
)

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	Log.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// 3. WebSockets hub (per-room fan-out)
	hub := ws.NewHub()

	// 4. Room/presence service on top of the hub
	chatSvc := chat.NewService(hub, Log)

	// 5. Initialize the WS server
	wsSrv := ws.NewWsServer(hub, chatSvc, cfg.ClientOrigin)

	// 6. HTTP + WS server
	httpServer := http_server.NewHttpServer(ctx, cfg.HttpServerPort, cfg.ClientOrigin, wsSrv)

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.Start() }()
	Log.Info("Server listening", zap.Uint16("port", cfg.HttpServerPort))

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			Log.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	case <-ctx.Done():
		if err := httpServer.Dispose(); err != nil {
			Log.Error("Shutdown failed", zap.Error(err))
		}
	}
}
