// Package remote exposes a quiz engine to a single remote presentation
// layer over a websocket.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/timestables/internal/quiz"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// EngineFactory builds the engine for a new connection.
type EngineFactory func() *quiz.Engine

// Server represents the WebSocket server. It accepts one client at a time;
// each client gets a fresh engine.
type Server struct {
	addr      string
	upgrader  websocket.Upgrader
	newEngine EngineFactory
	metrics   *Metrics
	logger    *log.Logger

	mu     sync.Mutex
	active *Connection
}

// NewServer creates a new WebSocket server
func NewServer(addr string, newEngine EngineFactory, logger *log.Logger) *Server {
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Presentation layers are served from anywhere during development.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		newEngine: newEngine,
		metrics:   NewMetrics(),
		logger:    logger.WithPrefix("server"),
	}
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Handler returns the HTTP handler serving /ws, /health and /metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", s.metrics.Handler())
	return mux
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting WebSocket server", "addr", ln.Addr().String())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down WebSocket server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.closeActive()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Busy reports whether a client is connected.
func (s *Server) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != nil
}

func (s *Server) closeActive() {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()

	if active != nil {
		_ = active.Close()
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	s.mu.Lock()
	if s.active != nil {
		s.mu.Unlock()
		s.logger.Warn("Rejecting connection, session already active", "remote", r.RemoteAddr)
		s.metrics.rejected.Inc()
		s.reject(conn)
		return
	}
	engine := s.newEngine()
	engine.Subscribe(s.metrics)
	client := NewConnection(conn, engine, s.logger)
	s.active = client
	s.mu.Unlock()

	s.metrics.connected()

	s.logger.Info("Client connected", "remote", r.RemoteAddr)
	client.Start()

	go func() {
		<-client.Done()
		s.mu.Lock()
		if s.active == client {
			s.active = nil
		}
		s.metrics.disconnected()
		s.mu.Unlock()
		s.logger.Info("Client disconnected", "remote", r.RemoteAddr)
	}()
}

// reject tells a second client the session is taken and hangs up.
func (s *Server) reject(conn *websocket.Conn) {
	defer conn.Close()

	msg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    ErrCodeSessionBusy,
		Message: "Another client is already connected",
	})
	if err != nil {
		return
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, ErrCodeSessionBusy))
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
