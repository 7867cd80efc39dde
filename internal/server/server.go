package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/goplus/gqlls/gql"
	"github.com/gorilla/websocket"
	glspserver "github.com/tliron/glsp/server"
	"go.uber.org/zap"
)

const (
	serverName = "gqlls"

	defaultMaxDocuments = 100
)

// Options configures a [Server].
type Options struct {
	// MaxDocuments bounds the open documents kept per client. The least
	// recently used document is dropped when a client opens more.
	MaxDocuments int

	// Version is reported to clients in the initialize result.
	Version string

	Logger *zap.SugaredLogger

	// IsSchemaPath reports whether the file at path is part of the schema.
	// Open documents at such paths replace the project file with the
	// editor content. By default only files already in the project are.
	IsSchemaPath func(path string) bool
}

// Server is the GraphQL language server. Each client gets its own session
// with its own open documents. All sessions share the schema project.
type Server struct {
	proj   *gql.Project
	opts   Options
	logger *zap.SugaredLogger

	upgrader websocket.Upgrader

	connsMu sync.Mutex
	conns   map[*websocket.Conn]struct{}
}

// New creates a server answering from the schema of proj.
func New(proj *gql.Project, opts Options) *Server {
	if opts.MaxDocuments <= 0 {
		opts.MaxDocuments = defaultMaxDocuments
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.IsSchemaPath == nil {
		opts.IsSchemaPath = func(path string) bool {
			_, ok := proj.File(path)
			return ok
		}
	}
	return &Server{
		proj:   proj,
		opts:   opts,
		logger: opts.Logger,
		upgrader: websocket.Upgrader{
			// Browser editors are served from arbitrary origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Project returns the schema project of the server.
func (s *Server) Project() *gql.Project {
	return s.proj
}

// RunStdio serves a single client over stdin and stdout until the client
// exits.
func (s *Server) RunStdio() error {
	sess, err := s.newSession()
	if err != nil {
		return err
	}
	s.logger.Infow("serving LSP over stdio")
	return glspserver.NewServer(sess.handler, serverName, false).RunStdio()
}

// ServeHTTP upgrades the request to a WebSocket and serves one client on it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already replied with an HTTP error.
		s.logger.Warnw("failed to upgrade to WebSocket", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()
	s.trackConn(conn, true)
	defer s.trackConn(conn, false)

	sess, err := s.newSession()
	if err != nil {
		s.logger.Errorw("failed to create session", "error", err)
		return
	}

	s.logger.Infow("WebSocket client connected", "remote", r.RemoteAddr)
	glspserver.NewServer(sess.handler, serverName, false).ServeWebSocket(conn)
	s.logger.Infow("WebSocket client disconnected", "remote", r.RemoteAddr)
}

func (s *Server) trackConn(conn *websocket.Conn, add bool) {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	if add {
		s.conns[conn] = struct{}{}
	} else {
		delete(s.conns, conn)
	}
}

// closeConns closes every WebSocket connection. Hijacked connections are not
// closed by [http.Server.Shutdown].
func (s *Server) closeConns() {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	for conn := range s.conns {
		conn.Close()
	}
}

// RunWebSocket serves clients over WebSocket on addr until ctx is done.
func (s *Server) RunWebSocket(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(s.closeConns)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("serving LSP over WebSocket", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("WebSocket server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down WebSocket server: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
