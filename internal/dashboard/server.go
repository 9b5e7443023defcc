// Package dashboard serves the adoption dashboard over HTTP: the HTML page
// with its two charts, a JSON API over the cached series, a websocket that
// tells open pages to reload after a catalog change, and optionally the MCP
// SSE endpoint.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/papapumpkin/uptake/internal/adoption"
	"github.com/papapumpkin/uptake/internal/telemetry"
)

// DefaultAddr is where the dashboard listens unless configured otherwise.
const DefaultAddr = "127.0.0.1:8050"

const (
	defaultPageCacheSize = 64
	shutdownTimeout      = 5 * time.Second
)

// Config holds the configuration for creating a Server.
type Config struct {
	Addr          string
	Source        adoption.Source
	Logger        *slog.Logger
	Telemetry     *telemetry.Emitter // nil disables telemetry
	MCP           http.Handler       // mounted at /mcp when non-nil
	PageCacheSize int
	MaxPoints     int // per chart trace
}

// pageKey identifies a rendered page. A new cache generation makes every
// older key unreachable.
type pageKey struct {
	generation uint64
	framework  string
}

// Server serves the dashboard.
type Server struct {
	cfg   Config
	tmpl  *template.Template
	pages *lru.Cache[pageKey, []byte]
	hub   *Hub

	mu         sync.Mutex
	addr       string
	httpServer *http.Server
}

// NewServer parses the page template and prepares the page cache.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Source == nil {
		return nil, errors.New("dashboard: nil cache source")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.PageCacheSize <= 0 {
		cfg.PageCacheSize = defaultPageCacheSize
	}

	tmpl, err := template.ParseFS(templates, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("dashboard: parse template: %w", err)
	}
	pages, err := lru.New[pageKey, []byte](cfg.PageCacheSize)
	if err != nil {
		return nil, fmt.Errorf("dashboard: page cache: %w", err)
	}
	return &Server{
		cfg:   cfg,
		tmpl:  tmpl,
		pages: pages,
		hub:   NewHub(cfg.Logger),
	}, nil
}

// Handler returns the dashboard routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/frameworks", s.handleFrameworks)
	mux.HandleFunc("GET /api/series/{name}", s.handleSeries)
	mux.HandleFunc("GET /api/comparison", s.handleComparison)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /ws", s.hub.ServeWS)
	if s.cfg.MCP != nil {
		mux.Handle("/mcp", s.cfg.MCP)
	}
	return mux
}

// Addr returns the address the server is listening on. Returns an empty
// string if the server hasn't started yet.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// URL returns the page URL once listening.
func (s *Server) URL() string {
	if a := s.Addr(); a != "" {
		return "http://" + a + "/"
	}
	return ""
}

// Listen binds the configured address. ListenAndServe calls it when the
// caller has not.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.mu.Unlock()
	return ln, nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled. Returns nil on clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	s.emit(telemetry.Event{Kind: telemetry.KindServerStart, Data: map[string]string{"addr": ln.Addr().String()}})
	s.cfg.Logger.Info("dashboard listening", "addr", ln.Addr().String(), "mcp", s.cfg.MCP != nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.hub.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.cfg.Logger.Warn("dashboard shutdown", "err", err)
		}
	}()

	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		s.emit(telemetry.Event{Kind: telemetry.KindServerStop})
		s.cfg.Logger.Info("dashboard stopped")
		return nil
	}
	return err
}

// Reloaded notifies open pages that a new cache generation is live.
func (s *Server) Reloaded(generation uint64) {
	s.hub.Broadcast(Message{Type: MessageReload, Generation: generation})
}

// Clients reports connected websocket clients.
func (s *Server) Clients() int { return s.hub.Len() }

func (s *Server) emit(evt telemetry.Event) {
	if err := s.cfg.Telemetry.Emit(evt); err != nil {
		s.cfg.Logger.Warn("telemetry", "err", err)
	}
}
