// Package server exposes the evaluator, the decision policies and live
// tables over HTTP, with a WebSocket stream of table events.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/lox/pokersim/internal/config"
	"github.com/lox/pokersim/internal/ids"
	"github.com/lox/pokersim/internal/table"
)

// ErrTooManyTables is returned when the table limit is reached
var ErrTooManyTables = errors.New("too many tables")

// ErrTableNotFound is returned for unknown table IDs
var ErrTableNotFound = errors.New("table not found")

// Server holds the live tables and the HTTP handler
type Server struct {
	cfg      *config.Config
	clock    quartz.Clock
	logger   *log.Logger
	ids      *ids.Generator
	upgrader websocket.Upgrader
	router   chi.Router

	mu     sync.RWMutex
	tables map[string]*table.Session
}

// New creates a server. A nil clock uses the wall clock.
func New(cfg *config.Config, clock quartz.Clock, logger *log.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		cfg:    cfg,
		clock:  clock,
		logger: logger.WithPrefix("server"),
		ids:    ids.NewGenerator(clock, nil),
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		tables: make(map[string]*table.Session),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/deck", s.handleDeck)
		r.Post("/evaluate", s.handleEvaluate)
		r.Post("/decide", s.handleDecide)

		r.Route("/tables", func(r chi.Router) {
			r.Get("/", s.handleListTables)
			r.Post("/", s.handleCreateTable)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleTableState)
				r.Delete("/", s.handleCloseTable)
				r.Post("/actions", s.handleAction)
				r.Post("/next", s.handleNextHand)
				r.Get("/history", s.handleHistory)
				r.Get("/events", s.handleEvents)
			})
		})
	})
	return r
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// and closes every table.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	s.logger.Info("Server stopped")
	return err
}

// Close closes every table
func (s *Server) Close() {
	s.mu.Lock()
	tables := s.tables
	s.tables = make(map[string]*table.Session)
	s.mu.Unlock()

	for _, t := range tables {
		t.Close()
	}
}

// CreateTable creates and starts a table from a configured name
func (s *Server) CreateTable(ctx context.Context, cfg table.Config) (*table.Session, error) {
	s.mu.RLock()
	n := len(s.tables)
	s.mu.RUnlock()
	if n >= s.cfg.Server.MaxTables {
		return nil, fmt.Errorf("%w (limit %d)", ErrTooManyTables, s.cfg.Server.MaxTables)
	}

	id := s.ids.New("tbl_")
	session, err := table.New(id, cfg, s.clock, s.logger)
	if err != nil {
		return nil, err
	}
	if err := session.Start(ctx); err != nil {
		session.Close()
		return nil, err
	}

	s.mu.Lock()
	s.tables[id] = session
	s.mu.Unlock()
	s.logger.Info("Table opened", "table", id, "name", cfg.Name)
	return session, nil
}

// Table returns a live table
func (s *Server) Table(id string) (*table.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, id)
	}
	return t, nil
}

// CloseTable closes and forgets a table
func (s *Server) CloseTable(id string) error {
	s.mu.Lock()
	t, ok := s.tables[id]
	delete(s.tables, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrTableNotFound, id)
	}
	t.Close()
	s.logger.Info("Table closed", "table", id)
	return nil
}

// TableIDs returns the live table IDs, sorted
func (s *Server) TableIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.tables))
	for id := range s.tables {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := s.clock.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", s.clock.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
