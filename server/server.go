// Package server exposes single-player snake sessions over websockets.
//
// Every websocket connection gets its own simulation and runner; nothing
// is shared between connections.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/brensch/snek/driver"
	"github.com/brensch/snek/game"
	"github.com/brensch/snek/rules"
)

// Config holds server configuration
type Config struct {
	Board        game.Board
	Settings     rules.Settings
	Runner       driver.Config
	Seed         func() uint64 // per-session food seed
	WriteTimeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Board:        game.Board{Width: 20, Height: 15},
		Settings:     rules.DefaultSettings,
		Runner:       driver.DefaultConfig(),
		Seed:         func() uint64 { return uint64(time.Now().UnixNano()) },
		WriteTimeout: 5 * time.Second,
	}
}

// Server bundles the router and session counters.
type Server struct {
	r        *chi.Mux
	config   Config
	logger   *slog.Logger
	upgrader websocket.Upgrader

	sessions atomic.Int64
	active   atomic.Int64
}

// New constructs a Server and registers routes.
func New(config Config, logger *slog.Logger) *Server {
	if config.Seed == nil {
		config.Seed = DefaultConfig().Seed
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = DefaultConfig().WriteTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		r:      chi.NewRouter(),
		config: config,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)

	s.r.Get("/", s.handleIndex)
	s.r.Get("/health", s.handleHealth)
	s.r.Get("/ws", s.handleSession)

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on addr until ctx ends. Session contexts derive from
// ctx so open websockets close on shutdown too.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("shutdown", "err", err)
		}
	}()

	s.logger.Info("listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

type infoResponse struct {
	Service  string     `json:"service"`
	Board    game.Board `json:"board"`
	TickMS   int64      `json:"tick_ms"`
	Sessions int64      `json:"sessions"`
	Active   int64      `json:"active"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, infoResponse{
		Service:  "snek",
		Board:    s.config.Board,
		TickMS:   s.config.Runner.Interval.Milliseconds(),
		Sessions: s.sessions.Load(),
		Active:   s.active.Load(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
