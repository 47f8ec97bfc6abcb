package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/brensch/snek/driver"
	"github.com/brensch/snek/game"
	"github.com/brensch/snek/rules"
)

const maxMessageSize = 512

// clientMessage is one command from the browser:
//
//	{"type":"turn","dir":"north"}
//	{"type":"key","key":"ArrowUp"}
//	{"type":"restart"}
type clientMessage struct {
	Type string `json:"type"`
	Dir  string `json:"dir,omitempty"`
	Key  string `json:"key,omitempty"`
}

func (m clientMessage) command() (driver.Command, bool) {
	switch strings.ToLower(m.Type) {
	case "turn":
		d, err := game.ParseDirection(m.Dir)
		if err != nil {
			return driver.Command{}, false
		}
		return driver.Turn(d), true
	case "key":
		d, ok := driver.ParseKey(m.Key)
		if !ok {
			return driver.Command{}, false
		}
		return driver.Turn(d), true
	case "restart":
		return driver.Restart(), true
	}
	return driver.Command{}, false
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	id := chimw.GetReqID(r.Context())
	logger := s.logger.With("session", id)

	sim, err := rules.NewWithSettings(s.config.Board, rules.NewRand(s.config.Seed()), s.config.Settings)
	if err != nil {
		logger.Error("create simulation", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	s.sessions.Add(1)
	s.active.Add(1)
	defer s.active.Add(-1)

	runner := driver.NewRunner(sim, s.config.Runner, logger)
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	go func() {
		defer cancel()
		for {
			var msg clientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Debug("read", "err", err)
				}
				return
			}
			cmd, ok := msg.command()
			if !ok {
				logger.Debug("ignored message", "type", msg.Type)
				continue
			}
			runner.Submit(cmd)
		}
	}()

	logger.Info("session opened", "board", s.config.Board, "remote", r.RemoteAddr)
	err = runner.Run(ctx, func(f driver.Frame) error {
		conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		return conn.WriteJSON(f)
	})

	stats := runner.Stats()
	attrs := []any{
		"ticks", stats.Ticks.Load(),
		"game_overs", stats.GameOvers.Load(),
		"dropped", stats.Dropped.Load(),
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("session ended", append(attrs, "err", err)...)
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	logger.Info("session closed", attrs...)
}
