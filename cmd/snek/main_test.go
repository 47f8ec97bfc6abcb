package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/snek/driver"
	"github.com/brensch/snek/game"
	"github.com/brensch/snek/rules"
)

func newModel(t *testing.T, settings rules.Settings) model {
	t.Helper()
	sim, err := rules.NewWithSettings(game.Board{Width: 10, Height: 6}, rules.NewRand(5), settings)
	if err != nil {
		t.Fatalf("NewWithSettings: %v", err)
	}
	runner := driver.NewRunner(sim, driver.DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	return initialModel(runner, 10*time.Millisecond)
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModel_KeyTurnsOnNextTick(t *testing.T) {
	m := newModel(t, rules.DefaultSettings)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if head, _ := m.frame.Head(); head != (game.Point{X: 4, Y: 0}) {
		t.Fatalf("key moved the snake before a tick: head=%v", head)
	}

	m, cmd := update(t, m, tickMsg(time.Now()))
	if cmd == nil {
		t.Fatalf("tick did not schedule the next tick")
	}
	if head, _ := m.frame.Head(); head != (game.Point{X: 4, Y: 1}) {
		t.Fatalf("head=%v want (4,1)", head)
	}
}

func TestModel_HaltedViewAndRestart(t *testing.T) {
	m := newModel(t, rules.Settings{StartLength: 5, AutoRestart: false})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, tickMsg(time.Now()))
	if !m.frame.Halted {
		t.Fatalf("expected halted frame, got %+v", m.frame)
	}
	if !strings.Contains(m.View(), "Game over") {
		t.Fatalf("view missing game over banner:\n%s", m.View())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m, _ = update(t, m, tickMsg(time.Now()))
	if m.frame.Halted || m.frame.Restarts != 1 {
		t.Fatalf("restart not applied: %+v", m.frame)
	}
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t, rules.DefaultSettings)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("q did not return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q did not quit")
	}
}
