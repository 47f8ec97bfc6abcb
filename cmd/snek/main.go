// Command snek plays the simulation in the terminal.
//
// Arrow keys, WASD or hjkl turn; r restarts; q quits.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/snek/config"
	"github.com/brensch/snek/driver"
	"github.com/brensch/snek/logging"
	"github.com/brensch/snek/render"
	"github.com/brensch/snek/rules"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	headStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	foodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("7"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	overStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

type tickMsg time.Time

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type model struct {
	runner   *driver.Runner
	frame    driver.Frame
	interval time.Duration
	best     int
}

func initialModel(runner *driver.Runner, interval time.Duration) model {
	return model{
		runner:   runner,
		frame:    runner.Frame(),
		interval: interval,
	}
}

func (m model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.runner.Submit(driver.Restart())
			return m, nil
		}
		if d, ok := driver.ParseKey(msg.String()); ok {
			m.runner.Submit(driver.Turn(d))
		}
	case tickMsg:
		m.frame = m.runner.Step()
		if m.frame.Score > m.best {
			m.best = m.frame.Score
		}
		return m, tickCmd(m.interval)
	}
	return m, nil
}

func (m model) View() string {
	rows := render.Grid(m.frame)
	var board strings.Builder
	for y, row := range rows {
		for _, c := range row {
			board.WriteString(cell(c))
		}
		if y < len(rows)-1 {
			board.WriteByte('\n')
		}
	}

	status := fmt.Sprintf("Score %d  Best %d  Length %d  Turn %d  Restarts %d",
		m.frame.Score, m.best, m.frame.Length, m.frame.Turn, m.frame.Restarts)
	lines := []string{
		titleStyle.Render("snek"),
		boardStyle.Render(board.String()),
		statusStyle.Render(status),
	}
	switch {
	case m.frame.Halted && m.frame.Outcome == rules.BoardFull:
		lines = append(lines, overStyle.Render("Board full! Press r to play again."))
	case m.frame.Halted:
		lines = append(lines, overStyle.Render("Game over. Press r to restart."))
	case m.frame.Outcome.Terminal():
		lines = append(lines, overStyle.Render(m.frame.Outcome.String()))
	}
	lines = append(lines, "arrows/wasd/hjkl turn, r restart, q quit")
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func cell(c rune) string {
	switch c {
	case render.Head:
		return headStyle.Render("@")
	case render.Body:
		return bodyStyle.Render("o")
	case render.Food:
		return foodStyle.Render("*")
	}
	return emptyStyle.Render("·")
}

func main() {
	cfg, err := config.Load("snek", os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// stdout belongs to the screen, so logs only go to a file when asked.
	logger, closeLog, err := logging.Open(cfg.LogFile, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer closeLog()

	seed := cfg.SeedOrNow()
	sim, err := rules.NewWithSettings(cfg.Board(), rules.NewRand(seed), cfg.Settings())
	if err != nil {
		log.Fatalf("Failed to create simulation: %v", err)
	}
	logger.Info("starting", "width", cfg.Width, "height", cfg.Height, "tick", cfg.Tick, "seed", seed)

	runner := driver.NewRunner(sim, driver.Config{Interval: cfg.Tick, QueueSize: cfg.QueueSize}, logger)
	p := tea.NewProgram(initialModel(runner, cfg.Tick), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Program failed: %v", err)
	}

	stats := runner.Stats()
	logger.Info("exited", "ticks", stats.Ticks.Load(), "game_overs", stats.GameOvers.Load())
}
