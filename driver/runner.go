// Package driver runs a simulation at a fixed interval and feeds it input.
//
// Input arrives as Commands on a bounded queue from any goroutine. The
// queue is drained once per tick by the single goroutine that owns the
// simulation, so the simulation itself never needs locking.
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/brensch/snek/game"
	"github.com/brensch/snek/rules"
)

type CommandKind uint8

const (
	CommandTurn CommandKind = iota
	CommandRestart
)

// Command is one queued input event.
type Command struct {
	Kind CommandKind
	Dir  game.Direction
}

// Turn is shorthand for a turn command.
func Turn(d game.Direction) Command { return Command{Kind: CommandTurn, Dir: d} }

// Restart is shorthand for a restart command.
func Restart() Command { return Command{Kind: CommandRestart} }

// Config holds runner configuration
type Config struct {
	Interval  time.Duration // fixed step between ticks
	QueueSize int           // commands buffered between ticks
}

// DefaultConfig matches the browser build's one second step.
func DefaultConfig() Config {
	return Config{
		Interval:  time.Second,
		QueueSize: 16,
	}
}

// Stats holds runner counters. Safe to read from any goroutine.
type Stats struct {
	Ticks     atomic.Int64
	GameOvers atomic.Int64
	Dropped   atomic.Int64
}

// Runner owns one simulation.
type Runner struct {
	sim      *rules.Simulation
	config   Config
	commands chan Command
	logger   *slog.Logger
	stats    Stats
}

func NewRunner(sim *rules.Simulation, config Config, logger *slog.Logger) *Runner {
	if config.Interval <= 0 {
		config.Interval = DefaultConfig().Interval
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultConfig().QueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		sim:      sim,
		config:   config,
		commands: make(chan Command, config.QueueSize),
		logger:   logger,
	}
}

// Submit queues cmd for the next tick. It never blocks; a full queue drops
// the command and returns false.
func (r *Runner) Submit(cmd Command) bool {
	select {
	case r.commands <- cmd:
		return true
	default:
		r.stats.Dropped.Add(1)
		return false
	}
}

func (r *Runner) Stats() *Stats { return &r.stats }

// Frame snapshots the current state without ticking. Its outcome is
// rules.Ready.
func (r *Runner) Frame() Frame {
	return Snapshot(r.sim, rules.Ready)
}

// Step drains queued commands in arrival order, ticks once and returns the
// resulting frame. Only the Run goroutine (or a single-threaded caller such
// as a UI update loop) may call it.
func (r *Runner) Step() Frame {
	r.drain()
	outcome := r.sim.Tick()
	r.stats.Ticks.Add(1)
	if outcome.Terminal() {
		r.stats.GameOvers.Add(1)
		r.logger.Info("run ended",
			"outcome", outcome.String(),
			"restarts", r.sim.Restarts(),
			"halted", r.sim.Halted(),
		)
	}
	return Snapshot(r.sim, outcome)
}

func (r *Runner) drain() {
	for {
		select {
		case cmd := <-r.commands:
			r.apply(cmd)
		default:
			return
		}
	}
}

func (r *Runner) apply(cmd Command) {
	switch cmd.Kind {
	case CommandTurn:
		if !r.sim.SubmitTurn(cmd.Dir) {
			r.logger.Debug("turn ignored", "dir", cmd.Dir.String(), "heading", r.sim.Direction().String())
		}
	case CommandRestart:
		r.sim.Restart()
		r.logger.Info("restarted", "restarts", r.sim.Restarts())
	}
}

// Run publishes the current frame, then steps on a fixed interval until
// ctx ends or onFrame fails.
func (r *Runner) Run(ctx context.Context, onFrame func(Frame) error) error {
	if err := onFrame(r.Frame()); err != nil {
		return fmt.Errorf("deliver frame: %w", err)
	}

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := onFrame(r.Step()); err != nil {
				return fmt.Errorf("deliver frame: %w", err)
			}
		}
	}
}
