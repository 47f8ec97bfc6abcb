// Package config resolves command settings from flags, the environment and
// an optional .env file, in that order of precedence.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/brensch/snek/game"
	"github.com/brensch/snek/rules"
)

type Config struct {
	Width       int
	Height      int
	Tick        time.Duration
	Seed        uint64
	StartLength int
	AutoRestart bool
	QueueSize   int

	Addr string

	LogLevel  string
	LogFormat string
	LogFile   string
}

// Board returns the configured board size.
func (c Config) Board() game.Board {
	return game.Board{Width: c.Width, Height: c.Height}
}

// Settings returns the simulation settings.
func (c Config) Settings() rules.Settings {
	return rules.Settings{StartLength: c.StartLength, AutoRestart: c.AutoRestart}
}

// SeedOrNow returns the configured seed, or a time-based one when the seed
// is zero.
func (c Config) SeedOrNow() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

// Load reads .env (if present) and parses args. The program name must not
// be part of args.
func Load(name string, args []string) (Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	var c Config
	fs.IntVar(&c.Width, "width", getEnvIntOrDefault("SNEK_WIDTH", 20), "Board width in cells")
	fs.IntVar(&c.Height, "height", getEnvIntOrDefault("SNEK_HEIGHT", 15), "Board height in cells")
	fs.DurationVar(&c.Tick, "tick", getEnvDurationOrDefault("SNEK_TICK", time.Second), "Fixed interval between ticks")
	fs.Uint64Var(&c.Seed, "seed", getEnvUint64OrDefault("SNEK_SEED", 0), "Food placement seed (0 = time based)")
	fs.IntVar(&c.StartLength, "start-length", getEnvIntOrDefault("SNEK_START_LENGTH", rules.DefaultSettings.StartLength), "Initial snake length")
	fs.BoolVar(&c.AutoRestart, "auto-restart", getEnvBoolOrDefault("SNEK_AUTO_RESTART", true), "Restart immediately on game over instead of halting")
	fs.IntVar(&c.QueueSize, "queue", getEnvIntOrDefault("SNEK_QUEUE", 16), "Input commands buffered between ticks")
	fs.StringVar(&c.Addr, "addr", getEnvOrDefault("SNEK_ADDR", ":8080"), "HTTP listen address")
	fs.StringVar(&c.LogLevel, "log-level", getEnvOrDefault("LOG_LEVEL", "info"), "debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", getEnvOrDefault("LOG_FORMAT", "text"), "text, json or pretty")
	fs.StringVar(&c.LogFile, "log-file", getEnvOrDefault("LOG_FILE", ""), "Write logs to this file instead of stderr")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("tick must be positive, got %s", c.Tick)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("queue must be positive, got %d", c.QueueSize)
	}
	if err := c.Settings().Validate(c.Board()); err != nil {
		return fmt.Errorf("invalid board: %w", err)
	}
	return nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvUint64OrDefault(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getEnvBoolOrDefault(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDurationOrDefault(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
