package config

import (
	"errors"
	"testing"
	"time"

	"github.com/brensch/snek/rules"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SNEK_WIDTH", "SNEK_HEIGHT", "SNEK_TICK", "SNEK_SEED", "SNEK_START_LENGTH",
		"SNEK_AUTO_RESTART", "SNEK_QUEUE", "SNEK_ADDR", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	c, err := Load("snek", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Width != 20 || c.Height != 15 || c.Tick != time.Second {
		t.Fatalf("board/tick defaults wrong: %+v", c)
	}
	if c.Settings() != rules.DefaultSettings {
		t.Fatalf("settings=%+v want %+v", c.Settings(), rules.DefaultSettings)
	}
	if c.Addr != ":8080" || c.LogLevel != "info" || c.LogFormat != "text" {
		t.Fatalf("service defaults wrong: %+v", c)
	}
}

func TestLoad_EnvThenFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("SNEK_WIDTH", "30")
	t.Setenv("SNEK_HEIGHT", "12")
	t.Setenv("SNEK_TICK", "150ms")
	t.Setenv("SNEK_AUTO_RESTART", "false")
	t.Setenv("SNEK_SEED", "99")

	c, err := Load("snek", []string{"-height", "10"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Width != 30 || c.Height != 10 {
		t.Fatalf("size=%dx%d want 30x10", c.Width, c.Height)
	}
	if c.Tick != 150*time.Millisecond || c.AutoRestart || c.Seed != 99 {
		t.Fatalf("env not applied: %+v", c)
	}
	if c.SeedOrNow() != 99 {
		t.Fatalf("seed=%d want 99", c.SeedOrNow())
	}
}

func TestLoad_BadEnvFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SNEK_WIDTH", "wide")
	c, err := Load("snek", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Width != 20 {
		t.Fatalf("width=%d want default 20", c.Width)
	}
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	if _, err := Load("snek", []string{"-width", "3"}); !errors.Is(err, rules.ErrBoardTooSmall) {
		t.Fatalf("err=%v want ErrBoardTooSmall", err)
	}
	if _, err := Load("snek", []string{"-tick", "0s"}); err == nil {
		t.Fatalf("expected error for zero tick")
	}
	if _, err := Load("snek", []string{"-bogus"}); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}
