// Command snek-server serves single-player snake sessions over websockets.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/brensch/snek/config"
	"github.com/brensch/snek/driver"
	"github.com/brensch/snek/logging"
	"github.com/brensch/snek/server"
)

func main() {
	cfg, err := config.Load("snek-server", os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if cfg.LogFile != "" && err == nil {
		var closeLog func() error
		logger, closeLog, err = logging.Open(cfg.LogFile, cfg.LogFormat, cfg.LogLevel)
		if err == nil {
			defer closeLog()
		}
	}
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	srvConfig := server.Config{
		Board:    cfg.Board(),
		Settings: cfg.Settings(),
		Runner:   driver.Config{Interval: cfg.Tick, QueueSize: cfg.QueueSize},
		Seed:     cfg.SeedOrNow,
	}
	if cfg.Seed == 0 {
		srvConfig.Seed = nil // fresh seed per session
	}

	logger.Info("starting snek server",
		"addr", cfg.Addr,
		"width", cfg.Width,
		"height", cfg.Height,
		"tick", cfg.Tick,
		"auto_restart", cfg.AutoRestart,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(srvConfig, logger).Start(ctx, cfg.Addr); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
