// Command debuggame plays a headless autopilot game and prints each turn.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/brensch/snek/driver"
	"github.com/brensch/snek/game"
	"github.com/brensch/snek/logging"
	"github.com/brensch/snek/render"
	"github.com/brensch/snek/rules"
)

type summary struct {
	Ticks     int
	Eaten     int
	GameOvers int
	BestLen   int
}

func play(out io.Writer, runner *driver.Runner, sim *rules.Simulation, ticks, every int) summary {
	var s summary
	for i := 0; i < ticks; i++ {
		if d, ok := driver.Autopilot(sim); ok && d != sim.Direction() {
			runner.Submit(driver.Turn(d))
		}
		f := runner.Step()
		s.Ticks++

		switch f.Outcome {
		case rules.AteFood:
			s.Eaten++
		case rules.GameOver, rules.BoardFull:
			s.GameOvers++
		}
		if f.Length > s.BestLen {
			s.BestLen = f.Length
		}

		head, _ := f.Head()
		fmt.Fprintf(out, "  Turn %4d | %-10s | head=%v len=%d score=%d\n", f.Turn, f.Outcome, head, f.Length, f.Score)
		if every > 0 && (i+1)%every == 0 {
			fmt.Fprint(out, render.Text(f))
		}
		if f.Halted {
			break
		}
	}
	return s
}

func main() {
	width := flag.Int("width", 20, "Board width")
	height := flag.Int("height", 15, "Board height")
	seed := flag.Uint64("seed", 1, "Food placement seed")
	ticks := flag.Int("ticks", 500, "Number of ticks to play")
	every := flag.Int("board-every", 50, "Print the board every N ticks (0 = never)")
	halt := flag.Bool("halt", false, "Stop at the first game over instead of restarting")
	logLevel := flag.String("log-level", "warn", "Log level")
	flag.Parse()

	logger, err := logging.New(os.Stderr, "text", *logLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	settings := rules.DefaultSettings
	settings.AutoRestart = !*halt
	sim, err := rules.NewWithSettings(game.Board{Width: *width, Height: *height}, rules.NewRand(*seed), settings)
	if err != nil {
		log.Fatalf("Failed to create simulation: %v", err)
	}
	runner := driver.NewRunner(sim, driver.DefaultConfig(), logger)

	log.Printf("Playing autopilot game: %dx%d seed=%d ticks=%d", *width, *height, *seed, *ticks)
	start := time.Now()
	s := play(os.Stdout, runner, sim, *ticks, *every)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("  Ticks: %d  Food eaten: %d  Game overs: %d  Best length: %d\n", s.Ticks, s.Eaten, s.GameOvers, s.BestLen)
	fmt.Printf("  Elapsed: %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
}
