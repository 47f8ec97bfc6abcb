package driver

import (
	"github.com/brensch/snek/game"
	"github.com/brensch/snek/rules"
)

// Frame is the read-only snapshot handed to renderers after each tick.
type Frame struct {
	Turn     int            `json:"turn"`
	Outcome  rules.Outcome  `json:"outcome"`
	Width    int            `json:"width"`
	Height   int            `json:"height"`
	Food     *game.Point    `json:"food,omitempty"`
	Body     []game.Point   `json:"body"`
	Segments []game.Segment `json:"segments"`
	Length   int            `json:"length"`
	Score    int            `json:"score"`
	Restarts int            `json:"restarts"`
	Halted   bool           `json:"halted"`
}

// Snapshot copies the renderer-visible state of sim.
func Snapshot(sim *rules.Simulation, outcome rules.Outcome) Frame {
	b := sim.Board()
	f := Frame{
		Turn:     sim.Turn(),
		Outcome:  outcome,
		Width:    b.Width,
		Height:   b.Height,
		Body:     sim.Cells(),
		Segments: sim.Body(),
		Length:   sim.Length(),
		Score:    sim.Score(),
		Restarts: sim.Restarts(),
		Halted:   sim.Halted(),
	}
	if p, ok := sim.Food(); ok {
		f.Food = &p
	}
	return f
}

// Head returns the first body cell.
func (f Frame) Head() (game.Point, bool) {
	if len(f.Body) == 0 {
		return game.Point{}, false
	}
	return f.Body[0], true
}
