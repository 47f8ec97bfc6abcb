package rules

import (
	"fmt"
	"slices"

	"github.com/brensch/snek/game"
	"golang.org/x/exp/rand"
)

// Outcome is the result of a single Tick.
type Outcome uint8

const (
	Advanced Outcome = iota
	AteFood
	GameOver
	// BoardFull means the snake covers every cell and no food can be placed.
	BoardFull
	// Ready labels a snapshot taken before any tick. Tick never returns it.
	Ready
)

var outcomeNames = [...]string{"advanced", "ate_food", "game_over", "board_full", "ready"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(b []byte) error {
	for i, name := range outcomeNames {
		if name == string(b) {
			*o = Outcome(i)
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", b)
}

// Terminal reports whether o ends the current run.
func (o Outcome) Terminal() bool {
	return o == GameOver || o == BoardFull
}

// NewRand returns a seeded PCG source suitable for food placement.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Simulation is a single snake on a fixed board.
//
// It is not safe for concurrent use: exactly one caller submits turns and
// ticks. Between ticks the occupancy grid mirrors the cells of Body.
type Simulation struct {
	board    game.Board
	settings Settings
	rng      game.Rand

	body []game.Segment // head first
	occ  *game.Occupancy

	food    game.Point
	hasFood bool

	pending    game.Direction
	hasPending bool

	halted   bool
	haltedBy Outcome

	turn     int
	score    int
	restarts int
}

// New builds a simulation with DefaultSettings.
func New(board game.Board, rng game.Rand) (*Simulation, error) {
	return NewWithSettings(board, rng, DefaultSettings)
}

// NewWithSettings builds the starting body along the top row, heading East
// from the left edge, and places the first food.
// If rng is nil a fixed-seed source is used so runs are reproducible.
func NewWithSettings(board game.Board, rng game.Rand, settings Settings) (*Simulation, error) {
	if err := settings.Validate(board); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(1)
	}
	s := &Simulation{
		board:    board,
		settings: settings,
		rng:      rng,
		occ:      game.NewOccupancy(board),
	}
	s.reset()
	return s, nil
}

func (s *Simulation) reset() {
	s.body = append(s.body[:0], game.Segment{
		Start: game.Point{X: s.settings.StartLength - 1, Y: 0},
		Dir:   game.East,
		Len:   s.settings.StartLength,
	})
	s.syncOccupancy()
	s.hasPending = false
	s.halted = false
	s.turn = 0
	s.score = 0
	s.spawnFood()
}

// syncOccupancy rebuilds the grid from the body.
func (s *Simulation) syncOccupancy() {
	s.occ.Clear()
	for _, seg := range s.body {
		for i := 0; i < seg.Len; i++ {
			s.occ.Set(seg.Cell(i), true)
		}
	}
}

// SubmitTurn buffers a direction change for the next tick. Only one turn
// may be pending and it must be orthogonal to the head direction; anything
// else is dropped and false is returned.
func (s *Simulation) SubmitTurn(dir game.Direction) bool {
	if s.halted || s.hasPending {
		return false
	}
	if !dir.Orthogonal(s.body[0].Dir) {
		return false
	}
	s.pending, s.hasPending = dir, true
	return true
}

// Tick advances the snake one cell.
//
// The cell the tail is leaving counts as free, so the head may move into
// it. On the tick that eats, the tail stays
// put and the snake grows by one. A collision leaves the body untouched.
func (s *Simulation) Tick() Outcome {
	if s.halted {
		return s.haltedBy
	}

	head := s.body[0]
	dir := head.Dir
	turning := s.hasPending
	if turning {
		dir = s.pending
		s.hasPending = false
	}
	next := head.Start.Step(dir)

	if !s.board.Contains(next) {
		return s.end(GameOver)
	}

	eating := s.hasFood && next == s.food
	if s.occ.Occupied(next) && (eating || next != s.tail()) {
		return s.end(GameOver)
	}

	s.turn++
	if !eating {
		s.retractTail()
	}
	if turning || len(s.body) == 0 {
		s.body = slices.Insert(s.body, 0, game.Segment{Start: head.Start, Dir: dir})
	}
	s.body[0].Start = next
	s.body[0].Len++
	s.occ.Set(next, true)

	if eating {
		s.score++
		if !s.spawnFood() {
			return s.end(BoardFull)
		}
		return AteFood
	}
	return Advanced
}

// tail is the last covered cell.
func (s *Simulation) tail() game.Point {
	return s.body[len(s.body)-1].End()
}

func (s *Simulation) retractTail() {
	last := len(s.body) - 1
	tail := &s.body[last]
	s.occ.Set(tail.End(), false)
	tail.Len--
	if tail.Len == 0 {
		s.body = s.body[:last]
	}
}

func (s *Simulation) end(o Outcome) Outcome {
	if s.settings.AutoRestart {
		s.restarts++
		s.reset()
		return o
	}
	s.halted, s.haltedBy = true, o
	return o
}

// Restart reinitializes the board. It is how callers resume a halted
// simulation when AutoRestart is off, and may be called at any time.
func (s *Simulation) Restart() {
	s.restarts++
	s.reset()
}

func (s *Simulation) Board() game.Board        { return s.board }
func (s *Simulation) Settings() Settings        { return s.settings }
func (s *Simulation) Head() game.Point          { return s.body[0].Start }
func (s *Simulation) Direction() game.Direction { return s.body[0].Dir }

// Body returns a copy of the segments, head first.
func (s *Simulation) Body() []game.Segment { return slices.Clone(s.body) }

// Cells returns every covered cell, head first.
func (s *Simulation) Cells() []game.Point {
	out := make([]game.Point, 0, s.Length())
	for _, seg := range s.body {
		out = seg.AppendCells(out)
	}
	return out
}

// Length is the number of cells the body covers.
func (s *Simulation) Length() int {
	n := 0
	for _, seg := range s.body {
		n += seg.Len
	}
	return n
}

// Food returns the current food cell. ok is false only on a simulation
// halted by BoardFull.
func (s *Simulation) Food() (p game.Point, ok bool) { return s.food, s.hasFood }

// Occupied reports whether p is covered by the body. Off-board points read
// as occupied.
func (s *Simulation) Occupied(p game.Point) bool { return s.occ.Occupied(p) }

// OccupiedCount is the number of covered cells according to the grid.
func (s *Simulation) OccupiedCount() int { return s.occ.Count() }

// Pending returns the buffered turn, if any.
func (s *Simulation) Pending() (game.Direction, bool) { return s.pending, s.hasPending }

// Halted reports whether the simulation stopped on a terminal outcome and
// is waiting for Restart. It is always false with AutoRestart.
func (s *Simulation) Halted() bool { return s.halted }

// Turn counts ticks since the last (re)start.
func (s *Simulation) Turn() int { return s.turn }

// Score counts food eaten since the last (re)start.
func (s *Simulation) Score() int { return s.score }

// Restarts counts how many times the board was reinitialized.
func (s *Simulation) Restarts() int { return s.restarts }
