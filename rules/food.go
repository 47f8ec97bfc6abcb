package rules

import (
	"errors"
	"fmt"

	"github.com/brensch/snek/game"
)

// ErrBoardTooSmall is returned when the board cannot hold the starting
// body plus one food cell.
var ErrBoardTooSmall = errors.New("board too small")

// Settings controls how a simulation starts and what happens when a run
// ends.
//
// AutoRestart matches the browser build: a collision immediately
// reinitializes the board. With AutoRestart off the simulation halts on
// GameOver/BoardFull and waits for Restart.
type Settings struct {
	StartLength int
	AutoRestart bool
}

// DefaultSettings is a five-cell snake that restarts on death.
var DefaultSettings = Settings{StartLength: 5, AutoRestart: true}

// Validate reports whether board can hold the starting snake and one food.
func (s Settings) Validate(board game.Board) error {
	if s.StartLength < 1 {
		return fmt.Errorf("start length %d: %w", s.StartLength, ErrBoardTooSmall)
	}
	if board.Width < s.StartLength || board.Height < 1 {
		return fmt.Errorf("%dx%d cannot fit a %d cell snake: %w", board.Width, board.Height, s.StartLength, ErrBoardTooSmall)
	}
	if board.Cells() <= s.StartLength {
		return fmt.Errorf("%dx%d leaves no room for food: %w", board.Width, board.Height, ErrBoardTooSmall)
	}
	return nil
}

// spawnFood draws a new food cell from the free cells. It reports false
// when the snake covers the whole board.
func (s *Simulation) spawnFood() bool {
	p, err := s.occ.PickFree(s.rng)
	if err != nil {
		s.food, s.hasFood = game.Point{}, false
		return false
	}
	s.food, s.hasFood = p, true
	return true
}
