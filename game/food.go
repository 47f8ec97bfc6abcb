// food.go implements the occupancy grid and free-cell food placement.

package game

import (
	"errors"
)

// ErrNoFreeCell is returned when every cell on the board is covered.
var ErrNoFreeCell = errors.New("no free cell")

// Rand is the subset of a random source needed for food placement.
// Both *math/rand.Rand and *golang.org/x/exp/rand.Rand satisfy it.
type Rand interface {
	Intn(n int) int
}

// Occupancy tracks which cells are covered by the snake.
type Occupancy struct {
	board Board
	cells []bool
	count int

	// free is scratch space reused by PickFree.
	free []int
}

func NewOccupancy(board Board) *Occupancy {
	return &Occupancy{
		board: board,
		cells: make([]bool, board.Cells()),
		free:  make([]int, 0, board.Cells()),
	}
}

// Board returns the grid size the occupancy was built for.
func (o *Occupancy) Board() Board { return o.board }

// Count returns the number of occupied cells.
func (o *Occupancy) Count() int { return o.count }

// Set marks p. The caller guarantees p is on the board.
func (o *Occupancy) Set(p Point, occupied bool) {
	idx := o.board.Index(p)
	if o.cells[idx] == occupied {
		return
	}
	o.cells[idx] = occupied
	if occupied {
		o.count++
	} else {
		o.count--
	}
}

// Occupied reports whether p is covered. Points off the board read as
// occupied so walls and body can be tested the same way.
func (o *Occupancy) Occupied(p Point) bool {
	if !o.board.Contains(p) {
		return true
	}
	return o.cells[o.board.Index(p)]
}

// Clear marks every cell free.
func (o *Occupancy) Clear() {
	clear(o.cells)
	o.count = 0
}

// PickFree rebuilds the free-cell list and draws one uniformly from it.
func (o *Occupancy) PickFree(rng Rand) (Point, error) {
	o.free = o.free[:0]
	for idx, taken := range o.cells {
		if !taken {
			o.free = append(o.free, idx)
		}
	}
	if len(o.free) == 0 {
		return Point{}, ErrNoFreeCell
	}
	idx := o.free[rng.Intn(len(o.free))]
	return Point{X: idx % o.board.Width, Y: idx / o.board.Width}, nil
}
