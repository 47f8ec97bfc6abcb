package driver

import (
	"github.com/brensch/snek/game"
	"github.com/brensch/snek/rules"
)

// Autopilot picks a safe direction for the next tick, preferring the one
// that closes the distance to the food. Straight ahead wins ties. It
// reports false when every candidate collides.
func Autopilot(sim *rules.Simulation) (game.Direction, bool) {
	head := sim.Head()
	cur := sim.Direction()
	candidates := []game.Direction{cur, turnLeft(cur), turnRight(cur)}

	// The tail cell frees up unless the move eats, and food is never on
	// the snake, so moving onto the tail is always safe.
	body := sim.Cells()
	tail := body[len(body)-1]

	food, hasFood := sim.Food()
	best, bestScore, found := cur, 0, false
	for _, d := range candidates {
		p := head.Step(d)
		if !sim.Board().Contains(p) {
			continue
		}
		if sim.Occupied(p) && p != tail {
			continue
		}
		score := 0
		if hasFood {
			score = -manhattan(p, food)
		}
		if !found || score > bestScore {
			best, bestScore, found = d, score, true
		}
	}
	return best, found
}

func turnLeft(d game.Direction) game.Direction  { return (d + 3) % 4 }
func turnRight(d game.Direction) game.Direction { return (d + 1) % 4 }

func manhattan(a, b game.Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
