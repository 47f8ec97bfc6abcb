// Package render draws frames as plain text for terminals and logs.
package render

import (
	"strings"

	"github.com/brensch/snek/driver"
)

const (
	Empty  = '.'
	Head   = 'H'
	Body   = 'o'
	Food   = '*'
	Corner = '+'
)

// Grid returns one string per board row, top row first, without a border.
func Grid(f driver.Frame) []string {
	grid := make([][]byte, f.Height)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(string(Empty), f.Width))
	}
	inside := func(x, y int) bool { return x >= 0 && x < f.Width && y >= 0 && y < f.Height }

	if f.Food != nil && inside(f.Food.X, f.Food.Y) {
		grid[f.Food.Y][f.Food.X] = Food
	}
	for i := len(f.Body) - 1; i >= 0; i-- {
		p := f.Body[i]
		if !inside(p.X, p.Y) {
			continue
		}
		if i == 0 {
			grid[p.Y][p.X] = Head
		} else {
			grid[p.Y][p.X] = Body
		}
	}

	rows := make([]string, len(grid))
	for y, r := range grid {
		rows[y] = string(r)
	}
	return rows
}

// Text draws the board inside a border.
func Text(f driver.Frame) string {
	edge := string(Corner) + strings.Repeat("-", f.Width) + string(Corner) + "\n"

	var sb strings.Builder
	sb.WriteString(edge)
	for _, r := range Grid(f) {
		sb.WriteByte('|')
		sb.WriteString(r)
		sb.WriteString("|\n")
	}
	sb.WriteString(edge)
	return sb.String()
}
