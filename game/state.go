// Package game defines the core board types for the snake simulation.
//
// These types are deliberately small value types: the simulation owns a
// single body and a single occupancy grid, and renderers receive copies.
package game

import (
	"fmt"
	"strings"
)

// Point is a board coordinate.
// Coordinates follow screen conventions: (0,0) is top-left and North is Y-1.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Step returns the neighbouring point in direction d.
func (p Point) Step(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Back returns the point n cells behind p when travelling in direction d.
func (p Point) Back(d Direction, n int) Point {
	dx, dy := d.Delta()
	return Point{X: p.X - dx*n, Y: p.Y - dy*n}
}

// Direction is one of the four axis-aligned unit moves.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

var directionNames = [...]string{"north", "east", "south", "west"}

// Delta returns the unit vector for d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// Valid reports whether d is one of the four named directions.
func (d Direction) Valid() bool {
	return d <= West
}

// Horizontal reports whether d moves along the X axis.
func (d Direction) Horizontal() bool {
	return d == East || d == West
}

// Orthogonal reports whether d and other lie on different axes.
// Same-direction and reversal pairs are not orthogonal.
func (d Direction) Orthogonal(other Direction) bool {
	return d.Valid() && other.Valid() && d.Horizontal() != other.Horizontal()
}

// Opposite returns the reversed direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// ParseDirection accepts the lowercase names and their single-letter forms.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n", "up":
		return North, nil
	case "east", "e", "right":
		return East, nil
	case "south", "s", "down":
		return South, nil
	case "west", "w", "left":
		return West, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", uint8(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Board is the immutable grid size.
type Board struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether p lies within [0,Width) x [0,Height).
func (b Board) Contains(p Point) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// Cells returns Width*Height.
func (b Board) Cells() int {
	return b.Width * b.Height
}

// Index is the row-major occupancy key for p.
func (b Board) Index(p Point) int {
	return p.Y*b.Width + p.X
}

// Segment is a straight run of the body.
// Start is the head-ward cell; the run covers Start and the Len-1 cells
// behind it along Dir.
type Segment struct {
	Start Point     `json:"start"`
	Dir   Direction `json:"dir"`
	Len   int       `json:"len"`
}

// End returns the tail-ward cell of the run. Only meaningful when Len > 0.
func (s Segment) End() Point {
	return s.Start.Back(s.Dir, s.Len-1)
}

// Cell returns the i-th cell of the run counting from Start.
func (s Segment) Cell(i int) Point {
	return s.Start.Back(s.Dir, i)
}

// AppendCells appends the run's cells, head-ward first, to dst.
func (s Segment) AppendCells(dst []Point) []Point {
	for i := 0; i < s.Len; i++ {
		dst = append(dst, s.Cell(i))
	}
	return dst
}
