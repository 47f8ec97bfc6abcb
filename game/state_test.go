package game

import (
	"encoding/json"
	"testing"
)

func TestDirection_Orthogonal(t *testing.T) {
	tests := []struct {
		a, b Direction
		want bool
	}{
		{North, East, true},
		{North, West, true},
		{East, South, true},
		{North, North, false},
		{North, South, false},
		{East, West, false},
		{West, West, false},
	}
	for _, tt := range tests {
		if got := tt.a.Orthogonal(tt.b); got != tt.want {
			t.Errorf("%v.Orthogonal(%v)=%v want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDirection_OppositeAndStep(t *testing.T) {
	origin := Point{X: 5, Y: 5}
	for _, d := range []Direction{North, East, South, West} {
		if origin.Step(d).Step(d.Opposite()) != origin {
			t.Errorf("%v then %v did not return to origin", d, d.Opposite())
		}
	}
	if got := origin.Step(North); got != (Point{X: 5, Y: 4}) {
		t.Errorf("north step=%v want (5,4)", got)
	}
}

func TestDirection_TextRoundTrip(t *testing.T) {
	b, err := json.Marshal(map[string]Direction{"dir": West})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"dir":"west"}` {
		t.Fatalf("got %s", b)
	}

	var got struct {
		Dir Direction `json:"dir"`
	}
	if err := json.Unmarshal([]byte(`{"dir":"Up"}`), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Dir != North {
		t.Fatalf("dir=%v want north", got.Dir)
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Fatalf("expected error for unknown direction")
	}
}

func TestSegment_Cells(t *testing.T) {
	s := Segment{Start: Point{X: 4, Y: 0}, Dir: East, Len: 3}
	cells := s.AppendCells(nil)
	want := []Point{{X: 4, Y: 0}, {X: 3, Y: 0}, {X: 2, Y: 0}}
	if len(cells) != len(want) {
		t.Fatalf("len=%d want=%d", len(cells), len(want))
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("cell[%d]=%v want %v", i, cells[i], want[i])
		}
	}
	if s.End() != (Point{X: 2, Y: 0}) {
		t.Fatalf("end=%v want (2,0)", s.End())
	}
}

func TestBoard_IndexAndContains(t *testing.T) {
	b := Board{Width: 20, Height: 15}
	if b.Index(Point{X: 3, Y: 2}) != 43 {
		t.Fatalf("index=%d want 43", b.Index(Point{X: 3, Y: 2}))
	}
	if b.Contains(Point{X: 20, Y: 0}) || b.Contains(Point{X: 0, Y: -1}) {
		t.Fatalf("out of range point reported inside")
	}
	if !b.Contains(Point{X: 19, Y: 14}) {
		t.Fatalf("corner reported outside")
	}
}
