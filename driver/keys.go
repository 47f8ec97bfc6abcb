package driver

import (
	"strings"

	"github.com/brensch/snek/game"
)

// keyDirections covers browser KeyboardEvent.key names, bubbletea key
// strings, WASD and vi keys.
var keyDirections = map[string]game.Direction{
	"arrowup":    game.North,
	"up":         game.North,
	"w":          game.North,
	"k":          game.North,
	"arrowright": game.East,
	"right":      game.East,
	"d":          game.East,
	"l":          game.East,
	"arrowdown":  game.South,
	"down":       game.South,
	"s":          game.South,
	"j":          game.South,
	"arrowleft":  game.West,
	"left":       game.West,
	"a":          game.West,
	"h":          game.West,
}

// ParseKey maps a key name to a direction.
func ParseKey(name string) (game.Direction, bool) {
	d, ok := keyDirections[strings.ToLower(name)]
	return d, ok
}
