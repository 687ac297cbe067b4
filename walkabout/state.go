package walkabout

import (
	"fmt"
	"path"
	"strings"

	"github.com/pkg/errors"
)

type Action int

const (
	Stand Action = iota
	Walk
)

var actionNames = map[Action]string{
	Stand: "stand",
	Walk:  "walk",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction parses an action token as used in sprite file names.
func ParseAction(s string) (Action, bool) {
	for a, name := range actionNames {
		if name == s {
			return a, true
		}
	}
	return 0, false
}

type Direction int

const (
	North Direction = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

var directionNames = map[Direction]string{
	North:     "north",
	South:     "south",
	East:      "east",
	West:      "west",
	NorthEast: "north_east",
	NorthWest: "north_west",
	SouthEast: "south_east",
	SouthWest: "south_west",
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection parses a direction token as used in sprite file names.
func ParseDirection(s string) (Direction, bool) {
	for d, name := range directionNames {
		if name == s {
			return d, true
		}
	}
	return 0, false
}

// OnlyName is the stem of the sprite file used for a walkabout with a single
// animation. It is filed as standing south.
const OnlyName = "only"

// ParseSpriteName returns the grid cell a sprite file belongs to. Any
// directory prefix and the extension are ignored, so "walk_north_east.gif"
// and "sub/walk_north_east.gif" are both (Walk, NorthEast).
func ParseSpriteName(name string) (Action, Direction, error) {
	base := path.Base(name)
	stem := strings.TrimSuffix(base, path.Ext(base))
	if stem == OnlyName {
		return Stand, South, nil
	}

	parts := strings.SplitN(stem, "_", 2)
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("sprite %q is not named <action>_<direction>", name)
	}
	a, ok := ParseAction(parts[0])
	if !ok {
		return 0, 0, errors.Errorf("sprite %q: unknown action %q", name, parts[0])
	}
	d, ok := ParseDirection(parts[1])
	if !ok {
		return 0, 0, errors.Errorf("sprite %q: unknown direction %q", name, parts[1])
	}
	return a, d, nil
}
