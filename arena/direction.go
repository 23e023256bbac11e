package arena

import "fmt"

// Direction is one of the four cardinal movement/facing directions.
// Declaration order doubles as the tie-break order when several
// directional keys share a press timestamp.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in tie-break order.
var Directions = [...]Direction{North, East, South, West}

func (d Direction) Valid() bool {
	return d >= North && d <= West
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection maps a name (as used in specs and scripts) back to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "north":
		return North, nil
	case "east":
		return East, nil
	case "south":
		return South, nil
	case "west":
		return West, nil
	default:
		return North, fmt.Errorf("arena: unknown direction %q", s)
	}
}

// Vector returns the unit vector for d in screen coordinates (north is -Y).
func (d Direction) Vector() (dx, dy float64) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}
