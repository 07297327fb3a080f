package world

// Direction represents the facing of a map entity
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// FromKeypad converts a numeric keypad facing (2 down, 4 left, 6 right, 8 up)
// into a Direction. Unknown codes face South.
func FromKeypad(code int) Direction {
	switch code {
	case 8:
		return North
	case 6:
		return East
	case 4:
		return West
	default:
		return South
	}
}

// Keypad returns the numeric keypad code for this direction
func (d Direction) Keypad() int {
	switch d {
	case North:
		return 8
	case East:
		return 6
	case West:
		return 4
	default:
		return 2
	}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Delta returns the x and y offsets for this direction
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
	default:
		return 0, 0
	}
}

// Angle returns the clockwise rotation in degrees of a sprite drawn pointing
// down so that it points in this direction.
func (d Direction) Angle() float64 {
	switch d {
	case West:
		return 90
	case North:
		return 180
	case East:
		return 270
	default:
		return 0
	}
}
