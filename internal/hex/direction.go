package hex

// Direction is one of the six neighbour directions. Its ordinal indexes
// Neighbours and every table kept parallel to it.
type Direction int

const (
	Forward      Direction = iota // (0, +1, -1)
	ForwardRight                  // (+1, 0, -1)
	BackRight                     // (+1, -1, 0)
	Back                          // (0, -1, +1)
	BackLeft                      // (-1, 0, +1)
	ForwardLeft                   // (-1, +1, 0)
)

// Directions lists every direction in ordinal order.
var Directions = [6]Direction{Forward, ForwardRight, BackRight, Back, BackLeft, ForwardLeft}

// Neighbours holds the unit vector of each direction, indexed by ordinal.
var Neighbours = [6]Cubic{
	{R: 0, S: +1, T: -1},
	{R: +1, S: 0, T: -1},
	{R: +1, S: -1, T: 0},
	{R: 0, S: -1, T: +1},
	{R: -1, S: 0, T: +1},
	{R: -1, S: +1, T: 0},
}

// Valid reports whether d is one of the six directions.
func (d Direction) Valid() bool {
	return d >= Forward && d <= ForwardLeft
}

// Vector returns the unit cubic vector for d. d must be Valid; any other
// value panics.
func (d Direction) Vector() Cubic {
	return Neighbours[d]
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 3) % 6
}

// DirectionTo returns the direction that steps from a to b, or false when
// b is not adjacent to a.
func DirectionTo(a, b Cubic) (Direction, bool) {
	delta := b.Sub(a)
	for i, v := range Neighbours {
		if v == delta {
			return Direction(i), true
		}
	}
	return 0, false
}

func (d Direction) String() string {
	switch d {
	case Forward:
		return "Forward"
	case ForwardRight:
		return "ForwardRight"
	case BackRight:
		return "BackRight"
	case Back:
		return "Back"
	case BackLeft:
		return "BackLeft"
	case ForwardLeft:
		return "ForwardLeft"
	default:
		return "Unknown"
	}
}
