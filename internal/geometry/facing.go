package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/talgya/graticule/internal/hex"
)

// FacingAngles is the clockwise yaw in degrees, seen from above, for each
// direction. It is parallel to hex.Neighbours.
var FacingAngles = [6]float64{
	0,   // Forward
	300, // ForwardRight
	240, // BackRight
	180, // Back
	120, // BackLeft
	60,  // ForwardLeft
}

// Up is the axis every facing rotation turns about.
var Up = r3.Vec{Y: 1}

var facingRotations = func() [6]r3.Rotation {
	var rots [6]r3.Rotation
	for i, deg := range FacingAngles {
		rots[i] = r3.NewRotation(-deg*math.Pi/180, Up)
	}
	return rots
}()

// Face returns the rotation that turns an object facing +z (toward the
// Forward neighbour) so that it faces the neighbour in direction d. d must
// be Valid; any other value panics.
func (g Geometry) Face(d hex.Direction) r3.Rotation {
	return facingRotations[d]
}
