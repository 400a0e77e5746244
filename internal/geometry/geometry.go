// Package geometry projects cubic hex coordinates onto the cartesian ground
// plane (y = 0) for flat-top hexagons of a given size.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/talgya/graticule/internal/hex"
)

// Sqrt3 is the only √3 used by this package, so every projection path
// agrees bit for bit.
var Sqrt3 = math.Sqrt(3)

// ErrInvalidScale is returned when a geometry is built from a non-positive
// or non-finite size.
var ErrInvalidScale = errors.New("geometry scale must be positive and finite")

// Default is the unit-radius geometry.
var Default = FromRadius(1)

// Geometry holds the size of one hexagon.
type Geometry struct {
	Radius  float64 // center to vertex
	Apothem float64 // center to edge midpoint
}

// FromRadius builds a geometry from the circumradius.
func FromRadius(radius float64) Geometry {
	return Geometry{Radius: radius, Apothem: Sqrt3 / 2 * radius}
}

// FromApothem builds a geometry from the inradius.
func FromApothem(apothem float64) Geometry {
	return FromRadius(apothem / (Sqrt3 / 2))
}

// Validate reports whether the geometry can project anything meaningful.
func (g Geometry) Validate() error {
	if !(g.Radius > 0) || math.IsInf(g.Radius, 0) {
		return fmt.Errorf("radius %v: %w", g.Radius, ErrInvalidScale)
	}
	return nil
}

// CenterVertexAt returns the center of the hexagon at c.
func (g Geometry) CenterVertexAt(c hex.Cubic) r3.Vec {
	a := c.Axial()
	p, q := float64(a.P), float64(a.Q)
	return r3.Vec{
		X: g.Radius * (3.0 / 2 * p),
		Y: 0,
		Z: g.Radius * (Sqrt3/2*p + Sqrt3*q),
	}
}

// MeshVerticesAt returns the center of the hexagon at c followed by its six
// corners, starting at the -x corner and going clockwise seen from above.
func (g Geometry) MeshVerticesAt(c hex.Cubic) [7]r3.Vec {
	center := g.CenterVertexAt(c)
	x, y, z := center.X, center.Y, center.Z
	return [7]r3.Vec{
		center,
		{X: x - g.Radius, Y: y, Z: z},
		{X: x - g.Radius/2, Y: y, Z: z + g.Apothem},
		{X: x + g.Radius/2, Y: y, Z: z + g.Apothem},
		{X: x + g.Radius, Y: y, Z: z},
		{X: x + g.Radius/2, Y: y, Z: z - g.Apothem},
		{X: x - g.Radius/2, Y: y, Z: z - g.Apothem},
	}
}

// CubicAt returns the hexagon containing the ground-plane point p. The y
// component is ignored. It inverts CenterVertexAt.
func (g Geometry) CubicAt(p r3.Vec) hex.Cubic {
	ap := p.X / (g.Radius * 3.0 / 2)
	aq := p.Z/(g.Radius*Sqrt3) - ap/2
	return hex.Round(hex.FracCubic{R: ap, S: aq, T: -ap - aq})
}

func (g Geometry) String() string {
	return fmt.Sprintf("Geometry(Radius: %g, Apothem: %g)", g.Radius, g.Apothem)
}
