// Package hex provides cubic hex-grid coordinates and the pure math over them:
// arithmetic, directions, neighbours, distance, rounding and line drawing.
// A cubic coordinate (r, s, t) addresses a cell only when r+s+t == 0.
package hex

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

// ErrInvalidCoordinate is matched by every InvalidCoordinateError.
var ErrInvalidCoordinate = errors.New("invalid cubic coordinate")

// InvalidCoordinateError reports a coordinate whose components do not sum to zero.
type InvalidCoordinateError struct {
	Coord Cubic
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("cubic coordinate %v is not valid (sum is %d, not 0)", e.Coord, e.Coord.Sum())
}

// Is lets errors.Is(err, ErrInvalidCoordinate) match.
func (e *InvalidCoordinateError) Is(target error) bool {
	return target == ErrInvalidCoordinate
}

// Cubic is a position (or a difference vector) in cubic coordinates.
type Cubic struct {
	R int `json:"r" yaml:"r"`
	S int `json:"s" yaml:"s"`
	T int `json:"t" yaml:"t"`
}

// Axial is the two-component form of a cubic coordinate. The dropped
// component is recovered as -P-Q.
type Axial struct {
	P int `json:"p"`
	Q int `json:"q"`
}

// FracCubic is a cubic coordinate with fractional components, e.g. a point
// partway along a line. Its components need not sum to zero.
type FracCubic struct {
	R, S, T float64
}

// Map applies f to each component.
func (c Cubic) Map(f func(int) int) Cubic {
	return Cubic{R: f(c.R), S: f(c.S), T: f(c.T)}
}

// Zip combines c and o componentwise with f.
func (c Cubic) Zip(o Cubic, f func(a, b int) int) Cubic {
	return Cubic{R: f(c.R, o.R), S: f(c.S, o.S), T: f(c.T, o.T)}
}

// Fold reduces the components with f as f(t, f(r, s)).
func (c Cubic) Fold(f func(a, b int) int) int {
	return f(c.T, f(c.R, c.S))
}

// Add returns c+o.
func (c Cubic) Add(o Cubic) Cubic {
	return c.Zip(o, func(a, b int) int { return a + b })
}

// Sub returns c-o. The result is a difference vector.
func (c Cubic) Sub(o Cubic) Cubic {
	return c.Zip(o, func(a, b int) int { return a - b })
}

// Sum returns r+s+t.
func (c Cubic) Sum() int {
	return c.Fold(func(a, b int) int { return a + b })
}

// Validate returns c unchanged when it is a grid address, or an
// *InvalidCoordinateError otherwise.
func (c Cubic) Validate() (Cubic, error) {
	if c.Sum() != 0 {
		return c, &InvalidCoordinateError{Coord: c}
	}
	return c, nil
}

// Axial drops the t component.
func (c Cubic) Axial() Axial {
	return Axial{P: c.R, Q: c.S}
}

// Cubic restores the t component as -P-Q, so (P, Q) maps to (P, Q, -P-Q)
// and Cubic.Axial undoes it exactly.
func (a Axial) Cubic() Cubic {
	return Cubic{R: a.P, S: a.Q, T: -a.P - a.Q}
}

// Float widens c to a fractional coordinate.
func (c Cubic) Float() FracCubic {
	return FracCubic{R: float64(c.R), S: float64(c.S), T: float64(c.T)}
}

func (c Cubic) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.S, c.T)
}

func (a Axial) String() string {
	return fmt.Sprintf("(%d, %d)", a.P, a.Q)
}

func abs[T constraints.Signed | constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
