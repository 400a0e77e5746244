package graticule

import (
	"fmt"
	"math"
)

// MapDimension is the closed interval [Min, Max] along one cubic axis.
// An interval with Min > Max may be held while a graticule is being
// configured; it only becomes an error when its Size is needed.
type MapDimension struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Dim is shorthand for MapDimension{Min: lo, Max: hi}.
func Dim(lo, hi int) MapDimension {
	return MapDimension{Min: lo, Max: hi}
}

// Size returns Max-Min+1, or ErrDegenerateDimension when Min > Max, or
// ErrStorageTooLarge when the count does not fit in an int.
func (d MapDimension) Size() (int, error) {
	if d.Min > d.Max {
		return 0, fmt.Errorf("%w: min %d is greater than max %d", ErrDegenerateDimension, d.Min, d.Max)
	}
	n := d.Max - d.Min + 1
	if n <= 0 {
		return 0, fmt.Errorf("%w: [%d, %d] spans more than %d values", ErrStorageTooLarge, d.Min, d.Max, math.MaxInt)
	}
	return n, nil
}

// Contains reports whether v lies in [Min, Max].
func (d MapDimension) Contains(v int) bool {
	return v >= d.Min && v <= d.Max
}

func (d MapDimension) String() string {
	return fmt.Sprintf("MapDimension(Min: %d, Max: %d)", d.Min, d.Max)
}
