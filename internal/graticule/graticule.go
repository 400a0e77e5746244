// Package graticule stores one value per cell of a bounded hex grid.
//
// Cells are addressed by cubic coordinates. The grid is bounded by three
// independent per-axis intervals; since t = -r-s, only r and s index
// storage, which is a dense RDim.Size × SDim.Size rectangle covering the
// diamond of valid addresses. The rectangle wastes the corners outside the
// diamond in exchange for a fixed-offset index.
//
// A Graticule is not safe for concurrent use. Callers sharing one between
// goroutines must serialise every call, including reads.
package graticule

import (
	"errors"
	"fmt"
	"math"

	"github.com/talgya/graticule/internal/hex"
)

var (
	// ErrOutOfBounds reports a valid coordinate outside the configured r or s range.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrUninitializedStorage reports indexed access before InitStorage, or
	// after the r or s dimension changed without a new InitStorage.
	ErrUninitializedStorage = errors.New("graticule storage not initialized")
	// ErrDegenerateDimension reports a dimension whose Min exceeds its Max.
	ErrDegenerateDimension = errors.New("degenerate map dimension")
	// ErrStorageTooLarge reports a dimension whose size overflows an int, or
	// dimensions whose slot count exceeds MaxSlots.
	ErrStorageTooLarge = errors.New("graticule storage too large")
)

// MaxSlots caps RDim.Size × SDim.Size.
const MaxSlots = math.MaxInt32

// Graticule is bounded dense storage of *T keyed by cubic coordinate.
// A nil slot is an empty cell.
type Graticule[T any] struct {
	RDim, SDim, TDim MapDimension

	cells []*T
	// Dimensions the current cells slice was allocated for.
	allocR, allocS MapDimension
	ready          bool
}

// New returns a graticule configured with the given dimensions. Storage is
// not allocated until InitStorage is called.
func New[T any](r, s, t MapDimension) *Graticule[T] {
	g := &Graticule[T]{}
	g.Configure(r, s, t)
	return g
}

// Configure sets all three dimensions. If r or s changed, indexed access
// fails until InitStorage is called again.
func (g *Graticule[T]) Configure(r, s, t MapDimension) {
	g.RDim, g.SDim, g.TDim = r, s, t
}

// Dimensions returns the configured r, s and t dimensions.
func (g *Graticule[T]) Dimensions() (r, s, t MapDimension) {
	return g.RDim, g.SDim, g.TDim
}

// InitStorage allocates empty storage at the current dimensions, discarding
// any previous contents. On error the graticule is left unchanged.
func (g *Graticule[T]) InitStorage() error {
	rSize, err := g.RDim.Size()
	if err != nil {
		return fmt.Errorf("r dimension: %w", err)
	}
	sSize, err := g.SDim.Size()
	if err != nil {
		return fmt.Errorf("s dimension: %w", err)
	}
	if _, err := g.TDim.Size(); err != nil {
		return fmt.Errorf("t dimension: %w", err)
	}

	if rSize > MaxSlots/sSize {
		return fmt.Errorf("%w: %d × %d slots exceeds %d", ErrStorageTooLarge, rSize, sSize, MaxSlots)
	}

	g.cells = make([]*T, rSize*sSize)
	g.allocR, g.allocS = g.RDim, g.SDim
	g.ready = true
	return nil
}

// Initialized reports whether indexed access is currently allowed.
func (g *Graticule[T]) Initialized() bool {
	return g.ready && g.allocR == g.RDim && g.allocS == g.SDim
}

// index maps a coordinate to its slot in cells.
func (g *Graticule[T]) index(c hex.Cubic) (int, error) {
	if !g.Initialized() {
		return 0, ErrUninitializedStorage
	}
	if _, err := c.Validate(); err != nil {
		return 0, err
	}
	if !g.RDim.Contains(c.R) || !g.SDim.Contains(c.S) {
		return 0, fmt.Errorf("%w: %v not in r %v, s %v", ErrOutOfBounds, c, g.RDim, g.SDim)
	}
	stride := g.SDim.Max - g.SDim.Min + 1
	return (c.R-g.RDim.Min)*stride + (c.S - g.SDim.Min), nil
}

// Get returns the value stored at c, or nil if the slot is empty.
func (g *Graticule[T]) Get(c hex.Cubic) (*T, error) {
	i, err := g.index(c)
	if err != nil {
		return nil, err
	}
	return g.cells[i], nil
}

// At is Get with the components passed separately.
func (g *Graticule[T]) At(r, s, t int) (*T, error) {
	return g.Get(hex.Cubic{R: r, S: s, T: t})
}

// Set stores v at c. A nil v empties the slot.
func (g *Graticule[T]) Set(c hex.Cubic, v *T) error {
	i, err := g.index(c)
	if err != nil {
		return err
	}
	g.cells[i] = v
	return nil
}

// SetAt is Set with the components passed separately.
func (g *Graticule[T]) SetAt(r, s, t int, v *T) error {
	return g.Set(hex.Cubic{R: r, S: s, T: t}, v)
}

// GetAll returns the values at coords in the same order. Every coordinate
// is checked before anything is read; on the first bad one it returns a nil
// slice and that coordinate's error.
func (g *Graticule[T]) GetAll(coords []hex.Cubic) ([]*T, error) {
	idx := make([]int, len(coords))
	for i, c := range coords {
		n, err := g.index(c)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d: %w", i, err)
		}
		idx[i] = n
	}

	out := make([]*T, len(coords))
	for i, n := range idx {
		out[i] = g.cells[n]
	}
	return out, nil
}

// Contains reports whether c is a valid coordinate inside all three
// dimensions, i.e. one that ApplyCoords would visit.
func (g *Graticule[T]) Contains(c hex.Cubic) bool {
	return c.Sum() == 0 && g.RDim.Contains(c.R) && g.SDim.Contains(c.S) && g.TDim.Contains(c.T)
}

// ApplyCells calls fn for every non-empty slot in storage order (r-major
// over the whole rectangle). It does not filter by TDim; it relies on
// values only ever being stored at valid coordinates. It does nothing
// before InitStorage.
func (g *Graticule[T]) ApplyCells(fn func(*T)) {
	for _, v := range g.cells {
		if v != nil {
			fn(v)
		}
	}
}

// ApplyCoords calls fn for every valid coordinate inside all three
// dimensions, by increasing r then increasing s. It does not touch storage.
func (g *Graticule[T]) ApplyCoords(fn func(hex.Cubic)) {
	for r := g.RDim.Min; r <= g.RDim.Max; r++ {
		// s is bounded by SDim directly and by TDim through t = -r-s.
		lo := max(g.SDim.Min, -r-g.TDim.Max)
		hi := min(g.SDim.Max, -r-g.TDim.Min)
		for s := lo; s <= hi; s++ {
			fn(hex.Cubic{R: r, S: s, T: -r - s})
		}
	}
}

// Count returns the number of non-empty slots.
func (g *Graticule[T]) Count() int {
	n := 0
	g.ApplyCells(func(*T) { n++ })
	return n
}

func (g *Graticule[T]) String() string {
	return fmt.Sprintf("Graticule(r=[%d,%d], s=[%d,%d], t=[%d,%d], cells=%d)",
		g.RDim.Min, g.RDim.Max, g.SDim.Min, g.SDim.Max, g.TDim.Min, g.TDim.Max, g.Count())
}
