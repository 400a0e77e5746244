package world

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/graticule/internal/graticule"
	"github.com/talgya/graticule/internal/hex"
)

// Grid is a graticule of cells.
type Grid = graticule.Graticule[Cell]

// CellFactory builds the cell stored at c. parent is the grid being
// populated; cells already created are visible through it.
type CellFactory func(c hex.Cubic, parent *Grid) (*Cell, error)

// ErrCoordinateMismatch is returned by Populate when a factory builds a cell
// for a different coordinate than the one it was asked for.
var ErrCoordinateMismatch = errors.New("cell coordinate does not match its slot")

// NewGrid returns a hexagon-shaped grid of the given radius, configured but
// not populated.
func NewGrid(radius int) *Grid {
	d := graticule.Dim(-radius, radius)
	return graticule.New[Cell](d, d, d)
}

// PlainFactory creates blank plains cells.
func PlainFactory(c hex.Cubic, _ *Grid) (*Cell, error) {
	return NewCell(c), nil
}

// Populate resets g's storage and fills every valid coordinate with a cell
// from factory. A nil cell leaves the slot empty. It stops at the first
// factory error, leaving the cells created so far in place.
func Populate(g *Grid, factory CellFactory) error {
	if err := g.InitStorage(); err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	var firstErr error
	created := 0
	g.ApplyCoords(func(c hex.Cubic) {
		if firstErr != nil {
			return
		}
		cell, err := factory(c, g)
		if err != nil {
			firstErr = fmt.Errorf("create cell %v: %w", c, err)
			return
		}
		if cell == nil {
			return
		}
		if cell.Coord != c {
			firstErr = fmt.Errorf("create cell %v: got %v: %w", c, cell.Coord, ErrCoordinateMismatch)
			return
		}
		if err := g.Set(c, cell); err != nil {
			firstErr = fmt.Errorf("store cell %v: %w", c, err)
			return
		}
		created++
	})
	if firstErr != nil {
		return firstErr
	}

	slog.Debug("graticule populated", "grid", g.String(), "cells", created)
	return nil
}

// CellAt returns the cell at c, or nil if c is empty, invalid or outside g.
func CellAt(g *Grid, c hex.Cubic) *Cell {
	cell, err := g.Get(c)
	if err != nil {
		return nil
	}
	return cell
}

// Neighbours returns the existing cells adjacent to c, in direction order.
func Neighbours(g *Grid, c hex.Cubic) []*Cell {
	out := make([]*Cell, 0, 6)
	for _, n := range hex.Neighbourhood(c) {
		if cell := CellAt(g, n); cell != nil {
			out = append(out, cell)
		}
	}
	return out
}

// TerrainCounts returns how many cells of each terrain g holds.
func TerrainCounts(g *Grid) map[Terrain]int {
	counts := make(map[Terrain]int)
	g.ApplyCells(func(c *Cell) {
		counts[c.Terrain]++
	})
	return counts
}
