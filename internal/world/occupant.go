package world

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/talgya/graticule/internal/geometry"
	"github.com/talgya/graticule/internal/hex"
)

var (
	// ErrCellOccupied is returned when placing onto a cell held by another occupant.
	ErrCellOccupied = errors.New("cell is occupied")
	// ErrNotPlaced is returned when moving an occupant that is not on the grid.
	ErrNotPlaced = errors.New("occupant is not on the grid")
	// ErrNoCell is returned when a move targets an empty slot.
	ErrNoCell = errors.New("no cell at coordinate")
	// ErrImpassable is returned when a move targets ocean.
	ErrImpassable = errors.New("cell is impassable")
	// ErrNotAdjacent is returned when a walk would skip over a cell.
	ErrNotAdjacent = errors.New("path step is not between neighbours")
)

// Occupant is something standing on at most one cell. The implementations
// are *Actor and *Structure; the unexported method keeps the set closed.
type Occupant interface {
	OccupantID() uuid.UUID
	Location() *Cell
	PreviousLocation() *Cell
	// OnChange runs after the occupant moves from one cell to another. It is
	// not called when the occupant first lands or is lifted off.
	OnChange()

	tenancy() *Tenancy
}

// Tenancy records where an occupant stands. Occupants embed it.
type Tenancy struct {
	location, previous *Cell
}

// Location returns the current cell, or nil.
func (t *Tenancy) Location() *Cell { return t.location }

// PreviousLocation returns the cell held before the last Place, or nil.
func (t *Tenancy) PreviousLocation() *Cell { return t.previous }

func (t *Tenancy) tenancy() *Tenancy { return t }

// Place moves o onto to, or lifts it off the grid when to is nil. The cells'
// Occupant fields are kept in step. OnChange fires only when o moved between
// two cells.
func Place(o Occupant, to *Cell) error {
	if to != nil && to.Occupant != nil && to.Occupant != o {
		return fmt.Errorf("place on %v: %w", to, ErrCellOccupied)
	}

	t := o.tenancy()
	if t.location != nil && t.location.Occupant == o {
		t.location.Occupant = nil
	}
	t.previous, t.location = t.location, to
	if to != nil {
		to.Occupant = o
	}

	if t.location != nil && t.previous != nil {
		o.OnChange()
	}
	return nil
}

// Actor is a mobile occupant that faces one of the six directions.
type Actor struct {
	Tenancy

	ID     uuid.UUID
	Name   string
	Facing hex.Direction
	// Moves counts cell-to-cell moves.
	Moves int
}

// NewActor returns an unplaced actor facing Forward.
func NewActor(name string) *Actor {
	return &Actor{ID: uuid.New(), Name: name, Facing: hex.Forward}
}

func (a *Actor) OccupantID() uuid.UUID { return a.ID }

func (a *Actor) OnChange() {
	a.Moves++
	slog.Debug("actor moved", "actor", a.Name, "from", a.previous, "to", a.location)
}

// Orientation returns the rotation that makes the actor face its direction.
func (a *Actor) Orientation(geo geometry.Geometry) r3.Rotation {
	return geo.Face(a.Facing)
}

// Step moves the actor one cell in direction d and turns it to face d.
func (a *Actor) Step(g *Grid, d hex.Direction) error {
	if a.location == nil {
		return ErrNotPlaced
	}
	if !d.Valid() {
		return fmt.Errorf("step: invalid direction %d", int(d))
	}

	from := a.location.Coord
	to := hex.Move(from, d)
	cell, err := g.Get(to)
	if err != nil {
		return fmt.Errorf("step %v from %v: %w", d, from, err)
	}
	if cell == nil {
		return fmt.Errorf("step %v from %v: %w", d, from, ErrNoCell)
	}
	if cell.Terrain == TerrainOcean {
		return fmt.Errorf("step %v from %v: %w", d, from, ErrImpassable)
	}
	if err := Place(a, cell); err != nil {
		return fmt.Errorf("step %v from %v: %w", d, from, err)
	}
	a.Facing = d
	return nil
}

// WalkTo steps the actor along the straight line to target. The whole line
// must lie inside g. If a step fails, the actor stays where it got to and
// WalkTo returns the part of the line actually covered with the error.
func (a *Actor) WalkTo(g *Grid, target hex.Cubic) ([]hex.Cubic, error) {
	if a.location == nil {
		return nil, ErrNotPlaced
	}

	path := hex.Line(a.location.Coord, target)
	if _, err := g.GetAll(path); err != nil {
		return path[:1], fmt.Errorf("walk to %v: %w", target, err)
	}
	dirs, err := stepsAlong(path)
	if err != nil {
		return path[:1], fmt.Errorf("walk to %v: %w", target, err)
	}

	for i, d := range dirs {
		if err := a.Step(g, d); err != nil {
			return path[:i+1], fmt.Errorf("walk to %v: %w", target, err)
		}
	}
	return path, nil
}

// stepsAlong returns the direction of each step of path, or ErrNotAdjacent
// at the first pair of consecutive coordinates that are not neighbours.
func stepsAlong(path []hex.Cubic) ([]hex.Direction, error) {
	if len(path) < 2 {
		return nil, nil
	}
	dirs := make([]hex.Direction, len(path)-1)
	for i := 1; i < len(path); i++ {
		d, ok := hex.DirectionTo(path[i-1], path[i])
		if !ok {
			return nil, fmt.Errorf("%v to %v: %w", path[i-1], path[i], ErrNotAdjacent)
		}
		dirs[i-1] = d
	}
	return dirs, nil
}

// StructureKind categorises structure scale.
type StructureKind uint8

const (
	KindVillage StructureKind = iota
	KindTown
	KindCity
)

func (k StructureKind) String() string {
	switch k {
	case KindVillage:
		return "Village"
	case KindTown:
		return "Town"
	case KindCity:
		return "City"
	default:
		return "Unknown"
	}
}

// Structure is a static occupant. It can be relocated but never walks.
type Structure struct {
	Tenancy

	ID    uuid.UUID
	Name  string
	Kind  StructureKind
	Score float64
	// Relocations counts cell-to-cell moves.
	Relocations int
}

func (s *Structure) OccupantID() uuid.UUID { return s.ID }

func (s *Structure) OnChange() {
	s.Relocations++
	slog.Info("structure relocated", "name", s.Name, "from", s.previous, "to", s.location)
}
