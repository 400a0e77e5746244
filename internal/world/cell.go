// Package world fills a graticule with terrain cells and moves occupants
// (actors and structures) across them.
package world

import (
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/talgya/graticule/internal/geometry"
	"github.com/talgya/graticule/internal/hex"
)

// Terrain types for cells.
type Terrain uint8

const (
	TerrainPlains   Terrain = iota // Default for unshaped cells
	TerrainForest                  // Wet, mid elevation
	TerrainMountain                // Above the mountain line
	TerrainCoast                   // Low land touching ocean
	TerrainRiver                   // Traced downhill from highlands
	TerrainDesert                  // Dry and hot
	TerrainSwamp                   // Wet and low
	TerrainTundra                  // Cold
	TerrainOcean                   // Below sea level, never occupied
)

// ResourceType enumerates what a cell yields.
type ResourceType uint8

const (
	ResourceGrain ResourceType = iota
	ResourceTimber
	ResourceOre
	ResourceStone
	ResourceFish
	ResourceHerbs
)

// cellNamespace seeds deterministic cell IDs, so the same coordinate gets
// the same ID on every run.
var cellNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/talgya/graticule/cell"))

// CellID returns the stable ID of the cell at c.
func CellID(c hex.Cubic) uuid.UUID {
	return uuid.NewSHA1(cellNamespace, []byte(c.String()))
}

// Cell is one tile of the grid.
type Cell struct {
	ID    uuid.UUID `json:"id"`
	Coord hex.Cubic `json:"coord"`

	Terrain     Terrain                  `json:"terrain"`
	Elevation   float64                  `json:"elevation"`   // 0 (sea floor) to 1 (peak)
	Rainfall    float64                  `json:"rainfall"`    // 0 (arid) to 1 (tropical)
	Temperature float64                  `json:"temperature"` // 0 (frozen) to 1 (hot)
	Resources   map[ResourceType]float64 `json:"resources"`

	// Occupant is whatever currently stands on the cell, or nil.
	Occupant Occupant `json:"-"`
}

// NewCell returns a blank plains cell at c.
func NewCell(c hex.Cubic) *Cell {
	return &Cell{
		ID:        CellID(c),
		Coord:     c,
		Terrain:   TerrainPlains,
		Resources: make(map[ResourceType]float64),
	}
}

// Coordinates returns the cell's grid address.
func (c *Cell) Coordinates() hex.Cubic {
	return c.Coord
}

// CenterVertex returns the cell's center under geo. It is derived, never stored.
func (c *Cell) CenterVertex(geo geometry.Geometry) r3.Vec {
	return geo.CenterVertexAt(c.Coord)
}

// Passable reports whether an occupant may enter the cell.
func (c *Cell) Passable() bool {
	return c.Terrain != TerrainOcean && c.Occupant == nil
}

func (c *Cell) String() string {
	return fmt.Sprintf("Hex%v", c.Coord)
}

var terrainNames = [...]string{
	TerrainPlains:   "Plains",
	TerrainForest:   "Forest",
	TerrainMountain: "Mountain",
	TerrainCoast:    "Coast",
	TerrainRiver:    "River",
	TerrainDesert:   "Desert",
	TerrainSwamp:    "Swamp",
	TerrainTundra:   "Tundra",
	TerrainOcean:    "Ocean",
}

// TerrainName returns the display name of t, or "Unknown".
func TerrainName(t Terrain) string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return "Unknown"
}

func (t Terrain) String() string {
	return TerrainName(t)
}
