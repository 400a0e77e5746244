// Terrain generation using layered simplex noise.
// Elevation, rainfall and temperature are sampled at each cell's projected
// center, terrain is derived from them, then coasts and rivers are traced.
package world

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/graticule/internal/geometry"
	"github.com/talgya/graticule/internal/hex"
)

// GenConfig holds terrain generation parameters.
type GenConfig struct {
	Seed          int64   // Random seed (0 = random)
	SeaLevel      float64 // Elevation threshold for ocean (0.0–1.0)
	MountainLevel float64 // Elevation threshold for mountains (0.0–1.0)
	Frequency     float64 // Base noise frequency per hex radius
	Rivers        int     // Maximum number of rivers (0 = derived from highland count)

	// Geometry used to project cells into noise space. Only the shape
	// matters; positions are normalised by the radius.
	Geometry geometry.Geometry
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Seed:          0,
		SeaLevel:      0.25,
		MountainLevel: 0.72,
		Frequency:     0.08,
		Geometry:      geometry.Default,
	}
}

// Generate populates g with terrain cells and runs the coast and river passes.
func Generate(g *Grid, cfg GenConfig) (int64, error) {
	if cfg.Seed == 0 {
		cfg.Seed = rand.Int63()
	}
	if err := cfg.Geometry.Validate(); err != nil {
		return 0, fmt.Errorf("generate: %w", err)
	}

	if err := Populate(g, TerrainFactory(cfg)); err != nil {
		return 0, fmt.Errorf("generate: %w", err)
	}

	// Post-pass: land touching ocean becomes coast.
	markCoastalCells(g)

	// Post-pass: rivers flowing downhill from the highlands.
	placeRivers(g, cfg)

	slog.Info("terrain generated", "seed", cfg.Seed, "cells", g.Count())
	return cfg.Seed, nil
}

// TerrainFactory returns a CellFactory that shapes each cell from noise.
// Three independent noise layers are seeded from cfg.Seed.
func TerrainFactory(cfg GenConfig) CellFactory {
	elevNoise := opensimplex.NewNormalized(cfg.Seed)
	rainNoise := opensimplex.NewNormalized(cfg.Seed + 1)
	tempNoise := opensimplex.NewNormalized(cfg.Seed + 2)

	freq := cfg.Frequency
	if freq <= 0 {
		freq = DefaultGenConfig().Frequency
	}

	return func(c hex.Cubic, parent *Grid) (*Cell, error) {
		center := cfg.Geometry.CenterVertexAt(c)
		x := center.X / cfg.Geometry.Radius
		z := center.Z / cfg.Geometry.Radius

		elev := octaveNoise(elevNoise, x, z, 4, freq, 0.5)
		rain := octaveNoise(rainNoise, x, z, 3, freq*0.75, 0.5)
		temp := octaveNoise(tempNoise, x, z, 3, freq*0.6, 0.5)

		// Continental shaping: sink the rim of the grid into ocean.
		extent := gridExtent(parent)
		if extent > 0 {
			dist := float64(hex.Distance(hex.Cubic{}, c)) / float64(extent)
			elev *= math.Max(0, 1-math.Pow(dist, 3.5))
		}

		// Colder toward the z edges and at altitude.
		lat := 0.0
		if extent > 0 {
			lat = math.Abs(z) / (float64(extent) * geometry.Sqrt3)
		}
		temp = temp*0.6 + (1-math.Min(lat, 1))*0.3 + (1-elev)*0.1

		cell := NewCell(c)
		cell.Elevation = elev
		cell.Rainfall = rain
		cell.Temperature = temp
		cell.Terrain = deriveTerrain(elev, rain, temp, cfg)
		cell.Resources = makeResources(cell.Terrain, elev, rain)
		return cell, nil
	}
}

// gridExtent is the largest absolute bound on any axis of g.
func gridExtent(g *Grid) int {
	ext := 0
	for _, d := range []int{g.RDim.Min, g.RDim.Max, g.SDim.Min, g.SDim.Max, g.TDim.Min, g.TDim.Max} {
		if d < 0 {
			d = -d
		}
		ext = max(ext, d)
	}
	return ext
}

// deriveTerrain classifies a cell. Sea and mountain lines win over climate;
// the remaining rules are checked in order and plains is the fallback.
func deriveTerrain(elev, rain, temp float64, cfg GenConfig) Terrain {
	switch {
	case elev < cfg.SeaLevel:
		return TerrainOcean
	case elev > cfg.MountainLevel:
		return TerrainMountain
	case temp < 0.25:
		return TerrainTundra
	case temp > 0.5 && rain < 0.25:
		return TerrainDesert
	case elev < 0.45 && rain > 0.7:
		return TerrainSwamp
	case elev > 0.45 && rain > 0.45:
		return TerrainForest
	default:
		return TerrainPlains
	}
}

// baseYields is what each terrain produces before climate adjustments.
var baseYields = map[Terrain]map[ResourceType]float64{
	TerrainPlains:   {ResourceGrain: 80},
	TerrainForest:   {ResourceTimber: 100, ResourceHerbs: 30},
	TerrainMountain: {ResourceOre: 60, ResourceStone: 80},
	TerrainCoast:    {ResourceFish: 80},
	TerrainRiver:    {ResourceFish: 50, ResourceGrain: 40},
	TerrainSwamp:    {ResourceHerbs: 60},
	TerrainDesert:   {ResourceStone: 30},
}

// makeResources returns a fresh yield map for a cell of the given terrain.
// Rain feeds plains grain and altitude feeds mountain ore.
func makeResources(terrain Terrain, elev, rain float64) map[ResourceType]float64 {
	res := make(map[ResourceType]float64, len(baseYields[terrain]))
	for r, v := range baseYields[terrain] {
		res[r] = v
	}
	switch terrain {
	case TerrainPlains:
		res[ResourceGrain] += rain * 40
	case TerrainMountain:
		res[ResourceOre] += elev * 30
	}
	return res
}

// markCoastalCells turns low plains and forest next to ocean into coast.
func markCoastalCells(g *Grid) {
	var toMark []*Cell

	g.ApplyCells(func(cell *Cell) {
		if cell.Terrain != TerrainPlains && cell.Terrain != TerrainForest {
			return
		}
		if cell.Elevation >= 0.5 {
			return
		}
		for _, n := range Neighbours(g, cell.Coord) {
			if n.Terrain == TerrainOcean {
				toMark = append(toMark, cell)
				return
			}
		}
	})

	for _, cell := range toMark {
		cell.Terrain = TerrainCoast
		cell.Resources = makeResources(TerrainCoast, cell.Elevation, cell.Rainfall)
		if cell.Rainfall > 0.4 {
			cell.Resources[ResourceGrain] = 20
		}
	}
}

// placeRivers traces rivers from a handful of highland cells.
func placeRivers(g *Grid, cfg GenConfig) {
	rng := rand.New(rand.NewSource(cfg.Seed + 100))

	var sources []*Cell
	g.ApplyCells(func(cell *Cell) {
		if cell.Elevation > 0.65 && cell.Terrain != TerrainOcean {
			sources = append(sources, cell)
		}
	})

	numRivers := cfg.Rivers
	if numRivers <= 0 {
		numRivers = min(max(len(sources)/8, 2), 10)
	}

	rng.Shuffle(len(sources), func(a, b int) { sources[a], sources[b] = sources[b], sources[a] })
	for _, src := range sources[:min(numRivers, len(sources))] {
		traceRiver(g, src)
	}
}

// traceRiver follows the steepest descent from start, turning cells into
// river, until it reaches ocean, finds no lower unvisited neighbour or runs
// out of steps. Mountains and coast keep their terrain but carry the flow.
func traceRiver(g *Grid, start *Cell) {
	const maxSteps = 50
	visited := make(map[hex.Cubic]bool)

	for cur, n := start, 0; cur != nil && n < maxSteps; n++ {
		visited[cur.Coord] = true
		if cur.Terrain == TerrainOcean {
			return
		}
		if cur.Terrain != TerrainMountain && cur.Terrain != TerrainCoast {
			cur.Terrain = TerrainRiver
			cur.Resources[ResourceFish] = 50
			cur.Resources[ResourceGrain] += 20
		}

		var next *Cell
		for _, nb := range Neighbours(g, cur.Coord) {
			if visited[nb.Coord] || nb.Elevation >= cur.Elevation {
				continue
			}
			if next == nil || nb.Elevation < next.Elevation {
				next = nb
			}
		}
		cur = next
	}
}

// octaveNoise sums octaves of noise, each at twice the frequency and gain
// times the amplitude of the last, normalised back into [0, 1].
func octaveNoise(noise opensimplex.Noise, x, z float64, octaves int, freq, gain float64) float64 {
	var sum, norm float64
	amp := 1.0
	for range octaves {
		sum += amp * noise.Eval2(x*freq, z*freq)
		norm += amp
		amp *= gain
		freq *= 2
	}
	return sum / norm
}
