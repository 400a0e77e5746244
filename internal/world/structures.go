// Structure placement: score every land cell and seed structures on the
// best ones, keeping a minimum hex distance between them.
package world

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/talgya/graticule/internal/hex"
)

// PlacementConfig controls how many structures of each kind are placed and
// how far apart they must be.
type PlacementConfig struct {
	Seed     int64
	Cities   int
	Towns    int
	Villages int

	MinCityDist    int
	MinTownDist    int
	MinVillageDist int
}

// DefaultPlacementConfig suits a grid of radius 8 to 20.
func DefaultPlacementConfig() PlacementConfig {
	return PlacementConfig{
		Cities:         2,
		Towns:          5,
		Villages:       10,
		MinCityDist:    8,
		MinTownDist:    4,
		MinVillageDist: 2,
	}
}

// PlaceStructures places structures on the most desirable cells of g and
// returns them ordered by kind (cities first) and then by score. Cells that
// already hold an occupant are skipped.
func PlaceStructures(g *Grid, cfg PlacementConfig) ([]*Structure, error) {
	type site struct {
		cell  *Cell
		score float64
	}
	var sites []site
	g.ApplyCells(func(cell *Cell) {
		if cell.Occupant != nil {
			return
		}
		if score := structureScore(g, cell); score > 0 {
			sites = append(sites, site{cell, score})
		}
	})
	// Stable so ties keep storage order.
	sort.SliceStable(sites, func(a, b int) bool { return sites[a].score > sites[b].score })

	tiers := []struct {
		kind    StructureKind
		count   int
		minDist int
	}{
		{KindCity, cfg.Cities, cfg.MinCityDist},
		{KindTown, cfg.Towns, cfg.MinTownDist},
		{KindVillage, cfg.Villages, cfg.MinVillageDist},
	}

	var placed []*Structure
	for _, tier := range tiers {
		n := 0
		for _, st := range sites {
			if n >= tier.count {
				break
			}
			if st.cell.Occupant != nil || tooClose(st.cell.Coord, placed, tier.minDist) {
				continue
			}
			s := &Structure{ID: uuid.New(), Kind: tier.kind, Score: st.score}
			if err := Place(s, st.cell); err != nil {
				return nil, fmt.Errorf("place %v at %v: %w", tier.kind, st.cell.Coord, err)
			}
			placed = append(placed, s)
			n++
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed + 200))
	for i, name := range generateNames(rng, len(placed)) {
		placed[i].Name = name
	}
	slog.Debug("structures placed", "count", len(placed), "candidates", len(sites))
	return placed, nil
}

// siteWeights is the base desirability of each terrain. Ocean is absent
// and never scores.
var siteWeights = map[Terrain]float64{
	TerrainCoast:    4.0,
	TerrainRiver:    3.5,
	TerrainPlains:   3.0,
	TerrainForest:   1.5,
	TerrainDesert:   0.5,
	TerrainSwamp:    0.5,
	TerrainTundra:   0.5,
	TerrainMountain: 0.3,
}

// structureScore rates how desirable a cell is for a structure: its own
// terrain, the variety of land around it, nearby water and its yields.
func structureScore(g *Grid, cell *Cell) float64 {
	score, ok := siteWeights[cell.Terrain]
	if !ok {
		return 0
	}

	kinds := make(map[Terrain]struct{})
	water := false
	for _, n := range Neighbours(g, cell.Coord) {
		switch n.Terrain {
		case TerrainOcean:
			continue
		case TerrainRiver, TerrainCoast:
			water = true
		}
		kinds[n.Terrain] = struct{}{}
	}
	score += 0.3 * float64(len(kinds))
	if water {
		score += 0.5
	}

	var yield float64
	for _, v := range cell.Resources {
		yield += v
	}
	return score + 0.2*math.Log1p(yield)
}

func tooClose(c hex.Cubic, existing []*Structure, minDist int) bool {
	for _, s := range existing {
		if loc := s.Location(); loc != nil && hex.Distance(c, loc.Coord) < minDist {
			return true
		}
	}
	return false
}

var (
	namePrefixes = []string{
		"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
		"Silver", "Red", "White", "High", "Low", "Far", "Deep",
		"Gold", "Frost", "Thorn", "Elm", "Oak", "Copper",
	}
	nameSuffixes = []string{
		"haven", "ford", "hollow", "wick", "bridge", "gate", "keep",
		"stead", "wood", "field", "dale", "vale", "port", "moor",
	}
)

// generateNames draws count distinct prefix+suffix names from rng. Once
// every pair is used, further names are numbered.
func generateNames(rng *rand.Rand, count int) []string {
	all := len(namePrefixes) * len(nameSuffixes)
	seen := make(map[string]bool, min(count, all))
	out := make([]string, 0, count)
	for len(out) < count {
		name := namePrefixes[rng.Intn(len(namePrefixes))] + nameSuffixes[rng.Intn(len(nameSuffixes))]
		switch {
		case !seen[name]:
			seen[name] = true
		case len(seen) == all:
			name = fmt.Sprintf("%s %d", name, len(out))
		default:
			continue
		}
		out = append(out, name)
	}
	return out
}
