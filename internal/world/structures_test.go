package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/graticule/internal/hex"
)

func TestPlaceStructures(t *testing.T) {
	t.Parallel()

	g := generatedGrid(t, 12, 42)
	cfg := DefaultPlacementConfig()
	cfg.Seed = 42

	placed, err := PlaceStructures(g, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, placed)

	names := make(map[string]bool)
	for i, s := range placed {
		loc := s.Location()
		require.NotNil(t, loc)
		assert.NotEqual(t, TerrainOcean, loc.Terrain)
		assert.Equal(t, Occupant(s), loc.Occupant)
		assert.NotEmpty(t, s.Name)
		names[s.Name] = true
		if i > 0 {
			assert.LessOrEqual(t, int(s.Kind), int(placed[i-1].Kind), "cities come first")
		}
		minDist := cfg.MinVillageDist
		switch s.Kind {
		case KindCity:
			minDist = cfg.MinCityDist
		case KindTown:
			minDist = cfg.MinTownDist
		}
		for _, o := range placed[:i] {
			assert.GreaterOrEqual(t, hex.Distance(loc.Coord, o.Location().Coord), minDist)
		}
	}
	assert.Len(t, names, len(placed))

	// A second round only uses the cells left free.
	more, err := PlaceStructures(g, cfg)
	require.NoError(t, err)
	for _, s := range more {
		for _, o := range placed {
			assert.NotSame(t, o.Location(), s.Location())
		}
	}
}

func TestPlaceStructuresOnPlainGrid(t *testing.T) {
	t.Parallel()

	g := populatedGrid(t, 4)
	cfg := PlacementConfig{Seed: 1, Cities: 1, Towns: 2, MinCityDist: 3, MinTownDist: 3}
	placed, err := PlaceStructures(g, cfg)
	require.NoError(t, err)
	require.Len(t, placed, 3)
	assert.Equal(t, KindCity, placed[0].Kind)
	assert.Equal(t, KindTown, placed[1].Kind)
	assert.Equal(t, KindTown, placed[2].Kind)
	assert.Equal(t, "City", placed[0].Kind.String())
}

func TestPlaceStructuresReproducible(t *testing.T) {
	t.Parallel()

	cfg := DefaultPlacementConfig()
	cfg.Seed = 9

	names := func() []string {
		placed, err := PlaceStructures(generatedGrid(t, 10, 9), cfg)
		require.NoError(t, err)
		out := make([]string, len(placed))
		for i, s := range placed {
			out[i] = s.Name + "@" + s.Location().Coord.String()
		}
		return out
	}
	assert.Equal(t, names(), names())
}

func TestGenerateNamesExhausted(t *testing.T) {
	t.Parallel()

	names := generateNames(rand.New(rand.NewSource(1)), 300)
	seen := make(map[string]bool)
	for _, n := range names {
		assert.False(t, seen[n], "duplicate %q", n)
		seen[n] = true
	}
	assert.Len(t, names, 300)
}
