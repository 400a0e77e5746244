package world

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/graticule/internal/geometry"
	"github.com/talgya/graticule/internal/hex"
)

func generatedGrid(t *testing.T, radius int, seed int64) *Grid {
	t.Helper()
	cfg := DefaultGenConfig()
	cfg.Seed = seed
	g := NewGrid(radius)
	got, err := Generate(g, cfg)
	require.NoError(t, err)
	require.Equal(t, seed, got)
	return g
}

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()

	a := generatedGrid(t, 8, 42)
	b := generatedGrid(t, 8, 42)
	require.Equal(t, a.Count(), b.Count())

	a.ApplyCoords(func(c hex.Cubic) {
		ca, cb := CellAt(a, c), CellAt(b, c)
		require.NotNil(t, ca)
		require.NotNil(t, cb)
		assert.Equal(t, ca.Terrain, cb.Terrain, "terrain at %v", c)
		assert.Equal(t, ca.Elevation, cb.Elevation, "elevation at %v", c)
		assert.Equal(t, ca.ID, cb.ID)
	})
}

func TestGenerateShape(t *testing.T) {
	t.Parallel()

	const radius = 8
	g := generatedGrid(t, radius, 7)
	assert.Equal(t, 1+3*radius*(radius+1), g.Count())

	g.ApplyCells(func(c *Cell) {
		assert.Zero(t, c.Coord.Sum())
		if hex.Distance(hex.Cubic{}, c.Coord) == radius {
			assert.Equal(t, TerrainOcean, c.Terrain, "rim cell %v must be ocean", c.Coord)
		}
		if c.Terrain == TerrainCoast {
			hasOcean := false
			for _, n := range Neighbours(g, c.Coord) {
				hasOcean = hasOcean || n.Terrain == TerrainOcean
			}
			assert.True(t, hasOcean, "coast cell %v has no ocean neighbour", c.Coord)
		}
		assert.GreaterOrEqual(t, c.Elevation, 0.0)
		assert.LessOrEqual(t, c.Elevation, 1.0)
	})

	total := 0
	for _, n := range TerrainCounts(g) {
		total += n
	}
	assert.Equal(t, g.Count(), total)
}

func TestGenerateRandomSeed(t *testing.T) {
	t.Parallel()

	cfg := DefaultGenConfig()
	seed, err := Generate(NewGrid(3), cfg)
	require.NoError(t, err)
	assert.NotZero(t, seed)
}

func TestGenerateRejectsBadGeometry(t *testing.T) {
	t.Parallel()

	cfg := DefaultGenConfig()
	cfg.Seed = 1
	cfg.Geometry = geometry.FromRadius(0)
	_, err := Generate(NewGrid(3), cfg)
	assert.ErrorIs(t, err, geometry.ErrInvalidScale)
}

func TestDeriveTerrain(t *testing.T) {
	t.Parallel()

	cfg := DefaultGenConfig()
	tests := []struct {
		name             string
		elev, rain, temp float64
		want             Terrain
	}{
		{"ocean", 0.1, 0.5, 0.5, TerrainOcean},
		{"mountain", 0.9, 0.5, 0.5, TerrainMountain},
		{"tundra", 0.5, 0.5, 0.1, TerrainTundra},
		{"desert", 0.4, 0.1, 0.8, TerrainDesert},
		{"swamp", 0.3, 0.8, 0.5, TerrainSwamp},
		{"forest", 0.5, 0.6, 0.5, TerrainForest},
		{"plains", 0.4, 0.4, 0.5, TerrainPlains},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveTerrain(tt.elev, tt.rain, tt.temp, cfg))
		})
	}
}

func TestTraceRiverRunsDownhill(t *testing.T) {
	t.Parallel()

	g := populatedGrid(t, 3)
	// A valley along r = 0 falling in the Back direction.
	g.ApplyCells(func(c *Cell) {
		c.Elevation = 0.5 + 0.1*float64(c.Coord.S) + 0.01*math.Abs(float64(c.Coord.R))
	})
	start := CellAt(g, hex.Cubic{R: 0, S: 3, T: -3})
	require.NotNil(t, start)

	traceRiver(g, start)

	for s := 3; s >= -3; s-- {
		cell := CellAt(g, hex.Cubic{R: 0, S: s, T: -s})
		require.NotNil(t, cell)
		assert.Equal(t, TerrainRiver, cell.Terrain, "cell %v", cell.Coord)
	}
}
