package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/graticule/internal/geometry"
	"github.com/talgya/graticule/internal/graticule"
	"github.com/talgya/graticule/internal/hex"
	"github.com/talgya/graticule/internal/world"
)

func testGrid(t *testing.T) *world.Grid {
	t.Helper()
	g := world.NewGrid(3)
	require.NoError(t, world.Populate(g, world.PlainFactory))
	world.CellAt(g, hex.Cubic{R: 3, S: -3}).Terrain = world.TerrainOcean

	require.NoError(t, world.Place(world.NewActor("a"), world.CellAt(g, hex.Cubic{})))
	require.NoError(t, world.Place(&world.Structure{Name: "s"}, world.CellAt(g, hex.Cubic{R: 1, S: 1, T: -2})))
	return g
}

func TestPlotAndSave(t *testing.T) {
	t.Parallel()

	g := testGrid(t)
	opts := DefaultOptions()
	opts.Path = hex.Line(hex.Cubic{R: -3, S: 0, T: 3}, hex.Cubic{R: 3, S: 0, T: -3})

	p, err := Plot(g, geometry.Default, opts)
	require.NoError(t, err)
	assert.Equal(t, "hexworld", p.Title.Text)

	// Hexagon extents: radius 3 cells reach x = ±(4.5 + 1).
	assert.InDelta(t, -5.5, p.X.Min, 1e-9)
	assert.InDelta(t, 5.5, p.X.Max, 1e-9)

	dir := t.TempDir()
	for _, name := range []string{"map.png", "map.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(p, path, opts))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), name)
	}
}

func TestPlotWithoutExtras(t *testing.T) {
	t.Parallel()

	opts := Options{Width: 2, Height: 2}
	p, err := Plot(testGrid(t), geometry.FromApothem(2), opts)
	require.NoError(t, err)
	require.NoError(t, Save(p, filepath.Join(t.TempDir(), "bare.png"), opts))
}

func TestPlotErrors(t *testing.T) {
	t.Parallel()

	_, err := Plot(world.NewGrid(2), geometry.Default, DefaultOptions())
	assert.ErrorIs(t, err, graticule.ErrUninitializedStorage)

	_, err = Plot(testGrid(t), geometry.FromRadius(-1), DefaultOptions())
	assert.ErrorIs(t, err, geometry.ErrInvalidScale)

	p, err := Plot(testGrid(t), geometry.Default, DefaultOptions())
	require.NoError(t, err)
	err = Save(p, filepath.Join(t.TempDir(), "map.bmp"), DefaultOptions())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestTerrainColor(t *testing.T) {
	t.Parallel()

	assert.NotEqual(t, TerrainColor(world.TerrainOcean), TerrainColor(world.TerrainPlains))
	r, g, b, _ := TerrainColor(world.Terrain(99)).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0xffff}, [3]uint32{r, g, b})
}
