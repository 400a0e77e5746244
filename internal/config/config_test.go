package config

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/graticule/internal/geometry"
	"github.com/talgya/graticule/internal/graticule"
	"github.com/talgya/graticule/internal/hex"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hexworld.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 12, cfg.Graticule.Radius)
	d := cfg.Dimensions()
	assert.Equal(t, graticule.Dim(-12, 12), d[0])
	assert.Equal(t, d[0], d[2])
	assert.Equal(t, geometry.Default, cfg.GeometryValue())
	assert.Equal(t, "hexworld.png", cfg.Render.Output)

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	from, to := cfg.WalkEnds()
	assert.Equal(t, hex.Cubic{R: -6, S: 0, T: 6}, from)
	assert.Equal(t, hex.Cubic{R: 6, S: 0, T: -6}, to)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
graticule:
  radius: 4
  t: {min: -2, max: 2}
geometry:
  apothem: 2
generation:
  seed: 99
  sea_level: 0.3
placement:
  cities: 1
render:
  output: out/map.svg
  no_outline: true
log:
  level: debug
  format: json
walk:
  from: {r: -2, s: 2, t: 0}
  to: {r: 2, s: -2, t: 0}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	d := cfg.Dimensions()
	assert.Equal(t, graticule.Dim(-4, 4), d[0])
	assert.Equal(t, graticule.Dim(-2, 2), d[2])
	assert.Equal(t, geometry.FromApothem(2), cfg.GeometryValue())

	gen := cfg.GenConfig()
	assert.Equal(t, int64(99), gen.Seed)
	assert.Equal(t, 0.3, gen.SeaLevel)
	assert.Equal(t, 0.72, gen.MountainLevel, "unset values take defaults")

	place := cfg.PlacementConfig(gen.Seed)
	assert.Equal(t, 1, place.Cities)
	assert.Equal(t, 5, place.Towns)
	assert.Equal(t, int64(99), place.Seed)

	opts := cfg.RenderOptions([]hex.Cubic{{}})
	assert.False(t, opts.Outline)
	assert.Equal(t, "hexworld", opts.Title)
	assert.Len(t, opts.Path, 1)

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	from, to := cfg.WalkEnds()
	assert.Equal(t, hex.Cubic{R: -2, S: 2, T: 0}, from)
	assert.Equal(t, hex.Cubic{R: 2, S: -2, T: 0}, to)

	g := cfg.NewGrid()
	require.NoError(t, g.InitStorage())
	assert.True(t, g.Contains(hex.Cubic{R: 4, S: -2, T: -2}))
	assert.False(t, g.Contains(hex.Cubic{R: 4, S: 0, T: -4}), "t bound is narrower")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "graticule: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		target error
	}{
		{"degenerate", "graticule: {s: {min: 3, max: -3}}", graticule.ErrDegenerateDimension},
		{"scale", "geometry: {radius: -1}", geometry.ErrInvalidScale},
		{"walk", "walk: {to: {r: 1, s: 1, t: 1}}", hex.ErrInvalidCoordinate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.body))
			require.NoError(t, err)
			assert.ErrorIs(t, cfg.Validate(), tt.target)
		})
	}

	t.Run("log", func(t *testing.T) {
		cfg := Default()
		cfg.Log.Level = "loud"
		assert.Error(t, cfg.Validate())

		cfg = Default()
		cfg.Log.Format = "xml"
		assert.Error(t, cfg.Validate())
	})
}

func TestPath(t *testing.T) {
	t.Setenv(EnvPath, "/etc/hexworld.yaml")

	path, err := Path(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	require.NoError(t, err)
	assert.Equal(t, "/etc/hexworld.yaml", path)

	path, err = Path(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-config", "local.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "local.yaml", path)
}
