package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/graticule/internal/geometry"
	"github.com/talgya/graticule/internal/graticule"
	"github.com/talgya/graticule/internal/hex"
	"github.com/talgya/graticule/internal/render"
	"github.com/talgya/graticule/internal/world"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "CONFIG_PATH"

// Config holds all hexworld settings
type Config struct {
	Graticule  GraticuleConfig  `yaml:"graticule"`
	Geometry   GeometryConfig   `yaml:"geometry"`
	Generation GenerationConfig `yaml:"generation"`
	Placement  PlacementConfig  `yaml:"placement"`
	Render     RenderConfig     `yaml:"render"`
	Log        LogConfig        `yaml:"log"`
	Walk       WalkConfig       `yaml:"walk"`
}

// GraticuleConfig sets the grid bounds. Explicit per-axis dimensions take
// precedence over Radius.
type GraticuleConfig struct {
	Radius int                     `yaml:"radius"` // Hexagon-shaped grid of this radius
	R      *graticule.MapDimension `yaml:"r"`
	S      *graticule.MapDimension `yaml:"s"`
	T      *graticule.MapDimension `yaml:"t"`
}

// GeometryConfig sets the hexagon scale. Apothem wins when both are set.
type GeometryConfig struct {
	Radius  float64 `yaml:"radius"`
	Apothem float64 `yaml:"apothem"`
}

// GenerationConfig holds terrain noise settings
type GenerationConfig struct {
	Seed          int64   `yaml:"seed"` // 0 picks a random seed
	SeaLevel      float64 `yaml:"sea_level"`
	MountainLevel float64 `yaml:"mountain_level"`
	Frequency     float64 `yaml:"frequency"`
	Rivers        int     `yaml:"rivers"`
}

// PlacementConfig holds structure counts and spacing
type PlacementConfig struct {
	Cities         int `yaml:"cities"`
	Towns          int `yaml:"towns"`
	Villages       int `yaml:"villages"`
	MinCityDist    int `yaml:"min_city_distance"`
	MinTownDist    int `yaml:"min_town_distance"`
	MinVillageDist int `yaml:"min_village_distance"`
}

// RenderConfig holds map image settings
type RenderConfig struct {
	Disabled  bool    `yaml:"disabled"`
	Output    string  `yaml:"output"` // Extension picks the format
	Title     string  `yaml:"title"`
	Width     float64 `yaml:"width"`  // inches
	Height    float64 `yaml:"height"` // inches
	NoOutline bool    `yaml:"no_outline"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // auto, text, json
}

// WalkConfig sets the demo actor's walk. Unset ends default to halfway
// between the center and the lowest or highest r of the grid.
type WalkConfig struct {
	From *hex.Cubic `yaml:"from"`
	To   *hex.Cubic `yaml:"to"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Path returns the config file path: the -config flag if set, otherwise
// $CONFIG_PATH. An empty result means run on defaults.
func Path(fs *flag.FlagSet, args []string) (string, error) {
	var path string
	fs.StringVar(&path, "config", "", "path to YAML config file (overrides $"+EnvPath+")")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	return path, nil
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Graticule.Radius == 0 {
		c.Graticule.Radius = 12
	}
	if c.Geometry.Radius == 0 && c.Geometry.Apothem == 0 {
		c.Geometry.Radius = 1
	}

	gen := world.DefaultGenConfig()
	if c.Generation.SeaLevel == 0 {
		c.Generation.SeaLevel = gen.SeaLevel
	}
	if c.Generation.MountainLevel == 0 {
		c.Generation.MountainLevel = gen.MountainLevel
	}
	if c.Generation.Frequency == 0 {
		c.Generation.Frequency = gen.Frequency
	}

	place := world.DefaultPlacementConfig()
	if c.Placement.Cities == 0 {
		c.Placement.Cities = place.Cities
	}
	if c.Placement.Towns == 0 {
		c.Placement.Towns = place.Towns
	}
	if c.Placement.Villages == 0 {
		c.Placement.Villages = place.Villages
	}
	if c.Placement.MinCityDist == 0 {
		c.Placement.MinCityDist = place.MinCityDist
	}
	if c.Placement.MinTownDist == 0 {
		c.Placement.MinTownDist = place.MinTownDist
	}
	if c.Placement.MinVillageDist == 0 {
		c.Placement.MinVillageDist = place.MinVillageDist
	}

	opts := render.DefaultOptions()
	if c.Render.Output == "" {
		c.Render.Output = "hexworld.png"
	}
	if c.Render.Title == "" {
		c.Render.Title = opts.Title
	}
	if c.Render.Width == 0 {
		c.Render.Width = opts.Width
	}
	if c.Render.Height == 0 {
		c.Render.Height = opts.Height
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "auto"
	}
}

// Validate reports settings that would fail later: degenerate dimensions,
// a bad geometry scale, an unknown log level or format, or walk ends that
// are not valid coordinates.
func (c *Config) Validate() error {
	for _, d := range c.Dimensions() {
		if _, err := d.Size(); err != nil {
			return fmt.Errorf("graticule: %w", err)
		}
	}
	if err := c.GeometryValue().Validate(); err != nil {
		return fmt.Errorf("geometry: %w", err)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("log: unknown format %q", c.Log.Format)
	}
	ends := []struct {
		name string
		c    *hex.Cubic
	}{{"from", c.Walk.From}, {"to", c.Walk.To}}
	for _, end := range ends {
		if end.c == nil {
			continue
		}
		if _, err := end.c.Validate(); err != nil {
			return fmt.Errorf("walk %s: %w", end.name, err)
		}
	}
	return nil
}

// Dimensions returns the r, s and t bounds of the grid.
func (c *Config) Dimensions() [3]graticule.MapDimension {
	sym := graticule.Dim(-c.Graticule.Radius, c.Graticule.Radius)
	dims := [3]graticule.MapDimension{sym, sym, sym}
	for i, d := range []*graticule.MapDimension{c.Graticule.R, c.Graticule.S, c.Graticule.T} {
		if d != nil {
			dims[i] = *d
		}
	}
	return dims
}

// NewGrid returns an unpopulated grid with the configured bounds.
func (c *Config) NewGrid() *world.Grid {
	d := c.Dimensions()
	return graticule.New[world.Cell](d[0], d[1], d[2])
}

// GeometryValue returns the configured hexagon geometry.
func (c *Config) GeometryValue() geometry.Geometry {
	if c.Geometry.Apothem != 0 {
		return geometry.FromApothem(c.Geometry.Apothem)
	}
	return geometry.FromRadius(c.Geometry.Radius)
}

// GenConfig returns the terrain generation settings.
func (c *Config) GenConfig() world.GenConfig {
	return world.GenConfig{
		Seed:          c.Generation.Seed,
		SeaLevel:      c.Generation.SeaLevel,
		MountainLevel: c.Generation.MountainLevel,
		Frequency:     c.Generation.Frequency,
		Rivers:        c.Generation.Rivers,
		Geometry:      c.GeometryValue(),
	}
}

// PlacementConfig returns the structure placement settings for seed.
func (c *Config) PlacementConfig(seed int64) world.PlacementConfig {
	return world.PlacementConfig{
		Seed:           seed,
		Cities:         c.Placement.Cities,
		Towns:          c.Placement.Towns,
		Villages:       c.Placement.Villages,
		MinCityDist:    c.Placement.MinCityDist,
		MinTownDist:    c.Placement.MinTownDist,
		MinVillageDist: c.Placement.MinVillageDist,
	}
}

// RenderOptions returns plot options for the given walk path.
func (c *Config) RenderOptions(path []hex.Cubic) render.Options {
	return render.Options{
		Title:     c.Render.Title,
		Width:     c.Render.Width,
		Height:    c.Render.Height,
		Path:      path,
		Occupants: true,
		Outline:   !c.Render.NoOutline,
	}
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log: %w", err)
	}
	return lvl, nil
}

// WalkEnds returns the demo walk's start and target. Defaults sit halfway
// out along r, with s as close to 0 as the bounds allow.
func (c *Config) WalkEnds() (from, to hex.Cubic) {
	d := c.Dimensions()
	from = corner(d, d[0].Min/2)
	to = corner(d, d[0].Max/2)
	if c.Walk.From != nil {
		from = *c.Walk.From
	}
	if c.Walk.To != nil {
		to = *c.Walk.To
	}
	return from, to
}

// corner returns a valid coordinate at r inside d, preferring s closest to 0.
func corner(d [3]graticule.MapDimension, r int) hex.Cubic {
	lo := max(d[1].Min, -r-d[2].Max)
	hi := min(d[1].Max, -r-d[2].Min)
	s := min(max(0, lo), hi)
	return hex.Cubic{R: r, S: s, T: -r - s}
}
