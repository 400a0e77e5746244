// Package render draws a populated grid as a flat map using gonum/plot.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/talgya/graticule/internal/geometry"
	"github.com/talgya/graticule/internal/graticule"
	"github.com/talgya/graticule/internal/hex"
	"github.com/talgya/graticule/internal/world"
)

// ErrUnsupportedFormat is returned by Save for an output extension gonum/plot
// cannot write.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Options controls what Plot draws and how Save sizes the output.
type Options struct {
	Title string
	// Width and Height of the saved image in inches. Zero uses the defaults.
	Width, Height float64
	// Path, when non-empty, is drawn as a line through the cell centers.
	Path []hex.Cubic
	// Occupants marks every actor and structure on the grid.
	Occupants bool
	// Outline draws hexagon edges.
	Outline bool
}

// DefaultOptions returns options for an 8x8 inch map with occupants shown.
func DefaultOptions() Options {
	return Options{
		Title:     "hexworld",
		Width:     8,
		Height:    8,
		Occupants: true,
		Outline:   true,
	}
}

// terrainColors maps terrain to fill colour.
var terrainColors = map[world.Terrain]color.RGBA{
	world.TerrainPlains:   {R: 186, G: 204, B: 112, A: 255},
	world.TerrainForest:   {R: 56, G: 118, B: 64, A: 255},
	world.TerrainMountain: {R: 140, G: 128, B: 118, A: 255},
	world.TerrainCoast:    {R: 226, G: 212, B: 160, A: 255},
	world.TerrainRiver:    {R: 90, G: 160, B: 220, A: 255},
	world.TerrainDesert:   {R: 232, G: 196, B: 120, A: 255},
	world.TerrainSwamp:    {R: 96, G: 112, B: 72, A: 255},
	world.TerrainTundra:   {R: 220, G: 228, B: 232, A: 255},
	world.TerrainOcean:    {R: 36, G: 72, B: 140, A: 255},
}

// TerrainColor returns the fill colour for t. Unknown terrain is magenta.
func TerrainColor(t world.Terrain) color.Color {
	if c, ok := terrainColors[t]; ok {
		return c
	}
	return color.RGBA{R: 255, B: 255, A: 255}
}

// Plot builds a figure with one filled hexagon per cell of g, projected on
// the x/z ground plane.
func Plot(g *world.Grid, geo geometry.Geometry, opts Options) (*plot.Plot, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	if !g.Initialized() {
		return nil, fmt.Errorf("plot %v: %w", g, graticule.ErrUninitializedStorage)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "z"

	var firstErr error
	g.ApplyCells(func(cell *world.Cell) {
		if firstErr != nil {
			return
		}
		poly, err := hexagon(geo, cell.Coord)
		if err != nil {
			firstErr = fmt.Errorf("hexagon %v: %w", cell.Coord, err)
			return
		}
		poly.Color = TerrainColor(cell.Terrain)
		if opts.Outline {
			poly.LineStyle.Width = vg.Points(0.5)
			poly.LineStyle.Color = color.Gray{Y: 60}
		} else {
			poly.LineStyle.Width = 0
		}
		p.Add(poly)
	})
	if firstErr != nil {
		return nil, firstErr
	}

	if len(opts.Path) > 1 {
		line, err := plotter.NewLine(centers(geo, opts.Path))
		if err != nil {
			return nil, fmt.Errorf("path: %w", err)
		}
		line.Color = color.RGBA{R: 200, G: 30, B: 30, A: 255}
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add("path", line)
	}

	if opts.Occupants {
		if err := addOccupants(p, g, geo); err != nil {
			return nil, err
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	return p, nil
}

// Save writes p to path. The format follows the file extension.
func Save(p *plot.Plot, path string, opts Options) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg", ".eps", ".tif", ".tiff":
	default:
		return fmt.Errorf("save %s: %w", path, ErrUnsupportedFormat)
	}

	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = DefaultOptions().Width
	}
	if h <= 0 {
		h = DefaultOptions().Height
	}
	if err := p.Save(vg.Length(w)*vg.Inch, vg.Length(h)*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// hexagon returns the outline of the cell at c as a polygon. The mesh's
// center vertex is dropped.
func hexagon(geo geometry.Geometry, c hex.Cubic) (*plotter.Polygon, error) {
	mesh := geo.MeshVerticesAt(c)
	ring := make(plotter.XYs, 0, 6)
	for _, v := range mesh[1:] {
		ring = append(ring, plotter.XY{X: v.X, Y: v.Z})
	}
	return plotter.NewPolygon(ring)
}

func centers(geo geometry.Geometry, coords []hex.Cubic) plotter.XYs {
	pts := make(plotter.XYs, len(coords))
	for i, c := range coords {
		v := geo.CenterVertexAt(c)
		pts[i] = plotter.XY{X: v.X, Y: v.Z}
	}
	return pts
}

func addOccupants(p *plot.Plot, g *world.Grid, geo geometry.Geometry) error {
	var actors, structures []hex.Cubic
	g.ApplyCells(func(cell *world.Cell) {
		switch cell.Occupant.(type) {
		case *world.Actor:
			actors = append(actors, cell.Coord)
		case *world.Structure:
			structures = append(structures, cell.Coord)
		}
	})

	marks := []struct {
		label  string
		coords []hex.Cubic
		shape  draw.GlyphDrawer
		color  color.Color
	}{
		{"structure", structures, draw.SquareGlyph{}, color.Black},
		{"actor", actors, draw.TriangleGlyph{}, color.RGBA{R: 200, G: 30, B: 30, A: 255}},
	}
	for _, m := range marks {
		if len(m.coords) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(centers(geo, m.coords))
		if err != nil {
			return fmt.Errorf("%s markers: %w", m.label, err)
		}
		sc.GlyphStyle.Shape = m.shape
		sc.GlyphStyle.Color = m.color
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
		p.Legend.Add(m.label, sc)
	}
	return nil
}
