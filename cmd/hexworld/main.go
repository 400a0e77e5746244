// Command hexworld generates a hex map, places structures, walks an actor
// across it and renders the result.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/talgya/graticule/internal/config"
	"github.com/talgya/graticule/internal/hex"
	"github.com/talgya/graticule/internal/render"
	"github.com/talgya/graticule/internal/world"
)

func main() {
	// ── Configuration ─────────────────────────────────────────────────
	path, err := config.Path(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg := config.Default()
	if path != "" {
		if cfg, err = config.Load(path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid config:", err)
		os.Exit(1)
	}

	level, _ := cfg.LogLevel()
	slog.SetDefault(slog.New(newHandler(os.Stdout, cfg.Log.Format, level)))
	if path != "" {
		slog.Info("config loaded", "path", path)
	}

	// ── Graticule & terrain ───────────────────────────────────────────
	geo := cfg.GeometryValue()
	grid := cfg.NewGrid()
	slog.Info("generating world map...", "grid", grid.String(), "geometry", geo.String())

	seed, err := world.Generate(grid, cfg.GenConfig())
	if err != nil {
		slog.Error("terrain generation failed", "error", err)
		os.Exit(1)
	}

	counts := world.TerrainCounts(grid)
	land := 0
	for t, c := range counts {
		if t != world.TerrainOcean {
			land += c
		}
		slog.Info("terrain", "type", world.TerrainName(t), "count", humanize.Comma(int64(c)))
	}

	// ── Structures ────────────────────────────────────────────────────
	structures, err := world.PlaceStructures(grid, cfg.PlacementConfig(seed))
	if err != nil {
		slog.Error("structure placement failed", "error", err)
		os.Exit(1)
	}
	for _, s := range structures {
		slog.Info("structure", "name", s.Name, "kind", s.Kind.String(), "at", s.Location(),
			"score", fmt.Sprintf("%.2f", s.Score))
	}

	// ── Walk ──────────────────────────────────────────────────────────
	from, to := cfg.WalkEnds()
	walked := walk(grid, from, to)

	slog.Info("world ready",
		"seed", seed,
		"cells", humanize.Comma(int64(grid.Count())),
		"land", humanize.Comma(int64(land)),
		"structures", len(structures),
		"walked", len(walked),
	)

	// ── Render ────────────────────────────────────────────────────────
	if cfg.Render.Disabled {
		return
	}
	opts := cfg.RenderOptions(walked)
	p, err := render.Plot(grid, geo, opts)
	if err != nil {
		slog.Error("plot failed", "error", err)
		os.Exit(1)
	}
	if dir := filepath.Dir(cfg.Render.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			slog.Error("failed to create output dir", "error", err)
			os.Exit(1)
		}
	}
	if err := render.Save(p, cfg.Render.Output, opts); err != nil {
		slog.Error("render failed", "error", err)
		os.Exit(1)
	}
	if info, err := os.Stat(cfg.Render.Output); err == nil {
		slog.Info("map rendered", "path", cfg.Render.Output, "size", humanize.Bytes(uint64(info.Size())))
	}
}

// walk places a fresh actor at from and walks it toward to. A blocked walk
// is not fatal; the covered part of the line is returned.
func walk(grid *world.Grid, from, to hex.Cubic) []hex.Cubic {
	actor := world.NewActor("wanderer")
	start := world.CellAt(grid, from)
	if start == nil {
		slog.Warn("walk skipped: no cell at start", "from", from)
		return nil
	}
	if err := world.Place(actor, start); err != nil {
		slog.Warn("walk skipped", "from", from, "error", err)
		return nil
	}

	walked, err := actor.WalkTo(grid, to)
	switch {
	case err == nil:
		slog.Info("walk complete", "from", from, "to", to, "steps", actor.Moves)
	case errors.Is(err, world.ErrImpassable), errors.Is(err, world.ErrCellOccupied):
		slog.Warn("walk blocked", "at", actor.Location(), "steps", actor.Moves, "error", err)
	default:
		slog.Warn("walk failed", "from", from, "to", to, "error", err)
	}
	return walked
}

// newHandler picks a text handler for terminals and JSON otherwise, unless
// format forces one.
func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case "text":
		return slog.NewTextHandler(w, opts)
	case "json":
		return slog.NewJSONHandler(w, opts)
	}
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
