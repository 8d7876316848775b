// Command fovreport runs FOV queries over map files and prints what each
// vantage can see, plus an aggregate comparison of the engines.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/Garsondee/shadowcast/fov"
	"github.com/Garsondee/shadowcast/internal/config"
	"github.com/Garsondee/shadowcast/internal/logging"
	"github.com/Garsondee/shadowcast/internal/mapfile"
	"github.com/Garsondee/shadowcast/internal/render"
	"github.com/Garsondee/shadowcast/internal/report"
)

type options struct {
	configPath string
	maps       string
	engine     string
	radius     int
	repeats    int
	pngDir     string
	copy       bool
	diff       bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("fovreport", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "TOML config file (defaults apply when empty)")
	fs.StringVar(&o.maps, "map", "maps/room.yaml", "comma-separated map files")
	fs.StringVar(&o.engine, "engine", "", "dense, sparse or both (default from config)")
	fs.IntVar(&o.radius, "radius", -1, "view radius, overrides map and config when >= 0")
	fs.IntVar(&o.repeats, "repeats", 0, "timed runs per query (default from config)")
	fs.StringVar(&o.pngDir, "png", "", "directory to write one PNG per query")
	fs.BoolVar(&o.copy, "copy", false, "copy the report to the clipboard")
	fs.BoolVar(&o.diff, "diff", false, "print where the engines disagree")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return o, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Defaults(), nil
	}
	return config.Load(path)
}

// selectEngines resolves the -engine flag against the configured default.
func selectEngines(flagValue string, def fov.Engine) ([]fov.Engine, error) {
	switch flagValue {
	case "":
		return []fov.Engine{def}, nil
	case "both", "all":
		return fov.Engines(), nil
	}
	e, err := fov.ParseEngine(flagValue)
	if err != nil {
		return nil, err
	}
	return []fov.Engine{e}, nil
}

// resolveRadius picks the flag, then the map document, then the config.
func resolveRadius(flagRadius, mapRadius, configRadius int) int {
	if flagRadius >= 0 {
		return flagRadius
	}
	if mapRadius > 0 {
		return mapRadius
	}
	return configRadius
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	engines, err := selectEngines(o.engine, cfg.FOV.Engine)
	if err != nil {
		return err
	}
	repeats := cfg.Report.Repeats
	if o.repeats > 0 {
		repeats = o.repeats
	}
	paths := splitList(o.maps)
	if len(paths) == 0 {
		return fmt.Errorf("-map: no map files given")
	}
	if o.pngDir != "" {
		if err := os.MkdirAll(o.pngDir, 0o755); err != nil {
			return fmt.Errorf("png dir: %w", err)
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== FOV Report ===\n")
	fmt.Fprintf(&sb, "maps=%d engines=%s repeats=%d\n\n", len(paths), engineList(engines), repeats)

	all := report.NewQueryLog()
	for _, path := range paths {
		lvl, err := mapfile.Load(path)
		if err != nil {
			return err
		}
		if len(lvl.Vantages) == 0 {
			log.Warn("map has no vantages, skipping", zap.String("map", path))
			continue
		}
		batch := report.Batch{
			Map:      lvl.Name,
			Tiles:    lvl.Map,
			Vantages: lvl.Vantages,
			Radius:   resolveRadius(o.radius, lvl.Radius, cfg.FOV.Radius),
			Engines:  engines,
		}
		ql, err := report.Evaluate(ctx, log, batch, report.Options{Repeats: repeats, Workers: cfg.Report.Workers})
		if err != nil {
			return err
		}
		printMap(&sb, lvl, batch, ql, cfg.Report.HiddenGlyph[0], o.diff)
		if o.pngDir != "" {
			if err := writePNGs(o.pngDir, path, lvl, ql, cfg.Report.PNGCellSize); err != nil {
				return err
			}
		}
		for _, e := range ql.Entries() {
			all.Add(e)
		}
	}

	fmt.Fprintf(&sb, "=== Aggregate ===\n")
	sb.WriteString(all.Summarize().String())

	text := sb.String()
	if _, err := io.WriteString(stdout, text); err != nil {
		return err
	}
	if o.copy || cfg.Report.Clipboard {
		if err := clipboard.WriteAll(text); err != nil {
			log.Warn("clipboard unavailable", zap.Error(err))
		} else {
			log.Info("report copied to clipboard", zap.Int("bytes", len(text)))
		}
	}
	return nil
}

func engineList(engines []fov.Engine) string {
	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = e.String()
	}
	return strings.Join(names, ",")
}

func printMap(sb *strings.Builder, lvl *mapfile.Level, b report.Batch, ql *report.QueryLog, hidden byte, diff bool) {
	tm := lvl.Map
	fmt.Fprintf(sb, "--- Map %s (%dx%d) radius=%d ---\n", lvl.Name, tm.Cols, tm.Rows, b.Radius)
	for _, v := range b.Vantages {
		for _, e := range b.Engines {
			entry, ok := ql.Lookup(lvl.Name, e, v)
			if !ok {
				continue
			}
			sb.WriteString(entry.String())
			sb.WriteByte('\n')
			sb.WriteString(render.ASCIIWith(tm, entry.Grid, v, hidden))
		}
		if !diff {
			continue
		}
		dense, okD := ql.Lookup(lvl.Name, fov.EngineDense, v)
		sparse, okS := ql.Lookup(lvl.Name, fov.EngineSparse, v)
		if !okD || !okS {
			continue
		}
		picture, n := render.Diff(tm, dense.Grid, sparse.Grid, v)
		fmt.Fprintf(sb, "diff %v: %d cells (%c=dense only %c=sparse only)\n",
			v, n, render.OnlyFirstGlyph, render.OnlySecondGlyph)
		sb.WriteString(picture)
	}
	sb.WriteByte('\n')
}

// pngName builds the file name for one query's image.
func pngName(mapPath string, e report.QueryEntry) string {
	base := strings.TrimSuffix(filepath.Base(mapPath), filepath.Ext(mapPath))
	return fmt.Sprintf("%s_%d_%d_%s.png", base, e.Vantage.X, e.Vantage.Y, e.Engine)
}

func writePNGs(dir, mapPath string, lvl *mapfile.Level, ql *report.QueryLog, cellSize int) error {
	for _, e := range ql.Entries() {
		path := filepath.Join(dir, pngName(mapPath, e))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		err = render.PNG(f, lvl.Map, e.Grid, e.Vantage, cellSize)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
