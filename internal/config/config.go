package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/Garsondee/shadowcast/fov"
)

type Config struct {
	FOV     FOVConfig     `toml:"fov"`
	Report  ReportConfig  `toml:"report"`
	Viewer  ViewerConfig  `toml:"viewer"`
	Logging LoggingConfig `toml:"logging"`
}

type FOVConfig struct {
	Engine fov.Engine `toml:"engine"` // "dense" or "sparse"
	Radius int        `toml:"radius"` // used when the map document does not set one
}

type ReportConfig struct {
	Repeats     int    `toml:"repeats"`       // timed runs per query
	Workers     int    `toml:"workers"`       // concurrent queries, 0 = GOMAXPROCS
	PNGCellSize int    `toml:"png_cell_size"` // pixels per tile in PNG exports
	HiddenGlyph string `toml:"hidden_glyph"`  // drawn for tiles out of view
	Clipboard   bool   `toml:"clipboard"`     // copy the text report by default
}

type ViewerConfig struct {
	Title    string `toml:"title"`
	TileSize int    `toml:"tile_size"` // screen pixels per tile
	ShowHUD  bool   `toml:"show_hud"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	if c.FOV.Radius < 0 {
		return fmt.Errorf("fov.radius %d must not be negative", c.FOV.Radius)
	}
	if c.Report.Repeats < 1 {
		return fmt.Errorf("report.repeats %d must be at least 1", c.Report.Repeats)
	}
	if c.Report.Workers < 0 {
		return fmt.Errorf("report.workers %d must not be negative", c.Report.Workers)
	}
	if c.Report.PNGCellSize < 1 {
		return fmt.Errorf("report.png_cell_size %d must be at least 1", c.Report.PNGCellSize)
	}
	if len(c.Report.HiddenGlyph) != 1 {
		return fmt.Errorf("report.hidden_glyph %q must be a single character", c.Report.HiddenGlyph)
	}
	if c.Viewer.TileSize < 4 {
		return fmt.Errorf("viewer.tile_size %d must be at least 4", c.Viewer.TileSize)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q must be json or console", c.Logging.Format)
	}
	return nil
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	return &Config{
		FOV: FOVConfig{
			Engine: fov.EngineDense,
			Radius: 10,
		},
		Report: ReportConfig{
			Repeats:     1,
			PNGCellSize: 16,
			HiddenGlyph: " ",
		},
		Viewer: ViewerConfig{
			Title:    "shadowcast",
			TileSize: 24,
			ShowHUD:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
