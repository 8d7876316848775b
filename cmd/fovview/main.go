// Command fovview opens a window for exploring FOV on a map file.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/shadowcast/internal/config"
	"github.com/Garsondee/shadowcast/internal/logging"
	"github.com/Garsondee/shadowcast/internal/mapfile"
	"github.com/Garsondee/shadowcast/internal/viewer"
)

func main() {
	var configPath string
	var mapPath string
	flag.StringVar(&configPath, "config", "", "TOML config file (defaults apply when empty)")
	flag.StringVar(&mapPath, "map", "maps/courtyard.yaml", "map file to open")
	flag.Parse()

	cfg := config.Defaults()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatal(err)
		}
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	lvl, err := mapfile.Load(mapPath)
	if err != nil {
		logger.Fatal("load map", zap.Error(err))
	}

	g := viewer.New(lvl, cfg, logger)
	w, h := g.Layout(0, 0)
	ebiten.SetWindowTitle(cfg.Viewer.Title)
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("viewer exited", zap.Error(err))
	}
}
