// Command tileview opens an interactive terminal inspector for a
// generated grid: the occupancy map, a movable window cursor, and
// per-tile counts.
//
// Keys: hjkl or arrows move the cursor one window band, r regenerates
// the grid with a fresh seed, q/Escape/Ctrl-C quits.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/gogrid/tilescan/internal/config"
	"github.com/gogrid/tilescan/internal/view"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (flags override file values)")
	cfg := config.Default()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tileview: %v\n", err)
			os.Exit(1)
		}
		loaded.FromFlags(flag.CommandLine, cfg)
		cfg = loaded
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "tileview: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v, err := view.New(screen, cfg.Geometry(), cfg.TileRegion(), cfg.ResolveSeed())
	if err != nil {
		return err
	}
	defer v.Close()

	return v.Run()
}
