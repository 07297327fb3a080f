package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"mapscope/pkg/engine/logging"
	"mapscope/pkg/engine/terminal"
	"mapscope/pkg/game/assets"
	"mapscope/pkg/game/config"
	"mapscope/pkg/game/devtools"
	"mapscope/pkg/game/generator"
	"mapscope/pkg/game/renderer/ebiten"
	"mapscope/pkg/game/save"
	"mapscope/pkg/game/session"
)

func initGettext(lang string) {
	gotext.Configure("locales", lang, "default")
}

// buildSession creates the minimap session, restores the saved exploration
// and places the player on the start map.
func buildSession(cfg *config.Config, demo *generator.Demo, store *save.Store, log zerolog.Logger) (*session.Session, *assets.Loader, error) {
	loader := assets.NewLoader(cfg.AssetDir, logging.Component(log, "assets"))
	vars := session.Variables{}
	s, err := session.New(cfg, loader, vars, logging.Component(log, "minimap"))
	if err != nil {
		return nil, nil, err
	}

	if store != nil {
		archive, err := store.LoadArchive(save.DefaultSlot)
		if err != nil {
			log.Warn().Err(err).Msg("Could not load exploration, starting fresh")
		} else {
			s.SetArchive(archive)
		}
	}

	for _, v := range demo.Vehicles {
		if vehicle := s.Vehicle(v.Kind); vehicle != nil {
			vehicle.Park(v.MapID, v.X, v.Y)
		}
	}

	startMap, startX, startY := demo.StartMap, demo.StartX, demo.StartY
	if entry, ok := demo.Entry(cfg.StartMap); ok {
		startMap, startX, startY = entry.MapID, entry.X, entry.Y
	} else if cfg.StartMap != 0 {
		log.Warn().Int("map", cfg.StartMap).Msg("Unknown start map, using the default")
	}
	m, _ := demo.Map(startMap)
	s.SetupMap(m, startX, startY)
	return s, loader, nil
}

// runHeadless paints one tick and writes the minimap to the terminal or a PNG
func runHeadless(s *session.Session, dump bool, snapshot string, log zerolog.Logger) error {
	s.Update(nil)
	if !s.Ready() {
		return fmt.Errorf("minimap of map %d is not ready", s.MapID())
	}

	if dump {
		if terminal.IsInteractive() {
			devtools.PrintRaster(os.Stdout, s.Image().Image(), 0)
			devtools.PrintMap(os.Stdout, s)
		} else if err := devtools.DumpMap(os.Stdout, s); err != nil {
			return err
		}
	}

	if snapshot != "" {
		img := devtools.Snapshot(s, 2)
		if img == nil {
			return fmt.Errorf("no minimap raster to snapshot")
		}
		path, err := devtools.SavePNG(filepath.Dir(snapshot), trimExt(filepath.Base(snapshot)), img)
		if err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("Snapshot saved")
	}
	return nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

func main() {
	fs := pflag.NewFlagSet("mapscope", pflag.ExitOnError)
	config.Flags(fs)
	seed := fs.Int64("seed", 0, "demo map seed (0 picks one from the clock)")
	_ = fs.Parse(os.Args[1:])

	configPath, _ := fs.GetString("config")
	if err := config.Load(configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Decode()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel, os.Stderr, !terminal.IsInteractive())
	initGettext(cfg.Language)

	if *seed == 0 {
		*seed = rand.New(rand.NewSource(time.Now().UnixNano())).Int63()
	}
	demo := generator.BuildDemo(*seed, logging.Component(log, "generator"))
	log.Info().Int64("seed", *seed).Str("demo", demo.String()).Msg("Demo maps generated")

	store, err := save.Open(cfg.SavePath, logging.Component(log, "save"))
	if err != nil {
		log.Error().Err(err).Msg("Saving disabled")
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	s, loader, err := buildSession(cfg, demo, store, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not start the minimap")
	}

	dump, _ := fs.GetBool("dump")
	snapshot, _ := fs.GetString("snapshot")
	if dump || snapshot != "" {
		if err := runHeadless(s, dump, snapshot, log); err != nil {
			log.Fatal().Err(err).Msg("Headless run failed")
		}
		return
	}

	var saveFn ebiten.SaveFunc
	if store != nil {
		saveFn = func() error {
			s.Archive().Pack()
			return store.SaveArchive(save.DefaultSlot, s.Archive())
		}
	}

	win, err := ebiten.New(ebiten.Options{
		Title:        "mapscope",
		CursorImage:  cfg.Browse.CursorImage,
		CursorWidth:  cfg.Browse.CursorWidth,
		ShotDir:      ".",
		HelpOnScreen: true,
	}, s, demo, loader, saveFn, logging.Component(log, "window"))
	if err != nil {
		log.Fatal().Err(err).Msg("Could not create the window")
	}
	if err := win.Run(); err != nil {
		log.Fatal().Err(err).Msg("Window closed with an error")
	}
	log.Info().Msg(gotext.Get("GOODBYE"))
}
