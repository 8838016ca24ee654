// Command sketchaire is the desktop front-end: a Gio canvas that feeds
// pointer events through the gesture state machine and renders committed
// shapes, grounded on cmd/caire/main.go's flag-driven entry point.
package main

import (
	"flag"
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/esimov/sketchaire/config"
	"github.com/esimov/sketchaire/shape"
	"github.com/esimov/sketchaire/utils"
)

func main() {
	var (
		configPath string
		dumpPath   string
		colorHex   string
		width      int
		height     int
	)
	fs := flag.NewFlagSet("sketchaire", flag.ExitOnError)
	fs.StringVar(&configPath, "config", "", "path to a TOML config file")
	fs.StringVar(&dumpPath, "dump", "", "path to write the final history as JSON on exit")
	fs.StringVar(&colorHex, "color", "", "initial stroke color, as a hex triplet")
	fs.IntVar(&width, "width", 1280, "initial window width")
	fs.IntVar(&height, "height", 720, "initial window height")

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg := config.Default()
	config.RegisterFlags(fs, &cfg)
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			log.Fatal().Err(errors.Wrap(err, "load config")).Send()
		}
		cfg = loaded
		// Parse again so flags given on the command line overlay the file.
		fs.Parse(os.Args[1:])
	}

	gui := NewGui(cfg)
	gui.dumpPath = dumpPath
	gui.window.width, gui.window.height = unit.Dp(width), unit.Dp(height)
	if colorHex != "" {
		c := utils.HexToRGBA(colorHex)
		gui.orch.StrokeColor = shape.Color{R: c.R, G: c.G, B: c.B}
	}

	go func() {
		log.Info().Msg("sketchaire: window starting")
		if err := gui.Run(); err != nil {
			log.Fatal().Err(errors.Wrap(err, "gui run")).Send()
		}
		log.Info().Msg("sketchaire: window closed")
		os.Exit(0)
	}()
	app.Main()
}
