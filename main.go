package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and overlay")
	levelName := flag.String("level", "", "level name in levels/ (basename, .yaml optional)")
	watch := flag.Bool("watch", true, "reload edited prefabs and levels on the next reset")
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}
	logger := log.Default().WithPrefix("sentry")

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("sentry")

	game, err := NewGame(*levelName, *debug, logger)
	if err != nil {
		logger.Error("start", "err", err)
		os.Exit(1)
	}
	if *watch {
		game.Watch("prefabs", "levels")
	}

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		logger.Error("run", "err", err)
		os.Exit(1)
	}
}
